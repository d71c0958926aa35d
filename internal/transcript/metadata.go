package transcript

import (
	"regexp"
	"strings"
)

type metadataRule struct {
	pattern *regexp.Regexp
	// value turns a match into the stored value.
	value func(match []string) string
}

var wholeMatch = func(m []string) string { return strings.Join(strings.Fields(m[0]), " ") }

var companyRules = []metadataRule{
	{
		pattern: regexp.MustCompile(`\b[A-Z][A-Za-z0-9&]*(?:[ \t]+[A-Z][A-Za-z0-9&]*){0,4}[ \t]+(?:Limited|Ltd\.?|Inc\.?|Incorporated|Corporation|Corp\.?|PLC|plc|LLC|Holdings)`),
		value:   wholeMatch,
	},
}

var dateRules = []metadataRule{
	{
		pattern: regexp.MustCompile(`(?i)\b(?:January|February|March|April|May|June|July|August|September|October|November|December)[ \t]+\d{1,2}(?:st|nd|rd|th)?,?[ \t]+\d{4}`),
		value:   wholeMatch,
	},
	{
		pattern: regexp.MustCompile(`(?i)\b\d{1,2}(?:st|nd|rd|th)?[ \t]+(?:January|February|March|April|May|June|July|August|September|October|November|December),?[ \t]+\d{4}`),
		value:   wholeMatch,
	},
	{
		pattern: regexp.MustCompile(`(?i)\bQ[1-4][ \t]*FY[ \t]*'?\d{2,4}`),
		value:   func(m []string) string { return strings.ToUpper(strings.Join(strings.Fields(m[0]), " ")) },
	},
}

// ExtractMetadata finds the company name and call date in the raw transcript text.
// Configured company names win over the generic corporate-suffix rule.
func ExtractMetadata(raw string, knownCompanies []string) (company, date string) {
	company = UnknownCompany
	lower := strings.ToLower(raw)
	found := false
	for _, name := range knownCompanies {
		name = strings.TrimSpace(name)
		if name != "" && strings.Contains(lower, strings.ToLower(name)) {
			company, found = name, true
			break
		}
	}
	if !found {
		company = applyRules(raw, companyRules, UnknownCompany)
	}
	date = applyRules(raw, dateRules, UnknownDate)
	return company, date
}

func applyRules(raw string, rules []metadataRule, fallback string) string {
	for _, r := range rules {
		if m := r.pattern.FindStringSubmatch(raw); m != nil {
			if v := r.value(m); v != "" {
				return v
			}
		}
	}
	return fallback
}
