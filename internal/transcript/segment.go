package transcript

import "regexp"

// Lines before this index are treated as front matter when no call-opening
// phrase is present.
const frontMatterLines = 50

// Segmenter locates where the call begins and where the Q&A session begins.
type Segmenter struct {
	callStart []*regexp.Regexp
	qaStart   []*regexp.Regexp
}

func NewSegmenter(callStartPatterns, qaStartPatterns []string) (*Segmenter, error) {
	callStart, err := compileInsensitive(callStartPatterns)
	if err != nil {
		return nil, err
	}
	qaStart, err := compileInsensitive(qaStartPatterns)
	if err != nil {
		return nil, err
	}
	return &Segmenter{callStart: callStart, qaStart: qaStart}, nil
}

// FindCallStart returns the index of the first line of the actual call.
func (s *Segmenter) FindCallStart(lines []string) int {
	if i := firstMatch(lines, 0, s.callStart); i >= 0 {
		return i
	}
	for i := frontMatterLines; i < len(lines); i++ {
		if speakerTurnLine.MatchString(lines[i]) {
			return i
		}
	}
	return 0
}

// FindQAStart returns the first index at or after from that opens the Q&A
// session, or len(lines) when there is none.
func (s *Segmenter) FindQAStart(lines []string, from int) int {
	if from < 0 {
		from = 0
	}
	if from > len(lines) {
		return from
	}
	if i := firstMatch(lines, from, s.qaStart); i >= 0 {
		return i
	}
	return len(lines)
}

func firstMatch(lines []string, from int, patterns []*regexp.Regexp) int {
	for i := from; i < len(lines); i++ {
		for _, re := range patterns {
			if re.MatchString(lines[i]) {
				return i
			}
		}
	}
	return -1
}
