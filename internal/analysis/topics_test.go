package analysis

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"earnings-analyzer/internal/ai"
)

func TestChunkText(t *testing.T) {
	want := "Good day and welcome to the Q2 call. Revenue grew 18% on strong CDMO demand."
	if got := ChunkText(testChunks()); got != want {
		t.Errorf("ChunkText = %q, want %q", got, want)
	}
}

func TestParseTopics(t *testing.T) {
	raw := `Here are the topics:
1. Revenue Growth: Revenue grew 18% year on year
- CDMO Pipeline: New molecules in late-stage trials
* **Capex Plans**: 800 crores planned for FY25
Tax: too short to keep
no colon on this line

2. Margin Outlook: EBITDA margin guided at 25%`

	got := ParseTopics(raw, 5)
	want := []Topic{
		{Topic: "Here are the topics", Description: ""},
		{Topic: "Revenue Growth", Description: "Revenue grew 18% year on year"},
		{Topic: "CDMO Pipeline", Description: "New molecules in late-stage trials"},
		{Topic: "Capex Plans", Description: "800 crores planned for FY25"},
		{Topic: "Margin Outlook", Description: "EBITDA margin guided at 25%"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseTopics =\n%+v\nwant\n%+v", got, want)
	}

	if got := ParseTopics(raw, 2); len(got) != 2 {
		t.Errorf("maxTopics not honoured: %d", len(got))
	}
	if got := ParseTopics("nothing parseable", 5); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil topics, got %#v", got)
	}
}

func TestExtract(t *testing.T) {
	fc := &fakeCompleter{reply: "Revenue Growth: up 18%\nDemand Outlook: steady"}
	e := NewTopicExtractor(fc, func([]string) string { return "unused" })

	got := e.Extract(context.Background(), testChunks(), 5, false)
	if len(got) != 2 || got[0].Topic != "Revenue Growth" {
		t.Fatalf("topics = %+v", got)
	}
	req := fc.requests[0]
	if req.Temperature != 0.2 || req.MaxTokens != 600 || req.TopP != 0.9 {
		t.Errorf("request settings = %+v", req)
	}
	if !strings.Contains(req.Prompt, "Focus on the most important business topics.") {
		t.Errorf("prompt missing default emphasis:\n%s", req.Prompt)
	}
}

func TestExtract_RegenerateUsesChosenAngle(t *testing.T) {
	fc := &fakeCompleter{reply: "Pricing Pressure: generic erosion in the US"}
	var offered []string
	e := NewTopicExtractor(fc, func(angles []string) string {
		offered = angles
		return angles[3]
	})

	e.Extract(context.Background(), testChunks(), 5, true)
	if len(offered) != len(FocusAngles) {
		t.Errorf("chooser offered %d angles", len(offered))
	}
	req := fc.requests[0]
	if req.Temperature != 0.4 {
		t.Errorf("temperature = %v, want 0.4", req.Temperature)
	}
	if !strings.Contains(req.Prompt, "regulatory environment and risk factors") {
		t.Errorf("prompt missing chosen angle:\n%s", req.Prompt)
	}
}

func TestExtract_Fallbacks(t *testing.T) {
	quota := &ai.StatusError{StatusCode: 429, Body: "insufficient_quota"}
	tests := []struct {
		name      string
		completer Completer
	}{
		{"error", &fakeCompleter{err: errors.New("connection refused")}},
		{"quota", &fakeCompleter{err: quota}},
		{"not configured", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewTopicExtractor(tt.completer, nil).Extract(context.Background(), testChunks(), 5, false)
			if !reflect.DeepEqual(got, FallbackTopics()) {
				t.Errorf("topics = %+v, want fallback", got)
			}
		})
	}

	fc := &fakeCompleter{reply: "Unused: topic"}
	if got := NewTopicExtractor(fc, nil).Extract(context.Background(), nil, 5, false); len(got) != 0 {
		t.Errorf("empty chunks produced topics: %+v", got)
	}
	if len(fc.requests) != 0 {
		t.Error("empty chunks reached the completer")
	}
}

func TestExtract_TruncatesExcerpt(t *testing.T) {
	fc := &fakeCompleter{reply: "Long Topic: text"}
	long := testChunks()
	long[0].Message = strings.Repeat("x", 5000)
	NewTopicExtractor(fc, nil).Extract(context.Background(), long, 5, false)
	if strings.Contains(fc.requests[0].Prompt, strings.Repeat("x", excerptChars+1)) {
		t.Error("excerpt was not truncated")
	}
	if !strings.Contains(fc.requests[0].Prompt, strings.Repeat("x", excerptChars)) {
		t.Error("excerpt lost content before the limit")
	}
}
