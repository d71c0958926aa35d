package transcript

import (
	"fmt"
	"testing"
)

func newDefaultSegmenter(t *testing.T) *Segmenter {
	t.Helper()
	rules := DefaultRules()
	seg, err := NewSegmenter(rules.CallStartPatterns, rules.QAStartPatterns)
	if err != nil {
		t.Fatalf("NewSegmenter failed: %v", err)
	}
	return seg
}

func TestNewSegmenter_InvalidPattern(t *testing.T) {
	if _, err := NewSegmenter([]string{"("}, nil); err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}

func TestFindCallStart(t *testing.T) {
	seg := newDefaultSegmenter(t)

	t.Run("welcome phrase", func(t *testing.T) {
		lines := []string{
			"Laurus Labs Limited",
			"Q2 FY24 Earnings Conference Call",
			"Moderator: Ladies and gentlemen, GOOD DAY and welcome.",
			"Dr. Chava: Thank you.",
		}
		if got := seg.FindCallStart(lines); got != 2 {
			t.Errorf("FindCallStart() = %d, want 2", got)
		}
	})

	t.Run("speaker turn after front matter", func(t *testing.T) {
		lines := make([]string, 0, 60)
		lines = append(lines, "Analyst: early speaker line inside the cover page")
		for i := 1; i < 55; i++ {
			lines = append(lines, fmt.Sprintf("header line %d", i))
		}
		lines = append(lines, "Chief Executive: Thank you all for joining.")
		if got := seg.FindCallStart(lines); got != 55 {
			t.Errorf("FindCallStart() = %d, want 55", got)
		}
	})

	t.Run("defaults to zero", func(t *testing.T) {
		lines := []string{"nothing", "to see", "here"}
		if got := seg.FindCallStart(lines); got != 0 {
			t.Errorf("FindCallStart() = %d, want 0", got)
		}
	})
}

func TestFindQAStart(t *testing.T) {
	seg := newDefaultSegmenter(t)
	lines := []string{
		"Moderator: good day and welcome",
		"CEO: Our revenue grew.",
		"Moderator: We will now begin the question-and-answer session.",
		"Analyst: What about margins?",
	}

	tests := []struct {
		name string
		from int
		want int
	}{
		{name: "from start", from: 0, want: 2},
		{name: "from marker", from: 2, want: 2},
		{name: "after marker", from: 3, want: len(lines)},
		{name: "negative from", from: -4, want: 2},
		{name: "beyond end", from: 10, want: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := seg.FindQAStart(lines, tt.from)
			if got != tt.want {
				t.Errorf("FindQAStart(%d) = %d, want %d", tt.from, got, tt.want)
			}
			if got < tt.from {
				t.Errorf("FindQAStart(%d) = %d is before from", tt.from, got)
			}
		})
	}
}

func TestFindQAStart_NoMarker(t *testing.T) {
	seg := newDefaultSegmenter(t)
	lines := []string{"CEO: Revenue grew.", "CFO: Margins expanded."}
	if got := seg.FindQAStart(lines, 0); got != len(lines) {
		t.Errorf("FindQAStart() = %d, want %d", got, len(lines))
	}
}
