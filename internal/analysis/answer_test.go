package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"earnings-analyzer/internal/ai"
	"earnings-analyzer/internal/retrieval"
)

func TestAsk(t *testing.T) {
	fc := &fakeCompleter{reply: "Revenue grew 18%."}
	fs := &fakeSearcher{results: []retrieval.Result{
		{Text: "Revenue grew 18% on strong CDMO demand.", Similarity: 0.82},
		{Text: "Margins\nexpanded.", Similarity: 0.41},
	}}
	a := NewAnswerer(fc, fs, AnswerOptions{Temperature: 0.2, MaxTokens: 800})

	got := a.Ask(context.Background(), "What was revenue growth?", testChunks(), 5)
	if got.Confidence != ConfidenceLow {
		t.Errorf("confidence = %q", got.Confidence)
	}
	want := "Revenue grew 18%.\n\n*Confidence Level: Low (based on available context)*"
	if got.Text != want {
		t.Errorf("text = %q, want %q", got.Text, want)
	}
	if len(got.Sources) != 2 {
		t.Errorf("sources = %+v", got.Sources)
	}

	req := fc.requests[0]
	if req.System == "" || req.Temperature != 0.2 || req.MaxTokens != 800 || req.TopP != 0.9 {
		t.Errorf("request = %+v", req)
	}
	if !strings.Contains(req.Prompt, "[Source 1, Relevance: 0.82]\nRevenue grew 18% on strong CDMO demand.") {
		t.Errorf("prompt missing first source:\n%s", req.Prompt)
	}
	if !strings.Contains(req.Prompt, "[Source 2, Relevance: 0.41]\nMargins expanded.") {
		t.Errorf("prompt missing flattened second source:\n%s", req.Prompt)
	}
}

func TestAsk_ShortCircuits(t *testing.T) {
	tests := []struct {
		name      string
		question  string
		noChunks  bool
		completer Completer
		results   []retrieval.Result
		want      string
		searched  bool
	}{
		{name: "blank question", question: "  ", completer: &fakeCompleter{}, want: MsgInvalidQuestion},
		{name: "no transcript", question: "What was revenue?", noChunks: true, completer: &fakeCompleter{}, want: MsgNoTranscript},
		{name: "not configured", question: "What was revenue?", want: MsgNotConfigured},
		{name: "nothing relevant", question: "What was revenue?", completer: &fakeCompleter{}, want: MsgNoRelevantInfo, searched: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := &fakeSearcher{results: tt.results}
			chunks := testChunks()
			if tt.noChunks {
				chunks = nil
			}
			got := NewAnswerer(tt.completer, fs, AnswerOptions{}).Ask(context.Background(), tt.question, chunks, 5)
			if got.Text != tt.want {
				t.Errorf("text = %q, want %q", got.Text, tt.want)
			}
			if got.Sources == nil || len(got.Sources) != 0 {
				t.Errorf("sources = %#v, want empty", got.Sources)
			}
			if (fs.calls > 0) != tt.searched {
				t.Errorf("searcher calls = %d", fs.calls)
			}
		})
	}
}

func TestAsk_CompleterFailures(t *testing.T) {
	sources := []retrieval.Result{{Text: "Revenue grew.", Similarity: 0.5}}
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"rate limited", &ai.StatusError{StatusCode: 429, Body: "slow down"}, MsgRateLimited},
		{"api error", &ai.StatusError{StatusCode: 401, Body: "bad key"}, "LLM API error (status 401). Please check your API key and try again."},
		{"other", errors.New("timeout"), "Error generating answer: timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAnswerer(&fakeCompleter{err: tt.err}, &fakeSearcher{results: sources}, AnswerOptions{})
			got := a.Ask(context.Background(), "What was revenue?", testChunks(), 5)
			if got.Text != tt.want {
				t.Errorf("text = %q, want %q", got.Text, tt.want)
			}
			if len(got.Sources) != 1 || got.Confidence != "" {
				t.Errorf("answer = %+v", got)
			}
		})
	}
}

func TestBuildContext_Truncates(t *testing.T) {
	long := strings.Repeat("a", 600)
	got := BuildContext([]retrieval.Result{{Text: long, Similarity: 0.333}})
	want := "[Source 1, Relevance: 0.33]\n" + strings.Repeat("a", 500) + "..."
	if got != want {
		t.Errorf("BuildContext = %q", got)
	}
}

func TestConfidenceLevel(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, ConfidenceLow},
		{1000, ConfidenceLow},
		{1001, ConfidenceMedium},
		{2000, ConfidenceMedium},
		{2001, ConfidenceHigh},
	}
	for _, tt := range tests {
		if got := ConfidenceLevel(strings.Repeat("x", tt.n)); got != tt.want {
			t.Errorf("ConfidenceLevel(%d chars) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatResponse(t *testing.T) {
	if got := FormatResponse("Answer.", nil); got != "Answer." {
		t.Errorf("FormatResponse without sources = %q", got)
	}
	sources := []retrieval.Result{
		{Text: strings.Repeat("b", 250), Similarity: 0.9},
		{Text: "second", Similarity: 0.8},
		{Text: "third", Similarity: 0.7},
		{Text: "fourth", Similarity: 0.6},
	}
	got := FormatResponse("Answer.", sources)
	if !strings.HasPrefix(got, "Answer.\n\n**Sources Used:**\n") {
		t.Errorf("missing header: %q", got)
	}
	if !strings.Contains(got, "\n1. (Relevance: 0.90) "+strings.Repeat("b", 200)+"...\n") {
		t.Errorf("first preview not truncated: %q", got)
	}
	if strings.Contains(got, "fourth") {
		t.Errorf("more than three sources listed: %q", got)
	}
}

func TestValidateQuestion(t *testing.T) {
	tests := []struct {
		question string
		want     error
	}{
		{"What was revenue?", nil},
		{"  why ", ErrQuestionTooShort},
		{"", ErrQuestionTooShort},
		{strings.Repeat("q", 501), ErrQuestionTooLong},
		{strings.Repeat("q", 500), nil},
		{"What is the breakdown of exports?", nil},
	}
	for _, tt := range tests {
		if got := ValidateQuestion(tt.question); !errors.Is(got, tt.want) {
			t.Errorf("ValidateQuestion(%q) = %v, want %v", tt.question, got, tt.want)
		}
	}
}

func TestSampleQuestions(t *testing.T) {
	qs := SampleQuestions()
	if len(qs) != 12 {
		t.Fatalf("got %d sample questions", len(qs))
	}
	qs[0] = "changed"
	if SampleQuestions()[0] == "changed" {
		t.Error("SampleQuestions exposes its backing slice")
	}
}
