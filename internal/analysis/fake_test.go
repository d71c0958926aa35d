package analysis

import (
	"context"

	"earnings-analyzer/internal/ai"
	"earnings-analyzer/internal/retrieval"
	"earnings-analyzer/internal/transcript"
)

type fakeCompleter struct {
	reply    string
	err      error
	requests []ai.CompletionRequest
}

func (f *fakeCompleter) Complete(_ context.Context, req ai.CompletionRequest) (string, error) {
	f.requests = append(f.requests, req)
	return f.reply, f.err
}

type fakeSearcher struct {
	results []retrieval.Result
	calls   int
}

func (f *fakeSearcher) Search(context.Context, string, []transcript.Chunk, int) []retrieval.Result {
	f.calls++
	return f.results
}

func testChunks() []transcript.Chunk {
	return []transcript.Chunk{
		{ID: "C1", Speaker: "Moderator", Message: "Good day and welcome to the Q2 call."},
		{ID: "C2", Speaker: "CFO", Message: ""},
		{ID: "C3", Speaker: "CEO", Message: "Revenue grew 18% on strong CDMO demand."},
	}
}
