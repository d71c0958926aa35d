package main

import (
	"errors"
	"fmt"
	"testing"

	"earnings-analyzer/internal/transcript"
)

func TestSectionChunks(t *testing.T) {
	p := transcript.ProcessedTranscript{
		OpeningChunks: []transcript.Chunk{{ID: "C1"}},
		QAChunks:      []transcript.Chunk{{ID: "Q1"}, {ID: "A1"}},
	}
	tests := []struct {
		section string
		want    int
		wantErr bool
	}{
		{section: "opening", want: 1},
		{section: "qa", want: 2},
		{section: "closing", wantErr: true},
	}
	for _, tt := range tests {
		got, err := sectionChunks(p, tt.section)
		if (err != nil) != tt.wantErr {
			t.Fatalf("%s: error = %v", tt.section, err)
		}
		if len(got) != tt.want {
			t.Fatalf("%s: got %d chunks, want %d", tt.section, len(got), tt.want)
		}
	}
}

func TestExitCode(t *testing.T) {
	if got := exitCode(errors.New("boom")); got != ExitError {
		t.Fatalf("exitCode() = %d, want %d", got, ExitError)
	}
	wrapped := fmt.Errorf("startup: %w", configError{errors.New("bad toml")})
	if got := exitCode(wrapped); got != ExitConfigError {
		t.Fatalf("exitCode() = %d, want %d", got, ExitConfigError)
	}
}
