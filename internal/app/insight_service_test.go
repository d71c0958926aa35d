package app

import (
	"reflect"
	"testing"
)

func TestCleanTopics(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{name: "blank and duplicates", in: []string{" Margins ", "", "margins", "Capex"}, want: []string{"Margins", "Capex"}},
		{name: "empty", in: nil, want: []string{}},
		{
			name: "capped",
			in:   []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8", "a9", "a10", "a11"},
			want: []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8", "a9", "a10"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanTopics(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("cleanTopics() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeSection(t *testing.T) {
	if got := normalizeSection("  QA "); got != "qa" {
		t.Fatalf("normalizeSection() = %q", got)
	}
}
