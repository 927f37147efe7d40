package tree

import (
	"reflect"
	"testing"
)

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "filters stop words and short tokens",
			text: "What should we use for the database schema?",
			want: []string{"database", "schema"},
		},
		{
			name: "case folds and deduplicates",
			text: "React react REACT components",
			want: []string{"react", "components"},
		},
		{
			name: "splits on punctuation",
			text: "auth/login,session-token",
			want: []string{"auth", "login", "session", "token"},
		},
		{
			name: "keeps digits",
			text: "migrate to postgres14 now",
			want: []string{"migrate", "postgres14", "now"},
		},
		{
			name: "empty text",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractKeywords(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("extractKeywords(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestOverlapRatio(t *testing.T) {
	tests := []struct {
		name     string
		keywords []string
		text     string
		want     float64
	}{
		{"all match", []string{"button", "component"}, "the Button component lives here", 1.0},
		{"half match", []string{"button", "missing"}, "the button is blue", 0.5},
		{"none match", []string{"kafka", "broker"}, "nothing relevant", 0.0},
		{"no keywords", nil, "anything", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := overlapRatio(tt.keywords, tt.text); got != tt.want {
				t.Errorf("overlapRatio = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEitherContains(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"react", "reactivity", true},
		{"reactivity", "react", true},
		{"react", "react", true},
		{"react", "vue", false},
		{"", "react", false},
		{"react", "", false},
	}

	for _, tt := range tests {
		if got := eitherContains(tt.a, tt.b); got != tt.want {
			t.Errorf("eitherContains(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestScopeOverlapCount(t *testing.T) {
	keywords := []string{"build", "button", "component"}
	scope := []string{"frontend", "component", "button"}
	if got := scopeOverlapCount(keywords, scope); got != 2 {
		t.Errorf("scopeOverlapCount = %d, want 2", got)
	}
	if got := scopeOverlapCount(nil, scope); got != 0 {
		t.Errorf("scopeOverlapCount with no keywords = %d, want 0", got)
	}
}
