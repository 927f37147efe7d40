package tree

import (
	"strings"
	"testing"
)

const sampleContext = `# Frontend
Build the button component with the design tokens.

# Backend
Expose the orders endpoint over the API.

# Infrastructure
Deploy via the staging pipeline.`

func TestSliceContextPassthrough(t *testing.T) {
	env := newTestEnv(t)

	// Node without context isolation gets the input byte for byte.
	node := env.addNode(t, "n", "", 1, "coordination,planning")
	node.ContextIsolation = false
	if err := env.store.UpdateNode(node); err != nil {
		t.Fatalf("UpdateNode: %v", err)
	}

	result, err := env.engine.SliceContext(node.ID, sampleContext)
	if err != nil {
		t.Fatalf("SliceContext: %v", err)
	}
	if result.Context != sampleContext {
		t.Error("non-isolated node's context was modified")
	}
	if result.Fallback {
		t.Error("passthrough flagged as fallback")
	}
}

func TestSliceContextMissingNodePassthrough(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.engine.SliceContext("ghost", sampleContext)
	if err != nil {
		t.Fatalf("SliceContext: %v", err)
	}
	if result.Context != sampleContext {
		t.Error("missing node's context was modified")
	}
}

func TestSliceContextFiltersByScope(t *testing.T) {
	env := newTestEnv(t)

	node := env.addNode(t, "n", "", 4, "frontend,button")
	node.ContextIsolation = true
	if err := env.store.UpdateNode(node); err != nil {
		t.Fatalf("UpdateNode: %v", err)
	}

	result, err := env.engine.SliceContext(node.ID, sampleContext)
	if err != nil {
		t.Fatalf("SliceContext: %v", err)
	}
	if !strings.Contains(result.Context, "button component") {
		t.Errorf("frontend section missing from slice: %q", result.Context)
	}
	if strings.Contains(result.Context, "orders endpoint") {
		t.Errorf("backend section leaked into slice: %q", result.Context)
	}
	if result.Matched == 0 || result.Total == 0 {
		t.Errorf("metrics not populated: matched=%d total=%d", result.Matched, result.Total)
	}
	if result.Matched >= result.Total {
		t.Errorf("matched %d of %d, expected a strict subset", result.Matched, result.Total)
	}

	if !env.pub.has("context_sliced") {
		t.Error("expected context_sliced event")
	}
}

func TestSliceContextFallback(t *testing.T) {
	env := newTestEnv(t)

	node := env.addNode(t, "n", "", 4, "embedded,firmware")
	node.ContextIsolation = true
	if err := env.store.UpdateNode(node); err != nil {
		t.Fatalf("UpdateNode: %v", err)
	}

	result, err := env.engine.SliceContext(node.ID, sampleContext)
	if err != nil {
		t.Fatalf("SliceContext: %v", err)
	}
	if !result.Fallback {
		t.Error("expected fallback for a scope matching nothing")
	}
	if !strings.Contains(result.Context, "Context filtered for scope") {
		t.Errorf("fallback text missing marker: %q", result.Context)
	}
	if !strings.Contains(result.Context, "embedded") {
		t.Errorf("fallback text should name the scope keywords: %q", result.Context)
	}
	if result.Matched != 0 {
		t.Errorf("fallback matched = %d, want 0", result.Matched)
	}
}

func TestSplitSections(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"headings and blanks", sampleContext, 3},
		{"plain paragraphs", "one\n\ntwo\n\nthree", 3},
		{"heading mid-paragraph starts new section", "intro line\n# Title\nbody", 2},
		{"empty", "", 0},
		{"single block", "just one\nsection here", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitSections(tt.text); len(got) != tt.want {
				t.Errorf("splitSections(%q) -> %d sections, want %d", tt.text, len(got), tt.want)
			}
		})
	}
}
