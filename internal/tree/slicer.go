package tree

import (
	"fmt"
	"strings"
)

// SliceResult carries a filtered context and its match metrics.
type SliceResult struct {
	// Context is the filtered text, or the input unchanged when the node is
	// missing or not context-isolated.
	Context string
	// Matched is how many sections survived the filter.
	Matched int
	// Total is how many sections the input split into.
	Total int
	// Fallback is set when no section matched and the placeholder sentence
	// was returned. Callers must treat it as "no specific guidance found",
	// not an error.
	Fallback bool
}

// SliceContext filters fullContext down to the sections relevant to one
// node's scope. Sections are split on blank lines and heading boundaries and
// kept when they contain any scope keyword (case-insensitive substring).
func (e *Engine) SliceContext(nodeID, fullContext string) (*SliceResult, error) {
	node, err := e.store.GetNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("slice context: %w", err)
	}
	if node == nil || !node.ContextIsolation {
		return &SliceResult{Context: fullContext}, nil
	}

	keywords := node.ScopeKeywords()
	sections := splitSections(fullContext)

	var kept []string
	for _, section := range sections {
		lower := strings.ToLower(section)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				kept = append(kept, section)
				break
			}
		}
	}

	result := &SliceResult{Matched: len(kept), Total: len(sections)}
	if len(kept) == 0 {
		result.Context = fmt.Sprintf("Context filtered for scope: %s (no matching sections found)", strings.Join(keywords, ", "))
		result.Fallback = true
	} else {
		result.Context = strings.Join(kept, "\n\n")
	}

	e.emit(ContextSlicedEvent{NodeID: node.ID, Matched: result.Matched, Total: result.Total, Fallback: result.Fallback})
	return result, nil
}

// splitSections breaks text into sections on blank lines and heading lines.
// A heading starts its own section; blank lines close the current one.
func splitSections(text string) []string {
	var sections []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			sections = append(sections, strings.Join(current, "\n"))
			current = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			flush()
		case strings.HasPrefix(trimmed, "#"):
			flush()
			current = append(current, line)
		default:
			current = append(current, line)
		}
	}
	flush()
	return sections
}
