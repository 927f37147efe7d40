package tree

import "strings"

// Matching thresholds. These are behavioral contracts, not tunables: answer
// sources, the quick local search, and delegation scoring all pin their exact
// values.
const (
	historyMatchThreshold  = 0.60
	decisionMatchThreshold = 0.50
	siblingMatchThreshold  = 0.60

	searchDecisionThreshold = 0.40
	searchDesignThreshold   = 0.40
	searchDocumentThreshold = 0.30
	searchNodeThreshold     = 0.50
	searchPlanThreshold     = 0.40
)

// maxDecisionTopics caps how many question keywords are used as decision
// search topics.
const maxDecisionTopics = 5

// stopWords are filtered out of question text before keyword matching.
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "had": true,
	"her": true, "was": true, "one": true, "our": true, "out": true,
	"has": true, "have": true, "this": true, "that": true, "with": true,
	"from": true, "they": true, "what": true, "when": true, "where": true,
	"which": true, "who": true, "whom": true, "why": true, "how": true,
	"will": true, "would": true, "should": true, "could": true, "there": true,
	"their": true, "about": true, "into": true, "than": true, "then": true,
	"them": true, "these": true, "those": true, "does": true, "did": true,
	"been": true, "being": true, "were": true, "your": true, "some": true,
	"such": true, "only": true, "over": true, "very": true, "just": true,
	"also": true, "any": true, "may": true, "use": true, "need": true,
}

// extractKeywords tokenizes question text into matchable keywords:
// case-folded, longer than two characters, stop-word-filtered, deduplicated
// in order of first appearance.
func extractKeywords(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})

	seen := make(map[string]bool, len(fields))
	keywords := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) <= 2 || stopWords[f] || seen[f] {
			continue
		}
		seen[f] = true
		keywords = append(keywords, f)
	}
	return keywords
}

// overlapRatio reports the fraction of keywords that appear in text
// (case-insensitive substring). Zero keywords match nothing.
func overlapRatio(keywords []string, text string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	lower := strings.ToLower(text)
	matched := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			matched++
		}
	}
	return float64(matched) / float64(len(keywords))
}

// eitherContains reports whether either lower-cased string contains the other.
// Scope matching deliberately runs in both directions so "react" matches a
// scope keyword "reactivity" and vice versa.
func eitherContains(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// scopeOverlapCount counts how many keywords overlap a scope keyword in
// either direction.
func scopeOverlapCount(keywords, scopeKeywords []string) int {
	count := 0
	for _, kw := range keywords {
		for _, sk := range scopeKeywords {
			if eitherContains(kw, sk) {
				count++
				break
			}
		}
	}
	return count
}
