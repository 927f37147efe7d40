package tree

import (
	"fmt"

	"github.com/arborhq/arbor/pkg/models"
)

// SearchResult is the outcome of a quick local search.
type SearchResult struct {
	// Found is true when some source cleared its threshold.
	Found bool
	// Answer is the matched text.
	Answer string
	// Source names the data source that matched.
	Source string
}

// QuickLocalSearch sweeps the cheap local sources for an answer before a
// chain is escalated to a human. Sources are tried in a fixed order, each in
// full, and the first satisfying match wins: decision memory, design pages,
// support documents, other nodes' conversations across the task tree, and
// finally plan configuration. Every source is individually guarded; a failing
// source is skipped, never aborting the whole search.
func (e *Engine) QuickLocalSearch(chainID, taskID string) (*SearchResult, error) {
	chain, err := e.store.GetChain(chainID)
	if err != nil {
		return nil, fmt.Errorf("quick local search: %w", err)
	}

	keywords := extractKeywords(chain.Question)
	if len(keywords) == 0 {
		return &SearchResult{}, nil
	}

	if r := e.searchDecisionMemory(taskID, keywords); r != nil {
		return r, nil
	}
	if r := e.searchDesignPages(keywords); r != nil {
		return r, nil
	}
	if r := e.searchSupportDocuments(keywords); r != nil {
		return r, nil
	}
	if r := e.searchOtherNodes(chain.OriginatingNodeID, taskID, keywords); r != nil {
		return r, nil
	}
	if r := e.searchPlans(keywords); r != nil {
		return r, nil
	}

	return &SearchResult{}, nil
}

func (e *Engine) searchDecisionMemory(taskID string, keywords []string) *SearchResult {
	for _, topic := range keywords {
		decisions, err := e.store.SearchDecisions(taskID, topic)
		if err != nil {
			continue
		}
		for _, d := range decisions {
			if overlapRatio(keywords, d.Topic+" "+d.Decision) >= searchDecisionThreshold {
				return &SearchResult{Found: true, Answer: d.Decision, Source: "decision_memory"}
			}
		}
	}
	return nil
}

func (e *Engine) searchDesignPages(keywords []string) *SearchResult {
	plans, err := e.store.ListAllPlans()
	if err != nil {
		return nil
	}
	for _, plan := range plans {
		pages, err := e.store.ListDesignPagesByPlan(plan.ID)
		if err != nil {
			continue
		}
		for _, page := range pages {
			text := page.Name + " " + page.Route + " " + page.Requirements
			if overlapRatio(keywords, text) >= searchDesignThreshold {
				return &SearchResult{Found: true, Answer: page.Requirements, Source: "design_pages"}
			}
		}
	}
	return nil
}

func (e *Engine) searchSupportDocuments(keywords []string) *SearchResult {
	plans, err := e.store.ListAllPlans()
	if err != nil {
		return nil
	}
	for _, plan := range plans {
		for _, kw := range keywords {
			docs, err := e.store.SearchDocuments(plan.ID, kw)
			if err != nil {
				continue
			}
			for _, doc := range docs {
				text := doc.Name + " " + doc.Summary + " " + doc.Content
				if overlapRatio(keywords, text) >= searchDocumentThreshold {
					answer := doc.Summary
					if answer == "" {
						answer = truncate(doc.Content, 300)
					}
					return &SearchResult{Found: true, Answer: answer, Source: "documents"}
				}
			}
		}
	}
	return nil
}

func (e *Engine) searchOtherNodes(askingNodeID, taskID string, keywords []string) *SearchResult {
	nodes, err := e.store.ListAllNodes()
	if err != nil {
		return nil
	}
	for _, node := range nodes {
		if node.ID == askingNodeID {
			continue
		}
		if taskID != "" && node.TaskID != taskID {
			continue
		}
		entries, err := e.store.ListConversationsByNode(node.ID)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.Role != models.RoleAgent {
				continue
			}
			if overlapRatio(keywords, entry.Content) >= searchNodeThreshold {
				return &SearchResult{Found: true, Answer: node.Name + ": " + entry.Content, Source: "node_conversations"}
			}
		}
	}
	return nil
}

func (e *Engine) searchPlans(keywords []string) *SearchResult {
	plans, err := e.store.ListAllPlans()
	if err != nil {
		return nil
	}
	for _, plan := range plans {
		if overlapRatio(keywords, plan.Name+" "+plan.Configuration) >= searchPlanThreshold {
			return &SearchResult{Found: true, Answer: plan.Configuration, Source: "plans"}
		}
	}
	return nil
}
