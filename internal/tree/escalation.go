package tree

import (
	"fmt"
	"strings"
	"time"

	"github.com/arborhq/arbor/internal/store"
	"github.com/arborhq/arbor/pkg/models"
)

// AnswerSource labels where an automatic answer came from.
type AnswerSource string

const (
	// SourceOwnHistory means the node had already answered this in its own log.
	SourceOwnHistory AnswerSource = "own_history"
	// SourceDecisionMemory means a recorded decision covered the question.
	SourceDecisionMemory AnswerSource = "decision_memory"
	// SourceSiblingConversations means a sibling's log held the answer.
	SourceSiblingConversations AnswerSource = "sibling_conversations"
)

// AnswerCheck is the outcome of a non-generative answer heuristic.
type AnswerCheck struct {
	// CanAnswer is true when some source cleared its threshold.
	CanAnswer bool
	// Answer is the matched text; empty when CanAnswer is false.
	Answer string
	// Source labels the matching source.
	Source AnswerSource
	// ScopeOverlap is the question/scope keyword overlap ratio. It is a
	// latent signal only: topic proximity alone never auto-answers.
	ScopeOverlap float64
}

// StartEscalationChain creates a chain for a question asked at nodeID. The
// chain is rooted at the node's furthest ancestor (or the node itself when it
// has none) and starts Escalating with the asker as the current node. The
// question is recorded as a user-role entry on the asking node.
func (e *Engine) StartEscalationChain(nodeID, question, context string) (*models.EscalationChain, error) {
	node, err := e.store.GetNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("start escalation chain: %w", err)
	}
	if node == nil {
		return nil, fmt.Errorf("start escalation chain: node %s: %w", nodeID, store.ErrNotFound)
	}

	ancestors, err := e.store.ListAncestors(nodeID)
	if err != nil {
		return nil, fmt.Errorf("start escalation chain: %w", err)
	}
	rootID := node.ID
	if len(ancestors) > 0 {
		rootID = ancestors[len(ancestors)-1].ID
	}

	chain := &models.EscalationChain{
		ID:                newChainID(),
		TreeRootID:        rootID,
		OriginatingNodeID: node.ID,
		CurrentNodeID:     node.ID,
		Question:          question,
		Context:           context,
		Status:            models.ChainStatusEscalating,
		ResolvedAtLevel:   -1,
		CreatedAt:         time.Now(),
	}
	if err := e.store.CreateChain(chain); err != nil {
		return nil, fmt.Errorf("start escalation chain: %w", err)
	}

	if err := e.appendConversation(node, models.RoleUser, "[QUESTION] "+question, chain.ID); err != nil {
		return nil, fmt.Errorf("start escalation chain: %w", err)
	}

	e.logf("escalation chain %s started at %s: %s", chain.ID, node.Name, truncate(question, 120))
	e.emit(ChainStartedEvent{ChainID: chain.ID, NodeID: node.ID, Question: question})
	return chain, nil
}

// CheckNodeCanAnswer runs the synchronous, non-generative answer heuristics
// for one node, in fixed priority order: own history, decision memory, then
// sibling conversations. Scope overlap is computed but never answers on its
// own. A missing node cannot answer.
func (e *Engine) CheckNodeCanAnswer(nodeID, question, context string) (*AnswerCheck, error) {
	node, err := e.store.GetNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("check node can answer: %w", err)
	}
	if node == nil {
		return &AnswerCheck{}, nil
	}

	keywords := extractKeywords(question)
	check := &AnswerCheck{}

	scopeKeywords := node.ScopeKeywords()
	if len(keywords) > 0 && len(scopeKeywords) > 0 {
		check.ScopeOverlap = float64(scopeOverlapCount(keywords, scopeKeywords)) / float64(len(keywords))
	}
	if len(keywords) == 0 {
		return check, nil
	}

	// 1. Own history.
	if answer := e.searchConversations(node.ID, keywords, historyMatchThreshold); answer != "" {
		check.CanAnswer = true
		check.Answer = answer
		check.Source = SourceOwnHistory
		return check, nil
	}

	// 2. Decision memory, up to five keywords as topics.
	topics := keywords
	if len(topics) > maxDecisionTopics {
		topics = topics[:maxDecisionTopics]
	}
	for _, topic := range topics {
		decisions, err := e.store.SearchDecisions(node.TaskID, topic)
		if err != nil {
			continue // best effort, never abort the check
		}
		for _, d := range decisions {
			if overlapRatio(keywords, d.Topic+" "+d.Decision) >= decisionMatchThreshold {
				check.CanAnswer = true
				check.Answer = d.Decision
				check.Source = SourceDecisionMemory
				return check, nil
			}
		}
	}

	// 3. Scope overlap stays latent; fall through.

	// 4. Sibling conversations.
	if node.ParentID != "" {
		siblings, err := e.store.ListChildren(node.ParentID)
		if err == nil {
			for _, sib := range siblings {
				if sib.ID == node.ID {
					continue
				}
				if answer := e.searchConversations(sib.ID, keywords, siblingMatchThreshold); answer != "" {
					check.CanAnswer = true
					check.Answer = sib.Name + ": " + answer
					check.Source = SourceSiblingConversations
					return check, nil
				}
			}
		}
	}

	return check, nil
}

// searchConversations scans a node's agent-role entries for a keyword overlap
// at or above threshold and returns the first matching content.
func (e *Engine) searchConversations(nodeID string, keywords []string, threshold float64) string {
	entries, err := e.store.ListConversationsByNode(nodeID)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if entry.Role != models.RoleAgent {
			continue
		}
		if overlapRatio(keywords, entry.Content) >= threshold {
			return entry.Content
		}
	}
	return ""
}

// EscalateQuestion advances a chain one hop. If the current node can answer,
// the chain resolves there; otherwise responsibility moves to the node's
// escalation target (its parent by default). A chain already at the top stays
// Escalating and is flagged as having reached the root, which means the
// question now needs a human.
func (e *Engine) EscalateQuestion(chainID string) (*models.EscalationChain, error) {
	chain, err := e.store.GetChain(chainID)
	if err != nil {
		return nil, fmt.Errorf("escalate question: %w", err)
	}
	if chain.Status != models.ChainStatusEscalating {
		return chain, nil
	}

	current, err := e.store.GetNode(chain.CurrentNodeID)
	if err != nil {
		return nil, fmt.Errorf("escalate question: %w", err)
	}
	if current == nil {
		return chain, nil
	}

	check, err := e.CheckNodeCanAnswer(current.ID, chain.Question, chain.Context)
	if err != nil {
		return nil, fmt.Errorf("escalate question: %w", err)
	}
	if check.CanAnswer {
		if err := e.ResolveEscalationChain(chainID, check.Answer, current.Level, string(check.Source)); err != nil {
			return nil, err
		}
		return e.store.GetChain(chainID)
	}

	targetID := current.EscalationTargetID
	if targetID == "" {
		targetID = current.ParentID
	}

	if targetID == "" {
		// Top of the tree. Stay Escalating; downstream logic must involve
		// the user. Repeated calls here are idempotent.
		if !chain.ReachedTop {
			chain.ReachedTop = true
			if err := e.store.UpdateChain(chain); err != nil {
				return nil, fmt.Errorf("escalate question: %w", err)
			}
			e.logf("chain %s reached the root at %s", chain.ID, current.Name)
			e.emit(ChainEscalatedEvent{ChainID: chain.ID, FromNodeID: current.ID, ReachedTop: true})
		}
		return chain, nil
	}

	chain.LevelsTraversed = append(chain.LevelsTraversed, current.ID)
	chain.CurrentNodeID = targetID
	if err := e.store.UpdateChain(chain); err != nil {
		return nil, fmt.Errorf("escalate question: %w", err)
	}

	current.Escalations++
	if err := e.store.UpdateNode(current); err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("escalate question: %w", err)
	}

	handoff := fmt.Sprintf("[ESCALATED QUESTION] passed up to level %d: %s", current.Level-1, truncate(chain.Question, 200))
	if err := e.appendConversation(current, models.RoleAgent, handoff, chain.ID); err != nil {
		return nil, fmt.Errorf("escalate question: %w", err)
	}

	e.emit(ChainEscalatedEvent{ChainID: chain.ID, FromNodeID: current.ID, ToNodeID: targetID})
	return chain, nil
}

// ResolveEscalationChain marks a chain Answered and writes the answer back
// down: a full entry on the originating node quoting the answer with its
// source and level, and a shorter notice on every node the question passed
// through. This makes the answer visible at every level without each one
// having to re-ask.
func (e *Engine) ResolveEscalationChain(chainID, answer string, resolvedAtLevel int, source string) error {
	chain, err := e.store.GetChain(chainID)
	if err != nil {
		return fmt.Errorf("resolve escalation chain: %w", err)
	}

	chain.Status = models.ChainStatusAnswered
	chain.Answer = answer
	chain.ResolvedAtLevel = resolvedAtLevel
	chain.ResolvedAt = time.Now()
	if err := e.store.UpdateChain(chain); err != nil {
		return fmt.Errorf("resolve escalation chain: %w", err)
	}

	origin, err := e.store.GetNode(chain.OriginatingNodeID)
	if err != nil {
		return fmt.Errorf("resolve escalation chain: %w", err)
	}
	if origin != nil {
		full := fmt.Sprintf("[ANSWER] %s (source: %s, level %d)", answer, source, resolvedAtLevel)
		if err := e.appendConversation(origin, models.RoleAgent, full, chain.ID); err != nil {
			return fmt.Errorf("resolve escalation chain: %w", err)
		}
	}

	notice := fmt.Sprintf("[ANSWER RECEIVED] question resolved at level %d: %s", resolvedAtLevel, truncate(answer, 150))
	for _, visitedID := range chain.LevelsTraversed {
		visited, err := e.store.GetNode(visitedID)
		if err != nil || visited == nil {
			continue
		}
		if err := e.appendConversation(visited, models.RoleAgent, notice, chain.ID); err != nil {
			continue
		}
	}

	e.logf("chain %s answered at level %d via %s", chain.ID, resolvedAtLevel, source)
	e.emit(ChainAnsweredEvent{ChainID: chain.ID, ResolvedAtLevel: resolvedAtLevel, Source: source})
	return nil
}

// PassAnswerDown resolves a chain with an answer given by nodeID on its own
// authority, using the node's level and a source label derived from its name.
func (e *Engine) PassAnswerDown(nodeID, answer, chainID string) error {
	node, err := e.store.GetNode(nodeID)
	if err != nil {
		return fmt.Errorf("pass answer down: %w", err)
	}
	if node == nil {
		return fmt.Errorf("pass answer down: node %s: %w", nodeID, store.ErrNotFound)
	}

	source := strings.ToLower(strings.ReplaceAll(node.Name, " ", "_"))
	return e.ResolveEscalationChain(chainID, answer, node.Level, source)
}

// BlockTicketForChain freezes a chain on a tracked follow-up ticket:
// severity "block" marks it Blocked, "pause" marks it Paused.
func (e *Engine) BlockTicketForChain(chainID, ticketID, severity string) (*models.EscalationChain, error) {
	chain, err := e.store.GetChain(chainID)
	if err != nil {
		return nil, fmt.Errorf("block ticket for chain: %w", err)
	}

	switch severity {
	case "block":
		chain.Status = models.ChainStatusBlocked
	case "pause":
		chain.Status = models.ChainStatusPaused
	default:
		return nil, fmt.Errorf("block ticket for chain: unknown severity %q", severity)
	}
	chain.TicketID = ticketID

	if err := e.store.UpdateChain(chain); err != nil {
		return nil, fmt.Errorf("block ticket for chain: %w", err)
	}
	e.logf("chain %s %s on ticket %s", chain.ID, chain.Status, ticketID)
	return chain, nil
}
