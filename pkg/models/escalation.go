package models

import "time"

// ChainStatus represents the lifecycle state of an escalation chain.
type ChainStatus string

const (
	// ChainStatusEscalating indicates the question is still traveling upward.
	ChainStatusEscalating ChainStatus = "escalating"
	// ChainStatusAnswered indicates the question has been resolved.
	ChainStatusAnswered ChainStatus = "answered"
	// ChainStatusBlocked indicates the question is stuck on a blocking ticket.
	ChainStatusBlocked ChainStatus = "blocked"
	// ChainStatusPaused indicates the question is parked on a non-blocking ticket.
	ChainStatusPaused ChainStatus = "paused"
)

// Valid returns true if the status is a known value.
func (s ChainStatus) Valid() bool {
	switch s {
	case ChainStatusEscalating, ChainStatusAnswered, ChainStatusBlocked, ChainStatusPaused:
		return true
	default:
		return false
	}
}

// EscalationChain tracks one question as it travels up the tree seeking an
// answer and back down once resolved.
type EscalationChain struct {
	// ID is the unique identifier for this chain.
	ID string `json:"id"`
	// TreeRootID is the topmost ancestor of the originating node.
	TreeRootID string `json:"tree_root_id"`
	// OriginatingNodeID is the node that asked; fixed for the life of the chain.
	OriginatingNodeID string `json:"originating_node_id"`
	// CurrentNodeID is the node currently responsible for the question.
	CurrentNodeID string `json:"current_node_id"`
	// Question is the text being escalated.
	Question string `json:"question"`
	// Context is optional supporting material supplied by the asker.
	Context string `json:"context,omitempty"`
	// Status is the chain's lifecycle state.
	Status ChainStatus `json:"status"`
	// LevelsTraversed lists the node ids visited while escalating, in order.
	LevelsTraversed []string `json:"levels_traversed"`
	// Answer is empty until the chain is resolved.
	Answer string `json:"answer,omitempty"`
	// ResolvedAtLevel is the tree level where the answer was found.
	ResolvedAtLevel int `json:"resolved_at_level"`
	// ResolvedAt is when the chain was answered.
	ResolvedAt time.Time `json:"resolved_at,omitzero"`
	// ReachedTop is set once escalation has run out of ancestors; the question
	// now needs a human.
	ReachedTop bool `json:"reached_top,omitempty"`
	// TicketID links the chain to a tracked follow-up ticket.
	TicketID string `json:"ticket_id,omitempty"`
	// CreatedAt is when the chain was started.
	CreatedAt time.Time `json:"created_at"`
}

// ConversationRole identifies who wrote a conversation entry.
type ConversationRole string

const (
	// RoleUser marks an entry written on behalf of the asker.
	RoleUser ConversationRole = "user"
	// RoleAgent marks an entry written by the node itself.
	RoleAgent ConversationRole = "agent"
)

// Valid returns true if the role is a known value.
func (r ConversationRole) Valid() bool {
	return r == RoleUser || r == RoleAgent
}

// AgentConversation is one append-only log entry attached to a node.
type AgentConversation struct {
	// ID is the unique identifier for this entry.
	ID string `json:"id"`
	// NodeID is the node this entry belongs to.
	NodeID string `json:"node_id"`
	// Role identifies who wrote the entry.
	Role ConversationRole `json:"role"`
	// Content is the entry text.
	Content string `json:"content"`
	// Level is the tree level of the node at write time.
	Level int `json:"level"`
	// QuestionID links the entry to an escalation chain, if any.
	QuestionID string `json:"question_id,omitempty"`
	// CreatedAt is when the entry was written.
	CreatedAt time.Time `json:"created_at"`
}
