package models

import (
	"strings"
	"time"
)

// NodeStatus represents the lifecycle state of a tree node.
type NodeStatus string

const (
	// NodeStatusIdle indicates the node is not doing anything.
	NodeStatusIdle NodeStatus = "idle"
	// NodeStatusWorking indicates the node is actively working.
	NodeStatusWorking NodeStatus = "working"
	// NodeStatusWaitingChild indicates the node is waiting on delegated children.
	NodeStatusWaitingChild NodeStatus = "waiting_child"
	// NodeStatusActive indicates the node has been handed work by its parent.
	NodeStatusActive NodeStatus = "active"
	// NodeStatusCompleted indicates the node finished its work.
	NodeStatusCompleted NodeStatus = "completed"
	// NodeStatusFailed indicates the node's work failed.
	NodeStatusFailed NodeStatus = "failed"
	// NodeStatusEscalated indicates the node pushed its work upward.
	NodeStatusEscalated NodeStatus = "escalated"
	// NodeStatusPruned indicates a completed deep branch reclaimed by maintenance.
	NodeStatusPruned NodeStatus = "pruned"
)

// Valid returns true if the status is a known value.
func (s NodeStatus) Valid() bool {
	switch s {
	case NodeStatusIdle, NodeStatusWorking, NodeStatusWaitingChild, NodeStatusActive,
		NodeStatusCompleted, NodeStatusFailed, NodeStatusEscalated, NodeStatusPruned:
		return true
	default:
		return false
	}
}

// Tree level bounds. Levels 0 through SkeletonMaxLevel are built eagerly for
// every task; levels above that are spawned lazily, down to WorkerLevel.
const (
	RootLevel        = 0
	SkeletonMaxLevel = 4
	WorkerLevel      = 9
)

// TreeNode is a single agent node in the hierarchy.
type TreeNode struct {
	// ID is the unique identifier for this node.
	ID string `json:"id"`
	// Name is the human-readable agent name.
	Name string `json:"name"`
	// AgentType classifies the node (boss, orchestrator, manager, worker, ...).
	AgentType string `json:"agent_type"`
	// Level is the depth in the tree, 0 (root) through 9 (worker).
	Level int `json:"level"`
	// ParentID references the parent node; empty only at roots.
	ParentID string `json:"parent_id,omitempty"`
	// TaskID scopes the node to one task's tree; empty for the default tree.
	TaskID string `json:"task_id,omitempty"`
	// Scope is a comma-separated keyword string describing the node's domain.
	Scope string `json:"scope"`
	// Permissions is the set of capability tags granted to the node.
	Permissions []string `json:"permissions,omitempty"`
	// MaxFanout caps the number of direct children.
	MaxFanout int `json:"max_fanout"`
	// MaxDepthBelow is how many levels may be spawned beneath this node.
	MaxDepthBelow int `json:"max_depth_below"`
	// EscalationThreshold is the number of failures before work escalates.
	EscalationThreshold int `json:"escalation_threshold"`
	// EscalationTargetID is where escalated work goes; defaults to the parent.
	EscalationTargetID string `json:"escalation_target_id,omitempty"`
	// ContextIsolation controls whether sliced context is filtered to scope.
	ContextIsolation bool `json:"context_isolation"`
	// HistoryIsolation controls whether the node sees sibling history.
	HistoryIsolation bool `json:"history_isolation"`
	// Status is the node's lifecycle state.
	Status NodeStatus `json:"status"`
	// Retries counts failures recorded against this node.
	Retries int `json:"retries"`
	// Escalations counts questions and work pushed upward from this node.
	Escalations int `json:"escalations"`
	// TokensConsumed accumulates token usage reported for this node.
	TokensConsumed int64 `json:"tokens_consumed"`
	// InputContract describes what the node expects to receive.
	InputContract string `json:"input_contract,omitempty"`
	// OutputContract describes what the node promises to produce.
	OutputContract string `json:"output_contract,omitempty"`
	// NicheDefinitionID links a spawned node back to its catalog entry.
	NicheDefinitionID string `json:"niche_definition_id,omitempty"`
	// CreatedAt is when the node was instantiated.
	CreatedAt time.Time `json:"created_at"`
}

// ScopeKeywords splits the node's scope into lower-cased, trimmed keywords.
// Empty entries are dropped.
func (n *TreeNode) ScopeKeywords() []string {
	return SplitScope(n.Scope)
}

// SplitScope splits a comma-separated scope string into lower-cased, trimmed
// keywords, dropping empties.
func SplitScope(scope string) []string {
	parts := strings.Split(scope, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		kw := strings.ToLower(strings.TrimSpace(p))
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}
