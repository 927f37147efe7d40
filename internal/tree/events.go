package tree

// Component names attached to published events.
const (
	componentSkeleton    = "skeleton_builder"
	componentSpawner     = "branch_spawner"
	componentSlicer      = "context_slicer"
	componentEscalation  = "escalation_coordinator"
	componentDelegation  = "delegation_router"
	componentLifecycle   = "lifecycle_manager"
	componentMaintenance = "tree_maintenance"
)

// SkeletonBuiltEvent is published after a skeleton is instantiated.
type SkeletonBuiltEvent struct {
	TaskID    string `json:"task_id"`
	RootID    string `json:"root_id"`
	Template  string `json:"template"`
	NodeCount int    `json:"node_count"`
}

func (SkeletonBuiltEvent) Kind() string      { return "tree_skeleton_built" }
func (SkeletonBuiltEvent) Component() string { return componentSkeleton }

// DefaultTreeBuiltEvent is published once EnsureDefaultTree materializes the
// default tree, including its eagerly spawned deep branches.
type DefaultTreeBuiltEvent struct {
	RootID          string `json:"root_id"`
	NodeCount       int    `json:"node_count"`
	BranchesSpawned int    `json:"branches_spawned"`
}

func (DefaultTreeBuiltEvent) Kind() string      { return "default_tree_built" }
func (DefaultTreeBuiltEvent) Component() string { return componentSkeleton }

// BranchSpawnedEvent is published after a lazy branch is extended.
type BranchSpawnedEvent struct {
	ParentID     string `json:"parent_id"`
	TargetLevel  int    `json:"target_level"`
	NodesCreated int    `json:"nodes_created"`
}

func (BranchSpawnedEvent) Kind() string      { return "tree_branch_spawned" }
func (BranchSpawnedEvent) Component() string { return componentSpawner }

// NodeSpawnedEvent is published for each node a spawn operation creates.
type NodeSpawnedEvent struct {
	NodeID   string `json:"node_id"`
	ParentID string `json:"parent_id"`
	Name     string `json:"name"`
	Level    int    `json:"level"`
}

func (NodeSpawnedEvent) Kind() string      { return "tree_node_spawned" }
func (NodeSpawnedEvent) Component() string { return componentSpawner }

// NodeActivatedEvent is published when a node starts working or is handed
// delegated work.
type NodeActivatedEvent struct {
	NodeID string `json:"node_id"`
	Name   string `json:"name"`
}

func (NodeActivatedEvent) Kind() string      { return "node_activated" }
func (NodeActivatedEvent) Component() string { return componentLifecycle }

// NodeCompletedEvent is published when a node finishes its work.
type NodeCompletedEvent struct {
	NodeID string `json:"node_id"`
	Name   string `json:"name"`
}

func (NodeCompletedEvent) Kind() string      { return "node_completed" }
func (NodeCompletedEvent) Component() string { return componentLifecycle }

// NodeFailedEvent is published when a node's work fails.
type NodeFailedEvent struct {
	NodeID  string `json:"node_id"`
	Name    string `json:"name"`
	Retries int    `json:"retries"`
	Reason  string `json:"reason"`
}

func (NodeFailedEvent) Kind() string      { return "node_failed" }
func (NodeFailedEvent) Component() string { return componentLifecycle }

// WorkEscalatedEvent is published when a node pushes its work upward.
// This is work escalation, distinct from question escalation.
type WorkEscalatedEvent struct {
	NodeID      string `json:"node_id"`
	Reason      string `json:"reason"`
	Escalations int    `json:"escalations"`
}

func (WorkEscalatedEvent) Kind() string      { return "node_escalated" }
func (WorkEscalatedEvent) Component() string { return componentLifecycle }

// NodeIdleResetEvent is published when a timed auto-reset returns a node to idle.
type NodeIdleResetEvent struct {
	NodeID string `json:"node_id"`
}

func (NodeIdleResetEvent) Kind() string      { return "node_idle_reset" }
func (NodeIdleResetEvent) Component() string { return componentLifecycle }

// ContextSlicedEvent is published after a context slice is performed.
type ContextSlicedEvent struct {
	NodeID   string `json:"node_id"`
	Matched  int    `json:"matched"`
	Total    int    `json:"total"`
	Fallback bool   `json:"fallback"`
}

func (ContextSlicedEvent) Kind() string      { return "context_sliced" }
func (ContextSlicedEvent) Component() string { return componentSlicer }

// ChainStartedEvent is published when an escalation chain is created.
type ChainStartedEvent struct {
	ChainID  string `json:"chain_id"`
	NodeID   string `json:"node_id"`
	Question string `json:"question"`
}

func (ChainStartedEvent) Kind() string      { return "escalation_chain_started" }
func (ChainStartedEvent) Component() string { return componentEscalation }

// ChainEscalatedEvent is published for each upward hop of a chain.
type ChainEscalatedEvent struct {
	ChainID    string `json:"chain_id"`
	FromNodeID string `json:"from_node_id"`
	ToNodeID   string `json:"to_node_id,omitempty"`
	ReachedTop bool   `json:"reached_top"`
}

func (ChainEscalatedEvent) Kind() string      { return "escalation_chain_escalated" }
func (ChainEscalatedEvent) Component() string { return componentEscalation }

// ChainAnsweredEvent is published when a chain is resolved.
type ChainAnsweredEvent struct {
	ChainID         string `json:"chain_id"`
	ResolvedAtLevel int    `json:"resolved_at_level"`
	Source          string `json:"source"`
}

func (ChainAnsweredEvent) Kind() string      { return "escalation_chain_answered" }
func (ChainAnsweredEvent) Component() string { return componentEscalation }

// BranchPrunedEvent is published after a maintenance pass prunes branches.
type BranchPrunedEvent struct {
	RootID string `json:"root_id"`
	Pruned int    `json:"pruned"`
}

func (BranchPrunedEvent) Kind() string      { return "tree_branch_pruned" }
func (BranchPrunedEvent) Component() string { return componentMaintenance }
