package models

// TemplateNode is one entry in a tree template's ordered node list. Parent
// references are by name; the builder resolves them to ids in level order.
type TemplateNode struct {
	// Name is the node's display name, unique within the template.
	Name string `json:"name" yaml:"name"`
	// AgentType classifies the node.
	AgentType string `json:"agent_type" yaml:"agent_type"`
	// Level is the tree level, 0-4 for skeleton templates.
	Level int `json:"level" yaml:"level"`
	// Scope is the comma-separated keyword string for the node.
	Scope string `json:"scope" yaml:"scope"`
	// Parent names the parent template node; empty only for the root.
	Parent string `json:"parent,omitempty" yaml:"parent,omitempty"`
	// MaxFanout caps the number of direct children.
	MaxFanout int `json:"max_fanout" yaml:"max_fanout"`
	// MaxDepthBelow is how many levels may be spawned beneath the node.
	MaxDepthBelow int `json:"max_depth_below" yaml:"max_depth_below"`
	// EscalationThreshold is the failure count before work escalates.
	EscalationThreshold int `json:"escalation_threshold" yaml:"escalation_threshold"`
	// ContextIsolation controls context slicing for the node.
	ContextIsolation bool `json:"context_isolation" yaml:"context_isolation"`
	// HistoryIsolation controls sibling history visibility.
	HistoryIsolation bool `json:"history_isolation" yaml:"history_isolation"`
	// Permissions is the capability tag set granted to the node.
	Permissions []string `json:"permissions,omitempty" yaml:"permissions,omitempty"`
	// NicheDefinitionID optionally links the node to a niche catalog entry.
	NicheDefinitionID string `json:"niche_definition_id,omitempty" yaml:"niche_definition_id,omitempty"`
	// RequiredCapability optionally names a capability the host must provide.
	RequiredCapability string `json:"required_capability,omitempty" yaml:"required_capability,omitempty"`
}

// TreeTemplate is a named, ordered blueprint for instantiating a skeleton.
type TreeTemplate struct {
	// Name is the template's lookup key.
	Name string `json:"name" yaml:"name"`
	// Nodes is the ordered node list; parents must precede children.
	Nodes []TemplateNode `json:"nodes" yaml:"nodes"`
}
