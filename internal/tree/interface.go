package tree

import "github.com/arborhq/arbor/pkg/models"

// Store is the persistence contract the engine consumes. The engine never
// holds node state in memory; every read and write goes through here.
//
// Missing-record conventions: GetNode and GetTemplate return (nil, nil) for
// absent records so lookups can degrade gracefully; GetChain, UpdateNode, and
// UpdateChain signal absence with an error wrapping store.ErrNotFound.
type Store interface {
	// Nodes.
	CreateNode(node *models.TreeNode) error
	GetNode(id string) (*models.TreeNode, error)
	UpdateNode(node *models.TreeNode) error
	ListChildren(parentID string) ([]*models.TreeNode, error)
	ListAncestors(nodeID string) ([]*models.TreeNode, error)
	ListNodesByLevel(level int, taskID string) ([]*models.TreeNode, error)
	ListAllNodes() ([]*models.TreeNode, error)
	CountNodes() (int, error)
	DeleteNodesByTask(taskID string) (int, error)

	// Escalation chains.
	CreateChain(chain *models.EscalationChain) error
	GetChain(id string) (*models.EscalationChain, error)
	UpdateChain(chain *models.EscalationChain) error

	// Conversations.
	CreateConversation(entry *models.AgentConversation) error
	ListConversationsByNode(nodeID string) ([]*models.AgentConversation, error)

	// Niche catalog.
	CreateNicheAgent(def *models.NicheAgentDefinition) error
	CountNicheAgents() (int, error)
	ListNicheAgentsByLevel(level int) ([]*models.NicheAgentDefinition, error)
	ListNicheAgentsByDomain(domain string) ([]*models.NicheAgentDefinition, error)

	// Templates.
	GetTemplate(name string) ([]byte, error)

	// Knowledge stores consulted before escalating to a human.
	SearchDecisions(taskID, keyword string) ([]*models.Decision, error)
	ListDesignPagesByPlan(planID string) ([]*models.DesignPage, error)
	SearchDocuments(planID, keyword string) ([]*models.Document, error)
	ListAllPlans() ([]*models.Plan, error)
}
