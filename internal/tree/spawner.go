package tree

import (
	"fmt"
	"strings"
	"time"

	"github.com/arborhq/arbor/internal/store"
	"github.com/arborhq/arbor/pkg/models"
)

// SpawnBranch lazily extends the tree beneath parentNodeID, one level per
// hop, down to targetLevel. Each level's candidates come from the niche
// catalog, kept when their specialty overlaps the parent's scope keywords in
// either direction. Returns the newly created nodes; a parent already at or
// below targetLevel is a no-op.
func (e *Engine) SpawnBranch(parentNodeID string, targetLevel int) ([]*models.TreeNode, error) {
	parent, err := e.store.GetNode(parentNodeID)
	if err != nil {
		return nil, fmt.Errorf("spawn branch: %w", err)
	}
	if parent == nil {
		return nil, fmt.Errorf("spawn branch: parent %s: %w", parentNodeID, store.ErrNotFound)
	}
	if parent.Level >= targetLevel {
		return nil, nil
	}
	if targetLevel > models.WorkerLevel {
		targetLevel = models.WorkerLevel
	}

	parentScope := parent.ScopeKeywords()

	existing, err := e.store.ListChildren(parent.ID)
	if err != nil {
		return nil, fmt.Errorf("spawn branch: %w", err)
	}
	// Fanout accounting per prospective parent, seeded with existing children.
	childCounts := map[string]int{parent.ID: len(existing)}

	var created []*models.TreeNode
	prevLevel := []*models.TreeNode{parent}

	for level := parent.Level + 1; level <= targetLevel; level++ {
		defs, err := e.store.ListNicheAgentsByLevel(level)
		if err != nil {
			return nil, fmt.Errorf("spawn branch: niche catalog at level %d: %w", level, err)
		}

		var spawned []*models.TreeNode
		for _, def := range defs {
			if !specialtyMatchesScope(def.Specialty, parentScope) {
				continue
			}

			spawnParent := pickSpawnParent(parent, prevLevel, level, def)
			if spawnParent == nil {
				// Permissive skip: no prior-level node carries this
				// definition's area in its scope. Missing niche agents are
				// not an error.
				continue
			}

			if childCounts[spawnParent.ID] >= spawnParent.MaxFanout {
				continue
			}

			node := e.nicheNode(spawnParent, def, level)
			if err := e.store.CreateNode(node); err != nil {
				return nil, fmt.Errorf("spawn branch: create %s: %w", node.Name, err)
			}
			childCounts[spawnParent.ID]++
			spawned = append(spawned, node)
			created = append(created, node)

			e.emit(NodeSpawnedEvent{NodeID: node.ID, ParentID: node.ParentID, Name: node.Name, Level: node.Level})
		}

		if len(spawned) == 0 {
			// Nothing matched at this level; deeper levels would have no
			// parents to hang from.
			break
		}
		prevLevel = spawned
	}

	if len(created) > 0 {
		e.logf("branch spawned under %s: target=%d created=%d", parent.Name, targetLevel, len(created))
		e.emit(BranchSpawnedEvent{ParentID: parent.ID, TargetLevel: targetLevel, NodesCreated: len(created)})
	}
	return created, nil
}

// specialtyMatchesScope reports whether a definition's specialty keywords
// overlap the parent scope in either direction.
func specialtyMatchesScope(specialty string, parentScope []string) bool {
	for _, spec := range models.SplitScope(specialty) {
		for _, sk := range parentScope {
			if eitherContains(spec, sk) {
				return true
			}
		}
	}
	return false
}

// pickSpawnParent determines the immediate parent for a definition: the
// original parent on the first hop, otherwise a just-spawned node one level
// up whose scope mentions the definition's area.
func pickSpawnParent(parent *models.TreeNode, prevLevel []*models.TreeNode, level int, def *models.NicheAgentDefinition) *models.TreeNode {
	if level == parent.Level+1 {
		return parent
	}
	area := strings.ToLower(def.Area)
	for _, candidate := range prevLevel {
		if strings.Contains(strings.ToLower(candidate.Scope), area) {
			return candidate
		}
	}
	return nil
}

// nicheNode builds the TreeNode for a niche definition under spawnParent.
// Fanout halves per level and bottoms out at zero for workers; the depth
// budget is whatever remains above the worker level.
func (e *Engine) nicheNode(spawnParent *models.TreeNode, def *models.NicheAgentDefinition, level int) *models.TreeNode {
	fanout := spawnParent.MaxFanout / 2
	if level >= models.WorkerLevel {
		fanout = 0
	}

	return &models.TreeNode{
		ID:                  newNodeID(),
		Name:                def.Name,
		AgentType:           "specialist",
		Level:               level,
		ParentID:            spawnParent.ID,
		TaskID:              spawnParent.TaskID,
		Scope:               spawnParent.Scope + "," + def.Specialty,
		MaxFanout:           fanout,
		MaxDepthBelow:       models.WorkerLevel - level,
		EscalationThreshold: spawnParent.EscalationThreshold,
		EscalationTargetID:  spawnParent.ID,
		ContextIsolation:    true,
		HistoryIsolation:    true,
		Status:              models.NodeStatusIdle,
		InputContract:       def.InputContract,
		OutputContract:      def.OutputContract,
		NicheDefinitionID:   def.ID,
		CreatedAt:           time.Now(),
	}
}

// IsBranchSpawned reports whether the lazy region below a node has been
// materialized: true iff any direct child sits beyond the skeleton levels.
func (e *Engine) IsBranchSpawned(nodeID string) (bool, error) {
	children, err := e.store.ListChildren(nodeID)
	if err != nil {
		return false, fmt.Errorf("is branch spawned: %w", err)
	}
	for _, c := range children {
		if c.Level > models.SkeletonMaxLevel {
			return true, nil
		}
	}
	return false, nil
}
