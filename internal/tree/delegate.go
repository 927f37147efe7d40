package tree

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arborhq/arbor/internal/store"
	"github.com/arborhq/arbor/pkg/models"
)

// DelegateDown pushes a work description from a node to its most relevant
// children, auto-spawning a branch first when the node has none. Children are
// scored by keyword overlap between the description and their scope; only
// positively-scored children are targeted, falling back to all of them when
// nothing scores so work is never silently dropped. Every target goes Active
// and the hand-off is recorded on the parent's conversation log. targetLevel
// of zero spawns just the next level down when spawning is needed.
func (e *Engine) DelegateDown(nodeID, taskDescription string, targetLevel int) ([]*models.TreeNode, error) {
	node, err := e.store.GetNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("delegate down: %w", err)
	}
	if node == nil {
		return nil, fmt.Errorf("delegate down: node %s: %w", nodeID, store.ErrNotFound)
	}

	children, err := e.store.ListChildren(node.ID)
	if err != nil {
		return nil, fmt.Errorf("delegate down: %w", err)
	}

	if len(children) == 0 && node.Level < models.WorkerLevel {
		spawnTo := targetLevel
		if spawnTo <= node.Level {
			spawnTo = node.Level + 1
		}
		if _, err := e.SpawnBranch(node.ID, spawnTo); err != nil {
			return nil, fmt.Errorf("delegate down: %w", err)
		}
		children, err = e.store.ListChildren(node.ID)
		if err != nil {
			return nil, fmt.Errorf("delegate down: %w", err)
		}
	}
	if len(children) == 0 {
		return nil, nil
	}

	keywords := extractKeywords(taskDescription)

	type scored struct {
		node  *models.TreeNode
		score int
	}
	ranked := make([]scored, 0, len(children))
	anyPositive := false
	for _, child := range children {
		score := scopeOverlapCount(keywords, child.ScopeKeywords())
		if score > 0 {
			anyPositive = true
		}
		ranked = append(ranked, scored{node: child, score: score})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	var targets []*models.TreeNode
	for _, r := range ranked {
		if anyPositive && r.score == 0 {
			continue
		}
		targets = append(targets, r.node)
	}

	for _, target := range targets {
		target.Status = models.NodeStatusActive
		if err := e.store.UpdateNode(target); err != nil && !isNotFound(err) {
			return nil, fmt.Errorf("delegate down: %w", err)
		}
		e.emit(NodeActivatedEvent{NodeID: target.ID, Name: target.Name})
	}

	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = t.Name
	}
	record := fmt.Sprintf("[DELEGATED] %s -> %s", truncate(taskDescription, 200), strings.Join(names, ", "))
	if err := e.appendConversation(node, models.RoleAgent, record, ""); err != nil {
		return nil, fmt.Errorf("delegate down: %w", err)
	}

	e.logf("delegated from %s to %d of %d children", node.Name, len(targets), len(children))
	return targets, nil
}
