package tree

import (
	"fmt"
	"time"

	"github.com/arborhq/arbor/internal/template"
	"github.com/arborhq/arbor/pkg/models"
)

// DefaultTreeTaskID is the sentinel task id the default tree is scoped to.
const DefaultTreeTaskID = "default"

// BuildSkeletonForPlan instantiates the fixed upper tree (levels 0-4) for a
// task from a named template and returns the root node. An empty templateName
// uses the configured default; a missing or invalid stored template falls
// back to the built-in standard template.
func (e *Engine) BuildSkeletonForPlan(taskID, templateName string) (*models.TreeNode, error) {
	if templateName == "" {
		templateName = e.defaultTemplate
	}

	nodes, usedName := e.loadTemplate(templateName)

	// Instantiate in level order so every parent exists before its children.
	// Template ordering already guarantees parents precede children, but
	// level order additionally keeps sibling creation grouped per tier.
	byLevel := make(map[int][]models.TemplateNode)
	for _, tn := range nodes {
		byLevel[tn.Level] = append(byLevel[tn.Level], tn)
	}

	nameToID := make(map[string]string, len(nodes))
	var root *models.TreeNode
	created := 0

	for level := models.RootLevel; level <= models.SkeletonMaxLevel; level++ {
		for _, tn := range byLevel[level] {
			parentID := ""
			if tn.Parent != "" {
				id, ok := nameToID[tn.Parent]
				if !ok {
					return nil, fmt.Errorf("template %q: node %q references unknown parent %q", usedName, tn.Name, tn.Parent)
				}
				parentID = id
			}

			node := &models.TreeNode{
				ID:                  newNodeID(),
				Name:                tn.Name,
				AgentType:           tn.AgentType,
				Level:               tn.Level,
				ParentID:            parentID,
				TaskID:              taskID,
				Scope:               tn.Scope,
				Permissions:         tn.Permissions,
				MaxFanout:           tn.MaxFanout,
				MaxDepthBelow:       tn.MaxDepthBelow,
				EscalationThreshold: tn.EscalationThreshold,
				EscalationTargetID:  parentID,
				ContextIsolation:    tn.ContextIsolation,
				HistoryIsolation:    tn.HistoryIsolation,
				Status:              models.NodeStatusIdle,
				NicheDefinitionID:   tn.NicheDefinitionID,
				CreatedAt:           time.Now(),
			}
			if err := e.store.CreateNode(node); err != nil {
				return nil, fmt.Errorf("create skeleton node %q: %w", tn.Name, err)
			}
			nameToID[tn.Name] = node.ID
			created++
			if node.Level == models.RootLevel {
				root = node
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("template %q has no root node", usedName)
	}

	e.logf("skeleton built for task %s: template=%s nodes=%d root=%s", taskID, usedName, created, root.ID)
	e.emit(SkeletonBuiltEvent{TaskID: taskID, RootID: root.ID, Template: usedName, NodeCount: created})
	return root, nil
}

// loadTemplate fetches and validates a stored template, falling back to the
// built-in standard template when the stored one is missing or rejected.
func (e *Engine) loadTemplate(name string) ([]models.TemplateNode, string) {
	raw, err := e.store.GetTemplate(name)
	if err != nil || raw == nil {
		if err != nil {
			e.logf("template %s: load failed (%v), using built-in standard", name, err)
		}
		return template.Standard(), template.StandardTemplateName
	}

	nodes, err := template.Parse(raw)
	if err != nil {
		e.logf("template %s: rejected (%v), using built-in standard", name, err)
		return template.Standard(), template.StandardTemplateName
	}
	return nodes, name
}

// EnsureDefaultTree builds the default tree if the store holds no nodes at
// all. The skeleton goes in under the sentinel task id, then every level-4
// manager's deep branch is spawned eagerly; managers with no matching niche
// agents are tolerated. Idempotent: any existing node makes it a no-op.
func (e *Engine) EnsureDefaultTree() error {
	count, err := e.store.CountNodes()
	if err != nil {
		return fmt.Errorf("ensure default tree: %w", err)
	}
	if count > 0 {
		return nil
	}

	root, err := e.BuildSkeletonForPlan(DefaultTreeTaskID, "")
	if err != nil {
		return fmt.Errorf("ensure default tree: %w", err)
	}

	managers, err := e.store.ListNodesByLevel(models.SkeletonMaxLevel, DefaultTreeTaskID)
	if err != nil {
		return fmt.Errorf("ensure default tree: %w", err)
	}

	branches := 0
	for _, m := range managers {
		created, err := e.SpawnBranch(m.ID, models.WorkerLevel)
		if err != nil {
			// No niche agents for this manager's scope is expected for
			// sparse catalogs; keep going.
			e.logf("default tree: branch for %s skipped: %v", m.Name, err)
			continue
		}
		if len(created) > 0 {
			branches++
		}
	}

	total, err := e.store.CountNodes()
	if err != nil {
		total = 0
	}
	e.logf("default tree built: root=%s nodes=%d branches=%d", root.ID, total, branches)
	e.emit(DefaultTreeBuiltEvent{RootID: root.ID, NodeCount: total, BranchesSpawned: branches})
	return nil
}
