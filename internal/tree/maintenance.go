package tree

import (
	"fmt"
	"sort"

	"github.com/arborhq/arbor/pkg/models"
)

// PruneCompletedBranches sweeps the tree under rootID from its deepest level
// upward, marking nodes Pruned when they are Completed, every direct child is
// Completed or already Pruned, and they sit below the permanent skeleton.
// Levels 0-4 are never touched. Returns the number of nodes pruned.
func (e *Engine) PruneCompletedBranches(rootID string) (int, error) {
	subtree, err := e.collectSubtree(rootID)
	if err != nil {
		return 0, fmt.Errorf("prune completed branches: %w", err)
	}

	// Deepest first so a parent sees its children's fresh Pruned status.
	sort.SliceStable(subtree, func(i, j int) bool { return subtree[i].Level > subtree[j].Level })

	pruned := 0
	for _, node := range subtree {
		if node.Level <= models.SkeletonMaxLevel {
			continue
		}
		if node.Status != models.NodeStatusCompleted {
			continue
		}

		children, err := e.store.ListChildren(node.ID)
		if err != nil {
			continue
		}
		prunable := true
		for _, c := range children {
			if c.Status != models.NodeStatusCompleted && c.Status != models.NodeStatusPruned {
				prunable = false
				break
			}
		}
		if !prunable {
			continue
		}

		node.Status = models.NodeStatusPruned
		if err := e.store.UpdateNode(node); err != nil {
			continue
		}
		pruned++
	}

	if pruned > 0 {
		e.logf("pruned %d branch nodes under %s", pruned, rootID)
	}
	e.emit(BranchPrunedEvent{RootID: rootID, Pruned: pruned})
	return pruned, nil
}

// collectSubtree gathers the whole tree rooted at rootID breadth-first.
func (e *Engine) collectSubtree(rootID string) ([]*models.TreeNode, error) {
	root, err := e.store.GetNode(rootID)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, nil
	}

	var nodes []*models.TreeNode
	queue := []*models.TreeNode{root}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		nodes = append(nodes, node)

		children, err := e.store.ListChildren(node.ID)
		if err != nil {
			return nil, err
		}
		queue = append(queue, children...)
	}
	return nodes, nil
}

// DeleteTreeForTask hard-deletes every node scoped to a task and returns the
// count removed. Used for full teardown.
func (e *Engine) DeleteTreeForTask(taskID string) (int, error) {
	deleted, err := e.store.DeleteNodesByTask(taskID)
	if err != nil {
		return 0, fmt.Errorf("delete tree for task: %w", err)
	}
	e.logf("deleted %d nodes for task %s", deleted, taskID)
	return deleted, nil
}
