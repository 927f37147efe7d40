// Package tree implements the agent-tree coordination engine.
//
// The tree package provides functionality for:
//   - Skeleton construction: instantiating the fixed upper tree (levels 0-4)
//     from a named template
//   - Lazy branch spawning: extending a branch down to the worker level using
//     niche-agent definitions matched by scope-keyword overlap
//   - Escalation: routing unanswered questions up the tree and propagating
//     answers back down through every level they passed
//   - Delegation: pushing work descriptions down to the most relevant children
//   - Node lifecycle: the status state machine with timed auto-recovery
//
// The engine holds no tree state of its own; every node, chain, and
// conversation lives behind the Store interface, and all observable activity
// is published fire-and-forget through a bus.Publisher.
//
// Example usage:
//
//	st, _ := store.Open(store.DefaultDBPath())
//	engine := tree.NewEngine(st, tree.Options{})
//	root, _ := engine.BuildSkeletonForPlan("task-1", "")
//	engine.DelegateDown(root.ID, "build a new button component", 0)
package tree
