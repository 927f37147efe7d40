package tree

import (
	"fmt"
	"time"

	"github.com/arborhq/arbor/internal/store"
	"github.com/arborhq/arbor/pkg/models"
)

// completedEntryLimit caps how much of a result lands in the conversation log.
const completedEntryLimit = 500

// ActivateNode moves a node to Working and publishes its activation.
func (e *Engine) ActivateNode(nodeID string) error {
	node, err := e.store.GetNode(nodeID)
	if err != nil {
		return fmt.Errorf("activate node: %w", err)
	}
	if node == nil {
		return fmt.Errorf("activate node: node %s: %w", nodeID, store.ErrNotFound)
	}

	node.Status = models.NodeStatusWorking
	if err := e.store.UpdateNode(node); err != nil {
		return fmt.Errorf("activate node: %w", err)
	}
	e.emit(NodeActivatedEvent{NodeID: node.ID, Name: node.Name})
	return nil
}

// WaitForChildren moves a node to WaitingChild.
func (e *Engine) WaitForChildren(nodeID string) error {
	node, err := e.store.GetNode(nodeID)
	if err != nil {
		return fmt.Errorf("wait for children: %w", err)
	}
	if node == nil {
		return fmt.Errorf("wait for children: node %s: %w", nodeID, store.ErrNotFound)
	}

	node.Status = models.NodeStatusWaitingChild
	if err := e.store.UpdateNode(node); err != nil {
		return fmt.Errorf("wait for children: %w", err)
	}
	return nil
}

// CompleteNode marks a node Completed, records the result on its log, and
// schedules the idle auto-reset. A missing node is a silent no-op.
func (e *Engine) CompleteNode(nodeID, result string) error {
	node, err := e.store.GetNode(nodeID)
	if err != nil {
		return fmt.Errorf("complete node: %w", err)
	}
	if node == nil {
		return nil
	}

	node.Status = models.NodeStatusCompleted
	if err := e.store.UpdateNode(node); err != nil {
		if isNotFound(err) {
			return nil
		}
		return fmt.Errorf("complete node: %w", err)
	}

	entry := "[COMPLETED] " + truncate(result, completedEntryLimit)
	if err := e.appendConversation(node, models.RoleAgent, entry, ""); err != nil {
		return fmt.Errorf("complete node: %w", err)
	}

	e.logf("node %s completed", node.Name)
	e.emit(NodeCompletedEvent{NodeID: node.ID, Name: node.Name})

	e.scheduleIdleReset(node.ID, e.completeResetDelay)
	return nil
}

// FailNode marks a node Failed, bumps its retry counter, records the error,
// and schedules the idle auto-reset. The failure delay is longer than the
// completion delay so observers have time to notice. A missing node is a
// silent no-op.
func (e *Engine) FailNode(nodeID, errorText string) error {
	node, err := e.store.GetNode(nodeID)
	if err != nil {
		return fmt.Errorf("fail node: %w", err)
	}
	if node == nil {
		return nil
	}

	node.Status = models.NodeStatusFailed
	node.Retries++
	if err := e.store.UpdateNode(node); err != nil {
		if isNotFound(err) {
			return nil
		}
		return fmt.Errorf("fail node: %w", err)
	}

	entry := "[FAILED] " + truncate(errorText, completedEntryLimit)
	if err := e.appendConversation(node, models.RoleAgent, entry, ""); err != nil {
		return fmt.Errorf("fail node: %w", err)
	}

	e.logf("node %s failed (retry %d): %s", node.Name, node.Retries, truncate(errorText, 120))
	e.emit(NodeFailedEvent{NodeID: node.ID, Name: node.Name, Retries: node.Retries, Reason: errorText})

	e.scheduleIdleReset(node.ID, e.failResetDelay)
	return nil
}

// EscalateWork pushes a node's work upward: status Escalated, escalation
// counter bumped, reason recorded. This is work escalation, separate from
// the question-escalation protocol.
func (e *Engine) EscalateWork(nodeID, reason string) error {
	node, err := e.store.GetNode(nodeID)
	if err != nil {
		return fmt.Errorf("escalate work: %w", err)
	}
	if node == nil {
		return fmt.Errorf("escalate work: node %s: %w", nodeID, store.ErrNotFound)
	}

	node.Status = models.NodeStatusEscalated
	node.Escalations++
	if err := e.store.UpdateNode(node); err != nil {
		return fmt.Errorf("escalate work: %w", err)
	}

	entry := "[ESCALATED] " + truncate(reason, completedEntryLimit)
	if err := e.appendConversation(node, models.RoleAgent, entry, ""); err != nil {
		return fmt.Errorf("escalate work: %w", err)
	}

	e.logf("node %s escalated work: %s", node.Name, truncate(reason, 120))
	e.emit(WorkEscalatedEvent{NodeID: node.ID, Reason: reason, Escalations: node.Escalations})
	return nil
}

// scheduleIdleReset arranges for a node to return to Idle after delay. The
// callback tolerates the node having been deleted in the interim: the reset
// simply becomes a no-op.
func (e *Engine) scheduleIdleReset(nodeID string, delay time.Duration) {
	e.delayer.After(delay, func() {
		node, err := e.store.GetNode(nodeID)
		if err != nil || node == nil {
			return
		}
		node.Status = models.NodeStatusIdle
		if err := e.store.UpdateNode(node); err != nil {
			// Deleted between read and write; swallow.
			return
		}
		e.emit(NodeIdleResetEvent{NodeID: nodeID})
	})
}
