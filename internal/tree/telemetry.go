package tree

import "fmt"

// TelemetryDelta carries additive counter updates for one node. Zero fields
// leave their counter untouched.
type TelemetryDelta struct {
	TokensConsumed int64
	Retries        int
	Escalations    int
}

// RecordTelemetry adds the given deltas to a node's running counters.
// Counters only ever grow through this path. Unknown node ids are silently
// ignored; telemetry must never crash a caller.
func (e *Engine) RecordTelemetry(nodeID string, delta TelemetryDelta) error {
	node, err := e.store.GetNode(nodeID)
	if err != nil {
		return fmt.Errorf("record telemetry: %w", err)
	}
	if node == nil {
		return nil
	}

	node.TokensConsumed += delta.TokensConsumed
	node.Retries += delta.Retries
	node.Escalations += delta.Escalations

	if err := e.store.UpdateNode(node); err != nil {
		if isNotFound(err) {
			return nil
		}
		return fmt.Errorf("record telemetry: %w", err)
	}
	return nil
}
