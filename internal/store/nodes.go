package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/arborhq/arbor/pkg/models"
)

const nodeColumns = `id, name, agent_type, level, parent_id, task_id, scope, permissions,
	max_fanout, max_depth_below, escalation_threshold, escalation_target_id,
	context_isolation, history_isolation, status, retries, escalations,
	tokens_consumed, input_contract, output_contract, niche_definition_id, created_at`

// CreateNode inserts a new tree node.
func (s *Store) CreateNode(node *models.TreeNode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO tree_nodes (`+nodeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		node.ID,
		node.Name,
		node.AgentType,
		node.Level,
		nullString(node.ParentID),
		nullString(node.TaskID),
		node.Scope,
		strings.Join(node.Permissions, ","),
		node.MaxFanout,
		node.MaxDepthBelow,
		node.EscalationThreshold,
		nullString(node.EscalationTargetID),
		boolInt(node.ContextIsolation),
		boolInt(node.HistoryIsolation),
		string(node.Status),
		node.Retries,
		node.Escalations,
		node.TokensConsumed,
		nullString(node.InputContract),
		nullString(node.OutputContract),
		nullString(node.NicheDefinitionID),
		formatTime(node.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert node: %w", err)
	}
	return nil
}

// GetNode retrieves a node by id. Returns (nil, nil) if the node does not
// exist; lookups degrade gracefully rather than failing.
func (s *Store) GetNode(id string) (*models.TreeNode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`SELECT `+nodeColumns+` FROM tree_nodes WHERE id = ?`, id)
	node, err := scanNode(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get node: %w", err)
	}
	return node, nil
}

// UpdateNode rewrites the mutable fields of a node. Returns ErrNotFound if the
// node has been deleted.
func (s *Store) UpdateNode(node *models.TreeNode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE tree_nodes SET
			name = ?, agent_type = ?, level = ?, parent_id = ?, task_id = ?,
			scope = ?, permissions = ?, max_fanout = ?, max_depth_below = ?,
			escalation_threshold = ?, escalation_target_id = ?,
			context_isolation = ?, history_isolation = ?, status = ?,
			retries = ?, escalations = ?, tokens_consumed = ?,
			input_contract = ?, output_contract = ?, niche_definition_id = ?
		WHERE id = ?
	`,
		node.Name,
		node.AgentType,
		node.Level,
		nullString(node.ParentID),
		nullString(node.TaskID),
		node.Scope,
		strings.Join(node.Permissions, ","),
		node.MaxFanout,
		node.MaxDepthBelow,
		node.EscalationThreshold,
		nullString(node.EscalationTargetID),
		boolInt(node.ContextIsolation),
		boolInt(node.HistoryIsolation),
		string(node.Status),
		node.Retries,
		node.Escalations,
		node.TokensConsumed,
		nullString(node.InputContract),
		nullString(node.OutputContract),
		nullString(node.NicheDefinitionID),
		node.ID,
	)
	if err != nil {
		return fmt.Errorf("update node: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update node: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update node %s: %w", node.ID, ErrNotFound)
	}
	return nil
}

// ListChildren returns the direct children of a node, ordered by creation.
func (s *Store) ListChildren(parentID string) ([]*models.TreeNode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT `+nodeColumns+` FROM tree_nodes
		WHERE parent_id = ? ORDER BY created_at, id
	`, parentID)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	defer rows.Close()
	return scanNodes(rows)
}

// ListAncestors walks parent references from the given node to the root and
// returns the chain ordered nearest-first, root-most last. The node itself is
// not included. A missing node yields an empty list.
func (s *Store) ListAncestors(nodeID string) ([]*models.TreeNode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ancestors []*models.TreeNode
	currentID := nodeID
	for {
		row := s.db.QueryRow(`SELECT `+nodeColumns+` FROM tree_nodes WHERE id = ?`, currentID)
		node, err := scanNode(row)
		if err == sql.ErrNoRows {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list ancestors: %w", err)
		}
		if node.ParentID == "" {
			break
		}
		row = s.db.QueryRow(`SELECT `+nodeColumns+` FROM tree_nodes WHERE id = ?`, node.ParentID)
		parent, err := scanNode(row)
		if err == sql.ErrNoRows {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list ancestors: %w", err)
		}
		ancestors = append(ancestors, parent)
		currentID = parent.ID
	}
	return ancestors, nil
}

// ListNodesByLevel returns all nodes at the given level. If taskID is
// non-empty the result is scoped to that task's tree.
func (s *Store) ListNodesByLevel(level int, taskID string) ([]*models.TreeNode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		rows *sql.Rows
		err  error
	)
	if taskID != "" {
		rows, err = s.db.Query(`
			SELECT `+nodeColumns+` FROM tree_nodes
			WHERE level = ? AND task_id = ? ORDER BY created_at, id
		`, level, taskID)
	} else {
		rows, err = s.db.Query(`
			SELECT `+nodeColumns+` FROM tree_nodes
			WHERE level = ? ORDER BY created_at, id
		`, level)
	}
	if err != nil {
		return nil, fmt.Errorf("list nodes by level: %w", err)
	}
	defer rows.Close()
	return scanNodes(rows)
}

// ListAllNodes returns every node in the store.
func (s *Store) ListAllNodes() ([]*models.TreeNode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT ` + nodeColumns + ` FROM tree_nodes ORDER BY level, created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list all nodes: %w", err)
	}
	defer rows.Close()
	return scanNodes(rows)
}

// CountNodes returns the total number of nodes in the store.
func (s *Store) CountNodes() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM tree_nodes").Scan(&count); err != nil {
		return 0, fmt.Errorf("count nodes: %w", err)
	}
	return count, nil
}

// DeleteNodesByTask hard-deletes every node scoped to a task and returns the
// number deleted.
func (s *Store) DeleteNodesByTask(taskID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM tree_nodes WHERE task_id = ?", taskID)
	if err != nil {
		return 0, fmt.Errorf("delete nodes by task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete nodes by task: %w", err)
	}
	return int(n), nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanNode(row rowScanner) (*models.TreeNode, error) {
	var (
		node              models.TreeNode
		parentID          sql.NullString
		taskID            sql.NullString
		permissions       string
		escalationTarget  sql.NullString
		contextIsolation  int
		historyIsolation  int
		status            string
		inputContract     sql.NullString
		outputContract    sql.NullString
		nicheDefinitionID sql.NullString
		createdAt         string
	)

	err := row.Scan(
		&node.ID,
		&node.Name,
		&node.AgentType,
		&node.Level,
		&parentID,
		&taskID,
		&node.Scope,
		&permissions,
		&node.MaxFanout,
		&node.MaxDepthBelow,
		&node.EscalationThreshold,
		&escalationTarget,
		&contextIsolation,
		&historyIsolation,
		&status,
		&node.Retries,
		&node.Escalations,
		&node.TokensConsumed,
		&inputContract,
		&outputContract,
		&nicheDefinitionID,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	node.ParentID = parentID.String
	node.TaskID = taskID.String
	if permissions != "" {
		node.Permissions = strings.Split(permissions, ",")
	}
	node.EscalationTargetID = escalationTarget.String
	node.ContextIsolation = contextIsolation != 0
	node.HistoryIsolation = historyIsolation != 0
	node.Status = models.NodeStatus(status)
	node.InputContract = inputContract.String
	node.OutputContract = outputContract.String
	node.NicheDefinitionID = nicheDefinitionID.String
	if t, err := parseTime(createdAt); err == nil {
		node.CreatedAt = t
	}
	return &node, nil
}

func scanNodes(rows *sql.Rows) ([]*models.TreeNode, error) {
	var nodes []*models.TreeNode
	for rows.Next() {
		node, err := scanNode(rows)
		if err != nil {
			return nil, fmt.Errorf("scan node: %w", err)
		}
		nodes = append(nodes, node)
	}
	return nodes, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
