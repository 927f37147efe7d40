package store

import (
	"database/sql"
	"fmt"

	"github.com/arborhq/arbor/pkg/models"
)

// CreateConversation appends a conversation entry to a node's log.
func (s *Store) CreateConversation(entry *models.AgentConversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO agent_conversations (id, node_id, role, content, level, question_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		entry.ID,
		entry.NodeID,
		string(entry.Role),
		entry.Content,
		entry.Level,
		nullString(entry.QuestionID),
		formatTime(entry.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert conversation: %w", err)
	}
	return nil
}

// ListConversationsByNode returns a node's conversation log in append order.
func (s *Store) ListConversationsByNode(nodeID string) ([]*models.AgentConversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, node_id, role, content, level, question_id, created_at
		FROM agent_conversations
		WHERE node_id = ? ORDER BY created_at, id
	`, nodeID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	var entries []*models.AgentConversation
	for rows.Next() {
		var (
			entry      models.AgentConversation
			role       string
			questionID sql.NullString
			createdAt  string
		)
		if err := rows.Scan(&entry.ID, &entry.NodeID, &role, &entry.Content,
			&entry.Level, &questionID, &createdAt); err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		entry.Role = models.ConversationRole(role)
		entry.QuestionID = questionID.String
		if t, err := parseTime(createdAt); err == nil {
			entry.CreatedAt = t
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}
