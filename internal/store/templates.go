package store

import (
	"database/sql"
	"fmt"
	"time"
)

// SaveTemplate stores or replaces a named template's raw JSON node list.
// Validation happens in the template package; the store keeps bytes.
func (s *Store) SaveTemplate(name string, nodesJSON []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO tree_templates (name, nodes_json, created_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET nodes_json = excluded.nodes_json
	`, name, string(nodesJSON), formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("save template: %w", err)
	}
	return nil
}

// GetTemplate returns the raw JSON node list for a named template, or
// (nil, nil) if no template with that name exists.
func (s *Store) GetTemplate(name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var nodesJSON string
	err := s.db.QueryRow("SELECT nodes_json FROM tree_templates WHERE name = ?", name).Scan(&nodesJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}
	return []byte(nodesJSON), nil
}
