package store

import (
	"database/sql"
	"fmt"

	"github.com/arborhq/arbor/pkg/models"
)

// CreateNicheAgent adds a definition to the niche catalog.
func (s *Store) CreateNicheAgent(def *models.NicheAgentDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO niche_agents (id, name, level, specialty, area, domain, input_contract, output_contract)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		def.ID,
		def.Name,
		def.Level,
		def.Specialty,
		def.Area,
		def.Domain,
		nullString(def.InputContract),
		nullString(def.OutputContract),
	)
	if err != nil {
		return fmt.Errorf("insert niche agent: %w", err)
	}
	return nil
}

// ListNicheAgentsByLevel returns every catalog entry at the given level.
func (s *Store) ListNicheAgentsByLevel(level int) ([]*models.NicheAgentDefinition, error) {
	return s.listNicheAgents(`
		SELECT id, name, level, specialty, area, domain, input_contract, output_contract
		FROM niche_agents WHERE level = ? ORDER BY name
	`, level)
}

// ListNicheAgentsByDomain returns every catalog entry in the given domain.
func (s *Store) ListNicheAgentsByDomain(domain string) ([]*models.NicheAgentDefinition, error) {
	return s.listNicheAgents(`
		SELECT id, name, level, specialty, area, domain, input_contract, output_contract
		FROM niche_agents WHERE domain = ? ORDER BY level, name
	`, domain)
}

// CountNicheAgents returns the total number of catalog entries.
func (s *Store) CountNicheAgents() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM niche_agents`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count niche agents: %w", err)
	}
	return count, nil
}

func (s *Store) listNicheAgents(query string, arg interface{}) ([]*models.NicheAgentDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(query, arg)
	if err != nil {
		return nil, fmt.Errorf("list niche agents: %w", err)
	}
	defer rows.Close()

	var defs []*models.NicheAgentDefinition
	for rows.Next() {
		var (
			def            models.NicheAgentDefinition
			inputContract  sql.NullString
			outputContract sql.NullString
		)
		if err := rows.Scan(&def.ID, &def.Name, &def.Level, &def.Specialty,
			&def.Area, &def.Domain, &inputContract, &outputContract); err != nil {
			return nil, fmt.Errorf("scan niche agent: %w", err)
		}
		def.InputContract = inputContract.String
		def.OutputContract = outputContract.String
		defs = append(defs, &def)
	}
	return defs, rows.Err()
}
