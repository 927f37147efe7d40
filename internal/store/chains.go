package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/arborhq/arbor/pkg/models"
)

const chainColumns = `id, tree_root_id, originating_node_id, current_node_id, question, context,
	status, levels_traversed, answer, resolved_at_level, resolved_at, reached_top,
	ticket_id, created_at`

// CreateChain inserts a new escalation chain.
func (s *Store) CreateChain(chain *models.EscalationChain) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO escalation_chains (`+chainColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		chain.ID,
		chain.TreeRootID,
		chain.OriginatingNodeID,
		chain.CurrentNodeID,
		chain.Question,
		nullString(chain.Context),
		string(chain.Status),
		strings.Join(chain.LevelsTraversed, ","),
		nullString(chain.Answer),
		chain.ResolvedAtLevel,
		nullTime(chain),
		boolInt(chain.ReachedTop),
		nullString(chain.TicketID),
		formatTime(chain.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert chain: %w", err)
	}
	return nil
}

// GetChain retrieves an escalation chain by id. Returns ErrNotFound if absent:
// chain ids are always caller-supplied, so a miss is a caller error.
func (s *Store) GetChain(id string) (*models.EscalationChain, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`SELECT `+chainColumns+` FROM escalation_chains WHERE id = ?`, id)
	chain, err := scanChain(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("chain %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get chain: %w", err)
	}
	return chain, nil
}

// UpdateChain rewrites the mutable fields of an escalation chain.
func (s *Store) UpdateChain(chain *models.EscalationChain) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE escalation_chains SET
			current_node_id = ?, status = ?, levels_traversed = ?, answer = ?,
			resolved_at_level = ?, resolved_at = ?, reached_top = ?, ticket_id = ?
		WHERE id = ?
	`,
		chain.CurrentNodeID,
		string(chain.Status),
		strings.Join(chain.LevelsTraversed, ","),
		nullString(chain.Answer),
		chain.ResolvedAtLevel,
		nullTime(chain),
		boolInt(chain.ReachedTop),
		nullString(chain.TicketID),
		chain.ID,
	)
	if err != nil {
		return fmt.Errorf("update chain: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update chain: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update chain %s: %w", chain.ID, ErrNotFound)
	}
	return nil
}

func nullTime(chain *models.EscalationChain) sql.NullString {
	if chain.ResolvedAt.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(chain.ResolvedAt), Valid: true}
}

func scanChain(row rowScanner) (*models.EscalationChain, error) {
	var (
		chain           models.EscalationChain
		context         sql.NullString
		status          string
		levelsTraversed string
		answer          sql.NullString
		resolvedAt      sql.NullString
		reachedTop      int
		ticketID        sql.NullString
		createdAt       string
	)

	err := row.Scan(
		&chain.ID,
		&chain.TreeRootID,
		&chain.OriginatingNodeID,
		&chain.CurrentNodeID,
		&chain.Question,
		&context,
		&status,
		&levelsTraversed,
		&answer,
		&chain.ResolvedAtLevel,
		&resolvedAt,
		&reachedTop,
		&ticketID,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	chain.Context = context.String
	chain.Status = models.ChainStatus(status)
	if levelsTraversed != "" {
		chain.LevelsTraversed = strings.Split(levelsTraversed, ",")
	}
	chain.Answer = answer.String
	if resolvedAt.Valid {
		if t, err := parseTime(resolvedAt.String); err == nil {
			chain.ResolvedAt = t
		}
	}
	chain.ReachedTop = reachedTop != 0
	chain.TicketID = ticketID.String
	if t, err := parseTime(createdAt); err == nil {
		chain.CreatedAt = t
	}
	return &chain, nil
}
