package store

import (
	"database/sql"
	"fmt"

	"github.com/arborhq/arbor/pkg/models"
)

// CreateDecision records a decision against a task.
func (s *Store) CreateDecision(d *models.Decision) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO decisions (id, task_id, topic, decision, rationale, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, d.ID, d.TaskID, d.Topic, d.Decision, nullString(d.Rationale), formatTime(d.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert decision: %w", err)
	}
	return nil
}

// SearchDecisions returns decisions for a task whose topic or text contains
// the given keyword (case-insensitive).
func (s *Store) SearchDecisions(taskID, keyword string) ([]*models.Decision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pattern := "%" + keyword + "%"
	rows, err := s.db.Query(`
		SELECT id, task_id, topic, decision, rationale, created_at
		FROM decisions
		WHERE task_id = ? AND (topic LIKE ? COLLATE NOCASE OR decision LIKE ? COLLATE NOCASE)
		ORDER BY created_at DESC
	`, taskID, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("search decisions: %w", err)
	}
	defer rows.Close()

	var decisions []*models.Decision
	for rows.Next() {
		var (
			d         models.Decision
			rationale sql.NullString
			createdAt string
		)
		if err := rows.Scan(&d.ID, &d.TaskID, &d.Topic, &d.Decision, &rationale, &createdAt); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		d.Rationale = rationale.String
		if t, err := parseTime(createdAt); err == nil {
			d.CreatedAt = t
		}
		decisions = append(decisions, &d)
	}
	return decisions, rows.Err()
}

// CreateDesignPage records a design page against a plan.
func (s *Store) CreateDesignPage(p *models.DesignPage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO design_pages (id, plan_id, name, route, requirements)
		VALUES (?, ?, ?, ?, ?)
	`, p.ID, p.PlanID, p.Name, nullString(p.Route), nullString(p.Requirements))
	if err != nil {
		return fmt.Errorf("insert design page: %w", err)
	}
	return nil
}

// ListDesignPagesByPlan returns every design page attached to a plan.
func (s *Store) ListDesignPagesByPlan(planID string) ([]*models.DesignPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, plan_id, name, route, requirements
		FROM design_pages WHERE plan_id = ? ORDER BY name
	`, planID)
	if err != nil {
		return nil, fmt.Errorf("list design pages: %w", err)
	}
	defer rows.Close()

	var pages []*models.DesignPage
	for rows.Next() {
		var (
			p            models.DesignPage
			route        sql.NullString
			requirements sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.PlanID, &p.Name, &route, &requirements); err != nil {
			return nil, fmt.Errorf("scan design page: %w", err)
		}
		p.Route = route.String
		p.Requirements = requirements.String
		pages = append(pages, &p)
	}
	return pages, rows.Err()
}

// CreateDocument records a support document against a plan.
func (s *Store) CreateDocument(d *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO documents (id, plan_id, name, summary, content)
		VALUES (?, ?, ?, ?, ?)
	`, d.ID, d.PlanID, d.Name, nullString(d.Summary), nullString(d.Content))
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// SearchDocuments returns a plan's support documents whose name, summary, or
// content contains the given keyword (case-insensitive).
func (s *Store) SearchDocuments(planID, keyword string) ([]*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pattern := "%" + keyword + "%"
	rows, err := s.db.Query(`
		SELECT id, plan_id, name, summary, content
		FROM documents
		WHERE plan_id = ? AND (name LIKE ? COLLATE NOCASE OR summary LIKE ? COLLATE NOCASE OR content LIKE ? COLLATE NOCASE)
		ORDER BY name
	`, planID, pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		var (
			d       models.Document
			summary sql.NullString
			content sql.NullString
		)
		if err := rows.Scan(&d.ID, &d.PlanID, &d.Name, &summary, &content); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		d.Summary = summary.String
		d.Content = content.String
		docs = append(docs, &d)
	}
	return docs, rows.Err()
}

// CreatePlan records a plan.
func (s *Store) CreatePlan(p *models.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO plans (id, name, configuration) VALUES (?, ?, ?)
	`, p.ID, p.Name, nullString(p.Configuration))
	if err != nil {
		return fmt.Errorf("insert plan: %w", err)
	}
	return nil
}

// ListAllPlans returns every plan in the store.
func (s *Store) ListAllPlans() ([]*models.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, configuration FROM plans ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var plans []*models.Plan
	for rows.Next() {
		var (
			p             models.Plan
			configuration sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Name, &configuration); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		p.Configuration = configuration.String
		plans = append(plans, &p)
	}
	return plans, rows.Err()
}
