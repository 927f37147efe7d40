package models

import "time"

// Decision is a previously made decision recorded against a task, searchable
// by topic keyword before a question is escalated to a human.
type Decision struct {
	// ID is the unique identifier for this decision.
	ID string `json:"id"`
	// TaskID scopes the decision to one task.
	TaskID string `json:"task_id"`
	// Topic is the subject the decision covers.
	Topic string `json:"topic"`
	// Decision is the decision text.
	Decision string `json:"decision"`
	// Rationale is optional supporting reasoning.
	Rationale string `json:"rationale,omitempty"`
	// CreatedAt is when the decision was recorded.
	CreatedAt time.Time `json:"created_at"`
}

// DesignPage is one page of design data attached to a plan.
type DesignPage struct {
	// ID is the unique identifier for this page.
	ID string `json:"id"`
	// PlanID scopes the page to one plan.
	PlanID string `json:"plan_id"`
	// Name is the page's display name.
	Name string `json:"name"`
	// Route is the page's navigation route.
	Route string `json:"route,omitempty"`
	// Requirements is the page's requirements text.
	Requirements string `json:"requirements,omitempty"`
}

// Document is a support document attached to a plan.
type Document struct {
	// ID is the unique identifier for this document.
	ID string `json:"id"`
	// PlanID scopes the document to one plan.
	PlanID string `json:"plan_id"`
	// Name is the document's display name.
	Name string `json:"name"`
	// Summary is a short abstract of the document.
	Summary string `json:"summary,omitempty"`
	// Content is the document body.
	Content string `json:"content,omitempty"`
}

// Plan is a high-level plan record; its name and configuration text are the
// last source consulted by the quick local search.
type Plan struct {
	// ID is the unique identifier for this plan.
	ID string `json:"id"`
	// Name is the plan's display name.
	Name string `json:"name"`
	// Configuration is free-form configuration text.
	Configuration string `json:"configuration,omitempty"`
}
