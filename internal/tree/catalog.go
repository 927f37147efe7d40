package tree

import (
	"fmt"

	"github.com/arborhq/arbor/pkg/models"
)

// nicheRole is one rung of a deep branch: every area gets the same ladder of
// roles from lead down to worker.
type nicheRole struct {
	level  int
	suffix string
}

var nicheRoles = []nicheRole{
	{5, "Lead"},
	{6, "Planner"},
	{7, "Builder"},
	{8, "Reviewer"},
	{9, "Worker"},
}

// DefaultNicheCatalog returns the starter niche-agent catalog: a full
// lead-to-worker ladder for every area the standard skeleton manages. Each
// definition's specialty and area both name the area keyword so spawning can
// match it against manager scopes and hang deeper levels under the right
// branch.
func DefaultNicheCatalog() []*models.NicheAgentDefinition {
	areas := []struct {
		key     string
		display string
		domain  string
	}{
		{"components", "Component", "frontend"},
		{"state", "State", "frontend"},
		{"styling", "Styling", "frontend"},
		{"api", "API", "backend"},
		{"database", "Database", "backend"},
		{"services", "Services", "backend"},
		{"deployment", "Deployment", "infrastructure"},
		{"monitoring", "Monitoring", "infrastructure"},
		{"security", "Security", "infrastructure"},
		{"testing", "Testing", "quality"},
		{"review", "Review", "quality"},
		{"performance", "Performance", "quality"},
	}

	var defs []*models.NicheAgentDefinition
	for _, a := range areas {
		for _, r := range nicheRoles {
			defs = append(defs, &models.NicheAgentDefinition{
				ID:             fmt.Sprintf("niche-%s-l%d", a.key, r.level),
				Name:           a.display + r.suffix,
				Level:          r.level,
				Specialty:      a.key,
				Area:           a.key,
				Domain:         a.domain,
				InputContract:  "task description with " + a.key + " scope",
				OutputContract: "completed " + a.key + " work item",
			})
		}
	}
	return defs
}

// SeedNicheCatalog loads definitions into an empty catalog and returns how
// many were inserted. A non-empty catalog is left untouched so operator
// customizations survive restarts.
func (e *Engine) SeedNicheCatalog(defs []*models.NicheAgentDefinition) (int, error) {
	count, err := e.store.CountNicheAgents()
	if err != nil {
		return 0, fmt.Errorf("seed niche catalog: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	inserted := 0
	for _, def := range defs {
		if err := e.store.CreateNicheAgent(def); err != nil {
			return inserted, fmt.Errorf("seed niche catalog: %s: %w", def.ID, err)
		}
		inserted++
	}

	e.logf("niche catalog seeded: %d definitions", inserted)
	return inserted, nil
}
