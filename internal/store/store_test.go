package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/arborhq/arbor/pkg/models"
)

// newTestStore creates an on-disk Store under a test temp dir.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v, want nil", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testNode(id, parentID string, level int) *models.TreeNode {
	return &models.TreeNode{
		ID:        id,
		Name:      "node-" + id,
		AgentType: "manager",
		Level:     level,
		ParentID:  parentID,
		TaskID:    "t1",
		Scope:     "frontend,react",
		MaxFanout: 5,
		Status:    models.NodeStatusIdle,
		CreatedAt: time.Now(),
	}
}

func TestStore_NodeCRUD(t *testing.T) {
	s := newTestStore(t)

	node := testNode("n1", "", 0)
	node.Permissions = []string{"read", "write"}
	if err := s.CreateNode(node); err != nil {
		t.Fatalf("CreateNode() error = %v", err)
	}

	got, err := s.GetNode("n1")
	if err != nil {
		t.Fatalf("GetNode() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetNode() = nil, want node")
	}
	if got.Name != node.Name || got.Scope != node.Scope || got.Level != 0 {
		t.Errorf("GetNode() = %+v, want matching name/scope/level", got)
	}
	if len(got.Permissions) != 2 || got.Permissions[0] != "read" {
		t.Errorf("GetNode() permissions = %v, want [read write]", got.Permissions)
	}

	got.Status = models.NodeStatusWorking
	got.Retries = 2
	if err := s.UpdateNode(got); err != nil {
		t.Fatalf("UpdateNode() error = %v", err)
	}
	updated, _ := s.GetNode("n1")
	if updated.Status != models.NodeStatusWorking || updated.Retries != 2 {
		t.Errorf("after update: status = %v retries = %d, want working/2", updated.Status, updated.Retries)
	}
}

func TestStore_GetNode_Missing(t *testing.T) {
	s := newTestStore(t)

	got, err := s.GetNode("nope")
	if err != nil {
		t.Fatalf("GetNode() error = %v, want nil", err)
	}
	if got != nil {
		t.Errorf("GetNode() = %+v, want nil for missing node", got)
	}
}

func TestStore_UpdateNode_Missing(t *testing.T) {
	s := newTestStore(t)

	err := s.UpdateNode(testNode("ghost", "", 3))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateNode() error = %v, want ErrNotFound", err)
	}
}

func TestStore_ListChildrenAndAncestors(t *testing.T) {
	s := newTestStore(t)

	root := testNode("root", "", 0)
	mid := testNode("mid", "root", 1)
	leaf := testNode("leaf", "mid", 2)
	for _, n := range []*models.TreeNode{root, mid, leaf} {
		if err := s.CreateNode(n); err != nil {
			t.Fatalf("CreateNode(%s) error = %v", n.ID, err)
		}
	}

	children, err := s.ListChildren("root")
	if err != nil {
		t.Fatalf("ListChildren() error = %v", err)
	}
	if len(children) != 1 || children[0].ID != "mid" {
		t.Errorf("ListChildren(root) = %v nodes, want [mid]", len(children))
	}

	ancestors, err := s.ListAncestors("leaf")
	if err != nil {
		t.Fatalf("ListAncestors() error = %v", err)
	}
	if len(ancestors) != 2 {
		t.Fatalf("ListAncestors(leaf) len = %d, want 2", len(ancestors))
	}
	// Nearest first, root-most last.
	if ancestors[0].ID != "mid" || ancestors[1].ID != "root" {
		t.Errorf("ListAncestors(leaf) order = [%s %s], want [mid root]", ancestors[0].ID, ancestors[1].ID)
	}

	ancestors, err = s.ListAncestors("root")
	if err != nil {
		t.Fatalf("ListAncestors(root) error = %v", err)
	}
	if len(ancestors) != 0 {
		t.Errorf("ListAncestors(root) len = %d, want 0", len(ancestors))
	}
}

func TestStore_ListNodesByLevel(t *testing.T) {
	s := newTestStore(t)

	a := testNode("a", "", 2)
	b := testNode("b", "", 2)
	b.TaskID = "t2"
	c := testNode("c", "", 3)
	for _, n := range []*models.TreeNode{a, b, c} {
		if err := s.CreateNode(n); err != nil {
			t.Fatalf("CreateNode(%s) error = %v", n.ID, err)
		}
	}

	all, err := s.ListNodesByLevel(2, "")
	if err != nil {
		t.Fatalf("ListNodesByLevel() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("ListNodesByLevel(2) len = %d, want 2", len(all))
	}

	scoped, err := s.ListNodesByLevel(2, "t2")
	if err != nil {
		t.Fatalf("ListNodesByLevel() error = %v", err)
	}
	if len(scoped) != 1 || scoped[0].ID != "b" {
		t.Errorf("ListNodesByLevel(2, t2) = %v, want [b]", scoped)
	}
}

func TestStore_DeleteNodesByTask(t *testing.T) {
	s := newTestStore(t)

	a := testNode("a", "", 1)
	b := testNode("b", "", 2)
	other := testNode("other", "", 1)
	other.TaskID = "t9"
	for _, n := range []*models.TreeNode{a, b, other} {
		if err := s.CreateNode(n); err != nil {
			t.Fatalf("CreateNode(%s) error = %v", n.ID, err)
		}
	}

	deleted, err := s.DeleteNodesByTask("t1")
	if err != nil {
		t.Fatalf("DeleteNodesByTask() error = %v", err)
	}
	if deleted != 2 {
		t.Errorf("DeleteNodesByTask() = %d, want 2", deleted)
	}
	count, _ := s.CountNodes()
	if count != 1 {
		t.Errorf("CountNodes() = %d, want 1", count)
	}
}

func TestStore_ChainRoundTrip(t *testing.T) {
	s := newTestStore(t)

	chain := &models.EscalationChain{
		ID:                "c1",
		TreeRootID:        "root",
		OriginatingNodeID: "leaf",
		CurrentNodeID:     "leaf",
		Question:          "which auth provider?",
		Status:            models.ChainStatusEscalating,
		ResolvedAtLevel:   -1,
		CreatedAt:         time.Now(),
	}
	if err := s.CreateChain(chain); err != nil {
		t.Fatalf("CreateChain() error = %v", err)
	}

	got, err := s.GetChain("c1")
	if err != nil {
		t.Fatalf("GetChain() error = %v", err)
	}
	if got.Question != chain.Question || got.Status != models.ChainStatusEscalating {
		t.Errorf("GetChain() = %+v, want question/status round-trip", got)
	}
	if len(got.LevelsTraversed) != 0 {
		t.Errorf("LevelsTraversed = %v, want empty", got.LevelsTraversed)
	}

	got.Status = models.ChainStatusAnswered
	got.Answer = "use oauth"
	got.LevelsTraversed = []string{"leaf", "mid"}
	got.ResolvedAt = time.Now()
	got.ResolvedAtLevel = 2
	if err := s.UpdateChain(got); err != nil {
		t.Fatalf("UpdateChain() error = %v", err)
	}

	final, _ := s.GetChain("c1")
	if final.Answer != "use oauth" || len(final.LevelsTraversed) != 2 {
		t.Errorf("after update: answer = %q traversed = %v", final.Answer, final.LevelsTraversed)
	}
	if final.ResolvedAt.IsZero() {
		t.Error("ResolvedAt should survive the round trip")
	}
}

func TestStore_GetChain_Missing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetChain("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetChain() error = %v, want ErrNotFound", err)
	}
}

func TestStore_Conversations(t *testing.T) {
	s := newTestStore(t)

	first := &models.AgentConversation{
		ID: "e1", NodeID: "n1", Role: models.RoleUser,
		Content: "question text", Level: 4, QuestionID: "c1",
		CreatedAt: time.Now(),
	}
	second := &models.AgentConversation{
		ID: "e2", NodeID: "n1", Role: models.RoleAgent,
		Content: "answer text", Level: 4,
		CreatedAt: time.Now().Add(time.Second),
	}
	for _, e := range []*models.AgentConversation{first, second} {
		if err := s.CreateConversation(e); err != nil {
			t.Fatalf("CreateConversation() error = %v", err)
		}
	}

	entries, err := s.ListConversationsByNode("n1")
	if err != nil {
		t.Fatalf("ListConversationsByNode() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].ID != "e1" || entries[1].ID != "e2" {
		t.Errorf("entries out of append order: [%s %s]", entries[0].ID, entries[1].ID)
	}
	if entries[0].QuestionID != "c1" {
		t.Errorf("QuestionID = %q, want c1", entries[0].QuestionID)
	}
}

func TestStore_NicheCatalog(t *testing.T) {
	s := newTestStore(t)

	defs := []*models.NicheAgentDefinition{
		{ID: "d1", Name: "ReactSpecialist", Level: 5, Specialty: "react", Area: "frontend", Domain: "frontend"},
		{ID: "d2", Name: "SchemaSpecialist", Level: 5, Specialty: "schema", Area: "database", Domain: "backend"},
		{ID: "d3", Name: "CSSWorker", Level: 6, Specialty: "css", Area: "frontend", Domain: "frontend"},
	}
	for _, d := range defs {
		if err := s.CreateNicheAgent(d); err != nil {
			t.Fatalf("CreateNicheAgent() error = %v", err)
		}
	}

	atFive, err := s.ListNicheAgentsByLevel(5)
	if err != nil {
		t.Fatalf("ListNicheAgentsByLevel() error = %v", err)
	}
	if len(atFive) != 2 {
		t.Errorf("ListNicheAgentsByLevel(5) len = %d, want 2", len(atFive))
	}

	frontend, err := s.ListNicheAgentsByDomain("frontend")
	if err != nil {
		t.Fatalf("ListNicheAgentsByDomain() error = %v", err)
	}
	if len(frontend) != 2 {
		t.Errorf("ListNicheAgentsByDomain(frontend) len = %d, want 2", len(frontend))
	}
}

func TestStore_Templates(t *testing.T) {
	s := newTestStore(t)

	missing, err := s.GetTemplate("nope")
	if err != nil {
		t.Fatalf("GetTemplate() error = %v", err)
	}
	if missing != nil {
		t.Errorf("GetTemplate(missing) = %q, want nil", missing)
	}

	raw := []byte(`[{"name":"BossAgent","agent_type":"boss","level":0,"scope":"all"}]`)
	if err := s.SaveTemplate("standard", raw); err != nil {
		t.Fatalf("SaveTemplate() error = %v", err)
	}
	got, err := s.GetTemplate("standard")
	if err != nil {
		t.Fatalf("GetTemplate() error = %v", err)
	}
	if string(got) != string(raw) {
		t.Errorf("GetTemplate() = %s, want %s", got, raw)
	}

	// Saving again replaces.
	raw2 := []byte(`[]`)
	if err := s.SaveTemplate("standard", raw2); err != nil {
		t.Fatalf("SaveTemplate() replace error = %v", err)
	}
	got, _ = s.GetTemplate("standard")
	if string(got) != "[]" {
		t.Errorf("GetTemplate() after replace = %s, want []", got)
	}
}

func TestStore_DecisionSearch(t *testing.T) {
	s := newTestStore(t)

	decisions := []*models.Decision{
		{ID: "d1", TaskID: "t1", Topic: "authentication", Decision: "use oauth with PKCE", CreatedAt: time.Now()},
		{ID: "d2", TaskID: "t1", Topic: "storage", Decision: "sqlite for local state", CreatedAt: time.Now()},
		{ID: "d3", TaskID: "t2", Topic: "authentication", Decision: "api keys only", CreatedAt: time.Now()},
	}
	for _, d := range decisions {
		if err := s.CreateDecision(d); err != nil {
			t.Fatalf("CreateDecision() error = %v", err)
		}
	}

	got, err := s.SearchDecisions("t1", "auth")
	if err != nil {
		t.Fatalf("SearchDecisions() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "d1" {
		t.Errorf("SearchDecisions(t1, auth) = %v, want [d1]", got)
	}

	// Case-insensitive, matches decision text too.
	got, err = s.SearchDecisions("t1", "SQLITE")
	if err != nil {
		t.Fatalf("SearchDecisions() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "d2" {
		t.Errorf("SearchDecisions(t1, SQLITE) = %v, want [d2]", got)
	}
}

func TestStore_DocumentsAndPlans(t *testing.T) {
	s := newTestStore(t)

	if err := s.CreatePlan(&models.Plan{ID: "p1", Name: "checkout flow", Configuration: "stripe"}); err != nil {
		t.Fatalf("CreatePlan() error = %v", err)
	}
	if err := s.CreateDesignPage(&models.DesignPage{ID: "pg1", PlanID: "p1", Name: "Cart", Route: "/cart", Requirements: "show totals"}); err != nil {
		t.Fatalf("CreateDesignPage() error = %v", err)
	}
	if err := s.CreateDocument(&models.Document{ID: "doc1", PlanID: "p1", Name: "payments", Summary: "payment provider notes", Content: "stripe webhooks"}); err != nil {
		t.Fatalf("CreateDocument() error = %v", err)
	}

	pages, err := s.ListDesignPagesByPlan("p1")
	if err != nil {
		t.Fatalf("ListDesignPagesByPlan() error = %v", err)
	}
	if len(pages) != 1 || pages[0].Route != "/cart" {
		t.Errorf("ListDesignPagesByPlan() = %v, want cart page", pages)
	}

	docs, err := s.SearchDocuments("p1", "webhook")
	if err != nil {
		t.Fatalf("SearchDocuments() error = %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "doc1" {
		t.Errorf("SearchDocuments(p1, webhook) = %v, want [doc1]", docs)
	}

	plans, err := s.ListAllPlans()
	if err != nil {
		t.Fatalf("ListAllPlans() error = %v", err)
	}
	if len(plans) != 1 || plans[0].Name != "checkout flow" {
		t.Errorf("ListAllPlans() = %v, want [checkout flow]", plans)
	}
}
