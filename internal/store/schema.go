package store

// migrate creates the necessary tables and indexes if they don't exist.
func (s *Store) migrate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version")
	if err := row.Scan(&currentVersion); err != nil {
		return err
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migrationV1Tree},
		{2, migrationV2Knowledge},
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}

		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(m.sql); err != nil {
			tx.Rollback()
			return err
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", m.version); err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}

	return nil
}

const migrationV1Tree = `
CREATE TABLE tree_nodes (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	agent_type TEXT NOT NULL,
	level INTEGER NOT NULL,
	parent_id TEXT,
	task_id TEXT,
	scope TEXT NOT NULL DEFAULT '',
	permissions TEXT NOT NULL DEFAULT '',
	max_fanout INTEGER NOT NULL DEFAULT 0,
	max_depth_below INTEGER NOT NULL DEFAULT 0,
	escalation_threshold INTEGER NOT NULL DEFAULT 0,
	escalation_target_id TEXT,
	context_isolation INTEGER NOT NULL DEFAULT 0,
	history_isolation INTEGER NOT NULL DEFAULT 0,
	status TEXT NOT NULL,
	retries INTEGER NOT NULL DEFAULT 0,
	escalations INTEGER NOT NULL DEFAULT 0,
	tokens_consumed INTEGER NOT NULL DEFAULT 0,
	input_contract TEXT,
	output_contract TEXT,
	niche_definition_id TEXT,
	created_at TEXT NOT NULL
);
CREATE INDEX idx_tree_nodes_parent ON tree_nodes(parent_id);
CREATE INDEX idx_tree_nodes_level ON tree_nodes(level);
CREATE INDEX idx_tree_nodes_task ON tree_nodes(task_id);

CREATE TABLE escalation_chains (
	id TEXT PRIMARY KEY,
	tree_root_id TEXT NOT NULL,
	originating_node_id TEXT NOT NULL,
	current_node_id TEXT NOT NULL,
	question TEXT NOT NULL,
	context TEXT,
	status TEXT NOT NULL,
	levels_traversed TEXT NOT NULL DEFAULT '',
	answer TEXT,
	resolved_at_level INTEGER NOT NULL DEFAULT -1,
	resolved_at TEXT,
	reached_top INTEGER NOT NULL DEFAULT 0,
	ticket_id TEXT,
	created_at TEXT NOT NULL
);

CREATE TABLE agent_conversations (
	id TEXT PRIMARY KEY,
	node_id TEXT NOT NULL,
	role TEXT NOT NULL,
	content TEXT NOT NULL,
	level INTEGER NOT NULL,
	question_id TEXT,
	created_at TEXT NOT NULL
);
CREATE INDEX idx_conversations_node ON agent_conversations(node_id);

CREATE TABLE niche_agents (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	level INTEGER NOT NULL,
	specialty TEXT NOT NULL,
	area TEXT NOT NULL,
	domain TEXT NOT NULL,
	input_contract TEXT,
	output_contract TEXT
);
CREATE INDEX idx_niche_agents_level ON niche_agents(level);
CREATE INDEX idx_niche_agents_domain ON niche_agents(domain);

CREATE TABLE tree_templates (
	name TEXT PRIMARY KEY,
	nodes_json TEXT NOT NULL,
	created_at TEXT NOT NULL
);
`

const migrationV2Knowledge = `
CREATE TABLE decisions (
	id TEXT PRIMARY KEY,
	task_id TEXT NOT NULL,
	topic TEXT NOT NULL,
	decision TEXT NOT NULL,
	rationale TEXT,
	created_at TEXT NOT NULL
);
CREATE INDEX idx_decisions_task ON decisions(task_id);

CREATE TABLE design_pages (
	id TEXT PRIMARY KEY,
	plan_id TEXT NOT NULL,
	name TEXT NOT NULL,
	route TEXT,
	requirements TEXT
);
CREATE INDEX idx_design_pages_plan ON design_pages(plan_id);

CREATE TABLE documents (
	id TEXT PRIMARY KEY,
	plan_id TEXT NOT NULL,
	name TEXT NOT NULL,
	summary TEXT,
	content TEXT
);
CREATE INDEX idx_documents_plan ON documents(plan_id);

CREATE TABLE plans (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	configuration TEXT
);
`
