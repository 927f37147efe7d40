package template

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse_Valid(t *testing.T) {
	raw := []byte(`[
		{"name": "Root", "agent_type": "boss", "level": 0, "scope": "all", "max_fanout": 2},
		{"name": "Child", "agent_type": "manager", "level": 1, "scope": "backend", "parent": "Root"}
	]`)

	nodes, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("len(nodes) = %d, want 2", len(nodes))
	}
	if nodes[0].Name != "Root" || nodes[1].Parent != "Root" {
		t.Errorf("nodes = %+v, want Root with Child", nodes)
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{{{`},
		{"not an array", `{"name": "Root"}`},
		{"empty array", `[]`},
		{"missing name", `[{"agent_type": "boss", "level": 0, "scope": "all"}]`},
		{"level beyond skeleton", `[{"name": "X", "agent_type": "boss", "level": 5, "scope": "all"}]`},
		{"negative level", `[{"name": "X", "agent_type": "boss", "level": -1, "scope": "all"}]`},
		{"parent defined later", `[
			{"name": "Child", "agent_type": "manager", "level": 1, "scope": "x", "parent": "Root"},
			{"name": "Root", "agent_type": "boss", "level": 0, "scope": "all"}
		]`},
		{"duplicate names", `[
			{"name": "Root", "agent_type": "boss", "level": 0, "scope": "all"},
			{"name": "Root", "agent_type": "manager", "level": 1, "scope": "x", "parent": "Root"}
		]`},
		{"two roots", `[
			{"name": "A", "agent_type": "boss", "level": 0, "scope": "all"},
			{"name": "B", "agent_type": "boss", "level": 0, "scope": "all"}
		]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.raw)); err == nil {
				t.Error("Parse() error = nil, want rejection")
			}
		})
	}
}

func TestStandard_Shape(t *testing.T) {
	nodes := Standard()

	if len(nodes) < 30 || len(nodes) > 60 {
		t.Errorf("len(Standard()) = %d, want between 30 and 60", len(nodes))
	}
	if nodes[0].Name != "BossAgent" || nodes[0].Level != 0 {
		t.Errorf("root = %+v, want BossAgent at level 0", nodes[0])
	}

	roots := 0
	perLevel := make(map[int]int)
	for _, n := range nodes {
		perLevel[n.Level]++
		if n.Parent == "" {
			roots++
		}
		if n.Level > 4 {
			t.Errorf("node %q at level %d, skeleton must stay within 0-4", n.Name, n.Level)
		}
	}
	if roots != 1 {
		t.Errorf("roots = %d, want 1", roots)
	}
	if perLevel[2] != 4 {
		t.Errorf("domain orchestrators = %d, want 4", perLevel[2])
	}
	if perLevel[3] != 12 {
		t.Errorf("area orchestrators = %d, want 12", perLevel[3])
	}
}

func TestStandard_ValidatesAgainstSchema(t *testing.T) {
	raw, err := Encode(Standard())
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	nodes, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse(Standard) error = %v", err)
	}
	if len(nodes) != len(Standard()) {
		t.Errorf("round trip len = %d, want %d", len(nodes), len(Standard()))
	}
}

func TestLoadFile_YAML(t *testing.T) {
	content := strings.TrimSpace(`
- name: Root
  agent_type: boss
  level: 0
  scope: all
  max_fanout: 2
- name: Child
  agent_type: manager
  level: 1
  scope: backend
  parent: Root
`)
	path := filepath.Join(t.TempDir(), "tpl.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	nodes, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(nodes) != 2 || nodes[1].Parent != "Root" {
		t.Errorf("LoadFile() = %+v, want parsed Root/Child", nodes)
	}
}

func TestLoadFile_RejectsInvalidYAML(t *testing.T) {
	content := `
- name: Child
  agent_type: manager
  level: 7
  scope: backend
`
	path := filepath.Join(t.TempDir(), "tpl.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile() error = nil, want schema rejection for level 7")
	}
}
