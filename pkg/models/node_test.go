package models

import (
	"reflect"
	"testing"
)

func TestNodeStatus_Valid(t *testing.T) {
	tests := []struct {
		name   string
		status NodeStatus
		want   bool
	}{
		{"idle is valid", NodeStatusIdle, true},
		{"working is valid", NodeStatusWorking, true},
		{"waiting_child is valid", NodeStatusWaitingChild, true},
		{"active is valid", NodeStatusActive, true},
		{"completed is valid", NodeStatusCompleted, true},
		{"failed is valid", NodeStatusFailed, true},
		{"escalated is valid", NodeStatusEscalated, true},
		{"pruned is valid", NodeStatusPruned, true},
		{"empty string is invalid", NodeStatus(""), false},
		{"unknown status is invalid", NodeStatus("running"), false},
		{"typo status is invalid", NodeStatus("complete"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.Valid(); got != tt.want {
				t.Errorf("NodeStatus(%q).Valid() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestSplitScope(t *testing.T) {
	tests := []struct {
		name  string
		scope string
		want  []string
	}{
		{"simple list", "frontend,react", []string{"frontend", "react"}},
		{"trims and lowercases", " Frontend , REACT ", []string{"frontend", "react"}},
		{"drops empties", "frontend,,react,", []string{"frontend", "react"}},
		{"empty scope", "", []string{}},
		{"only commas", ",,,", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitScope(tt.scope); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitScope(%q) = %v, want %v", tt.scope, got, tt.want)
			}
		})
	}
}

func TestTreeNode_ScopeKeywords(t *testing.T) {
	node := &TreeNode{Scope: "database, Schema ,migrations"}
	want := []string{"database", "schema", "migrations"}
	if got := node.ScopeKeywords(); !reflect.DeepEqual(got, want) {
		t.Errorf("ScopeKeywords() = %v, want %v", got, want)
	}
}
