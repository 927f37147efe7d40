package tree

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/arborhq/arbor/internal/bus"
	"github.com/arborhq/arbor/internal/store"
	"github.com/arborhq/arbor/pkg/models"
)

// capturePublisher records every published event for assertions.
type capturePublisher struct {
	mu     sync.Mutex
	events []bus.Event
}

func (p *capturePublisher) Publish(event bus.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *capturePublisher) kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	kinds := make([]string, len(p.events))
	for i, e := range p.events {
		kinds[i] = e.Kind()
	}
	return kinds
}

func (p *capturePublisher) has(kind string) bool {
	for _, k := range p.kinds() {
		if k == kind {
			return true
		}
	}
	return false
}

// manualDelayer captures scheduled callbacks so tests fire them on demand.
type manualDelayer struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]scheduledTask
}

type scheduledTask struct {
	delay time.Duration
	fn    func()
}

func newManualDelayer() *manualDelayer {
	return &manualDelayer{tasks: make(map[int64]scheduledTask)}
}

func (m *manualDelayer) After(d time.Duration, fn func()) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.tasks[m.nextID] = scheduledTask{delay: d, fn: fn}
	return m.nextID
}

func (m *manualDelayer) Cancel(id int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[id]; !ok {
		return false
	}
	delete(m.tasks, id)
	return true
}

// fireAll runs and clears every pending callback.
func (m *manualDelayer) fireAll() {
	m.mu.Lock()
	pending := make([]func(), 0, len(m.tasks))
	for _, t := range m.tasks {
		pending = append(pending, t.fn)
	}
	m.tasks = make(map[int64]scheduledTask)
	m.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
}

// delays returns the delays of all pending tasks.
func (m *manualDelayer) delays() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []time.Duration
	for _, t := range m.tasks {
		out = append(out, t.delay)
	}
	return out
}

type testEnv struct {
	engine  *Engine
	store   *store.Store
	pub     *capturePublisher
	delayer *manualDelayer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	pub := &capturePublisher{}
	delayer := newManualDelayer()
	engine := NewEngine(s, Options{Publisher: pub, Delayer: delayer})
	return &testEnv{engine: engine, store: s, pub: pub, delayer: delayer}
}

// addNode creates a node with sensible defaults and returns it.
func (env *testEnv) addNode(t *testing.T, id, parentID string, level int, scope string) *models.TreeNode {
	t.Helper()
	node := &models.TreeNode{
		ID:                 id,
		Name:               "node-" + id,
		AgentType:          "manager",
		Level:              level,
		ParentID:           parentID,
		EscalationTargetID: parentID,
		TaskID:             "t1",
		Scope:              scope,
		MaxFanout:          5,
		Status:             models.NodeStatusIdle,
		CreatedAt:          time.Now(),
	}
	if err := env.store.CreateNode(node); err != nil {
		t.Fatalf("create node %s: %v", id, err)
	}
	return node
}

// addAgentEntry appends an agent-role conversation entry to a node.
func (env *testEnv) addAgentEntry(t *testing.T, nodeID, content string) {
	t.Helper()
	err := env.store.CreateConversation(&models.AgentConversation{
		ID:        newNodeID(),
		NodeID:    nodeID,
		Role:      models.RoleAgent,
		Content:   content,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("create conversation: %v", err)
	}
}

// chainOfNodes creates a parent chain root -> ... -> leaf at levels 0..n-1
// and returns the nodes root-first.
func (env *testEnv) chainOfNodes(t *testing.T, n int) []*models.TreeNode {
	t.Helper()
	nodes := make([]*models.TreeNode, n)
	parent := ""
	for i := 0; i < n; i++ {
		id := string(rune('a' + i))
		nodes[i] = env.addNode(t, id, parent, i, "scope"+id)
		parent = id
	}
	return nodes
}
