package tree

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/arborhq/arbor/internal/bus"
	"github.com/arborhq/arbor/internal/logging"
	"github.com/arborhq/arbor/internal/store"
	"github.com/arborhq/arbor/pkg/models"
)

// Options configures an Engine. Zero values get usable defaults.
type Options struct {
	// Publisher receives every engine event; defaults to a no-op sink.
	Publisher bus.Publisher
	// Log is the append-only run log; defaults to a no-op sink.
	Log logging.Sink
	// Delayer schedules lifecycle auto-resets; defaults to a running Scheduler.
	Delayer Delayer
	// CompleteResetDelay is the idle-reset delay after completion (default 10s).
	CompleteResetDelay time.Duration
	// FailResetDelay is the idle-reset delay after failure (default 15s).
	// Longer than CompleteResetDelay so observers have time to notice.
	FailResetDelay time.Duration
	// DefaultTemplate names the template used when the caller gives none.
	DefaultTemplate string
}

// Engine coordinates the agent tree: skeleton construction, lazy spawning,
// context slicing, escalation, delegation, lifecycle, and maintenance.
type Engine struct {
	store   Store
	pub     bus.Publisher
	log     logging.Sink
	delayer Delayer

	completeResetDelay time.Duration
	failResetDelay     time.Duration
	defaultTemplate    string
}

// NewEngine creates an Engine over the given store.
func NewEngine(store Store, opts Options) *Engine {
	if opts.Publisher == nil {
		opts.Publisher = bus.NopPublisher{}
	}
	if opts.Log == nil {
		opts.Log = logging.NopSink{}
	}
	if opts.Delayer == nil {
		opts.Delayer = NewScheduler()
	}
	if opts.CompleteResetDelay == 0 {
		opts.CompleteResetDelay = 10 * time.Second
	}
	if opts.FailResetDelay == 0 {
		opts.FailResetDelay = 15 * time.Second
	}
	if opts.DefaultTemplate == "" {
		opts.DefaultTemplate = "standard"
	}

	return &Engine{
		store:              store,
		pub:                opts.Publisher,
		log:                opts.Log,
		delayer:            opts.Delayer,
		completeResetDelay: opts.CompleteResetDelay,
		failResetDelay:     opts.FailResetDelay,
		defaultTemplate:    opts.DefaultTemplate,
	}
}

// GetNode returns a node by id, or nil if it does not exist.
func (e *Engine) GetNode(id string) (*models.TreeNode, error) {
	return e.store.GetNode(id)
}

// emit publishes an event fire-and-forget.
func (e *Engine) emit(event bus.Event) {
	e.pub.Publish(event)
}

// logf appends a formatted line to the run log.
func (e *Engine) logf(format string, args ...interface{}) {
	e.log.AppendLine(fmt.Sprintf(format, args...))
}

// newNodeID generates a node or conversation id.
func newNodeID() string {
	return uuid.New().String()
}

// newChainID generates a ULID for an escalation chain; chain ids sort by
// creation time.
func newChainID() string {
	return ulid.Make().String()
}

// appendConversation writes one conversation entry on a node.
func (e *Engine) appendConversation(node *models.TreeNode, role models.ConversationRole, content, questionID string) error {
	return e.store.CreateConversation(&models.AgentConversation{
		ID:         newNodeID(),
		NodeID:     node.ID,
		Role:       role,
		Content:    content,
		Level:      node.Level,
		QuestionID: questionID,
		CreatedAt:  time.Now(),
	})
}

// isNotFound reports whether err signals a missing record. Delayed callbacks
// and counter updates swallow these so they can race node deletion safely.
func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}

// truncate shortens s to at most n runes, appending an ellipsis when cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
