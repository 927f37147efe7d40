package main

import (
	"fmt"

	"github.com/arborhq/arbor/internal/bus"
	"github.com/arborhq/arbor/internal/config"
	"github.com/arborhq/arbor/internal/logging"
	"github.com/arborhq/arbor/internal/store"
	"github.com/arborhq/arbor/internal/tree"
)

// runtime bundles the wired-up engine and everything that needs closing when
// a command finishes.
type runtime struct {
	cfg    *config.Config
	store  *store.Store
	engine *tree.Engine

	emitter   *bus.Emitter
	kafka     *bus.KafkaPublisher
	scheduler *tree.Scheduler
	runLog    *logging.RunLog
}

// openRuntime loads config and wires the store, event sinks, run log, and
// scheduler into an engine.
func openRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	dbPath := cfg.Store.Path
	if dbPath == "" {
		dbPath = store.DefaultDBPath()
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	runLog, err := logging.NewRunLog(cfg.Log.Path)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("open run log: %w", err)
	}

	emitter := bus.NewEmitter(cfg.Events.BufferSize)
	// CLI commands have no in-process subscriber; drain so publishes never
	// hit the drop path.
	go func() {
		for range emitter.Events() {
		}
	}()

	pubs := bus.Fanout{emitter}
	var kafka *bus.KafkaPublisher
	if len(cfg.Events.KafkaBrokers) > 0 {
		kafka = bus.NewKafkaPublisher(cfg.Events.KafkaBrokers, cfg.Events.KafkaTopic)
		pubs = append(pubs, kafka)
	}

	scheduler := tree.NewScheduler()

	engine := tree.NewEngine(s, tree.Options{
		Publisher:          pubs,
		Log:                runLog,
		Delayer:            scheduler,
		CompleteResetDelay: cfg.Lifecycle.CompleteResetDelay,
		FailResetDelay:     cfg.Lifecycle.FailResetDelay,
		DefaultTemplate:    cfg.Tree.DefaultTemplate,
	})

	return &runtime{
		cfg:       cfg,
		store:     s,
		engine:    engine,
		emitter:   emitter,
		kafka:     kafka,
		scheduler: scheduler,
		runLog:    runLog,
	}, nil
}

// Close tears the runtime down in reverse wiring order.
func (r *runtime) Close() {
	r.scheduler.Stop()
	if r.kafka != nil {
		r.kafka.Close()
	}
	r.emitter.Close()
	r.runLog.Close()
	r.store.Close()
}
