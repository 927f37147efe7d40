package tree

import (
	"container/heap"
	"sync"
	"time"
)

// Delayer schedules a callback to fire after a delay. Callbacks run strictly
// after the scheduling call returns. Cancel removes a pending task; it
// reports false if the task already fired or was never scheduled.
type Delayer interface {
	After(d time.Duration, fn func()) (id int64)
	Cancel(id int64) bool
}

// Scheduler is a min-heap delayed-task scheduler driven by one goroutine.
// Callbacks run sequentially on the driver goroutine, preserving the
// engine's single-logical-thread model.
type Scheduler struct {
	mu     sync.Mutex
	tasks  taskHeap
	nextID int64
	wake   chan struct{}
	done   chan struct{}
	once   sync.Once
}

type delayedTask struct {
	id  int64
	at  time.Time
	fn  func()
	idx int
}

// NewScheduler creates a Scheduler and starts its driver goroutine.
func NewScheduler() *Scheduler {
	s := &Scheduler{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go s.run()
	return s
}

// After schedules fn to run after d and returns the task id.
func (s *Scheduler) After(d time.Duration, fn func()) int64 {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	heap.Push(&s.tasks, &delayedTask{id: id, at: time.Now().Add(d), fn: fn})
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return id
}

// Cancel removes a pending task before it fires.
func (s *Scheduler) Cancel(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.tasks {
		if t.id == id {
			heap.Remove(&s.tasks, i)
			return true
		}
	}
	return false
}

// Stop shuts down the driver goroutine. Pending tasks never fire.
func (s *Scheduler) Stop() {
	s.once.Do(func() { close(s.done) })
}

func (s *Scheduler) run() {
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		s.mu.Lock()
		var wait time.Duration
		if len(s.tasks) == 0 {
			wait = time.Hour
		} else {
			wait = time.Until(s.tasks[0].at)
		}
		s.mu.Unlock()

		if wait <= 0 {
			s.fireDue()
			continue
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(wait)

		select {
		case <-s.done:
			return
		case <-s.wake:
		case <-timer.C:
			s.fireDue()
		}
	}
}

// fireDue pops and runs every task whose time has arrived.
func (s *Scheduler) fireDue() {
	for {
		s.mu.Lock()
		if len(s.tasks) == 0 || s.tasks[0].at.After(time.Now()) {
			s.mu.Unlock()
			return
		}
		task := heap.Pop(&s.tasks).(*delayedTask)
		s.mu.Unlock()

		task.fn()
	}
}

// taskHeap orders tasks by fire time, earliest first.
type taskHeap []*delayedTask

func (h taskHeap) Len() int           { return len(h) }
func (h taskHeap) Less(i, j int) bool { return h[i].at.Before(h[j].at) }
func (h taskHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].idx = i
	h[j].idx = j
}

func (h *taskHeap) Push(x interface{}) {
	t := x.(*delayedTask)
	t.idx = len(*h)
	*h = append(*h, t)
}

func (h *taskHeap) Pop() interface{} {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}
