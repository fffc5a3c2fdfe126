package inventory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/biomintech/labstock/internal/persist"
)

// Task is one persistence side effect produced by a store mutation.
type Task struct {
	ID     uuid.UUID
	Op     string
	ItemID int64
	Run    func(ctx context.Context) error

	ctx context.Context
}

// Dispatcher runs tasks on a fixed set of workers fed by an unbounded queue.
// Submit never blocks. A failed task is logged and handed to the failure
// callback; nothing is retried.
type Dispatcher struct {
	log     zerolog.Logger
	onError func(Task, error)

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []Task
	closed  bool
	pending sync.WaitGroup
	workers sync.WaitGroup
}

// NewDispatcher starts workers goroutines. With a single worker tasks run in
// submission order. onError may be nil.
func NewDispatcher(workers int, log zerolog.Logger, onError func(Task, error)) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	d := &Dispatcher{
		log:     log.With().Str("component", "dispatcher").Logger(),
		onError: onError,
	}
	d.cond = sync.NewCond(&d.mu)

	d.workers.Add(workers)
	for range workers {
		go d.work()
	}
	return d
}

// Submit queues the task and returns its id. The task runs with a context
// detached from ctx's cancellation. After Close the task runs inline.
func (d *Dispatcher) Submit(ctx context.Context, t Task) uuid.UUID {
	t.ID = uuid.New()
	t.ctx = context.WithoutCancel(ctx)
	d.pending.Add(1)

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.run(t)
		return t.ID
	}
	d.queue = append(d.queue, t)
	d.mu.Unlock()
	d.cond.Signal()
	return t.ID
}

// Wait blocks until every submitted task has finished.
func (d *Dispatcher) Wait() {
	d.pending.Wait()
}

// Close drains the queue and stops the workers.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()
	d.cond.Broadcast()
	d.workers.Wait()
}

func (d *Dispatcher) work() {
	defer d.workers.Done()
	for {
		d.mu.Lock()
		for len(d.queue) == 0 && !d.closed {
			d.cond.Wait()
		}
		if len(d.queue) == 0 {
			d.mu.Unlock()
			return
		}
		t := d.queue[0]
		d.queue[0] = Task{}
		d.queue = d.queue[1:]
		d.mu.Unlock()

		d.run(t)
	}
}

func (d *Dispatcher) run(t Task) {
	defer d.pending.Done()

	err := t.Run(t.ctx)
	if err == nil {
		d.log.Debug().Str("task", t.ID.String()).Str("op", t.Op).Int64("item_id", t.ItemID).Msg("task done")
		return
	}

	perr := &persist.PersistenceError{Op: t.Op, ItemID: t.ItemID, Err: err}
	d.log.Error().Err(perr).Str("task", t.ID.String()).Msg("persistence task failed")
	if d.onError != nil {
		d.onError(t, perr)
	}
}
