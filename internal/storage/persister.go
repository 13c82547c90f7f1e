package storage

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sandeepkv93/focusd/internal/model"
)

type persistOp int

const (
	opPutTask persistOp = iota
	opDeleteTask
	opPutGoal
	opDeleteGoal
)

func (op persistOp) String() string {
	switch op {
	case opPutTask:
		return "put task"
	case opDeleteTask:
		return "delete task"
	case opPutGoal:
		return "put goal"
	case opDeleteGoal:
		return "delete goal"
	default:
		return "unknown"
	}
}

type persistRequest struct {
	op   persistOp
	task TaskRecord
	goal GoalRecord
	id   string
}

const (
	persistTimeout    = 5 * time.Second
	persistAttempts   = 3
	persistRetryDelay = 50 * time.Millisecond
)

// AsyncPersister applies mutations to a Repository from a single
// background goroutine so in-memory updates never wait on disk.
// Enqueueing is non-blocking: when the buffer is full the request is
// dropped and counted. Callers that care about durability size the
// buffer generously and check Dropped at shutdown.
type AsyncPersister struct {
	repo    Repository
	reqs    chan persistRequest
	stopCh  chan struct{}
	doneCh  chan struct{}
	onError func(op string, err error)

	mu      sync.Mutex
	started bool
	stopped bool
	dropped uint64
}

// NewAsyncPersister builds a persister over repo. onError is invoked
// from the worker goroutine for each failed write and may be nil.
func NewAsyncPersister(repo Repository, bufferSize int, onError func(op string, err error)) *AsyncPersister {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	if onError == nil {
		onError = func(string, error) {}
	}
	return &AsyncPersister{
		repo:    repo,
		reqs:    make(chan persistRequest, bufferSize),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
		onError: onError,
	}
}

func (p *AsyncPersister) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.started = true
	go p.run()
}

// Stop flushes every queued request and waits for the worker to exit.
// Safe to call more than once.
func (p *AsyncPersister) Stop() {
	p.mu.Lock()
	if !p.started || p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	p.mu.Unlock()
	close(p.stopCh)
	<-p.doneCh
}

// Dropped reports how many requests were discarded because the
// buffer was full.
func (p *AsyncPersister) Dropped() uint64 {
	return atomic.LoadUint64(&p.dropped)
}

func (p *AsyncPersister) PutTask(t model.Task) {
	p.enqueue(persistRequest{op: opPutTask, task: RecordFromTask(t)})
}

func (p *AsyncPersister) DeleteTask(id string) {
	p.enqueue(persistRequest{op: opDeleteTask, id: id})
}

func (p *AsyncPersister) PutGoal(g model.Goal) {
	p.enqueue(persistRequest{op: opPutGoal, goal: RecordFromGoal(g)})
}

func (p *AsyncPersister) DeleteGoal(id string) {
	p.enqueue(persistRequest{op: opDeleteGoal, id: id})
}

func (p *AsyncPersister) enqueue(req persistRequest) {
	select {
	case p.reqs <- req:
	default:
		atomic.AddUint64(&p.dropped, 1)
	}
}

func (p *AsyncPersister) run() {
	defer close(p.doneCh)
	for {
		select {
		case req := <-p.reqs:
			p.apply(req)
		case <-p.stopCh:
			p.drain()
			return
		}
	}
}

func (p *AsyncPersister) drain() {
	for {
		select {
		case req := <-p.reqs:
			p.apply(req)
		default:
			return
		}
	}
}

// apply writes one request, retrying transient failures a few times
// before reporting. Memory already holds the mutation, so the worst
// case is a stale row on disk, never corrupted state.
func (p *AsyncPersister) apply(req persistRequest) {
	var err error
	for attempt := 1; attempt <= persistAttempts; attempt++ {
		err = p.applyOnce(req)
		if err == nil {
			return
		}
		if attempt < persistAttempts {
			time.Sleep(time.Duration(attempt) * persistRetryDelay)
		}
	}
	p.onError(req.op.String(), err)
}

func (p *AsyncPersister) applyOnce(req persistRequest) error {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	var err error
	switch req.op {
	case opPutTask:
		err = p.repo.PutTask(ctx, req.task)
	case opDeleteTask:
		err = p.repo.DeleteTask(ctx, req.id)
	case opPutGoal:
		err = p.repo.PutGoal(ctx, req.goal)
	case opDeleteGoal:
		err = p.repo.DeleteGoal(ctx, req.id)
	}
	if errors.Is(err, ErrNotFound) {
		// Deleting a row that was never written is not a failure.
		err = nil
	}
	return err
}
