package storage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sandeepkv93/focusd/internal/model"
)

type memRepo struct {
	mu        sync.Mutex
	tasks     map[string]TaskRecord
	goals     map[string]GoalRecord
	fail      error
	transient int
}

func newMemRepo() *memRepo {
	return &memRepo{tasks: map[string]TaskRecord{}, goals: map[string]GoalRecord{}}
}

func (m *memRepo) GetAllTasks(context.Context) ([]TaskRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]TaskRecord, 0, len(m.tasks))
	for _, rec := range m.tasks {
		out = append(out, rec)
	}
	return out, m.fail
}

func (m *memRepo) PutTask(_ context.Context, in TaskRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	if m.transient > 0 {
		m.transient--
		return errors.New("database is locked")
	}
	m.tasks[in.ID] = in
	return nil
}

func (m *memRepo) DeleteTask(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	if _, ok := m.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(m.tasks, id)
	return nil
}

func (m *memRepo) GetAllGoals(context.Context) ([]GoalRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]GoalRecord, 0, len(m.goals))
	for _, rec := range m.goals {
		out = append(out, rec)
	}
	return out, m.fail
}

func (m *memRepo) PutGoal(_ context.Context, in GoalRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.goals[in.ID] = in
	return nil
}

func (m *memRepo) DeleteGoal(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	if _, ok := m.goals[id]; !ok {
		return ErrNotFound
	}
	delete(m.goals, id)
	return nil
}

func (m *memRepo) taskCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

func sampleTask() model.Task {
	return model.Task{
		ID:              "task-1",
		Title:           "Evening reading",
		DurationMinutes: 30,
		RepeatDays:      []model.DayOfWeek{"Thu"},
		CreatedAt:       time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		TimeSpent:       map[string]int{"2026-03-05": 900},
	}
}

func TestPersisterFlushesOnStop(t *testing.T) {
	repo := newMemRepo()
	p := NewAsyncPersister(repo, 16, nil)
	p.Start()

	p.PutTask(sampleTask())
	p.PutGoal(model.Goal{ID: "goal-1", Name: "Read more", TargetDurationMinutes: 300,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)})
	p.Stop()

	repo.mu.Lock()
	defer repo.mu.Unlock()
	if len(repo.tasks) != 1 || repo.tasks["task-1"].TimeSpent["2026-03-05"] != 900 {
		t.Fatalf("task not persisted: %#v", repo.tasks)
	}
	if len(repo.goals) != 1 || repo.goals["goal-1"].Name != "Read more" {
		t.Fatalf("goal not persisted: %#v", repo.goals)
	}
	if p.Dropped() != 0 {
		t.Fatalf("unexpected drops: %d", p.Dropped())
	}
}

func TestPersisterDeleteAfterPut(t *testing.T) {
	repo := newMemRepo()
	p := NewAsyncPersister(repo, 16, nil)
	p.Start()

	p.PutTask(sampleTask())
	p.DeleteTask("task-1")
	p.Stop()

	if repo.taskCount() != 0 {
		t.Fatalf("expected task removed, repo has %d", repo.taskCount())
	}
}

func TestPersisterDeleteMissingIsNotAnError(t *testing.T) {
	repo := newMemRepo()
	var mu sync.Mutex
	var failures []string
	p := NewAsyncPersister(repo, 4, func(op string, err error) {
		mu.Lock()
		failures = append(failures, op)
		mu.Unlock()
	})
	p.Start()

	p.DeleteTask("never-written")
	p.DeleteGoal("never-written")
	p.Stop()

	mu.Lock()
	defer mu.Unlock()
	if len(failures) != 0 {
		t.Fatalf("unexpected failure callbacks: %v", failures)
	}
}

func TestPersisterReportsWriteFailures(t *testing.T) {
	repo := newMemRepo()
	repo.fail = errors.New("disk full")

	var mu sync.Mutex
	var failures []string
	p := NewAsyncPersister(repo, 4, func(op string, err error) {
		mu.Lock()
		failures = append(failures, op)
		mu.Unlock()
	})
	p.Start()

	p.PutTask(sampleTask())
	p.Stop()

	mu.Lock()
	defer mu.Unlock()
	if len(failures) != 1 || failures[0] != "put task" {
		t.Fatalf("expected one put failure, got %v", failures)
	}
}

func TestPersisterRetriesTransientFailures(t *testing.T) {
	repo := newMemRepo()
	repo.transient = 2

	var mu sync.Mutex
	var failures []string
	p := NewAsyncPersister(repo, 4, func(op string, err error) {
		mu.Lock()
		failures = append(failures, op)
		mu.Unlock()
	})
	p.Start()

	p.PutTask(sampleTask())
	p.Stop()

	mu.Lock()
	defer mu.Unlock()
	if len(failures) != 0 {
		t.Fatalf("expected retries to absorb transient failures, got %v", failures)
	}
	if repo.taskCount() != 1 {
		t.Fatalf("expected task persisted after retries, repo has %d", repo.taskCount())
	}
}

func TestPersisterCountsDropsWhenFull(t *testing.T) {
	repo := newMemRepo()
	p := NewAsyncPersister(repo, 1, nil)
	// Worker not started, so only one request fits the buffer.

	p.PutTask(sampleTask())
	p.DeleteTask("task-1")
	p.DeleteTask("task-2")

	if got := p.Dropped(); got != 2 {
		t.Fatalf("expected 2 drops, got %d", got)
	}

	p.Start()
	p.Stop()
	if repo.taskCount() != 1 {
		t.Fatalf("buffered request lost: %#v", repo.tasks)
	}
}

func TestPersisterStopTwice(t *testing.T) {
	p := NewAsyncPersister(newMemRepo(), 4, nil)
	p.Start()
	p.Stop()
	p.Stop()
}
