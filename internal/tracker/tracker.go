// Package tracker owns the in-memory task and goal collections.
// Memory is the source of truth during a session; every mutation is
// applied in memory first and then handed to the persister as an
// asynchronous side effect. All mutation flows through one Store and
// one event at a time, so the Store carries no locking.
package tracker

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sandeepkv93/focusd/internal/model"
)

var ErrNotFound = errors.New("tracker: not found")

// Persister receives mutated records after each in-memory change.
// Implementations must not block the caller; a failed or lagging
// write never corrupts the in-memory state.
type Persister interface {
	PutTask(model.Task)
	DeleteTask(id string)
	PutGoal(model.Goal)
	DeleteGoal(id string)
}

// NoopPersister discards every persistence request. Used in tests.
type NoopPersister struct{}

func (NoopPersister) PutTask(model.Task) {}
func (NoopPersister) DeleteTask(string)  {}
func (NoopPersister) PutGoal(model.Goal) {}
func (NoopPersister) DeleteGoal(string)  {}

type Store struct {
	tasks   []model.Task
	goals   []model.Goal
	persist Persister
	newID   func() string
	now     func() time.Time
}

func NewStore(persist Persister) *Store {
	return NewStoreWithClock(persist, uuid.NewString, time.Now)
}

func NewStoreWithClock(persist Persister, newID func() string, now func() time.Time) *Store {
	if persist == nil {
		persist = NoopPersister{}
	}
	return &Store{persist: persist, newID: newID, now: now}
}

// Load replaces the collections with already-normalized records,
// typically straight from storage at startup. Nothing is persisted.
func (s *Store) Load(tasks []model.Task, goals []model.Goal) {
	s.tasks = make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		s.tasks = append(s.tasks, t.Clone())
	}
	s.goals = append([]model.Goal(nil), goals...)
}

func (s *Store) AddTask(d TaskDraft) (model.Task, error) {
	task := model.Task{
		ID:              s.newID(),
		Title:           d.Title,
		Description:     d.Description,
		DurationMinutes: d.DurationMinutes,
		RepeatDays:      append([]model.DayOfWeek(nil), d.RepeatDays...),
		Dates:           append([]string(nil), d.Dates...),
		CreatedAt:       s.now(),
		TimeSpent:       map[string]int{},
		GoalID:          d.GoalID,
	}
	if err := task.Validate(); err != nil {
		return model.Task{}, err
	}
	if err := s.checkGoalRef(task.GoalID); err != nil {
		return model.Task{}, err
	}
	s.tasks = append(s.tasks, task)
	s.persist.PutTask(task)
	return task.Clone(), nil
}

func (s *Store) UpdateTask(id string, p TaskPatch) (model.Task, error) {
	i, err := s.taskIndex(id)
	if err != nil {
		return model.Task{}, err
	}
	updated := p.apply(s.tasks[i])
	if err := updated.Validate(); err != nil {
		return model.Task{}, err
	}
	if err := s.checkGoalRef(updated.GoalID); err != nil {
		return model.Task{}, err
	}
	s.tasks[i] = updated
	s.persist.PutTask(updated)
	return updated.Clone(), nil
}

// DeleteTaskForDate soft-deletes a single occurrence; the task stays
// defined for every other date.
func (s *Store) DeleteTaskForDate(id string, date time.Time) (model.Task, error) {
	return s.transformTask(id, func(t model.Task) model.Task {
		return model.SoftDeleteForDate(t, date)
	})
}

// DeleteTask removes the task permanently. Irreversible.
func (s *Store) DeleteTask(id string) error {
	i, err := s.taskIndex(id)
	if err != nil {
		return err
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.persist.DeleteTask(id)
	return nil
}

func (s *Store) ToggleCompletion(id string, date time.Time) (model.Task, error) {
	return s.transformTask(id, func(t model.Task) model.Task {
		return model.ToggleCompletion(t, date)
	})
}

func (s *Store) AccumulateTime(id string, date time.Time, deltaSeconds int) (model.Task, error) {
	return s.transformTask(id, func(t model.Task) model.Task {
		return model.AccumulateTime(t, date, deltaSeconds)
	})
}

func (s *Store) ResetTimeSpent(id string, date time.Time) (model.Task, error) {
	return s.transformTask(id, func(t model.Task) model.Task {
		return model.ResetTimeSpent(t, date)
	})
}

func (s *Store) CompleteWithFullCredit(id string, date time.Time) (model.Task, error) {
	return s.transformTask(id, func(t model.Task) model.Task {
		return model.CompleteWithFullCredit(t, date)
	})
}

func (s *Store) AddGoal(d GoalDraft) (model.Goal, error) {
	goal := model.Goal{
		ID:                    s.newID(),
		Name:                  d.Name,
		TargetDurationMinutes: d.TargetDurationMinutes,
		CreatedAt:             s.now(),
	}
	if err := goal.Validate(); err != nil {
		return model.Goal{}, err
	}
	s.goals = append(s.goals, goal)
	s.persist.PutGoal(goal)
	return goal, nil
}

func (s *Store) UpdateGoal(id string, p GoalPatch) (model.Goal, error) {
	i, err := s.goalIndex(id)
	if err != nil {
		return model.Goal{}, err
	}
	updated := p.apply(s.goals[i])
	if err := updated.Validate(); err != nil {
		return model.Goal{}, err
	}
	s.goals[i] = updated
	s.persist.PutGoal(updated)
	return updated, nil
}

// DeleteGoal removes the goal and clears the reference on every task
// that pointed at it. Tasks themselves are never deleted here.
func (s *Store) DeleteGoal(id string) error {
	i, err := s.goalIndex(id)
	if err != nil {
		return err
	}
	s.goals = append(s.goals[:i], s.goals[i+1:]...)
	s.persist.DeleteGoal(id)

	for j := range s.tasks {
		if s.tasks[j].GoalID != id {
			continue
		}
		unlinked := s.tasks[j].Clone()
		unlinked.GoalID = ""
		s.tasks[j] = unlinked
		s.persist.PutTask(unlinked)
	}
	return nil
}

func (s *Store) Task(id string) (model.Task, error) {
	i, err := s.taskIndex(id)
	if err != nil {
		return model.Task{}, err
	}
	return s.tasks[i].Clone(), nil
}

func (s *Store) Tasks() []model.Task {
	out := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t.Clone())
	}
	return out
}

func (s *Store) Goal(id string) (model.Goal, error) {
	i, err := s.goalIndex(id)
	if err != nil {
		return model.Goal{}, err
	}
	return s.goals[i], nil
}

func (s *Store) Goals() []model.Goal {
	return append([]model.Goal(nil), s.goals...)
}

func (s *Store) VisibleTasksFor(date time.Time) []model.Task {
	return model.VisibleTasksFor(s.tasks, date)
}

func (s *Store) Progress() []model.GoalProgress {
	return model.ProgressByGoal(s.tasks, s.goals)
}

func (s *Store) Summary() model.Summary {
	return model.Summarize(s.tasks, s.goals)
}

func (s *Store) transformTask(id string, fn func(model.Task) model.Task) (model.Task, error) {
	i, err := s.taskIndex(id)
	if err != nil {
		return model.Task{}, err
	}
	updated := fn(s.tasks[i])
	s.tasks[i] = updated
	s.persist.PutTask(updated)
	return updated.Clone(), nil
}

func (s *Store) taskIndex(id string) (int, error) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: task %s", ErrNotFound, id)
}

func (s *Store) goalIndex(id string) (int, error) {
	for i := range s.goals {
		if s.goals[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: goal %s", ErrNotFound, id)
}

func (s *Store) checkGoalRef(goalID string) error {
	if goalID == "" {
		return nil
	}
	_, err := s.goalIndex(goalID)
	return err
}
