package tracker

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sandeepkv93/focusd/internal/model"
)

type recordingPersister struct {
	putTasks []string
	delTasks []string
	putGoals []string
	delGoals []string
}

func (p *recordingPersister) PutTask(t model.Task) { p.putTasks = append(p.putTasks, t.ID) }
func (p *recordingPersister) DeleteTask(id string) { p.delTasks = append(p.delTasks, id) }
func (p *recordingPersister) PutGoal(g model.Goal) { p.putGoals = append(p.putGoals, g.ID) }
func (p *recordingPersister) DeleteGoal(id string) { p.delGoals = append(p.delGoals, id) }

func newTestStore(t *testing.T) (*Store, *recordingPersister) {
	t.Helper()
	persist := &recordingPersister{}
	seq := 0
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)
	store := NewStoreWithClock(persist, func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}, func() time.Time {
		now = now.Add(time.Second)
		return now
	})
	return store, persist
}

func TestAddTaskAssignsIdentityAndPersists(t *testing.T) {
	store, persist := newTestStore(t)

	task, err := store.AddTask(TaskDraft{Title: "Read", DurationMinutes: 25, RepeatDays: []model.DayOfWeek{model.Monday}})
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	if task.ID == "" || task.CreatedAt.IsZero() {
		t.Fatalf("expected assigned identity, got %#v", task)
	}
	if len(persist.putTasks) != 1 || persist.putTasks[0] != task.ID {
		t.Fatalf("expected persist of new task, got %v", persist.putTasks)
	}
}

func TestAddTaskRejectsInvalidDraft(t *testing.T) {
	store, _ := newTestStore(t)

	if _, err := store.AddTask(TaskDraft{Title: "", DurationMinutes: 25}); err == nil {
		t.Fatal("expected error for empty title")
	}
	if _, err := store.AddTask(TaskDraft{Title: "x", DurationMinutes: 0}); !errors.Is(err, model.ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}
	if _, err := store.AddTask(TaskDraft{Title: "x", DurationMinutes: 25, GoalID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for dangling goal ref, got %v", err)
	}
}

func TestUpdateTaskMergeSemantics(t *testing.T) {
	store, _ := newTestStore(t)
	goal, err := store.AddGoal(GoalDraft{Name: "Focus", TargetDurationMinutes: 100})
	if err != nil {
		t.Fatalf("add goal: %v", err)
	}
	task, err := store.AddTask(TaskDraft{Title: "Read", Description: "novel", DurationMinutes: 25, GoalID: goal.ID})
	if err != nil {
		t.Fatalf("add task: %v", err)
	}

	newTitle := "Read more"
	updated, err := store.UpdateTask(task.ID, TaskPatch{Title: &newTitle})
	if err != nil {
		t.Fatalf("update task: %v", err)
	}
	if updated.Title != "Read more" {
		t.Fatalf("title not updated: %q", updated.Title)
	}
	if updated.Description != "novel" || updated.DurationMinutes != 25 || updated.GoalID != goal.ID {
		t.Fatalf("unspecified fields lost: %#v", updated)
	}

	// Pointer-to-empty clears the goal link; nil would have kept it.
	empty := ""
	updated, err = store.UpdateTask(task.ID, TaskPatch{GoalID: &empty})
	if err != nil {
		t.Fatalf("clear goal: %v", err)
	}
	if updated.GoalID != "" {
		t.Fatalf("goal link not cleared: %q", updated.GoalID)
	}
}

func TestLedgerOperationsAtCollectionLevel(t *testing.T) {
	store, _ := newTestStore(t)
	task, err := store.AddTask(TaskDraft{Title: "Read", DurationMinutes: 25})
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	day := time.Date(2024, 1, 8, 10, 0, 0, 0, time.Local)

	done, err := store.ToggleCompletion(task.ID, day)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !model.IsCompletedOn(done, day) {
		t.Fatal("expected completion")
	}

	if _, err := store.ToggleCompletion("missing", day); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.AccumulateTime("missing", day, 10); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	after, err := store.ResetTimeSpent(task.ID, day)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, ok := after.TimeSpent[model.DateKey(day)]; ok {
		t.Fatal("expected time entry cleared")
	}

	soft, err := store.DeleteTaskForDate(task.ID, day)
	if err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	if model.IsVisible(soft, day) {
		t.Fatal("expected occurrence hidden after soft delete")
	}

	stored, err := store.Task(task.ID)
	if err != nil {
		t.Fatalf("task lookup: %v", err)
	}
	if model.IsVisible(stored, day) {
		t.Fatal("soft delete not applied to stored task")
	}
}

func TestDeleteTaskIsPermanent(t *testing.T) {
	store, persist := newTestStore(t)
	task, err := store.AddTask(TaskDraft{Title: "Read", DurationMinutes: 25})
	if err != nil {
		t.Fatalf("add task: %v", err)
	}

	if err := store.DeleteTask(task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if _, err := store.Task(task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if len(persist.delTasks) != 1 || persist.delTasks[0] != task.ID {
		t.Fatalf("expected persisted delete, got %v", persist.delTasks)
	}
	if err := store.DeleteTask(task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestDeleteGoalClearsTaskReferences(t *testing.T) {
	store, persist := newTestStore(t)
	goal, err := store.AddGoal(GoalDraft{Name: "Focus", TargetDurationMinutes: 100})
	if err != nil {
		t.Fatalf("add goal: %v", err)
	}
	t1, err := store.AddTask(TaskDraft{Title: "A", DurationMinutes: 25, GoalID: goal.ID})
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	t2, err := store.AddTask(TaskDraft{Title: "B", DurationMinutes: 25, GoalID: goal.ID})
	if err != nil {
		t.Fatalf("add task: %v", err)
	}

	if err := store.DeleteGoal(goal.ID); err != nil {
		t.Fatalf("delete goal: %v", err)
	}
	for _, id := range []string{t1.ID, t2.ID} {
		got, err := store.Task(id)
		if err != nil {
			t.Fatalf("task %s should survive goal deletion: %v", id, err)
		}
		if got.GoalID != "" {
			t.Fatalf("task %s still references deleted goal", id)
		}
	}
	if len(persist.delGoals) != 1 {
		t.Fatalf("expected one goal delete, got %v", persist.delGoals)
	}
	// Unlink updates were persisted too.
	if len(persist.putTasks) < 4 {
		t.Fatalf("expected unlinked tasks persisted, got %v", persist.putTasks)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	store, _ := newTestStore(t)
	task, err := store.AddTask(TaskDraft{Title: "Read", DurationMinutes: 25})
	if err != nil {
		t.Fatalf("add task: %v", err)
	}

	got, _ := store.Task(task.ID)
	got.TimeSpent["2024-01-08"] = 999

	fresh, _ := store.Task(task.ID)
	if len(fresh.TimeSpent) != 0 {
		t.Fatal("mutating a returned task leaked into the store")
	}
}

func TestGoalUpdate(t *testing.T) {
	store, _ := newTestStore(t)
	goal, err := store.AddGoal(GoalDraft{Name: "Focus", TargetDurationMinutes: 100})
	if err != nil {
		t.Fatalf("add goal: %v", err)
	}

	target := 200
	updated, err := store.UpdateGoal(goal.ID, GoalPatch{TargetDurationMinutes: &target})
	if err != nil {
		t.Fatalf("update goal: %v", err)
	}
	if updated.TargetDurationMinutes != 200 || updated.Name != "Focus" {
		t.Fatalf("unexpected goal after patch: %#v", updated)
	}

	bad := 0
	if _, err := store.UpdateGoal(goal.ID, GoalPatch{TargetDurationMinutes: &bad}); !errors.Is(err, model.ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}
	if _, err := store.UpdateGoal("missing", GoalPatch{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
