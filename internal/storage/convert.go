package storage

import (
	"context"
	"fmt"

	"github.com/sandeepkv93/focusd/internal/model"
)

// RecordFromTask flattens a task into its durable shape.
func RecordFromTask(t model.Task) TaskRecord {
	days := make([]string, 0, len(t.RepeatDays))
	for _, d := range t.RepeatDays {
		days = append(days, string(d))
	}
	return TaskRecord{
		ID:              t.ID,
		Title:           t.Title,
		Description:     t.Description,
		DurationMinutes: t.DurationMinutes,
		RepeatDays:      days,
		Dates:           append([]string(nil), t.Dates...),
		CreatedAt:       t.CreatedAt,
		CompletedOn:     append([]string(nil), t.CompletedOn...),
		DeletedOn:       append([]string(nil), t.DeletedOn...),
		TimeSpent:       copyTimeSpent(t.TimeSpent),
		GoalID:          t.GoalID,
	}
}

// TaskFromRecord rebuilds a task from a normalized record.
func TaskFromRecord(rec TaskRecord) model.Task {
	days := make([]model.DayOfWeek, 0, len(rec.RepeatDays))
	for _, d := range rec.RepeatDays {
		days = append(days, model.DayOfWeek(d))
	}
	return model.Task{
		ID:              rec.ID,
		Title:           rec.Title,
		Description:     rec.Description,
		DurationMinutes: rec.DurationMinutes,
		RepeatDays:      days,
		Dates:           append([]string(nil), rec.Dates...),
		CreatedAt:       rec.CreatedAt,
		CompletedOn:     append([]string(nil), rec.CompletedOn...),
		DeletedOn:       append([]string(nil), rec.DeletedOn...),
		TimeSpent:       copyTimeSpent(rec.TimeSpent),
		GoalID:          rec.GoalID,
	}
}

func RecordFromGoal(g model.Goal) GoalRecord {
	return GoalRecord{
		ID:                    g.ID,
		Name:                  g.Name,
		TargetDurationMinutes: g.TargetDurationMinutes,
		CreatedAt:             g.CreatedAt,
	}
}

func GoalFromRecord(rec GoalRecord) model.Goal {
	return model.Goal{
		ID:                    rec.ID,
		Name:                  rec.Name,
		TargetDurationMinutes: rec.TargetDurationMinutes,
		CreatedAt:             rec.CreatedAt,
	}
}

// LoadAll reads the full collections in model form.
func LoadAll(ctx context.Context, repo Repository) ([]model.Task, []model.Goal, error) {
	taskRecs, err := repo.GetAllTasks(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load tasks: %w", err)
	}
	goalRecs, err := repo.GetAllGoals(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load goals: %w", err)
	}
	tasks := make([]model.Task, 0, len(taskRecs))
	for _, rec := range taskRecs {
		tasks = append(tasks, TaskFromRecord(rec))
	}
	goals := make([]model.Goal, 0, len(goalRecs))
	for _, rec := range goalRecs {
		goals = append(goals, GoalFromRecord(rec))
	}
	return tasks, goals, nil
}

func copyTimeSpent(in map[string]int) map[string]int {
	if in == nil {
		return map[string]int{}
	}
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
