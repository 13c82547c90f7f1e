package tracker

import "github.com/sandeepkv93/focusd/internal/model"

// TaskDraft carries the caller-supplied fields for a new task. The
// store assigns ID and CreatedAt.
type TaskDraft struct {
	Title           string
	Description     string
	DurationMinutes int
	RepeatDays      []model.DayOfWeek
	Dates           []string
	GoalID          string
}

// TaskPatch is an explicit partial update: nil pointer fields keep
// the prior value. For the slice fields a nil slice keeps and an
// empty non-nil slice clears. GoalID distinguishes "leave alone"
// (nil) from "deliberately unlink" (pointer to empty string).
type TaskPatch struct {
	Title           *string
	Description     *string
	DurationMinutes *int
	RepeatDays      []model.DayOfWeek
	Dates           []string
	GoalID          *string
}

func (p TaskPatch) apply(t model.Task) model.Task {
	out := t.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.DurationMinutes != nil {
		out.DurationMinutes = *p.DurationMinutes
	}
	if p.RepeatDays != nil {
		out.RepeatDays = append([]model.DayOfWeek(nil), p.RepeatDays...)
	}
	if p.Dates != nil {
		out.Dates = append([]string(nil), p.Dates...)
	}
	if p.GoalID != nil {
		out.GoalID = *p.GoalID
	}
	return out
}

type GoalDraft struct {
	Name                  string
	TargetDurationMinutes int
}

type GoalPatch struct {
	Name                  *string
	TargetDurationMinutes *int
}

func (p GoalPatch) apply(g model.Goal) model.Goal {
	out := g
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.TargetDurationMinutes != nil {
		out.TargetDurationMinutes = *p.TargetDurationMinutes
	}
	return out
}
