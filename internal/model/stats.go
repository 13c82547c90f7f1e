package model

import "sort"

// TaskBreakdown is one row of the per-task statistics table.
type TaskBreakdown struct {
	Title           string
	CompletionCount int
	TotalSeconds    int
}

func (b TaskBreakdown) TotalMinutes() float64 {
	return float64(b.TotalSeconds) / 60
}

// Summary holds the global productivity metrics computed from the
// full task and goal collections.
type Summary struct {
	TotalFocusedMinutes float64
	TasksCompletedCount int
	AvgSessionMinutes   float64
	GoalsAchievedCount  int
	TotalGoals          int
	PerTask             []TaskBreakdown
}

// Summarize recomputes every metric from scratch. The collections are
// small enough that correctness beats incremental bookkeeping.
func Summarize(tasks []Task, goals []Goal) Summary {
	s := Summary{TotalGoals: len(goals)}

	totalSeconds := 0
	for _, t := range tasks {
		spent := t.TimeSpentTotal()
		totalSeconds += spent
		s.TasksCompletedCount += len(t.CompletedOn)
		if len(t.CompletedOn) > 0 || spent > 0 {
			s.PerTask = append(s.PerTask, TaskBreakdown{
				Title:           t.Title,
				CompletionCount: len(t.CompletedOn),
				TotalSeconds:    spent,
			})
		}
	}
	s.TotalFocusedMinutes = float64(totalSeconds) / 60
	if s.TasksCompletedCount > 0 {
		s.AvgSessionMinutes = s.TotalFocusedMinutes / float64(s.TasksCompletedCount)
	}

	for _, p := range ProgressByGoal(tasks, goals) {
		if p.Achieved() {
			s.GoalsAchievedCount++
		}
	}

	sort.SliceStable(s.PerTask, func(i, j int) bool {
		return s.PerTask[i].TotalSeconds > s.PerTask[j].TotalSeconds
	})
	return s
}
