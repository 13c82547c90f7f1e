package model

import "sort"

// GoalProgress pairs a goal with the lifetime focused seconds logged
// against it by its tasks.
type GoalProgress struct {
	Goal            Goal
	AchievedSeconds int
}

func (p GoalProgress) AchievedMinutes() float64 {
	return float64(p.AchievedSeconds) / 60
}

// Achieved reports whether the logged time has reached the goal's
// target duration.
func (p GoalProgress) Achieved() bool {
	return p.AchievedMinutes() >= float64(p.Goal.TargetDurationMinutes)
}

// ProgressByGoal sums every task's lifetime TimeSpent into its
// referenced goal. Progress is cumulative across all dates, not
// per-day. Every goal in the input appears in the output, goals with
// no contributing tasks at zero, ordered by creation time.
func ProgressByGoal(tasks []Task, goals []Goal) []GoalProgress {
	achieved := make(map[string]int, len(goals))
	for _, t := range tasks {
		if t.GoalID == "" {
			continue
		}
		achieved[t.GoalID] += t.TimeSpentTotal()
	}

	out := make([]GoalProgress, 0, len(goals))
	for _, g := range goals {
		out = append(out, GoalProgress{Goal: g, AchievedSeconds: achieved[g.ID]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Goal.CreatedAt.Equal(out[j].Goal.CreatedAt) {
			return out[i].Goal.ID < out[j].Goal.ID
		}
		return out[i].Goal.CreatedAt.Before(out[j].Goal.CreatedAt)
	})
	return out
}
