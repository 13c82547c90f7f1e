package model

import (
	"testing"
)

func TestProgressByGoalSumsLifetimeSeconds(t *testing.T) {
	g1 := Goal{ID: "g1", Name: "Deep work", TargetDurationMinutes: 30, CreatedAt: dayAt(2024, 1, 1)}
	g2 := Goal{ID: "g2", Name: "Language", TargetDurationMinutes: 600, CreatedAt: dayAt(2024, 1, 2)}

	t1 := validTask()
	t1.ID = "t1"
	t1.GoalID = "g1"
	t1.TimeSpent = map[string]int{"2024-01-08": 600}

	t2 := validTask()
	t2.ID = "t2"
	t2.GoalID = "g1"
	t2.TimeSpent = map[string]int{"2024-01-08": 700, "2024-01-09": 500}

	t3 := validTask()
	t3.ID = "t3"
	t3.TimeSpent = map[string]int{"2024-01-08": 9999} // no goal, must not count

	got := ProgressByGoal([]Task{t2, t3, t1}, []Goal{g2, g1})
	if len(got) != 2 {
		t.Fatalf("expected 2 progress entries, got %d", len(got))
	}
	if got[0].Goal.ID != "g1" || got[1].Goal.ID != "g2" {
		t.Fatalf("expected creation order g1,g2 got %s,%s", got[0].Goal.ID, got[1].Goal.ID)
	}
	if got[0].AchievedSeconds != 1800 {
		t.Fatalf("expected 1800s for g1, got %d", got[0].AchievedSeconds)
	}
	if got[0].AchievedMinutes() != 30 {
		t.Fatalf("expected 30 achieved minutes, got %v", got[0].AchievedMinutes())
	}
	if !got[0].Achieved() {
		t.Fatal("expected g1 achieved at exactly its target")
	}
	if got[1].AchievedSeconds != 0 || got[1].Achieved() {
		t.Fatalf("expected zero progress for g2, got %d", got[1].AchievedSeconds)
	}
}

func TestSummarize(t *testing.T) {
	g1 := Goal{ID: "g1", Name: "Deep work", TargetDurationMinutes: 20, CreatedAt: dayAt(2024, 1, 1)}
	g2 := Goal{ID: "g2", Name: "Language", TargetDurationMinutes: 500, CreatedAt: dayAt(2024, 1, 2)}

	t1 := validTask()
	t1.ID = "t1"
	t1.Title = "Study"
	t1.GoalID = "g1"
	t1.CompletedOn = []string{"2024-01-08", "2024-01-09"}
	t1.TimeSpent = map[string]int{"2024-01-08": 1500, "2024-01-09": 1500}

	t2 := validTask()
	t2.ID = "t2"
	t2.Title = "Stretch"
	t2.CompletedOn = []string{"2024-01-08"}
	t2.TimeSpent = map[string]int{"2024-01-08": 600}

	t3 := validTask()
	t3.ID = "t3"
	t3.Title = "Untouched"

	s := Summarize([]Task{t1, t2, t3}, []Goal{g1, g2})

	if s.TotalFocusedMinutes != 60 {
		t.Fatalf("expected 60 focused minutes, got %v", s.TotalFocusedMinutes)
	}
	if s.TasksCompletedCount != 3 {
		t.Fatalf("expected 3 completions, got %d", s.TasksCompletedCount)
	}
	if s.AvgSessionMinutes != 20 {
		t.Fatalf("expected 20 minute average, got %v", s.AvgSessionMinutes)
	}
	if s.GoalsAchievedCount != 1 {
		t.Fatalf("expected 1 goal achieved, got %d", s.GoalsAchievedCount)
	}
	if s.TotalGoals != 2 {
		t.Fatalf("expected 2 goals total, got %d", s.TotalGoals)
	}
	if len(s.PerTask) != 2 {
		t.Fatalf("expected 2 breakdown rows, got %d", len(s.PerTask))
	}
	if s.PerTask[0].Title != "Study" || s.PerTask[1].Title != "Stretch" {
		t.Fatalf("expected breakdown sorted by total time, got %q then %q", s.PerTask[0].Title, s.PerTask[1].Title)
	}
	if s.PerTask[0].TotalMinutes() != 50 {
		t.Fatalf("expected 50 minutes for Study, got %v", s.PerTask[0].TotalMinutes())
	}
}

func TestSummarizeEmptyCollections(t *testing.T) {
	s := Summarize(nil, nil)
	if s.TotalFocusedMinutes != 0 || s.TasksCompletedCount != 0 || s.AvgSessionMinutes != 0 {
		t.Fatalf("expected zero summary, got %#v", s)
	}
	if len(s.PerTask) != 0 {
		t.Fatalf("expected empty breakdown, got %d rows", len(s.PerTask))
	}
}

func TestSummarizeCountsLoggedTimeWithoutCompletion(t *testing.T) {
	t1 := validTask()
	t1.Title = "Partial"
	t1.TimeSpent = map[string]int{"2024-01-08": 300}

	s := Summarize([]Task{t1}, nil)
	if s.TasksCompletedCount != 0 {
		t.Fatalf("expected no completions, got %d", s.TasksCompletedCount)
	}
	if s.AvgSessionMinutes != 0 {
		t.Fatalf("expected zero average with no completions, got %v", s.AvgSessionMinutes)
	}
	if len(s.PerTask) != 1 || s.PerTask[0].Title != "Partial" {
		t.Fatalf("expected partial task in breakdown, got %#v", s.PerTask)
	}
}
