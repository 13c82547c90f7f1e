package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	ErrInvalidDuration = errors.New("model: invalid duration")
	ErrInvalidWeekday  = errors.New("model: invalid weekday tag")
)

// Task is a schedulable unit of work. It occurs on a date either
// because that weekday is in RepeatDays or because the date key is in
// Dates. CompletedOn, DeletedOn and TimeSpent form the per-date
// ledger; all three are keyed by DateKey strings.
type Task struct {
	ID              string
	Title           string
	Description     string
	DurationMinutes int
	RepeatDays      []DayOfWeek
	Dates           []string
	CreatedAt       time.Time
	CompletedOn     []string
	DeletedOn       []string
	TimeSpent       map[string]int
	GoalID          string
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if t.DurationMinutes <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDuration, t.DurationMinutes)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	seen := make(map[DayOfWeek]bool, len(t.RepeatDays))
	for _, day := range t.RepeatDays {
		if !day.IsValid() {
			return fmt.Errorf("%w: %q", ErrInvalidWeekday, day)
		}
		if seen[day] {
			return fmt.Errorf("model: duplicate repeat day %q", day)
		}
		seen[day] = true
	}
	for _, key := range t.Dates {
		if !ValidDateKey(key) {
			return fmt.Errorf("%w: %q", ErrInvalidDateKey, key)
		}
	}
	return nil
}

// Clone returns a deep copy. Ledger operations work on copies so a
// caller's value is never mutated in place.
func (t Task) Clone() Task {
	out := t
	out.RepeatDays = append([]DayOfWeek(nil), t.RepeatDays...)
	out.Dates = append([]string(nil), t.Dates...)
	out.CompletedOn = append([]string(nil), t.CompletedOn...)
	out.DeletedOn = append([]string(nil), t.DeletedOn...)
	out.TimeSpent = make(map[string]int, len(t.TimeSpent))
	for k, v := range t.TimeSpent {
		out.TimeSpent[k] = v
	}
	return out
}

// TimeSpentTotal is the lifetime sum of logged seconds across all dates.
func (t Task) TimeSpentTotal() int {
	total := 0
	for _, sec := range t.TimeSpent {
		total += sec
	}
	return total
}

func (t Task) repeatsOn(day DayOfWeek) bool {
	for _, d := range t.RepeatDays {
		if d == day {
			return true
		}
	}
	return false
}

// Goal is a target total focused duration that tasks contribute to
// through their logged time.
type Goal struct {
	ID                    string
	Name                  string
	TargetDurationMinutes int
	CreatedAt             time.Time
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return errors.New("model: goal id is required")
	}
	if strings.TrimSpace(g.Name) == "" {
		return errors.New("model: goal name is required")
	}
	if g.TargetDurationMinutes <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDuration, g.TargetDurationMinutes)
	}
	if g.CreatedAt.IsZero() {
		return errors.New("model: goal created_at is required")
	}
	return nil
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func addKey(keys []string, key string) []string {
	if containsKey(keys, key) {
		return keys
	}
	out := append(append([]string(nil), keys...), key)
	sort.Strings(out)
	return out
}

func removeKey(keys []string, key string) []string {
	var out []string
	for _, k := range keys {
		if k != key {
			out = append(out, k)
		}
	}
	return out
}
