package model

import (
	"sort"
	"time"
)

// IsVisible reports whether a task is scheduled on the target date.
// Rules apply in order: a date in DeletedOn always excludes; the date
// must then match a repeat day or an explicit date; a match via
// recurrence alone never reaches back before the task's creation day.
// Explicit dates are exempt from the creation cutoff; backdating a
// one-off date is a deliberate user choice.
func IsVisible(t Task, target time.Time) bool {
	key := DateKey(target)
	if containsKey(t.DeletedOn, key) {
		return false
	}

	repeatMatch := t.repeatsOn(WeekdayOf(target))
	explicitMatch := containsKey(t.Dates, key)
	if !repeatMatch && !explicitMatch {
		return false
	}
	if repeatMatch && !explicitMatch && StartOfDay(target).Before(StartOfDay(t.CreatedAt)) {
		return false
	}
	return true
}

// IsCompletedOn reports whether the task was marked complete on the
// target date.
func IsCompletedOn(t Task, target time.Time) bool {
	return containsKey(t.CompletedOn, DateKey(target))
}

// VisibleTasksFor filters a collection down to the tasks scheduled on
// the target date, ordered by creation time ascending with ID as the
// tie-break so equal timestamps still order deterministically.
func VisibleTasksFor(tasks []Task, target time.Time) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if IsVisible(t, target) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
