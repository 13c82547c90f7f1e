package model

import "time"

// Ledger operations are pure: each takes a task value and returns an
// updated copy, leaving the input untouched. Completion and logged
// time move together so that a checkbox-driven "mark done" stays
// consistent with timer-driven accumulation.

// ToggleCompletion flips the completion flag for the given date. A
// transition to complete grants full credit for the nominal duration
// even if no timer ran; a transition back to incomplete withdraws it.
func ToggleCompletion(t Task, date time.Time) Task {
	key := DateKey(date)
	out := t.Clone()
	if containsKey(out.CompletedOn, key) {
		out.CompletedOn = removeKey(out.CompletedOn, key)
		delete(out.TimeSpent, key)
		return out
	}
	out.CompletedOn = addKey(out.CompletedOn, key)
	out.TimeSpent[key] = out.DurationMinutes * 60
	return out
}

// AccumulateTime adds deltaSeconds to the date's logged time,
// clamping at the nominal duration. Negative deltas are ignored;
// computing elapsed time is the caller's job.
func AccumulateTime(t Task, date time.Time, deltaSeconds int) Task {
	if deltaSeconds <= 0 {
		return t
	}
	key := DateKey(date)
	out := t.Clone()
	total := out.TimeSpent[key] + deltaSeconds
	if limit := out.DurationMinutes * 60; total > limit {
		total = limit
	}
	out.TimeSpent[key] = total
	return out
}

// ResetTimeSpent clears the date's logged time. Completion state is
// deliberately left alone: reset clears time, not the checkmark.
func ResetTimeSpent(t Task, date time.Time) Task {
	key := DateKey(date)
	if _, ok := t.TimeSpent[key]; !ok {
		return t
	}
	out := t.Clone()
	delete(out.TimeSpent, key)
	return out
}

// SoftDeleteForDate removes the single occurrence on the given date
// without touching the task definition. A deleted occurrence no
// longer contributes logged time, so the date's entry goes too.
func SoftDeleteForDate(t Task, date time.Time) Task {
	key := DateKey(date)
	out := t.Clone()
	out.DeletedOn = addKey(out.DeletedOn, key)
	delete(out.TimeSpent, key)
	return out
}

// CompleteWithFullCredit is the natural-expiry commit: logged time is
// set to the full nominal duration unconditionally and the date is
// marked complete. This intentionally overwrites rather than adds, so
// a session resumed after a partial pause still lands on exactly
// duration*60.
func CompleteWithFullCredit(t Task, date time.Time) Task {
	key := DateKey(date)
	out := t.Clone()
	out.TimeSpent[key] = out.DurationMinutes * 60
	out.CompletedOn = addKey(out.CompletedOn, key)
	return out
}
