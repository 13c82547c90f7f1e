package storage

// NormalizeTask upgrades a record loaded from an older database to
// the ledger shape the core operates on. Records written before the
// ledger columns existed carried a single boolean done flag; the flag
// is dropped and the ledger fields default to empty, matching the
// one-time migration contract. The core assumes post-normalization
// shape only.
func NormalizeTask(rec TaskRecord) TaskRecord {
	out := rec
	out.Done = false
	if out.RepeatDays == nil {
		out.RepeatDays = []string{}
	}
	if out.Dates == nil {
		out.Dates = []string{}
	}
	if out.CompletedOn == nil {
		out.CompletedOn = []string{}
	}
	if out.DeletedOn == nil {
		out.DeletedOn = []string{}
	}
	if out.TimeSpent == nil {
		out.TimeSpent = map[string]int{}
	}
	return out
}
