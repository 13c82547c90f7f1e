package storage

import "time"

// TaskRecord is the durable shape of a task. Set-valued fields are
// stored as JSON text columns; TimeSpent maps date keys to seconds.
type TaskRecord struct {
	ID              string
	Title           string
	Description     string
	DurationMinutes int
	RepeatDays      []string
	Dates           []string
	CreatedAt       time.Time
	CompletedOn     []string
	DeletedOn       []string
	TimeSpent       map[string]int
	GoalID          string

	// Done is the pre-ledger completion flag still present in old
	// databases. It is read for normalization and never written back.
	Done bool
}

type GoalRecord struct {
	ID                    string
	Name                  string
	TargetDurationMinutes int
	CreatedAt             time.Time
}
