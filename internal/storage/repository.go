package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Repository is the storage collaborator contract: full-collection
// reads plus upsert and delete by id. The core never learns what
// backs it.
type Repository interface {
	GetAllTasks(ctx context.Context) ([]TaskRecord, error)
	PutTask(ctx context.Context, in TaskRecord) error
	DeleteTask(ctx context.Context, id string) error

	GetAllGoals(ctx context.Context) ([]GoalRecord, error)
	PutGoal(ctx context.Context, in GoalRecord) error
	DeleteGoal(ctx context.Context, id string) error
}
