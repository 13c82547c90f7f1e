package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// DB exposes the underlying handle for migrations.
func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

func (r *SQLiteRepository) GetAllTasks(ctx context.Context) ([]TaskRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, duration_minutes, repeat_days, dates,
		       created_at, done, completed_on, deleted_on, time_spent, goal_id
		FROM tasks ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TaskRecord, 0)
	for rows.Next() {
		rec, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, NormalizeTask(rec))
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) PutTask(ctx context.Context, in TaskRecord) error {
	repeatDays, err := marshalStrings(in.RepeatDays)
	if err != nil {
		return err
	}
	dates, err := marshalStrings(in.Dates)
	if err != nil {
		return err
	}
	completedOn, err := marshalStrings(in.CompletedOn)
	if err != nil {
		return err
	}
	deletedOn, err := marshalStrings(in.DeletedOn)
	if err != nil {
		return err
	}
	timeSpent, err := marshalTimeSpent(in.TimeSpent)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, description, duration_minutes, repeat_days, dates,
		                   created_at, done, completed_on, deleted_on, time_spent, goal_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			duration_minutes = excluded.duration_minutes,
			repeat_days = excluded.repeat_days,
			dates = excluded.dates,
			created_at = excluded.created_at,
			done = 0,
			completed_on = excluded.completed_on,
			deleted_on = excluded.deleted_on,
			time_spent = excluded.time_spent,
			goal_id = excluded.goal_id`,
		in.ID, in.Title, in.Description, in.DurationMinutes, repeatDays, dates,
		in.CreatedAt.Format(sqliteTimeLayout), completedOn, deletedOn, timeSpent, nullString(in.GoalID),
	)
	return err
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "tasks", id)
}

func (r *SQLiteRepository) GetAllGoals(ctx context.Context) ([]GoalRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, target_duration_minutes, created_at
		FROM goals ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]GoalRecord, 0)
	for rows.Next() {
		var rec GoalRecord
		var createdAt string
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.TargetDurationMinutes, &createdAt); err != nil {
			return nil, err
		}
		rec.CreatedAt, err = time.Parse(sqliteTimeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse goal created_at: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) PutGoal(ctx context.Context, in GoalRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO goals (id, name, target_duration_minutes, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			target_duration_minutes = excluded.target_duration_minutes,
			created_at = excluded.created_at`,
		in.ID, in.Name, in.TargetDurationMinutes, in.CreatedAt.Format(sqliteTimeLayout),
	)
	return err
}

func (r *SQLiteRepository) DeleteGoal(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "goals", id)
}

func (r *SQLiteRepository) deleteByID(ctx context.Context, table string, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTask(rows *sql.Rows) (TaskRecord, error) {
	var rec TaskRecord
	var description, repeatDays, dates, completedOn, deletedOn, timeSpent, goalID sql.NullString
	var createdAt string
	var done sql.NullInt64

	err := rows.Scan(&rec.ID, &rec.Title, &description, &rec.DurationMinutes,
		&repeatDays, &dates, &createdAt, &done, &completedOn, &deletedOn, &timeSpent, &goalID)
	if err != nil {
		return TaskRecord{}, err
	}

	rec.Description = description.String
	rec.GoalID = goalID.String
	rec.Done = done.Int64 != 0
	rec.CreatedAt, err = time.Parse(sqliteTimeLayout, createdAt)
	if err != nil {
		return TaskRecord{}, fmt.Errorf("parse task created_at: %w", err)
	}
	if rec.RepeatDays, err = unmarshalStrings(repeatDays); err != nil {
		return TaskRecord{}, err
	}
	if rec.Dates, err = unmarshalStrings(dates); err != nil {
		return TaskRecord{}, err
	}
	if rec.CompletedOn, err = unmarshalStrings(completedOn); err != nil {
		return TaskRecord{}, err
	}
	if rec.DeletedOn, err = unmarshalStrings(deletedOn); err != nil {
		return TaskRecord{}, err
	}
	if rec.TimeSpent, err = unmarshalTimeSpent(timeSpent); err != nil {
		return TaskRecord{}, err
	}
	return rec, nil
}

func marshalStrings(in []string) (string, error) {
	if in == nil {
		in = []string{}
	}
	raw, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("marshal string set: %w", err)
	}
	return string(raw), nil
}

func unmarshalStrings(in sql.NullString) ([]string, error) {
	if !in.Valid || in.String == "" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(in.String), &out); err != nil {
		return nil, fmt.Errorf("unmarshal string set: %w", err)
	}
	return out, nil
}

func marshalTimeSpent(in map[string]int) (string, error) {
	if in == nil {
		in = map[string]int{}
	}
	raw, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("marshal time spent: %w", err)
	}
	return string(raw), nil
}

func unmarshalTimeSpent(in sql.NullString) (map[string]int, error) {
	if !in.Valid || in.String == "" {
		return nil, nil
	}
	out := make(map[string]int)
	if err := json.Unmarshal([]byte(in.String), &out); err != nil {
		return nil, fmt.Errorf("unmarshal time spent: %w", err)
	}
	return out, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
