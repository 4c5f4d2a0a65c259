// Package repository provides data persistence implementations for scheduled
// jobs.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/courtside/registration/internal/database"
	apperrors "github.com/courtside/registration/internal/errors"
	"github.com/courtside/registration/internal/jobs/domain"
)

// PostgreSQLJobRepository handles scheduled job persistence for PostgreSQL.
type PostgreSQLJobRepository struct {
	db *sql.DB
}

// NewPostgreSQLJobRepository creates a new PostgreSQLJobRepository.
func NewPostgreSQLJobRepository(db *sql.DB) *PostgreSQLJobRepository {
	return &PostgreSQLJobRepository{
		db: db,
	}
}

// Create inserts a new scheduled job.
func (r *PostgreSQLJobRepository) Create(ctx context.Context, job *domain.ScheduledJob) error {
	querier := database.GetTx(ctx, r.db)

	payload, err := json.Marshal(job.Payload)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "failed to encode job payload")
	}

	query := `INSERT INTO scheduled_jobs (id, job_type, payload, run_at, status, attempts, last_error, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())`

	_, err = querier.ExecContext(ctx, query, job.ID, job.JobType, payload, job.RunAt,
		job.Status, job.Attempts, job.LastError)
	if err != nil {
		return apperrors.Wrap(err, "failed to create scheduled job")
	}
	return nil
}

// DuePending retrieves scheduled jobs whose run_at has passed, oldest first.
// Rows are locked with SKIP LOCKED so concurrent runners never claim the same
// job.
func (r *PostgreSQLJobRepository) DuePending(
	ctx context.Context,
	limit int,
) ([]*domain.ScheduledJob, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, job_type, payload, run_at, status, attempts, last_error, created_at, updated_at
			  FROM scheduled_jobs
			  WHERE status = $1 AND run_at <= NOW()
			  ORDER BY run_at ASC
			  LIMIT $2
			  FOR UPDATE SKIP LOCKED`

	rows, err := querier.QueryContext(ctx, query, domain.StatusScheduled, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list due jobs")
	}
	defer func() {
		_ = rows.Close()
	}()

	var jobs []*domain.ScheduledJob
	for rows.Next() {
		job, err := scanPGJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate due jobs")
	}

	return jobs, nil
}

// Update updates a scheduled job.
func (r *PostgreSQLJobRepository) Update(ctx context.Context, job *domain.ScheduledJob) error {
	querier := database.GetTx(ctx, r.db)

	payload, err := json.Marshal(job.Payload)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "failed to encode job payload")
	}

	query := `UPDATE scheduled_jobs
			  SET job_type = $1, payload = $2, run_at = $3, status = $4, attempts = $5,
			      last_error = $6, updated_at = NOW()
			  WHERE id = $7`

	_, err = querier.ExecContext(ctx, query, job.JobType, payload, job.RunAt,
		job.Status, job.Attempts, job.LastError, job.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update scheduled job")
	}
	return nil
}

// scanPGJob scans one scheduled job row, decoding the JSON payload.
func scanPGJob(rows *sql.Rows) (*domain.ScheduledJob, error) {
	var job domain.ScheduledJob
	var payload []byte

	err := rows.Scan(&job.ID, &job.JobType, &payload, &job.RunAt, &job.Status,
		&job.Attempts, &job.LastError, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to scan scheduled job")
	}

	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &job.Payload); err != nil {
			return nil, apperrors.Wrap(err, "failed to decode job payload")
		}
	}

	return &job, nil
}
