package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/courtside/registration/internal/database"
	apperrors "github.com/courtside/registration/internal/errors"
	"github.com/courtside/registration/internal/jobs/domain"
)

// MySQLJobRepository handles scheduled job persistence for MySQL.
type MySQLJobRepository struct {
	db *sql.DB
}

// NewMySQLJobRepository creates a new MySQLJobRepository.
func NewMySQLJobRepository(db *sql.DB) *MySQLJobRepository {
	return &MySQLJobRepository{
		db: db,
	}
}

// Create inserts a new scheduled job.
func (r *MySQLJobRepository) Create(ctx context.Context, job *domain.ScheduledJob) error {
	querier := database.GetTx(ctx, r.db)

	id, err := job.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal job id")
	}

	payload, err := json.Marshal(job.Payload)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "failed to encode job payload")
	}

	query := `INSERT INTO scheduled_jobs (id, job_type, payload, run_at, status, attempts, last_error, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`

	_, err = querier.ExecContext(ctx, query, id, job.JobType, payload, job.RunAt,
		job.Status, job.Attempts, job.LastError)
	if err != nil {
		return apperrors.Wrap(err, "failed to create scheduled job")
	}
	return nil
}

// DuePending retrieves scheduled jobs whose run_at has passed, oldest first.
// SKIP LOCKED keeps concurrent runners off each other's rows.
func (r *MySQLJobRepository) DuePending(
	ctx context.Context,
	limit int,
) ([]*domain.ScheduledJob, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, job_type, payload, run_at, status, attempts, last_error, created_at, updated_at
			  FROM scheduled_jobs
			  WHERE status = ? AND run_at <= NOW()
			  ORDER BY run_at ASC
			  LIMIT ?
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
		job, err := scanMySQLJob(rows)
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
func (r *MySQLJobRepository) Update(ctx context.Context, job *domain.ScheduledJob) error {
	querier := database.GetTx(ctx, r.db)

	id, err := job.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal job id")
	}

	payload, err := json.Marshal(job.Payload)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "failed to encode job payload")
	}

	query := `UPDATE scheduled_jobs
			  SET job_type = ?, payload = ?, run_at = ?, status = ?, attempts = ?,
			      last_error = ?, updated_at = NOW()
			  WHERE id = ?`

	_, err = querier.ExecContext(ctx, query, job.JobType, payload, job.RunAt,
		job.Status, job.Attempts, job.LastError, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update scheduled job")
	}
	return nil
}

// scanMySQLJob scans one scheduled job row, converting the BINARY(16) id and
// decoding the JSON payload.
func scanMySQLJob(rows *sql.Rows) (*domain.ScheduledJob, error) {
	var job domain.ScheduledJob
	var id []byte
	var payload []byte

	err := rows.Scan(&id, &job.JobType, &payload, &job.RunAt, &job.Status,
		&job.Attempts, &job.LastError, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to scan scheduled job")
	}

	job.ID, err = uuid.FromBytes(id)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse job id")
	}

	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &job.Payload); err != nil {
			return nil, apperrors.Wrap(err, "failed to decode job payload")
		}
	}

	return &job, nil
}
