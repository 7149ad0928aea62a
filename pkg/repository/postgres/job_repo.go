package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusjobs/board/pkg/job"
)

// JobRepository implements job.Repository backed by PostgreSQL (pgx).
type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) (*JobRepository, error) {
	r := &JobRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *JobRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS jobs (
	id UUID PRIMARY KEY,
	owner_id UUID NOT NULL,
	title TEXT NOT NULL,
	company TEXT NOT NULL,
	industry TEXT NOT NULL DEFAULT '',
	job_type TEXT NOT NULL,
	location TEXT NOT NULL DEFAULT '',
	salary_range TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL,
	requirements TEXT[] NOT NULL DEFAULT '{}',
	skills TEXT[] NOT NULL DEFAULT '{}',
	apply_url TEXT NOT NULL DEFAULT '',
	deadline DATE NOT NULL,
	status TEXT NOT NULL,
	rejection_note TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_jobs_owner ON jobs(owner_id);
CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs(status);
`)
	return err
}

const jobColumns = `id, owner_id, title, company, industry, job_type, location, salary_range,
	description, requirements, skills, apply_url, deadline, status, rejection_note, created_at, updated_at`

func (r *JobRepository) Create(ctx context.Context, p job.Posting) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO jobs (`+jobColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
`, p.ID, p.OwnerID, p.Title, p.Company, p.Industry, string(p.JobType), p.Location, p.SalaryRange,
		p.Description, p.Requirements, p.Skills, p.ApplyURL, p.Deadline, string(p.Status),
		p.RejectionNote, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	return scanPosting(row)
}

func (r *JobRepository) GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (job.Posting, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1 AND owner_id = $2`, id, ownerID)
	return scanPosting(row)
}

func (r *JobRepository) ListActive(ctx context.Context) ([]job.Posting, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+jobColumns+` FROM jobs WHERE status = $1 ORDER BY created_at DESC
`, string(job.StatusActive))
	if err != nil {
		return nil, err
	}
	return scanPostings(rows)
}

func (r *JobRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]job.Posting, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT `+jobColumns+` FROM jobs WHERE owner_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3
`, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	return scanPostings(rows)
}

func (r *JobRepository) ListByStatus(ctx context.Context, status job.Status, limit, offset int) ([]job.Posting, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT `+jobColumns+` FROM jobs WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3
`, string(status), limit, offset)
	if err != nil {
		return nil, err
	}
	return scanPostings(rows)
}

func (r *JobRepository) ListAll(ctx context.Context, limit, offset int) ([]job.Posting, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	return scanPostings(rows)
}

func (r *JobRepository) Update(ctx context.Context, p job.Posting) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE jobs SET
	title = $2, company = $3, industry = $4, job_type = $5, location = $6,
	salary_range = $7, description = $8, requirements = $9, skills = $10,
	apply_url = $11, deadline = $12, status = $13, rejection_note = $14, updated_at = $15
WHERE id = $1
`, p.ID, p.Title, p.Company, p.Industry, string(p.JobType), p.Location,
		p.SalaryRange, p.Description, p.Requirements, p.Skills,
		p.ApplyURL, p.Deadline, string(p.Status), p.RejectionNote, p.UpdatedAt)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *JobRepository) SetStatus(ctx context.Context, id uuid.UUID, status job.Status, rejectionNote string) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE jobs SET status = $2, rejection_note = $3, updated_at = now() WHERE id = $1
`, id, string(status), rejectionNote)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return job.ErrNotFound
	}
	return nil
}

func scanPosting(row pgx.Row) (job.Posting, error) {
	var p job.Posting
	var jobType, status string
	var created, updated time.Time
	err := row.Scan(&p.ID, &p.OwnerID, &p.Title, &p.Company, &p.Industry, &jobType,
		&p.Location, &p.SalaryRange, &p.Description, &p.Requirements, &p.Skills,
		&p.ApplyURL, &p.Deadline, &status, &p.RejectionNote, &created, &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Posting{}, job.ErrNotFound
		}
		return job.Posting{}, err
	}
	p.JobType = job.JobType(jobType)
	p.Status = job.Status(status)
	p.CreatedAt = created.UTC()
	p.UpdatedAt = updated.UTC()
	return p, nil
}

func scanPostings(rows pgx.Rows) ([]job.Posting, error) {
	defer rows.Close()
	var res []job.Posting
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}
