package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusjobs/board/pkg/application"
)

// ApplicationRepository implements application.Repository. Requires the
// jobs and users tables, so construct it after those repositories.
type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) (*ApplicationRepository, error) {
	r := &ApplicationRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ApplicationRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS applications (
	id UUID PRIMARY KEY,
	job_id UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
	student_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	status TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	UNIQUE (job_id, student_id)
);
CREATE INDEX IF NOT EXISTS idx_applications_student ON applications(student_id);
`)
	return err
}

func (r *ApplicationRepository) Create(ctx context.Context, a application.Application) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO applications (id, job_id, student_id, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
`, a.ID, a.JobID, a.StudentID, string(a.Status), a.CreatedAt, a.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return application.ErrAlreadyApplied
		}
		return err
	}
	return nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	row := r.pool.QueryRow(ctx, `
SELECT a.id, a.job_id, a.student_id, a.status, a.created_at, a.updated_at, j.title, u.email
FROM applications a
JOIN jobs j ON j.id = a.job_id
JOIN users u ON u.id = a.student_id
WHERE a.id = $1
`, id)
	return scanApplication(row)
}

func (r *ApplicationRepository) ListForOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]application.Application, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT a.id, a.job_id, a.student_id, a.status, a.created_at, a.updated_at, j.title, u.email
FROM applications a
JOIN jobs j ON j.id = a.job_id
JOIN users u ON u.id = a.student_id
WHERE j.owner_id = $1
ORDER BY a.created_at DESC
LIMIT $2 OFFSET $3
`, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	return scanApplications(rows)
}

func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID uuid.UUID, limit, offset int) ([]application.Application, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT a.id, a.job_id, a.student_id, a.status, a.created_at, a.updated_at, j.title, u.email
FROM applications a
JOIN jobs j ON j.id = a.job_id
JOIN users u ON u.id = a.student_id
WHERE a.student_id = $1
ORDER BY a.created_at DESC
LIMIT $2 OFFSET $3
`, studentID, limit, offset)
	if err != nil {
		return nil, err
	}
	return scanApplications(rows)
}

func (r *ApplicationRepository) OwnsJobOf(ctx context.Context, ownerID, applicationID uuid.UUID) (bool, error) {
	row := r.pool.QueryRow(ctx, `
SELECT EXISTS (
	SELECT 1 FROM applications a
	JOIN jobs j ON j.id = a.job_id
	WHERE a.id = $1 AND j.owner_id = $2
)
`, applicationID, ownerID)
	var owns bool
	if err := row.Scan(&owns); err != nil {
		return false, err
	}
	return owns, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE applications SET status = $2, updated_at = now() WHERE id = $1
`, id, string(status))
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return application.ErrNotFound
	}
	return nil
}

func scanApplication(row pgx.Row) (application.Application, error) {
	var a application.Application
	var status string
	var created, updated time.Time
	err := row.Scan(&a.ID, &a.JobID, &a.StudentID, &status, &created, &updated, &a.JobTitle, &a.StudentEmail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	a.CreatedAt = created.UTC()
	a.UpdatedAt = updated.UTC()
	return a, nil
}

func scanApplications(rows pgx.Rows) ([]application.Application, error) {
	defer rows.Close()
	var res []application.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}
