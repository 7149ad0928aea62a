package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusjobs/board/pkg/studentprofile"
)

// ProfileRepository implements studentprofile.Repository: one row per
// student, replaced wholesale on save.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) (*ProfileRepository, error) {
	r := &ProfileRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ProfileRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS student_profiles (
	student_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
	interests TEXT[] NOT NULL DEFAULT '{}',
	skills TEXT[] NOT NULL DEFAULT '{}',
	preferred_job_types TEXT[] NOT NULL DEFAULT '{}',
	preferred_industries TEXT[] NOT NULL DEFAULT '{}',
	updated_at TIMESTAMPTZ NOT NULL
);
`)
	return err
}

func (r *ProfileRepository) Upsert(ctx context.Context, p studentprofile.Preferences) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO student_profiles (student_id, interests, skills, preferred_job_types, preferred_industries, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (student_id) DO UPDATE SET
	interests = EXCLUDED.interests,
	skills = EXCLUDED.skills,
	preferred_job_types = EXCLUDED.preferred_job_types,
	preferred_industries = EXCLUDED.preferred_industries,
	updated_at = EXCLUDED.updated_at
`, p.StudentID, p.Interests, p.Skills, p.PreferredJobTypes, p.PreferredIndustries, p.UpdatedAt)
	return err
}

func (r *ProfileRepository) Get(ctx context.Context, studentID uuid.UUID) (studentprofile.Preferences, bool, error) {
	row := r.pool.QueryRow(ctx, `
SELECT student_id, interests, skills, preferred_job_types, preferred_industries, updated_at
FROM student_profiles WHERE student_id = $1
`, studentID)
	var p studentprofile.Preferences
	var updated time.Time
	if err := row.Scan(&p.StudentID, &p.Interests, &p.Skills, &p.PreferredJobTypes, &p.PreferredIndustries, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return studentprofile.Preferences{}, false, nil
		}
		return studentprofile.Preferences{}, false, err
	}
	p.UpdatedAt = updated.UTC()
	return p, true, nil
}
