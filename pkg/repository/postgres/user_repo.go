package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusjobs/board/pkg/identity"
)

// UserRepository implements identity.UserRepository backed by PostgreSQL (pgx).
// Profile attributes of all roles live as columns on the users row; only
// the columns matching the role carry meaningful values.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) (*UserRepository, error) {
	repo := &UserRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *UserRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			major TEXT NOT NULL DEFAULT '',
			grad_year INT NOT NULL DEFAULT 0,
			gpa REAL NOT NULL DEFAULT 0,
			resume_url TEXT NOT NULL DEFAULT '',
			company_name TEXT NOT NULL DEFAULT '',
			job_title TEXT NOT NULL DEFAULT '',
			department TEXT NOT NULL DEFAULT '',
			office_hours TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS password_reset_tokens (
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			token_hash TEXT NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (user_id, token_hash)
		);
	`)
	return err
}

const userColumns = `id, email, password_hash, role, first_name, last_name,
	major, grad_year, gpa, resume_url, company_name, job_title, department, office_hours, created_at`

func (r *UserRepository) Create(ctx context.Context, user identity.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, user.ID, strings.ToLower(user.Email), user.PasswordHash, string(user.Role),
		user.FirstName, user.LastName,
		user.Profile.Major, user.Profile.GradYear, user.Profile.GPA, user.Profile.ResumeURL,
		user.Profile.CompanyName, user.Profile.JobTitle,
		user.Profile.Department, user.Profile.OfficeHours,
		user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return identity.ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (identity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = $1
	`, strings.ToLower(email))
	return scanUser(row)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (identity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, id)
	return scanUser(row)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, user identity.User) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE users SET
			email = $2, first_name = $3, last_name = $4,
			major = $5, grad_year = $6, gpa = $7, resume_url = $8,
			company_name = $9, job_title = $10, department = $11, office_hours = $12
		WHERE id = $1
	`, user.ID, strings.ToLower(user.Email), user.FirstName, user.LastName,
		user.Profile.Major, user.Profile.GradYear, user.Profile.GPA, user.Profile.ResumeURL,
		user.Profile.CompanyName, user.Profile.JobTitle,
		user.Profile.Department, user.Profile.OfficeHours)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return identity.ErrUserAlreadyExists
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return identity.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return identity.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return identity.ErrNotFound
	}
	return nil
}

func (r *UserRepository) StoreResetToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO password_reset_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`, userID, tokenHash, expiresAt)
	return err
}

func scanUser(row pgx.Row) (identity.User, error) {
	var user identity.User
	var role string
	var createdAt time.Time
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &role,
		&user.FirstName, &user.LastName,
		&user.Profile.Major, &user.Profile.GradYear, &user.Profile.GPA, &user.Profile.ResumeURL,
		&user.Profile.CompanyName, &user.Profile.JobTitle,
		&user.Profile.Department, &user.Profile.OfficeHours,
		&createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return identity.User{}, identity.ErrNotFound
		}
		return identity.User{}, err
	}
	parsed, err := identity.ParseRole(role)
	if err != nil {
		return identity.User{}, err
	}
	user.Role = parsed
	user.CreatedAt = createdAt.UTC()
	return user, nil
}
