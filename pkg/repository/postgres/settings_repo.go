package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusjobs/board/pkg/settings"
)

// SettingsRepository stores the single feature-flag row.
type SettingsRepository struct {
	pool *pgxpool.Pool
}

func NewSettingsRepository(pool *pgxpool.Pool) (*SettingsRepository, error) {
	r := &SettingsRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *SettingsRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS platform_settings (
	id INT PRIMARY KEY CHECK (id = 1),
	rep_posting_enabled BOOLEAN NOT NULL DEFAULT TRUE,
	faculty_posting_enabled BOOLEAN NOT NULL DEFAULT TRUE
);
INSERT INTO platform_settings (id) VALUES (1) ON CONFLICT (id) DO NOTHING;
`)
	return err
}

func (r *SettingsRepository) Get(ctx context.Context) (settings.Settings, error) {
	row := r.pool.QueryRow(ctx, `
SELECT rep_posting_enabled, faculty_posting_enabled FROM platform_settings WHERE id = 1
`)
	var s settings.Settings
	if err := row.Scan(&s.RepPostingEnabled, &s.FacultyPostingEnabled); err != nil {
		return settings.Settings{}, err
	}
	return s, nil
}

// Update applies only the fields present in the patch; a nil field keeps
// the stored value.
func (r *SettingsRepository) Update(ctx context.Context, p settings.Patch) (settings.Settings, error) {
	row := r.pool.QueryRow(ctx, `
UPDATE platform_settings SET
	rep_posting_enabled = COALESCE($1, rep_posting_enabled),
	faculty_posting_enabled = COALESCE($2, faculty_posting_enabled)
WHERE id = 1
RETURNING rep_posting_enabled, faculty_posting_enabled
`, p.RepPostingEnabled, p.FacultyPostingEnabled)
	var s settings.Settings
	if err := row.Scan(&s.RepPostingEnabled, &s.FacultyPostingEnabled); err != nil {
		return settings.Settings{}, err
	}
	return s, nil
}
