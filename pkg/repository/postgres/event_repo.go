package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusjobs/board/pkg/tracking"
)

// EventRepository implements tracking.Repository. View and click events
// are append-only; anonymization nulls the viewer, never deletes rows.
// Requires the jobs table, so construct it after JobRepository.
type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) (*EventRepository, error) {
	r := &EventRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *EventRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS job_views (
	id BIGSERIAL PRIMARY KEY,
	job_id UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
	viewer_id UUID,
	occurred_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS job_link_clicks (
	id BIGSERIAL PRIMARY KEY,
	job_id UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
	viewer_id UUID,
	occurred_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_job_views_job ON job_views(job_id, occurred_at);
CREATE INDEX IF NOT EXISTS idx_job_clicks_job ON job_link_clicks(job_id, occurred_at);
`)
	return err
}

func (r *EventRepository) InsertView(ctx context.Context, e tracking.Event) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO job_views (job_id, viewer_id, occurred_at) VALUES ($1, $2, $3)
`, e.JobID, e.ViewerID, e.OccurredAt)
	return err
}

func (r *EventRepository) InsertClick(ctx context.Context, e tracking.Event) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO job_link_clicks (job_id, viewer_id, occurred_at) VALUES ($1, $2, $3)
`, e.JobID, e.ViewerID, e.OccurredAt)
	return err
}

func (r *EventRepository) AnonymizeViewer(ctx context.Context, viewerID uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `UPDATE job_views SET viewer_id = NULL WHERE viewer_id = $1`, viewerID); err != nil {
		return err
	}
	_, err := r.pool.Exec(ctx, `UPDATE job_link_clicks SET viewer_id = NULL WHERE viewer_id = $1`, viewerID)
	return err
}

func (r *EventRepository) AnonymizeOrphans(ctx context.Context) (int64, error) {
	var total int64
	for _, table := range []string{"job_views", "job_link_clicks"} {
		cmd, err := r.pool.Exec(ctx, `
UPDATE `+table+` SET viewer_id = NULL
WHERE viewer_id IS NOT NULL
  AND NOT EXISTS (SELECT 1 FROM users u WHERE u.id = viewer_id)
`)
		if err != nil {
			return total, err
		}
		total += cmd.RowsAffected()
	}
	return total, nil
}
