package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusjobs/board/pkg/analytics"
	"github.com/campusjobs/board/pkg/job"
)

// AnalyticsRepository implements analytics.Repository over the jobs and
// event tables. It is read-only; schemas belong to JobRepository and
// EventRepository.
type AnalyticsRepository struct {
	pool *pgxpool.Pool
}

func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{pool: pool}
}

// StatsByOwner returns per-posting view/click counts inside the range.
// ownerID uuid.Nil means all owners. Removed postings are excluded; the
// owner still sees stats of pending, rejected and expired ones.
func (r *AnalyticsRepository) StatsByOwner(ctx context.Context, ownerID uuid.UUID, since time.Time) ([]analytics.JobStats, error) {
	query := `
SELECT j.id, j.title, j.job_type, j.industry, j.skills, j.created_at,
	(SELECT count(*) FROM job_views v WHERE v.job_id = j.id AND v.occurred_at >= $1),
	(SELECT count(*) FROM job_link_clicks c WHERE c.job_id = j.id AND c.occurred_at >= $1)
FROM jobs j
WHERE j.status <> 'removed'`
	args := []any{since}
	if ownerID != uuid.Nil {
		query += ` AND j.owner_id = $2`
		args = append(args, ownerID)
	}
	query += ` ORDER BY j.created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []analytics.JobStats
	for rows.Next() {
		var js analytics.JobStats
		var jobType string
		var created time.Time
		if err := rows.Scan(&js.JobID, &js.Title, &jobType, &js.Industry, &js.Skills, &created, &js.Views, &js.Clicks); err != nil {
			return nil, err
		}
		js.JobType = job.JobType(jobType)
		js.CreatedAt = created.UTC()
		res = append(res, js)
	}
	return res, rows.Err()
}

func (r *AnalyticsRepository) ViewsByWeekday(ctx context.Context, ownerID uuid.UUID, since time.Time) ([7]int, error) {
	var hist [7]int
	query := `
SELECT EXTRACT(DOW FROM v.occurred_at)::int AS dow, count(*)
FROM job_views v
JOIN jobs j ON j.id = v.job_id
WHERE v.occurred_at >= $1`
	args := []any{since}
	if ownerID != uuid.Nil {
		query += ` AND j.owner_id = $2`
		args = append(args, ownerID)
	}
	query += ` GROUP BY dow`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return hist, err
	}
	defer rows.Close()
	for rows.Next() {
		var dow, count int
		if err := rows.Scan(&dow, &count); err != nil {
			return hist, err
		}
		if dow >= 0 && dow < 7 {
			hist[dow] = count
		}
	}
	return hist, rows.Err()
}
