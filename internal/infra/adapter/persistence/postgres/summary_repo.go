// Package postgres implements repository interfaces against PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"content-summarizer/internal/domain/entity"
	"content-summarizer/internal/observability/metrics"
	"content-summarizer/internal/repository"
	"content-summarizer/internal/resilience/circuitbreaker"
)

// SummaryRepo stores summary records in PostgreSQL. Queries run
// through a database circuit breaker so a dead database fails fast
// instead of stalling every request.
type SummaryRepo struct {
	db *circuitbreaker.DBCircuitBreaker
}

func NewSummaryRepo(db *sql.DB) repository.SummaryRepository {
	return &SummaryRepo{
		db: circuitbreaker.NewDBCircuitBreaker(db),
	}
}

func (repo *SummaryRepo) Create(ctx context.Context, summary *entity.Summary) error {
	const query = `
INSERT INTO summaries
       (tier, input_chars, summary_chars, text, elapsed_ms, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

	start := time.Now()
	err := repo.db.QueryRowContext(ctx, query,
		summary.Tier, summary.InputChars, summary.SummaryChars,
		summary.Text, summary.ElapsedMS, summary.CreatedAt,
	).Scan(&summary.ID)
	metrics.RecordDBQuery("insert_summary", time.Since(start))

	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *SummaryRepo) List(ctx context.Context, offset, limit int) ([]*entity.Summary, error) {
	const query = `
SELECT id, tier, input_chars, summary_chars, text, elapsed_ms, created_at
FROM summaries
ORDER BY created_at DESC, id DESC
LIMIT $1 OFFSET $2`

	start := time.Now()
	rows, err := repo.db.QueryContext(ctx, query, limit, offset)
	metrics.RecordDBQuery("list_summaries", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	summaries := make([]*entity.Summary, 0, limit)
	for rows.Next() {
		var s entity.Summary
		if err := rows.Scan(&s.ID, &s.Tier, &s.InputChars, &s.SummaryChars,
			&s.Text, &s.ElapsedMS, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		summaries = append(summaries, &s)
	}
	return summaries, rows.Err()
}

func (repo *SummaryRepo) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM summaries`

	start := time.Now()
	var count int64
	err := repo.db.QueryRowContext(ctx, query).Scan(&count)
	metrics.RecordDBQuery("count_summaries", time.Since(start))
	if err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

func (repo *SummaryRepo) Get(ctx context.Context, id int64) (*entity.Summary, error) {
	const query = `
SELECT id, tier, input_chars, summary_chars, text, elapsed_ms, created_at
FROM summaries
WHERE id = $1
LIMIT 1`

	start := time.Now()
	var s entity.Summary
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&s.ID, &s.Tier, &s.InputChars, &s.SummaryChars,
			&s.Text, &s.ElapsedMS, &s.CreatedAt)
	metrics.RecordDBQuery("get_summary", time.Since(start))

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &s, nil
}
