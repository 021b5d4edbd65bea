// Package repository defines persistence interfaces for the domain.
package repository

import (
	"context"

	"content-summarizer/internal/domain/entity"
)

// SummaryRepository persists completed summarization runs.
type SummaryRepository interface {
	// Create stores a summary record and fills in its generated ID.
	Create(ctx context.Context, summary *entity.Summary) error

	// List returns stored summaries ordered by creation time, newest
	// first, using offset/limit pagination.
	List(ctx context.Context, offset, limit int) ([]*entity.Summary, error)

	// Count returns the total number of stored summaries.
	Count(ctx context.Context) (int64, error)

	// Get returns the summary with the given ID, or (nil, nil) when
	// no such record exists.
	Get(ctx context.Context, id int64) (*entity.Summary, error)
}
