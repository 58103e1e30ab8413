// Package taxonomy resolves raw attribute values against the self-extending
// lookup tables, creating provisional entries for values never seen before.
package taxonomy

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/vacancy-normalizer/internal/domain"
)

type taxonomyRepo interface {
	Find(ctx context.Context, kind domain.TaxonomyKind, raw string) (domain.TaxonomyEntry, error)
	Insert(ctx context.Context, kind domain.TaxonomyKind, raw string, date time.Time) (int64, error)
	FindFilter(ctx context.Context, category, position string) (domain.FilterEntry, error)
	InsertFilter(ctx context.Context, category, position string, date time.Time) (int64, error)
}

type retrier interface {
	Do(ctx context.Context, op string, fn func(ctx context.Context) error) error
}

// Resolver maps raw values to taxonomy ids. It never updates an existing row.
type Resolver struct {
	repo       taxonomyRepo
	retry      retrier
	maxRetries int
	now        func() time.Time
	log        *slog.Logger
}

// NewResolver creates a Resolver. maxConflictRetries bounds how many times a
// lost insert race loops back to the lookup.
func NewResolver(log *slog.Logger, repo taxonomyRepo, retry retrier, maxConflictRetries int) *Resolver {
	if maxConflictRetries < 0 {
		maxConflictRetries = 0
	}
	return &Resolver{
		repo:       repo,
		retry:      retry,
		maxRetries: maxConflictRetries,
		now:        time.Now,
		log:        log.With("service", "taxonomy"),
	}
}
