// Package rates serves daily exchange-rate tables: from memory, then from
// the stored snapshot, then from the central bank (written back on fetch).
package rates

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/vacancy-normalizer/internal/domain"
)

type rateStore interface {
	RatesForDate(ctx context.Context, date time.Time) (domain.RateTable, error)
	Save(ctx context.Context, table domain.RateTable) (int64, error)
}

type rateFetcher interface {
	FetchRates(ctx context.Context, date time.Time) (domain.RateTable, error)
}

type retrier interface {
	Do(ctx context.Context, op string, fn func(ctx context.Context) error) error
}

// Service is the pipeline's rate source.
type Service struct {
	store   rateStore
	fetcher rateFetcher
	retry   retrier
	cache   *lru.Cache[string, domain.RateTable]
	group   singleflight.Group
	log     *slog.Logger
}

// NewService creates a Service caching up to cacheSize days.
func NewService(
	log *slog.Logger,
	store rateStore,
	fetcher rateFetcher,
	retry retrier,
	cacheSize int,
) (*Service, error) {
	cache, err := lru.New[string, domain.RateTable](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("rates cache: %w", err)
	}
	return &Service{
		store:   store,
		fetcher: fetcher,
		retry:   retry,
		cache:   cache,
		log:     log.With("service", "rates"),
	}, nil
}

func cacheKey(day time.Time) string { return day.Format(time.DateOnly) }

// RatesForDate returns the table for date. Concurrent misses for the same
// day share one load.
func (s *Service) RatesForDate(ctx context.Context, date time.Time) (domain.RateTable, error) {
	day := domain.DateOnly(date)
	key := cacheKey(day)

	if t, ok := s.cache.Get(key); ok {
		return t, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		if t, ok := s.cache.Get(key); ok {
			return t, nil
		}
		return s.load(ctx, day)
	})
	if err != nil {
		return domain.RateTable{}, err
	}
	return v.(domain.RateTable), nil
}

func (s *Service) load(ctx context.Context, day time.Time) (domain.RateTable, error) {
	var table domain.RateTable
	err := s.retry.Do(ctx, "rates.load", func(ctx context.Context) error {
		var err error
		table, err = s.store.RatesForDate(ctx, day)
		return err
	})
	switch {
	case err == nil:
		s.cache.Add(cacheKey(day), table)
		return table, nil
	case !errors.Is(err, domain.ErrNotFound):
		return domain.RateTable{}, fmt.Errorf("load stored rates: %w", err)
	}

	table, err = s.fetcher.FetchRates(ctx, day)
	if err != nil {
		return domain.RateTable{}, err
	}

	if _, err := s.save(ctx, table); err != nil {
		s.log.WarnContext(ctx, "rates write-back failed",
			slog.String("date", cacheKey(day)),
			slog.String("error", err.Error()),
		)
	}

	s.cache.Add(cacheKey(day), table)
	return table, nil
}

// Sync fetches the table for date from the central bank and stores it,
// replacing any stored snapshot. Returns the number of currencies written.
func (s *Service) Sync(ctx context.Context, date time.Time) (int64, error) {
	day := domain.DateOnly(date)

	table, err := s.fetcher.FetchRates(ctx, day)
	if err != nil {
		return 0, err
	}

	n, err := s.save(ctx, table)
	if err != nil {
		return 0, fmt.Errorf("save rates: %w", err)
	}

	s.cache.Add(cacheKey(day), table)
	s.log.InfoContext(ctx, "rates synced",
		slog.String("date", cacheKey(day)),
		slog.Int64("currencies", n),
	)
	return n, nil
}

func (s *Service) save(ctx context.Context, table domain.RateTable) (int64, error) {
	var n int64
	err := s.retry.Do(ctx, "rates.save", func(ctx context.Context) error {
		var err error
		n, err = s.store.Save(ctx, table)
		return err
	})
	return n, err
}
