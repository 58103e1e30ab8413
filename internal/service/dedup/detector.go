// Package dedup decides whether an inbound message was already stored.
package dedup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/vacancy-normalizer/internal/domain"
)

type messageRepo interface {
	TextExists(ctx context.Context, source string, from, to time.Time, text string) (bool, error)
	MessageExists(ctx context.Context, source, externalID string) (bool, error)
}

type retrier interface {
	Do(ctx context.Context, op string, fn func(ctx context.Context) error) error
}

// Detector checks stored messages within a trailing window.
type Detector struct {
	repo     messageRepo
	retry    retrier
	window   time.Duration
	failOpen bool
	log      *slog.Logger
}

// NewDetector creates a Detector. With failOpen, a store failure that
// outlives the retry budget is logged and treated as "not a duplicate".
func NewDetector(log *slog.Logger, repo messageRepo, retry retrier, window time.Duration, failOpen bool) *Detector {
	return &Detector{
		repo:     repo,
		retry:    retry,
		window:   window,
		failOpen: failOpen,
		log:      log.With("service", "dedup"),
	}
}

// IsDuplicate reports whether the same source stored an identical body for
// a vacancy dated within [date - window, date].
func (d *Detector) IsDuplicate(ctx context.Context, source string, date time.Time, text string) (bool, error) {
	to := domain.DateOnly(date)
	from := to.Add(-d.window)

	var dup bool
	err := d.retry.Do(ctx, "dedup.text", func(ctx context.Context) error {
		var err error
		dup, err = d.repo.TextExists(ctx, source, from, to, text)
		return err
	})
	if err != nil {
		if d.failOpen {
			d.log.WarnContext(ctx, "duplicate check failed, treating as new",
				slog.String("source", source),
				slog.String("error", err.Error()),
			)
			return false, nil
		}
		return false, fmt.Errorf("duplicate check: %w", err)
	}
	return dup, nil
}

// Seen reports whether the message (source, externalID) was already
// committed.
func (d *Detector) Seen(ctx context.Context, source, externalID string) (bool, error) {
	var seen bool
	err := d.retry.Do(ctx, "dedup.seen", func(ctx context.Context) error {
		var err error
		seen, err = d.repo.MessageExists(ctx, source, externalID)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("seen check: %w", err)
	}
	return seen, nil
}
