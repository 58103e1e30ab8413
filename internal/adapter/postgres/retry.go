package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
)

// Retrier re-issues store operations that failed on connectivity. Before
// each re-issue the pool is pinged; the operation is re-issued only after a
// successful ping. Non-transient errors return immediately.
type Retrier struct {
	db       Pinger
	attempts uint64
	backoff  time.Duration
	log      *slog.Logger
}

// NewRetrier creates a Retrier making at most attempts calls of each
// operation, waiting backoff between them.
func NewRetrier(db Pinger, attempts int, backoff time.Duration, logger *slog.Logger) *Retrier {
	if attempts < 1 {
		attempts = 1
	}
	if backoff <= 0 {
		backoff = time.Millisecond
	}
	return &Retrier{
		db:       db,
		attempts: uint64(attempts),
		backoff:  backoff,
		log:      logger.With("component", "store_retrier"),
	}
}

// Do runs fn, retrying transient failures within the attempt budget.
// The last error is returned when the budget is exhausted.
func (r *Retrier) Do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	b := retry.WithMaxRetries(r.attempts-1, retry.NewConstant(r.backoff))

	attempt := 0
	var lastErr error
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			if err := r.db.Ping(ctx); err != nil {
				r.log.WarnContext(ctx, "store reconnect failed",
					slog.String("op", op),
					slog.Int("attempt", attempt),
					slog.String("error", err.Error()),
				)
				return retry.RetryableError(lastErr)
			}
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if !IsTransient(lastErr) {
			return lastErr
		}

		r.log.WarnContext(ctx, "store operation failed, will retry",
			slog.String("op", op),
			slog.Int("attempt", attempt),
			slog.String("error", lastErr.Error()),
		)
		return retry.RetryableError(lastErr)
	})
	return err
}
