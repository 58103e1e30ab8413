// Package exchangerate stores the daily exchange-rate snapshots.
package exchangerate

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	postgres "github.com/heartmarshall/vacancy-normalizer/internal/adapter/postgres"
	"github.com/heartmarshall/vacancy-normalizer/internal/domain"
)

// Repo provides exchange-rate persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new exchange-rate repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// RatesForDate returns the stored table for date.
// Returns domain.ErrNotFound if no snapshot was stored for that day.
func (r *Repo) RatesForDate(ctx context.Context, date time.Time) (domain.RateTable, error) {
	day := domain.DateOnly(date)

	query, args, err := postgres.Builder().
		Select("currency", "rate::text").
		From("exchange_rate").
		Where(sq.Eq{"rate_date": day}).
		OrderBy("currency").
		ToSql()
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("build rates select: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("select rates for %s: %w", day.Format(time.DateOnly), err)
	}
	defer rows.Close()

	var rates []domain.ExchangeRate
	for rows.Next() {
		var ccy, raw string
		if err := rows.Scan(&ccy, &raw); err != nil {
			return domain.RateTable{}, fmt.Errorf("scan rate: %w", err)
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return domain.RateTable{}, fmt.Errorf("parse rate %s=%q: %w", ccy, raw, err)
		}
		rates = append(rates, domain.ExchangeRate{Currency: ccy, Rate: d})
	}
	if err := rows.Err(); err != nil {
		return domain.RateTable{}, fmt.Errorf("select rates for %s: %w", day.Format(time.DateOnly), err)
	}

	if len(rates) == 0 {
		return domain.RateTable{}, fmt.Errorf("exchange_rate %s: %w", day.Format(time.DateOnly), domain.ErrNotFound)
	}
	return domain.NewRateTable(day, rates), nil
}

// Save upserts every rate of table. Returns the number of rows written.
func (r *Repo) Save(ctx context.Context, table domain.RateTable) (int64, error) {
	if len(table.Rates) == 0 {
		return 0, nil
	}
	day := domain.DateOnly(table.Date)

	b := postgres.Builder().
		Insert("exchange_rate").
		Columns("rate_date", "currency", "rate").
		Suffix("ON CONFLICT (rate_date, currency) DO UPDATE SET rate = EXCLUDED.rate, fetched_at = now()")
	for _, rate := range sortedRates(table) {
		b = b.Values(day, rate.Currency, rate.Rate.String())
	}

	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build rates upsert: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "exchange_rate", day.Format(time.DateOnly))
	}
	return tag.RowsAffected(), nil
}

func sortedRates(t domain.RateTable) []domain.ExchangeRate {
	rates := t.List()
	slices.SortFunc(rates, func(a, b domain.ExchangeRate) int {
		return strings.Compare(a.Currency, b.Currency)
	})
	return rates
}
