// Package currency converts extracted salary expressions into a single USD
// figure using the daily rate table of the reference date.
package currency

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/vacancy-normalizer/internal/domain"
)

// USD is the target currency.
const USD = "USD"

// RateSource returns the rate table published for a date.
type RateSource interface {
	RatesForDate(ctx context.Context, date time.Time) (domain.RateTable, error)
}

// Thresholds tune the magnitude heuristics.
type Thresholds struct {
	// MinPlausible: an upper bound below it is noise.
	MinPlausible int64
	// LocalBaseUnits: a local-currency upper bound above it is expressed in
	// base units and is converted; at or below it the figure is kept as is.
	LocalBaseUnits int64
}

// DefaultThresholds are the production values.
var DefaultThresholds = Thresholds{MinPlausible: 50, LocalBaseUnits: 50000}

// Salary is a parsed "from <low> to <high> <CCY>" expression.
type Salary struct {
	Low      int64
	High     int64
	Currency string
}

var salaryRe = regexp.MustCompile(`^\s*from\s+(\d+)\s+to\s+(\d+)\s+([A-Z]{3})\s*$`)

// ParseSalary parses expr. It returns false for the Empty sentinel and for
// anything outside the grammar.
func ParseSalary(expr string) (Salary, bool) {
	m := salaryRe.FindStringSubmatch(expr)
	if m == nil {
		return Salary{}, false
	}
	low, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return Salary{}, false
	}
	high, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return Salary{}, false
	}
	return Salary{Low: low, High: high, Currency: m[3]}, true
}

// Normalizer converts salary expressions to USD.
type Normalizer struct {
	rates RateSource
	th    Thresholds
	log   *slog.Logger
}

// NewNormalizer creates a Normalizer.
func NewNormalizer(logger *slog.Logger, rates RateSource, th Thresholds) *Normalizer {
	return &Normalizer{
		rates: rates,
		th:    th,
		log:   logger.With("service", "currency"),
	}
}

// ToUSD returns the monthly average of expr in USD rounded to cents, or nil
// when the expression is empty, malformed, implausibly small or in a
// currency the rate table does not list. An error means the rate table could
// not be obtained and the caller must not treat the salary as unknown.
func (n *Normalizer) ToUSD(ctx context.Context, expr string, date time.Time) (*float64, error) {
	if expr == domain.Empty || expr == "" {
		return nil, nil
	}

	s, ok := ParseSalary(expr)
	if !ok {
		n.log.WarnContext(ctx, "unparseable salary", slog.String("salary", expr))
		return nil, nil
	}

	if s.High < n.th.MinPlausible {
		return nil, nil
	}

	avg := decimal.NewFromInt(s.Low).Add(decimal.NewFromInt(s.High)).Div(decimal.NewFromInt(2)).Floor()

	if s.Currency == USD {
		return round(avg), nil
	}

	table, err := n.rates.RatesForDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("rates for %s: %w", date.Format(time.DateOnly), err)
	}

	usd, ok := table.Rate(USD)
	if !ok || !usd.IsPositive() {
		return nil, fmt.Errorf("rates for %s: %s: %w", date.Format(time.DateOnly), USD, domain.ErrRateUnavailable)
	}

	if s.Currency == domain.LocalCurrency {
		if s.High > n.th.LocalBaseUnits {
			return round(avg.Div(usd)), nil
		}
		return round(avg), nil
	}

	rate, ok := table.Rate(s.Currency)
	if !ok || !rate.IsPositive() {
		n.log.WarnContext(ctx, "no rate for currency",
			slog.String("currency", s.Currency),
			slog.String("date", date.Format(time.DateOnly)),
		)
		return nil, nil
	}

	return round(avg.Mul(rate).Div(usd)), nil
}

func round(d decimal.Decimal) *float64 {
	f, _ := d.Round(2).Float64()
	return &f
}
