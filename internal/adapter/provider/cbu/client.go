// Package cbu fetches the daily exchange-rate archive published by the
// Central Bank of Uzbekistan.
package cbu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/vacancy-normalizer/internal/config"
	"github.com/heartmarshall/vacancy-normalizer/internal/domain"
)

const archivePath = "/uz/arkhiv-kursov-valyut/json/all/%s/"

// apiRate is one row of the archive. Numbers arrive as strings.
type apiRate struct {
	Ccy     string `json:"Ccy"`
	Rate    string `json:"Rate"`
	Nominal string `json:"Nominal"`
	Date    string `json:"Date"`
}

// Client fetches rate tables over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	attempts   uint64
	backoff    time.Duration
	log        *slog.Logger
}

// NewClient creates a Client from cfg.
func NewClient(cfg config.RatesConfig, logger *slog.Logger) *Client {
	attempts := cfg.Attempts
	if attempts < 1 {
		attempts = 1
	}
	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = time.Millisecond
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		attempts:   uint64(attempts),
		backoff:    backoff,
		log:        logger.With("adapter", "cbu"),
	}
}

// FetchRates returns the table published for date. Every rate is per one
// unit of currency (Rate / Nominal).
func (c *Client) FetchRates(ctx context.Context, date time.Time) (domain.RateTable, error) {
	day := domain.DateOnly(date)
	reqURL := c.baseURL + fmt.Sprintf(archivePath, day.Format(time.DateOnly))

	var body []byte
	attempt := 0
	b := retry.WithMaxRetries(c.attempts-1, retry.NewExponential(c.backoff))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		var err error
		body, err = c.get(ctx, reqURL)
		if err == nil {
			return nil
		}
		var se *statusError
		if errors.As(err, &se) && se.code < http.StatusInternalServerError {
			return err
		}
		c.log.WarnContext(ctx, "cbu retry",
			slog.String("date", day.Format(time.DateOnly)),
			slog.Int("attempt", attempt),
			slog.String("reason", err.Error()),
		)
		return retry.RetryableError(err)
	})
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("cbu: fetch %s: %w", day.Format(time.DateOnly), err)
	}

	var rows []apiRate
	if err := json.Unmarshal(body, &rows); err != nil {
		return domain.RateTable{}, fmt.Errorf("cbu: decode json: %w", err)
	}

	rates, err := toRates(rows)
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("cbu: %w", err)
	}
	if len(rates) == 0 {
		return domain.RateTable{}, fmt.Errorf("cbu: %s: empty archive: %w", day.Format(time.DateOnly), domain.ErrRateUnavailable)
	}

	c.log.DebugContext(ctx, "cbu rates fetched",
		slog.String("date", day.Format(time.DateOnly)),
		slog.Int("currencies", len(rates)),
	)
	return domain.NewRateTable(day, rates), nil
}

func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &statusError{code: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}

func toRates(rows []apiRate) ([]domain.ExchangeRate, error) {
	rates := make([]domain.ExchangeRate, 0, len(rows))
	for _, row := range rows {
		if row.Ccy == "" {
			continue
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(row.Rate))
		if err != nil {
			return nil, fmt.Errorf("rate %s=%q: %w", row.Ccy, row.Rate, err)
		}
		nominal := decimal.NewFromInt(1)
		if n := strings.TrimSpace(row.Nominal); n != "" {
			if nominal, err = decimal.NewFromString(n); err != nil {
				return nil, fmt.Errorf("nominal %s=%q: %w", row.Ccy, row.Nominal, err)
			}
		}
		if !nominal.IsPositive() || !rate.IsPositive() {
			continue
		}
		rates = append(rates, domain.ExchangeRate{
			Currency: row.Ccy,
			Rate:     rate.DivRound(nominal, 6),
		})
	}
	return rates, nil
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.code)
}
