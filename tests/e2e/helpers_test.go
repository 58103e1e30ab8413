//go:build e2e

package e2e_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/vacancy-normalizer/internal/adapter/postgres"
	"github.com/heartmarshall/vacancy-normalizer/internal/adapter/postgres/exchangerate"
	"github.com/heartmarshall/vacancy-normalizer/internal/adapter/postgres/testhelper"
	vacancyrepo "github.com/heartmarshall/vacancy-normalizer/internal/adapter/postgres/vacancy"
	"github.com/heartmarshall/vacancy-normalizer/internal/app"
	"github.com/heartmarshall/vacancy-normalizer/internal/config"
	"github.com/heartmarshall/vacancy-normalizer/internal/domain"
	"github.com/heartmarshall/vacancy-normalizer/internal/extraction"
	"github.com/heartmarshall/vacancy-normalizer/internal/service/rates"
	"github.com/heartmarshall/vacancy-normalizer/internal/service/vacancy"
)

// scriptedExtractor answers every message with the reply registered for the
// first substring found in its text.
type scriptedExtractor struct {
	replies map[string]string
}

func (s *scriptedExtractor) Classify(_ context.Context, text string) (bool, error) {
	_, ok := s.reply(text)
	return ok, nil
}

func (s *scriptedExtractor) Extract(_ context.Context, text string) (domain.RawAttributeRecord, error) {
	reply, ok := s.reply(text)
	if !ok {
		return domain.RawAttributeRecord{}, errors.New("no scripted reply")
	}
	return extraction.Parse(reply), nil
}

func (s *scriptedExtractor) reply(text string) (string, bool) {
	for key, reply := range s.replies {
		if strings.Contains(text, key) {
			return reply, true
		}
	}
	return "", false
}

type bankDown struct{}

func (bankDown) FetchRates(context.Context, time.Time) (domain.RateTable, error) {
	return domain.RateTable{}, domain.ErrRateUnavailable
}

type env struct {
	pool      *pgxpool.Pool
	pipeline  *vacancy.Pipeline
	vacancies *vacancyrepo.Repo
	source    string
}

// setup wires the production pipeline on a real database. Rates come only
// from stored snapshots; the central bank is unreachable.
func setup(t *testing.T, replies map[string]string) *env {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	source := "jobs_" + testhelper.UniqueSuffix()

	cfg := &config.Config{
		Pipeline: config.PipelineConfig{
			Workers:             1,
			DuplicateWindowDays: 30,
			MinPlausibleSalary:  50,
			LocalBaseUnits:      50000,
			MaxConflictRetries:  3,
			ProcessTimeout:      30 * time.Second,
			BoilerplateMarkers:  map[string]string{source: "@click_jobs"},
			RequiredPrefixes:    map[string]string{},
		},
	}

	retry := postgres.NewRetrier(pool, 2, 10*time.Millisecond, logger)
	rateSvc, err := rates.NewService(logger, exchangerate.New(pool), bankDown{}, retry, 8)
	require.NoError(t, err)

	return &env{
		pool:      pool,
		pipeline:  app.NewPipeline(cfg, logger, pool, retry, &scriptedExtractor{replies: replies}, rateSvc),
		vacancies: vacancyrepo.New(pool),
		source:    source,
	}
}

func (e *env) message(id, text string, at time.Time) domain.InboundMessage {
	return domain.InboundMessage{Source: e.source, ExternalID: id, Text: text, Timestamp: at}
}

// vacancyFor loads the vacancy committed for the message.
func (e *env) vacancyFor(t *testing.T, externalID string) *domain.CanonicalVacancy {
	t.Helper()

	var id int64
	err := e.pool.QueryRow(context.Background(),
		`SELECT m.vacancy_id FROM vacancy_message m
		 JOIN source s ON s.id = m.source_id
		 WHERE s.incorrect = $1 AND m.external_id = $2`,
		e.source, externalID,
	).Scan(&id)
	require.NoError(t, err)

	v, err := e.vacancies.Get(context.Background(), id)
	require.NoError(t, err)
	return v
}

func (e *env) vacancyCount(t *testing.T) int {
	t.Helper()

	var n int
	err := e.pool.QueryRow(context.Background(),
		`SELECT count(*) FROM vacancy_message m
		 JOIN source s ON s.id = m.source_id
		 WHERE s.incorrect = $1`,
		e.source,
	).Scan(&n)
	require.NoError(t, err)
	return n
}

func raws(refs []domain.TaxonomyRef) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.Raw)
	}
	return out
}
