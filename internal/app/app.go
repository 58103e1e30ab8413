package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/vacancy-normalizer/internal/adapter/postgres"
	"github.com/heartmarshall/vacancy-normalizer/internal/adapter/postgres/exchangerate"
	taxonomyrepo "github.com/heartmarshall/vacancy-normalizer/internal/adapter/postgres/taxonomy"
	vacancyrepo "github.com/heartmarshall/vacancy-normalizer/internal/adapter/postgres/vacancy"
	"github.com/heartmarshall/vacancy-normalizer/internal/adapter/provider/cbu"
	"github.com/heartmarshall/vacancy-normalizer/internal/adapter/provider/llm"
	"github.com/heartmarshall/vacancy-normalizer/internal/config"
	"github.com/heartmarshall/vacancy-normalizer/internal/currency"
	"github.com/heartmarshall/vacancy-normalizer/internal/domain"
	"github.com/heartmarshall/vacancy-normalizer/internal/position"
	"github.com/heartmarshall/vacancy-normalizer/internal/sanitizer"
	"github.com/heartmarshall/vacancy-normalizer/internal/service/dedup"
	"github.com/heartmarshall/vacancy-normalizer/internal/service/rates"
	"github.com/heartmarshall/vacancy-normalizer/internal/service/taxonomy"
	"github.com/heartmarshall/vacancy-normalizer/internal/service/vacancy"
	"github.com/heartmarshall/vacancy-normalizer/internal/transport/kafka"
	"github.com/heartmarshall/vacancy-normalizer/internal/transport/rest"
)

// Extractor classifies and extracts attributes from sanitized text.
type Extractor interface {
	Classify(ctx context.Context, text string) (bool, error)
	Extract(ctx context.Context, text string) (domain.RawAttributeRecord, error)
}

// Run is the ingest worker entry point. It consumes the message stream until
// ctx is cancelled, then drains and shuts down the health server.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.ValidateIngest(); err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting ingest worker",
		slog.String("version", BuildVersion()),
		slog.String("topic", cfg.Kafka.Topic),
		slog.Int("workers", cfg.Pipeline.Workers),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	retry := postgres.NewRetrier(pool, cfg.Store.RetryAttempts, cfg.Store.RetryBackoff, logger)

	rateSvc, err := NewRateService(cfg, logger, pool, retry)
	if err != nil {
		return err
	}

	pipeline := NewPipeline(cfg, logger, pool, retry, llm.NewClient(cfg.Extractor, logger), rateSvc)

	consumer := kafka.NewConsumer(cfg.Kafka, cfg.Pipeline, pipeline, logger)
	defer func() {
		if err := consumer.Close(); err != nil {
			logger.Warn("close consumer", slog.String("error", err.Error()))
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return consumer.Run(gctx)
	})

	if cfg.Server.HealthAddr != "" {
		srv := &http.Server{
			Addr:              cfg.Server.HealthAddr,
			Handler:           rest.NewRouter(rest.NewHealthHandler(pool, consumer, BuildVersion()), logger),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			logger.Info("health server listening", slog.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("health server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	err = g.Wait()
	logger.Info("ingest worker stopped")
	return err
}

// NewRateService wires the rate cache over the stored snapshots and the
// central bank client.
func NewRateService(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool, retry *postgres.Retrier) (*rates.Service, error) {
	return rates.NewService(
		logger,
		exchangerate.New(pool),
		cbu.NewClient(cfg.Rates, logger),
		retry,
		cfg.Rates.CacheSize,
	)
}

// NewPipeline wires the canonicalization pipeline on pool.
func NewPipeline(
	cfg *config.Config,
	logger *slog.Logger,
	pool *pgxpool.Pool,
	retry *postgres.Retrier,
	ext Extractor,
	rateSource currency.RateSource,
) *vacancy.Pipeline {
	pc := cfg.Pipeline

	resolver := taxonomy.NewResolver(logger, taxonomyrepo.New(pool), retry, pc.MaxConflictRetries)
	vacancies := vacancyrepo.New(pool)
	detector := dedup.NewDetector(logger, vacancies, retry, pc.DuplicateWindow(), pc.DedupFailOpen)
	salary := currency.NewNormalizer(logger, rateSource, currency.Thresholds{
		MinPlausible:   pc.MinPlausibleSalary,
		LocalBaseUnits: pc.LocalBaseUnits,
	})

	return vacancy.NewPipeline(
		logger,
		sanitizer.New(pc.BoilerplateMarkers, pc.RequiredPrefixes),
		ext,
		detector,
		salary,
		position.Default(),
		resolver,
		vacancies,
		postgres.NewTxManager(pool),
		retry,
		pc,
	)
}
