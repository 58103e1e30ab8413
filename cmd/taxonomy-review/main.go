// Command taxonomy-review lists taxonomy entries the pipeline created
// provisionally and that still await a curated form.
//
// Usage:
//
//	taxonomy-review [--kind=company] [--limit=50]
//
// Without --kind every kind is listed. Output is tab separated:
// kind, id, raw value, created date.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/vacancy-normalizer/internal/adapter/postgres"
	"github.com/heartmarshall/vacancy-normalizer/internal/adapter/postgres/taxonomy"
	"github.com/heartmarshall/vacancy-normalizer/internal/app"
	"github.com/heartmarshall/vacancy-normalizer/internal/config"
	"github.com/heartmarshall/vacancy-normalizer/internal/domain"
)

func main() {
	kindFlag := flag.String("kind", "", "taxonomy kind to list (default: all)")
	limit := flag.Uint64("limit", 50, "maximum entries per kind")
	flag.Parse()

	kinds := domain.TaxonomyKinds
	if *kindFlag != "" {
		k := domain.TaxonomyKind(*kindFlag)
		if !k.IsValid() {
			fmt.Fprintf(os.Stderr, "unknown kind %q\n", *kindFlag)
			os.Exit(1)
		}
		kinds = []domain.TaxonomyKind{k}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	repo := taxonomy.New(pool)

	total := 0
	for _, k := range kinds {
		entries, err := repo.ListProvisional(ctx, k, *limit)
		if err != nil {
			logger.Error("list provisional", slog.String("kind", k.String()), slog.String("error", err.Error()))
			os.Exit(1)
		}
		for _, e := range entries {
			fmt.Printf("%s\t%d\t%s\t%s\n", e.Kind, e.ID, e.Incorrect, e.CreatedDate.Format(time.DateOnly))
		}
		total += len(entries)
	}

	logger.Info("provisional entries listed", slog.Int("count", total))
}
