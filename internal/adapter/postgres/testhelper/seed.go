package testhelper

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/vacancy-normalizer/internal/domain"
)

// UniqueSuffix returns a short unique string for generating non-conflicting
// test data in the shared database.
func UniqueSuffix() string {
	return uuid.New().String()[:8]
}

var seedTables = map[domain.TaxonomyKind]string{
	domain.KindLocation:   "location",
	domain.KindCompany:    "company",
	domain.KindSource:     "source",
	domain.KindExperience: "experience",
	domain.KindLanguage:   "language_filter",
	domain.KindStack:      "stack_filter",
}

// SeedTaxonomy inserts a taxonomy row with the given forms and returns its id.
func SeedTaxonomy(t *testing.T, pool *pgxpool.Pool, kind domain.TaxonomyKind, incorrect, correct string) int64 {
	t.Helper()

	table, ok := seedTables[kind]
	if !ok {
		t.Fatalf("testhelper: SeedTaxonomy unknown kind %q", kind)
	}

	var id int64
	err := pool.QueryRow(context.Background(),
		fmt.Sprintf(`INSERT INTO %s (incorrect, correct) VALUES ($1, $2) RETURNING id`, table),
		incorrect, correct,
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: SeedTaxonomy insert %s: %v", table, err)
	}
	return id
}

// SeedRates stores a rate snapshot for the table's date.
func SeedRates(t *testing.T, pool *pgxpool.Pool, table domain.RateTable) {
	t.Helper()

	for ccy, rate := range table.Rates {
		_, err := pool.Exec(context.Background(),
			`INSERT INTO exchange_rate (rate_date, currency, rate) VALUES ($1, $2, $3::numeric)
			 ON CONFLICT (rate_date, currency) DO UPDATE SET rate = EXCLUDED.rate`,
			domain.DateOnly(table.Date), ccy, rate.String(),
		)
		if err != nil {
			t.Fatalf("testhelper: SeedRates %s: %v", ccy, err)
		}
	}
}

// Rate is a shorthand for decimal.RequireFromString in fixtures.
func Rate(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
