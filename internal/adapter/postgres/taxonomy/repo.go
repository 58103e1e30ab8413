// Package taxonomy implements the self-extending lookup tables using
// PostgreSQL: the six single-key kinds and the (category, position) filter.
package taxonomy

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	postgres "github.com/heartmarshall/vacancy-normalizer/internal/adapter/postgres"
	"github.com/heartmarshall/vacancy-normalizer/internal/domain"
)

var tables = map[domain.TaxonomyKind]string{
	domain.KindLocation:   "location",
	domain.KindCompany:    "company",
	domain.KindSource:     "source",
	domain.KindExperience: "experience",
	domain.KindLanguage:   "language_filter",
	domain.KindStack:      "stack_filter",
}

// Table returns the table backing kind.
func Table(kind domain.TaxonomyKind) (string, error) {
	t, ok := tables[kind]
	if !ok {
		return "", fmt.Errorf("taxonomy kind %q: %w", kind, domain.ErrValidation)
	}
	return t, nil
}

// Repo provides taxonomy persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new taxonomy repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Find returns the entry whose incorrect form equals raw, or whose curated
// correct form equals raw. The 'new' placeholder never matches.
// Returns domain.ErrNotFound when nothing matches.
func (r *Repo) Find(ctx context.Context, kind domain.TaxonomyKind, raw string) (domain.TaxonomyEntry, error) {
	table, err := Table(kind)
	if err != nil {
		return domain.TaxonomyEntry{}, err
	}

	query, args, err := postgres.Builder().
		Select("id", "incorrect", "correct", "created_date").
		From(table).
		Where(sq.Or{
			sq.And{sq.Eq{"correct": raw}, sq.NotEq{"correct": domain.NewForm}},
			sq.Eq{"incorrect": raw},
		}).
		OrderBy("id").
		Limit(1).
		ToSql()
	if err != nil {
		return domain.TaxonomyEntry{}, fmt.Errorf("build %s lookup: %w", table, err)
	}

	e := domain.TaxonomyEntry{Kind: kind}
	err = postgres.QuerierFromCtx(ctx, r.db).
		QueryRow(ctx, query, args...).
		Scan(&e.ID, &e.Incorrect, &e.Correct, &e.CreatedDate)
	if err != nil {
		return domain.TaxonomyEntry{}, postgres.MapError(err, table, raw)
	}
	return e, nil
}

// Insert adds a provisional entry {incorrect: raw, correct: 'new'} and
// returns its id. A concurrent insert of the same raw value surfaces as
// domain.ErrAlreadyExists.
func (r *Repo) Insert(ctx context.Context, kind domain.TaxonomyKind, raw string, date time.Time) (int64, error) {
	table, err := Table(kind)
	if err != nil {
		return 0, err
	}

	query, args, err := postgres.Builder().
		Insert(table).
		Columns("incorrect", "correct", "created_date").
		Values(raw, domain.NewForm, domain.DateOnly(date)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build %s insert: %w", table, err)
	}

	var id int64
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, postgres.MapError(err, table, raw)
	}
	return id, nil
}

// ListProvisional returns up to limit entries of kind still awaiting
// curation, oldest first.
func (r *Repo) ListProvisional(ctx context.Context, kind domain.TaxonomyKind, limit uint64) ([]domain.TaxonomyEntry, error) {
	table, err := Table(kind)
	if err != nil {
		return nil, err
	}

	query, args, err := postgres.Builder().
		Select("id", "incorrect", "correct", "created_date").
		From(table).
		Where(sq.Eq{"correct": domain.NewForm}).
		OrderBy("id").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s provisional list: %w", table, err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list provisional %s: %w", table, err)
	}
	defer rows.Close()

	entries := []domain.TaxonomyEntry{}
	for rows.Next() {
		e := domain.TaxonomyEntry{Kind: kind}
		if err := rows.Scan(&e.ID, &e.Incorrect, &e.Correct, &e.CreatedDate); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list provisional %s: %w", table, err)
	}
	return entries, nil
}
