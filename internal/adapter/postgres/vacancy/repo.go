// Package vacancy implements persistence of canonical vacancies, their
// source messages and their language/stack links.
package vacancy

import (
	"context"
	"fmt"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/vacancy-normalizer/internal/adapter/postgres"
	"github.com/heartmarshall/vacancy-normalizer/internal/domain"
)

// Repo provides vacancy persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new vacancy repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Write operations (run inside TxManager.RunInTx)
// ---------------------------------------------------------------------------

// Insert stores the main vacancy row and returns its id. A nil SalaryUSD is
// stored as NULL.
func (r *Repo) Insert(ctx context.Context, v *domain.CanonicalVacancy) (int64, error) {
	query, args, err := postgres.Builder().
		Insert("main_vacancy").
		Columns("location_id", "company_id", "experience_id", "source_id", "filter_id", "salary_usd", "date").
		Values(v.Location.ID, v.Company.ID, v.Experience.ID, v.Source.ID, v.FilterID, v.SalaryUSD, domain.DateOnly(v.Date)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build vacancy insert: %w", err)
	}

	var id int64
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, postgres.MapError(err, "main_vacancy", v.ExternalID)
	}
	return id, nil
}

// InsertMessage stores the source message of vacancy v. A message already
// stored for the same source and external id surfaces as
// domain.ErrAlreadyExists.
func (r *Repo) InsertMessage(ctx context.Context, v *domain.CanonicalVacancy) error {
	query, args, err := postgres.Builder().
		Insert("vacancy_message").
		Columns("vacancy_id", "source_id", "external_id", "text", "salary_raw").
		Values(v.ID, v.Source.ID, v.ExternalID, v.Text, v.SalaryRaw).
		ToSql()
	if err != nil {
		return fmt.Errorf("build message insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "vacancy_message", v.Source.Raw+"/"+v.ExternalID)
	}
	return nil
}

// LinkLanguages links the vacancy to language taxonomy ids.
func (r *Repo) LinkLanguages(ctx context.Context, vacancyID int64, ids []int64) error {
	return r.link(ctx, "vacancy_language", "language_id", vacancyID, ids)
}

// LinkStack links the vacancy to stack taxonomy ids.
func (r *Repo) LinkStack(ctx context.Context, vacancyID int64, ids []int64) error {
	return r.link(ctx, "vacancy_stack", "stack_id", vacancyID, ids)
}

func (r *Repo) link(ctx context.Context, table, column string, vacancyID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	b := postgres.Builder().
		Insert(table).
		Columns("vacancy_id", column).
		Suffix("ON CONFLICT DO NOTHING")
	for _, id := range ids {
		b = b.Values(vacancyID, id)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build %s insert: %w", table, err)
	}
	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, table, strconv.FormatInt(vacancyID, 10))
	}
	return nil
}

// ---------------------------------------------------------------------------
// Duplicate checks
// ---------------------------------------------------------------------------

// sourceMatch selects the source row by channel name the same way the
// taxonomy lookup does.
func sourceMatch(source string) sq.Sqlizer {
	return sq.Or{
		sq.Eq{"s.incorrect": source},
		sq.And{sq.Eq{"s.correct": source}, sq.NotEq{"s.correct": domain.NewForm}},
	}
}

// TextExists reports whether a message with exactly text was stored for
// source with a vacancy date in [from, to], both ends inclusive.
func (r *Repo) TextExists(ctx context.Context, source string, from, to time.Time, text string) (bool, error) {
	query, args, err := postgres.Builder().
		Select("1").
		From("vacancy_message m").
		Join("main_vacancy v ON v.id = m.vacancy_id").
		Join("source s ON s.id = v.source_id").
		Where(sourceMatch(source)).
		Where(sq.GtOrEq{"v.date": domain.DateOnly(from)}).
		Where(sq.LtOrEq{"v.date": domain.DateOnly(to)}).
		Where(sq.Eq{"m.text": text}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build text exists: %w", err)
	}

	var exists bool
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("vacancy_message text exists: %w", err)
	}
	return exists, nil
}

// MessageExists reports whether the message (source, externalID) was stored.
func (r *Repo) MessageExists(ctx context.Context, source, externalID string) (bool, error) {
	query, args, err := postgres.Builder().
		Select("1").
		From("vacancy_message m").
		Join("source s ON s.id = m.source_id").
		Where(sourceMatch(source)).
		Where(sq.Eq{"m.external_id": externalID}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build message exists: %w", err)
	}

	var exists bool
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("vacancy_message %s/%s exists: %w", source, externalID, err)
	}
	return exists, nil
}

// ---------------------------------------------------------------------------
// Read back
// ---------------------------------------------------------------------------

const getSQL = `
SELECT
    v.id, v.date, v.salary_usd,
    l.id, l.incorrect, l.correct,
    c.id, c.incorrect, c.correct,
    e.id, e.incorrect, e.correct,
    s.id, s.incorrect, s.correct,
    f.id, f.incorrect_category, f.incorrect_position,
    m.external_id, m.text, m.salary_raw
FROM main_vacancy v
JOIN location l        ON l.id = v.location_id
JOIN company c         ON c.id = v.company_id
JOIN experience e      ON e.id = v.experience_id
JOIN source s          ON s.id = v.source_id
JOIN main_filter f     ON f.id = v.filter_id
JOIN vacancy_message m ON m.vacancy_id = v.id
WHERE v.id = $1`

const getLanguagesSQL = `
SELECT t.id, t.incorrect, t.correct
FROM vacancy_language x
JOIN language_filter t ON t.id = x.language_id
WHERE x.vacancy_id = $1
ORDER BY t.id`

const getStackSQL = `
SELECT t.id, t.incorrect, t.correct
FROM vacancy_stack x
JOIN stack_filter t ON t.id = x.stack_id
WHERE x.vacancy_id = $1
ORDER BY t.id`

// Get returns the stored vacancy with every reference resolved.
// Returns domain.ErrNotFound if the vacancy does not exist.
func (r *Repo) Get(ctx context.Context, id int64) (*domain.CanonicalVacancy, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var v domain.CanonicalVacancy
	err := q.QueryRow(ctx, getSQL, id).Scan(
		&v.ID, &v.Date, &v.SalaryUSD,
		&v.Location.ID, &v.Location.Raw, &v.Location.Canonical,
		&v.Company.ID, &v.Company.Raw, &v.Company.Canonical,
		&v.Experience.ID, &v.Experience.Raw, &v.Experience.Canonical,
		&v.Source.ID, &v.Source.Raw, &v.Source.Canonical,
		&v.FilterID, &v.Category, &v.Position,
		&v.ExternalID, &v.Text, &v.SalaryRaw,
	)
	if err != nil {
		return nil, postgres.MapError(err, "main_vacancy", strconv.FormatInt(id, 10))
	}

	if v.Languages, err = scanRefs(ctx, q, getLanguagesSQL, id); err != nil {
		return nil, fmt.Errorf("vacancy %d languages: %w", id, err)
	}
	if v.Stack, err = scanRefs(ctx, q, getStackSQL, id); err != nil {
		return nil, fmt.Errorf("vacancy %d stack: %w", id, err)
	}
	return &v, nil
}

func scanRefs(ctx context.Context, q postgres.Querier, query string, id int64) ([]domain.TaxonomyRef, error) {
	rows, err := q.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.TaxonomyRef, error) {
		var ref domain.TaxonomyRef
		err := row.Scan(&ref.ID, &ref.Raw, &ref.Canonical)
		return ref, err
	})
}
