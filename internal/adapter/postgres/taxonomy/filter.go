package taxonomy

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	postgres "github.com/heartmarshall/vacancy-normalizer/internal/adapter/postgres"
	"github.com/heartmarshall/vacancy-normalizer/internal/domain"
)

const filterTable = "main_filter"

// FindFilter returns the main filter row whose incorrect pair, or curated
// correct pair, equals (category, position).
// Returns domain.ErrNotFound when nothing matches.
func (r *Repo) FindFilter(ctx context.Context, category, position string) (domain.FilterEntry, error) {
	query, args, err := postgres.Builder().
		Select("id", "incorrect_category", "incorrect_position", "correct_category", "correct_position", "created_date").
		From(filterTable).
		Where(sq.Or{
			sq.Eq{"incorrect_category": category, "incorrect_position": position},
			sq.Eq{"correct_category": category, "correct_position": position},
		}).
		OrderBy("id").
		Limit(1).
		ToSql()
	if err != nil {
		return domain.FilterEntry{}, fmt.Errorf("build filter lookup: %w", err)
	}

	var f domain.FilterEntry
	err = postgres.QuerierFromCtx(ctx, r.db).
		QueryRow(ctx, query, args...).
		Scan(&f.ID, &f.IncorrectCategory, &f.IncorrectPosition, &f.CorrectCategory, &f.CorrectPosition, &f.CreatedDate)
	if err != nil {
		return domain.FilterEntry{}, postgres.MapError(err, filterTable, category+"/"+position)
	}
	return f, nil
}

// InsertFilter adds a provisional (category, position) pair and returns its id.
func (r *Repo) InsertFilter(ctx context.Context, category, position string, date time.Time) (int64, error) {
	query, args, err := postgres.Builder().
		Insert(filterTable).
		Columns("incorrect_category", "incorrect_position", "correct_category", "correct_position", "created_date").
		Values(category, position, domain.NewForm, domain.NewForm, domain.DateOnly(date)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build filter insert: %w", err)
	}

	var id int64
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, postgres.MapError(err, filterTable, category+"/"+position)
	}
	return id, nil
}
