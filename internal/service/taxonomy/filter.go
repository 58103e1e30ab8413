package taxonomy

import (
	"context"
	"fmt"
	"strings"

	"github.com/heartmarshall/vacancy-normalizer/internal/domain"
)

// ResolveFilter returns the main filter entry for the (category, position)
// pair, inserting a provisional one when the pair is new.
func (r *Resolver) ResolveFilter(ctx context.Context, category, position string) (domain.FilterEntry, error) {
	var errs []domain.FieldError
	if strings.TrimSpace(category) == "" {
		errs = append(errs, domain.FieldError{Field: "category", Message: "required"})
	}
	if strings.TrimSpace(position) == "" {
		errs = append(errs, domain.FieldError{Field: "position", Message: "required"})
	}
	if len(errs) > 0 {
		return domain.FilterEntry{}, domain.NewValidationErrors(errs)
	}

	find := func(ctx context.Context) (domain.FilterEntry, error) {
		var f domain.FilterEntry
		err := r.retry.Do(ctx, "filter.find", func(ctx context.Context) error {
			var err error
			f, err = r.repo.FindFilter(ctx, category, position)
			return err
		})
		return f, err
	}
	insert := func(ctx context.Context) (domain.FilterEntry, error) {
		date := r.now()
		var id int64
		err := r.retry.Do(ctx, "filter.insert", func(ctx context.Context) error {
			var err error
			id, err = r.repo.InsertFilter(ctx, category, position, date)
			return err
		})
		return domain.FilterEntry{
			ID:                id,
			IncorrectCategory: category,
			IncorrectPosition: position,
			CorrectCategory:   domain.NewForm,
			CorrectPosition:   domain.NewForm,
			CreatedDate:       domain.DateOnly(date),
		}, err
	}

	f, err := resolveOrCreate(ctx, r, find, insert)
	if err != nil {
		return domain.FilterEntry{}, fmt.Errorf("resolve filter %q/%q: %w", category, position, err)
	}
	return f, nil
}
