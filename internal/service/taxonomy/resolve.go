package taxonomy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/vacancy-normalizer/internal/domain"
)

// Resolve returns the reference for raw in the kind's table. An unseen value
// is inserted as provisional and comes back with the 'new' canonical form.
func (r *Resolver) Resolve(ctx context.Context, kind domain.TaxonomyKind, raw string) (domain.TaxonomyRef, error) {
	if !kind.IsValid() {
		return domain.TaxonomyRef{}, domain.NewValidationError("kind", fmt.Sprintf("unknown taxonomy kind %q", kind))
	}
	if strings.TrimSpace(raw) == "" {
		return domain.TaxonomyRef{}, domain.NewValidationError(kind.String(), "required")
	}

	find := func(ctx context.Context) (domain.TaxonomyRef, error) {
		var e domain.TaxonomyEntry
		err := r.retry.Do(ctx, "taxonomy.find", func(ctx context.Context) error {
			var err error
			e, err = r.repo.Find(ctx, kind, raw)
			return err
		})
		return domain.TaxonomyRef{ID: e.ID, Raw: raw, Canonical: e.Correct}, err
	}
	insert := func(ctx context.Context) (domain.TaxonomyRef, error) {
		var id int64
		err := r.retry.Do(ctx, "taxonomy.insert", func(ctx context.Context) error {
			var err error
			id, err = r.repo.Insert(ctx, kind, raw, r.now())
			return err
		})
		return domain.TaxonomyRef{ID: id, Raw: raw, Canonical: domain.NewForm}, err
	}

	ref, err := resolveOrCreate(ctx, r, find, insert)
	if err != nil {
		return domain.TaxonomyRef{}, fmt.Errorf("resolve %s %q: %w", kind, raw, err)
	}
	return ref, nil
}

// ResolveMany resolves each distinct non-empty value once, keeping the
// order of first appearance. Empty-sentinel tokens are dropped.
func (r *Resolver) ResolveMany(ctx context.Context, kind domain.TaxonomyKind, raws []string) ([]domain.TaxonomyRef, error) {
	seen := make(map[string]struct{}, len(raws))
	refs := make([]domain.TaxonomyRef, 0, len(raws))
	for _, raw := range raws {
		if raw == domain.Empty || strings.TrimSpace(raw) == "" {
			continue
		}
		if _, ok := seen[raw]; ok {
			continue
		}
		seen[raw] = struct{}{}

		ref, err := r.Resolve(ctx, kind, raw)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// resolveOrCreate looks the value up and inserts it when missing. An insert
// that loses a race to a concurrent one loops back to the lookup.
func resolveOrCreate[T any](
	ctx context.Context,
	r *Resolver,
	find func(context.Context) (T, error),
	insert func(context.Context) (T, error),
) (T, error) {
	var zero T
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		v, err := find(ctx)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return zero, err
		}

		v, err = insert(ctx)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, domain.ErrAlreadyExists) {
			return zero, err
		}

		r.log.DebugContext(ctx, "taxonomy insert lost race, looking up again",
			slog.Int("attempt", attempt+1),
		)
	}
	return zero, domain.ErrConflict
}
