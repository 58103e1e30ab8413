package vacancy

import (
	"context"

	"github.com/heartmarshall/vacancy-normalizer/internal/domain"
)

// commit writes the vacancy, its message and its links in one transaction.
// A transaction that fails on connectivity is re-run as a whole.
func (p *Pipeline) commit(ctx context.Context, v *domain.CanonicalVacancy) error {
	return p.retry.Do(ctx, "vacancy.commit", func(ctx context.Context) error {
		return p.tx.RunInTx(ctx, func(ctx context.Context) error {
			id, err := p.vacancies.Insert(ctx, v)
			if err != nil {
				return err
			}
			v.ID = id

			if err := p.vacancies.InsertMessage(ctx, v); err != nil {
				return err
			}
			if err := p.vacancies.LinkLanguages(ctx, id, refIDs(v.Languages)); err != nil {
				return err
			}
			return p.vacancies.LinkStack(ctx, id, refIDs(v.Stack))
		})
	})
}

func refIDs(refs []domain.TaxonomyRef) []int64 {
	ids := make([]int64, len(refs))
	for i, r := range refs {
		ids[i] = r.ID
	}
	return ids
}
