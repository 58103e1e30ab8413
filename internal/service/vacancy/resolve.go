package vacancy

import (
	"context"
	"fmt"

	"github.com/heartmarshall/vacancy-normalizer/internal/domain"
)

// canonicalPosition maps the extracted title to its canonical form. An
// unknown title, or one that canonicalizes to nothing, becomes "Other".
func (p *Pipeline) canonicalPosition(raw string) string {
	if raw == domain.Empty {
		return domain.DefaultOther
	}
	return domain.OrDefault(p.positions.Canonicalize(raw), domain.DefaultOther)
}

// resolve substitutes defaults for unknown attributes and maps every value
// to its taxonomy reference.
func (p *Pipeline) resolve(ctx context.Context, rec domain.RawAttributeRecord, position string) (*domain.CanonicalVacancy, error) {
	category := domain.OrDefault(rec.Category, domain.DefaultOther)

	v := &domain.CanonicalVacancy{
		Position:   position,
		Category:   category,
		SalaryRaw:  rec.Salary,
		ExternalID: rec.ExternalID,
		Text:       rec.Text,
		Date:       rec.Date,
	}

	singles := []struct {
		kind domain.TaxonomyKind
		raw  string
		dst  *domain.TaxonomyRef
	}{
		{domain.KindSource, rec.Source, &v.Source},
		{domain.KindLocation, domain.OrDefault(rec.Location, domain.DefaultNotSpecified), &v.Location},
		{domain.KindCompany, domain.OrDefault(rec.Company, domain.DefaultNotSpecified), &v.Company},
		{domain.KindExperience, domain.OrDefault(rec.Experience, domain.DefaultNotSpecified), &v.Experience},
	}
	for _, s := range singles {
		ref, err := p.resolver.Resolve(ctx, s.kind, s.raw)
		if err != nil {
			return nil, err
		}
		*s.dst = ref
	}

	var err error
	if v.Languages, err = p.resolver.ResolveMany(ctx, domain.KindLanguage, rec.ProgrammingLanguage); err != nil {
		return nil, err
	}
	if v.Stack, err = p.resolver.ResolveMany(ctx, domain.KindStack, rec.Stack); err != nil {
		return nil, err
	}

	filter, err := p.resolver.ResolveFilter(ctx, category, position)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	v.FilterID = filter.ID

	return v, nil
}
