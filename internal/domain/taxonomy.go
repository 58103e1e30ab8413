package domain

import "time"

// NewForm is the correct form of a taxonomy entry that was observed but has
// not been curated yet. The pipeline never replaces it.
const NewForm = "new"

// TaxonomyKind identifies one self-extending lookup table.
type TaxonomyKind string

const (
	KindLocation   TaxonomyKind = "location"
	KindCompany    TaxonomyKind = "company"
	KindSource     TaxonomyKind = "source"
	KindExperience TaxonomyKind = "experience"
	KindLanguage   TaxonomyKind = "language"
	KindStack      TaxonomyKind = "stack"
)

// TaxonomyKinds lists every single-key kind.
var TaxonomyKinds = []TaxonomyKind{
	KindLocation, KindCompany, KindSource, KindExperience, KindLanguage, KindStack,
}

func (k TaxonomyKind) String() string { return string(k) }

func (k TaxonomyKind) IsValid() bool {
	switch k {
	case KindLocation, KindCompany, KindSource, KindExperience, KindLanguage, KindStack:
		return true
	}
	return false
}

// TaxonomyEntry is one row of a single-key taxonomy table.
type TaxonomyEntry struct {
	ID          int64
	Kind        TaxonomyKind
	Incorrect   string
	Correct     string
	CreatedDate time.Time
}

// IsProvisional reports whether the entry still awaits curation.
func (e TaxonomyEntry) IsProvisional() bool { return e.Correct == NewForm }

// FilterEntry is one row of the main filter, keyed on the
// (category, position) pair.
type FilterEntry struct {
	ID                int64
	IncorrectCategory string
	IncorrectPosition string
	CorrectCategory   string
	CorrectPosition   string
	CreatedDate       time.Time
}

// TaxonomyRef is the result of resolving a raw value.
type TaxonomyRef struct {
	ID        int64
	Raw       string
	Canonical string
}
