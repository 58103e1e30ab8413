package domain

import "time"

// Empty is the extraction sentinel for an attribute that could not be
// determined from the text. It is distinct from absence.
const Empty = "empty"

// Defaults substituted for the Empty sentinel before taxonomy resolution.
const (
	DefaultNotSpecified = "Not Specified"
	DefaultOther        = "Other"
)

// InboundMessage is one chat message delivered by the ingestion stream.
type InboundMessage struct {
	Source     string    `json:"channel_id"   validate:"required"`
	ExternalID string    `json:"message_id"   validate:"required"`
	Text       string    `json:"message_text" validate:"required"`
	Timestamp  time.Time `json:"timestamp"    validate:"required"`
}

// RawAttributeRecord is the preliminary record produced by the extraction
// service. Fields hold either a value or the Empty sentinel.
type RawAttributeRecord struct {
	Position            string   `validate:"required"`
	Experience          string   `validate:"required"`
	Salary              string   `validate:"required"`
	Location            string   `validate:"required"`
	Company             string   `validate:"required"`
	Stack               []string `validate:"dive,required"`
	Category            string   `validate:"required"`
	ProgrammingLanguage []string `validate:"dive,required"`
	Source              string   `validate:"required"`
	ExternalID          string   `validate:"required"`
	Text                string   `validate:"required"`
	Date                time.Time
}

// CanonicalVacancy is the unit of storage: the normalized attribute record
// with every taxonomy reference resolved.
type CanonicalVacancy struct {
	ID         int64
	Position   string
	Category   string
	Experience TaxonomyRef
	Location   TaxonomyRef
	Company    TaxonomyRef
	Source     TaxonomyRef
	FilterID   int64
	SalaryRaw  string
	SalaryUSD  *float64
	Languages  []TaxonomyRef
	Stack      []TaxonomyRef
	ExternalID string
	Text       string
	Date       time.Time
}

// Outcome is the terminal state of one message.
type Outcome string

const (
	OutcomeCommitted Outcome = "committed"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeRetried   Outcome = "retried"
	OutcomeFailed    Outcome = "failed"
)

func (o Outcome) String() string { return string(o) }

// DateOnly truncates t to a calendar day in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
