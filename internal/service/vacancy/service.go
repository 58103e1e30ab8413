// Package vacancy runs the per-message canonicalization pipeline: from an
// inbound chat message to a committed canonical vacancy.
package vacancy

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/heartmarshall/vacancy-normalizer/internal/config"
	"github.com/heartmarshall/vacancy-normalizer/internal/domain"
)

type textSanitizer interface {
	Sanitize(text, source string) string
	Admit(text, source string) bool
}

type extractor interface {
	Classify(ctx context.Context, text string) (bool, error)
	Extract(ctx context.Context, text string) (domain.RawAttributeRecord, error)
}

type duplicateDetector interface {
	Seen(ctx context.Context, source, externalID string) (bool, error)
	IsDuplicate(ctx context.Context, source string, date time.Time, text string) (bool, error)
}

type salaryNormalizer interface {
	ToUSD(ctx context.Context, expr string, date time.Time) (*float64, error)
}

type positionCanonicalizer interface {
	Canonicalize(raw string) string
}

type taxonomyResolver interface {
	Resolve(ctx context.Context, kind domain.TaxonomyKind, raw string) (domain.TaxonomyRef, error)
	ResolveMany(ctx context.Context, kind domain.TaxonomyKind, raws []string) ([]domain.TaxonomyRef, error)
	ResolveFilter(ctx context.Context, category, position string) (domain.FilterEntry, error)
}

type vacancyRepo interface {
	Insert(ctx context.Context, v *domain.CanonicalVacancy) (int64, error)
	InsertMessage(ctx context.Context, v *domain.CanonicalVacancy) error
	LinkLanguages(ctx context.Context, vacancyID int64, ids []int64) error
	LinkStack(ctx context.Context, vacancyID int64, ids []int64) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type retrier interface {
	Do(ctx context.Context, op string, fn func(ctx context.Context) error) error
}

// Pipeline processes inbound messages one at a time. It is safe for
// concurrent use.
type Pipeline struct {
	log       *slog.Logger
	validate  *validator.Validate
	sanitizer textSanitizer
	extractor extractor
	dedup     duplicateDetector
	salary    salaryNormalizer
	positions positionCanonicalizer
	resolver  taxonomyResolver
	vacancies vacancyRepo
	tx        txManager
	retry     retrier
	cfg       config.PipelineConfig
}

// NewPipeline creates a Pipeline.
func NewPipeline(
	logger *slog.Logger,
	sanitizer textSanitizer,
	extractor extractor,
	dedup duplicateDetector,
	salary salaryNormalizer,
	positions positionCanonicalizer,
	resolver taxonomyResolver,
	vacancies vacancyRepo,
	tx txManager,
	retry retrier,
	cfg config.PipelineConfig,
) *Pipeline {
	return &Pipeline{
		log:       logger.With("service", "pipeline"),
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		sanitizer: sanitizer,
		extractor: extractor,
		dedup:     dedup,
		salary:    salary,
		positions: positions,
		resolver:  resolver,
		vacancies: vacancies,
		tx:        tx,
		retry:     retry,
		cfg:       cfg,
	}
}
