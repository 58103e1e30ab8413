package vacancy

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/vacancy-normalizer/internal/domain"
)

//go:generate moq -out mocks_test.go -pkg vacancy . extractor duplicateDetector salaryNormalizer taxonomyResolver vacancyRepo txManager retrier

var _ extractor = &extractorMock{}

type extractorMock struct {
	ClassifyFunc func(ctx context.Context, text string) (bool, error)
	ExtractFunc  func(ctx context.Context, text string) (domain.RawAttributeRecord, error)

	calls struct {
		Classify []struct{ Text string }
		Extract  []struct{ Text string }
	}
	lock sync.RWMutex
}

func (mock *extractorMock) Classify(ctx context.Context, text string) (bool, error) {
	if mock.ClassifyFunc == nil {
		panic("extractorMock.ClassifyFunc: method is nil but extractor.Classify was just called")
	}
	mock.lock.Lock()
	mock.calls.Classify = append(mock.calls.Classify, struct{ Text string }{text})
	mock.lock.Unlock()
	return mock.ClassifyFunc(ctx, text)
}

func (mock *extractorMock) ClassifyCalls() []struct{ Text string } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Classify
}

func (mock *extractorMock) Extract(ctx context.Context, text string) (domain.RawAttributeRecord, error) {
	if mock.ExtractFunc == nil {
		panic("extractorMock.ExtractFunc: method is nil but extractor.Extract was just called")
	}
	mock.lock.Lock()
	mock.calls.Extract = append(mock.calls.Extract, struct{ Text string }{text})
	mock.lock.Unlock()
	return mock.ExtractFunc(ctx, text)
}

func (mock *extractorMock) ExtractCalls() []struct{ Text string } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Extract
}

var _ duplicateDetector = &duplicateDetectorMock{}

type duplicateDetectorMock struct {
	SeenFunc        func(ctx context.Context, source, externalID string) (bool, error)
	IsDuplicateFunc func(ctx context.Context, source string, date time.Time, text string) (bool, error)

	calls struct {
		IsDuplicate []struct {
			Source string
			Date   time.Time
			Text   string
		}
	}
	lock sync.RWMutex
}

func (mock *duplicateDetectorMock) Seen(ctx context.Context, source, externalID string) (bool, error) {
	if mock.SeenFunc == nil {
		panic("duplicateDetectorMock.SeenFunc: method is nil but duplicateDetector.Seen was just called")
	}
	return mock.SeenFunc(ctx, source, externalID)
}

func (mock *duplicateDetectorMock) IsDuplicate(ctx context.Context, source string, date time.Time, text string) (bool, error) {
	if mock.IsDuplicateFunc == nil {
		panic("duplicateDetectorMock.IsDuplicateFunc: method is nil but duplicateDetector.IsDuplicate was just called")
	}
	mock.lock.Lock()
	mock.calls.IsDuplicate = append(mock.calls.IsDuplicate, struct {
		Source string
		Date   time.Time
		Text   string
	}{source, date, text})
	mock.lock.Unlock()
	return mock.IsDuplicateFunc(ctx, source, date, text)
}

func (mock *duplicateDetectorMock) IsDuplicateCalls() []struct {
	Source string
	Date   time.Time
	Text   string
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.IsDuplicate
}

var _ salaryNormalizer = &salaryNormalizerMock{}

type salaryNormalizerMock struct {
	ToUSDFunc func(ctx context.Context, expr string, date time.Time) (*float64, error)
}

func (mock *salaryNormalizerMock) ToUSD(ctx context.Context, expr string, date time.Time) (*float64, error) {
	if mock.ToUSDFunc == nil {
		panic("salaryNormalizerMock.ToUSDFunc: method is nil but salaryNormalizer.ToUSD was just called")
	}
	return mock.ToUSDFunc(ctx, expr, date)
}

var _ taxonomyResolver = &taxonomyResolverMock{}

type taxonomyResolverMock struct {
	ResolveFunc       func(ctx context.Context, kind domain.TaxonomyKind, raw string) (domain.TaxonomyRef, error)
	ResolveManyFunc   func(ctx context.Context, kind domain.TaxonomyKind, raws []string) ([]domain.TaxonomyRef, error)
	ResolveFilterFunc func(ctx context.Context, category, position string) (domain.FilterEntry, error)

	calls struct {
		Resolve []struct {
			Kind domain.TaxonomyKind
			Raw  string
		}
		ResolveFilter []struct{ Category, Position string }
	}
	lock sync.RWMutex
}

func (mock *taxonomyResolverMock) Resolve(ctx context.Context, kind domain.TaxonomyKind, raw string) (domain.TaxonomyRef, error) {
	if mock.ResolveFunc == nil {
		panic("taxonomyResolverMock.ResolveFunc: method is nil but taxonomyResolver.Resolve was just called")
	}
	mock.lock.Lock()
	mock.calls.Resolve = append(mock.calls.Resolve, struct {
		Kind domain.TaxonomyKind
		Raw  string
	}{kind, raw})
	mock.lock.Unlock()
	return mock.ResolveFunc(ctx, kind, raw)
}

func (mock *taxonomyResolverMock) ResolveCalls() []struct {
	Kind domain.TaxonomyKind
	Raw  string
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Resolve
}

func (mock *taxonomyResolverMock) ResolveMany(ctx context.Context, kind domain.TaxonomyKind, raws []string) ([]domain.TaxonomyRef, error) {
	if mock.ResolveManyFunc == nil {
		panic("taxonomyResolverMock.ResolveManyFunc: method is nil but taxonomyResolver.ResolveMany was just called")
	}
	return mock.ResolveManyFunc(ctx, kind, raws)
}

func (mock *taxonomyResolverMock) ResolveFilter(ctx context.Context, category, position string) (domain.FilterEntry, error) {
	if mock.ResolveFilterFunc == nil {
		panic("taxonomyResolverMock.ResolveFilterFunc: method is nil but taxonomyResolver.ResolveFilter was just called")
	}
	mock.lock.Lock()
	mock.calls.ResolveFilter = append(mock.calls.ResolveFilter, struct{ Category, Position string }{category, position})
	mock.lock.Unlock()
	return mock.ResolveFilterFunc(ctx, category, position)
}

func (mock *taxonomyResolverMock) ResolveFilterCalls() []struct{ Category, Position string } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.ResolveFilter
}

var _ vacancyRepo = &vacancyRepoMock{}

type vacancyRepoMock struct {
	InsertFunc        func(ctx context.Context, v *domain.CanonicalVacancy) (int64, error)
	InsertMessageFunc func(ctx context.Context, v *domain.CanonicalVacancy) error
	LinkLanguagesFunc func(ctx context.Context, vacancyID int64, ids []int64) error
	LinkStackFunc     func(ctx context.Context, vacancyID int64, ids []int64) error

	calls struct {
		Insert        []struct{ V *domain.CanonicalVacancy }
		LinkLanguages []struct{ IDs []int64 }
		LinkStack     []struct{ IDs []int64 }
	}
	lock sync.RWMutex
}

func (mock *vacancyRepoMock) Insert(ctx context.Context, v *domain.CanonicalVacancy) (int64, error) {
	if mock.InsertFunc == nil {
		panic("vacancyRepoMock.InsertFunc: method is nil but vacancyRepo.Insert was just called")
	}
	mock.lock.Lock()
	mock.calls.Insert = append(mock.calls.Insert, struct{ V *domain.CanonicalVacancy }{v})
	mock.lock.Unlock()
	return mock.InsertFunc(ctx, v)
}

func (mock *vacancyRepoMock) InsertCalls() []struct{ V *domain.CanonicalVacancy } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Insert
}

func (mock *vacancyRepoMock) InsertMessage(ctx context.Context, v *domain.CanonicalVacancy) error {
	if mock.InsertMessageFunc == nil {
		panic("vacancyRepoMock.InsertMessageFunc: method is nil but vacancyRepo.InsertMessage was just called")
	}
	return mock.InsertMessageFunc(ctx, v)
}

func (mock *vacancyRepoMock) LinkLanguages(ctx context.Context, vacancyID int64, ids []int64) error {
	if mock.LinkLanguagesFunc == nil {
		panic("vacancyRepoMock.LinkLanguagesFunc: method is nil but vacancyRepo.LinkLanguages was just called")
	}
	mock.lock.Lock()
	mock.calls.LinkLanguages = append(mock.calls.LinkLanguages, struct{ IDs []int64 }{ids})
	mock.lock.Unlock()
	return mock.LinkLanguagesFunc(ctx, vacancyID, ids)
}

func (mock *vacancyRepoMock) LinkLanguagesCalls() []struct{ IDs []int64 } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.LinkLanguages
}

func (mock *vacancyRepoMock) LinkStack(ctx context.Context, vacancyID int64, ids []int64) error {
	if mock.LinkStackFunc == nil {
		panic("vacancyRepoMock.LinkStackFunc: method is nil but vacancyRepo.LinkStack was just called")
	}
	mock.lock.Lock()
	mock.calls.LinkStack = append(mock.calls.LinkStack, struct{ IDs []int64 }{ids})
	mock.lock.Unlock()
	return mock.LinkStackFunc(ctx, vacancyID, ids)
}

func (mock *vacancyRepoMock) LinkStackCalls() []struct{ IDs []int64 } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.LinkStack
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct{}
	}
	lock sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	mock.lock.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, struct{}{})
	mock.lock.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct{} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.RunInTx
}

var _ retrier = &retrierMock{}

type retrierMock struct {
	DoFunc func(ctx context.Context, op string, fn func(ctx context.Context) error) error
}

func (mock *retrierMock) Do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	if mock.DoFunc == nil {
		panic("retrierMock.DoFunc: method is nil but retrier.Do was just called")
	}
	return mock.DoFunc(ctx, op, fn)
}
