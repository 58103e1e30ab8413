package taxonomy

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/vacancy-normalizer/internal/domain"
)

//go:generate moq -out mocks_test.go -pkg taxonomy . taxonomyRepo retrier

var _ taxonomyRepo = &taxonomyRepoMock{}

type taxonomyRepoMock struct {
	FindFunc         func(ctx context.Context, kind domain.TaxonomyKind, raw string) (domain.TaxonomyEntry, error)
	InsertFunc       func(ctx context.Context, kind domain.TaxonomyKind, raw string, date time.Time) (int64, error)
	FindFilterFunc   func(ctx context.Context, category, position string) (domain.FilterEntry, error)
	InsertFilterFunc func(ctx context.Context, category, position string, date time.Time) (int64, error)

	calls struct {
		Find []struct {
			Kind domain.TaxonomyKind
			Raw  string
		}
		Insert []struct {
			Kind domain.TaxonomyKind
			Raw  string
		}
		FindFilter   []struct{ Category, Position string }
		InsertFilter []struct{ Category, Position string }
	}
	lock sync.RWMutex
}

func (mock *taxonomyRepoMock) Find(ctx context.Context, kind domain.TaxonomyKind, raw string) (domain.TaxonomyEntry, error) {
	if mock.FindFunc == nil {
		panic("taxonomyRepoMock.FindFunc: method is nil but taxonomyRepo.Find was just called")
	}
	mock.lock.Lock()
	mock.calls.Find = append(mock.calls.Find, struct {
		Kind domain.TaxonomyKind
		Raw  string
	}{kind, raw})
	mock.lock.Unlock()
	return mock.FindFunc(ctx, kind, raw)
}

func (mock *taxonomyRepoMock) FindCalls() []struct {
	Kind domain.TaxonomyKind
	Raw  string
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Find
}

func (mock *taxonomyRepoMock) Insert(ctx context.Context, kind domain.TaxonomyKind, raw string, date time.Time) (int64, error) {
	if mock.InsertFunc == nil {
		panic("taxonomyRepoMock.InsertFunc: method is nil but taxonomyRepo.Insert was just called")
	}
	mock.lock.Lock()
	mock.calls.Insert = append(mock.calls.Insert, struct {
		Kind domain.TaxonomyKind
		Raw  string
	}{kind, raw})
	mock.lock.Unlock()
	return mock.InsertFunc(ctx, kind, raw, date)
}

func (mock *taxonomyRepoMock) InsertCalls() []struct {
	Kind domain.TaxonomyKind
	Raw  string
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Insert
}

func (mock *taxonomyRepoMock) FindFilter(ctx context.Context, category, position string) (domain.FilterEntry, error) {
	if mock.FindFilterFunc == nil {
		panic("taxonomyRepoMock.FindFilterFunc: method is nil but taxonomyRepo.FindFilter was just called")
	}
	mock.lock.Lock()
	mock.calls.FindFilter = append(mock.calls.FindFilter, struct{ Category, Position string }{category, position})
	mock.lock.Unlock()
	return mock.FindFilterFunc(ctx, category, position)
}

func (mock *taxonomyRepoMock) FindFilterCalls() []struct{ Category, Position string } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.FindFilter
}

func (mock *taxonomyRepoMock) InsertFilter(ctx context.Context, category, position string, date time.Time) (int64, error) {
	if mock.InsertFilterFunc == nil {
		panic("taxonomyRepoMock.InsertFilterFunc: method is nil but taxonomyRepo.InsertFilter was just called")
	}
	mock.lock.Lock()
	mock.calls.InsertFilter = append(mock.calls.InsertFilter, struct{ Category, Position string }{category, position})
	mock.lock.Unlock()
	return mock.InsertFilterFunc(ctx, category, position, date)
}

func (mock *taxonomyRepoMock) InsertFilterCalls() []struct{ Category, Position string } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.InsertFilter
}

var _ retrier = &retrierMock{}

type retrierMock struct {
	DoFunc func(ctx context.Context, op string, fn func(ctx context.Context) error) error

	calls struct {
		Do []struct{ Op string }
	}
	lockDo sync.RWMutex
}

func (mock *retrierMock) Do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	if mock.DoFunc == nil {
		panic("retrierMock.DoFunc: method is nil but retrier.Do was just called")
	}
	mock.lockDo.Lock()
	mock.calls.Do = append(mock.calls.Do, struct{ Op string }{op})
	mock.lockDo.Unlock()
	return mock.DoFunc(ctx, op, fn)
}

func (mock *retrierMock) DoCalls() []struct{ Op string } {
	mock.lockDo.RLock()
	defer mock.lockDo.RUnlock()
	return mock.calls.Do
}
