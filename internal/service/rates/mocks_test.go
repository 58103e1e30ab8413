package rates

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/vacancy-normalizer/internal/domain"
)

//go:generate moq -out mocks_test.go -pkg rates . rateStore rateFetcher retrier

var _ rateStore = &rateStoreMock{}

type rateStoreMock struct {
	RatesForDateFunc func(ctx context.Context, date time.Time) (domain.RateTable, error)
	SaveFunc         func(ctx context.Context, table domain.RateTable) (int64, error)

	calls struct {
		RatesForDate []struct{ Date time.Time }
		Save         []struct{ Table domain.RateTable }
	}
	lockRatesForDate sync.RWMutex
	lockSave         sync.RWMutex
}

func (mock *rateStoreMock) RatesForDate(ctx context.Context, date time.Time) (domain.RateTable, error) {
	if mock.RatesForDateFunc == nil {
		panic("rateStoreMock.RatesForDateFunc: method is nil but rateStore.RatesForDate was just called")
	}
	mock.lockRatesForDate.Lock()
	mock.calls.RatesForDate = append(mock.calls.RatesForDate, struct{ Date time.Time }{date})
	mock.lockRatesForDate.Unlock()
	return mock.RatesForDateFunc(ctx, date)
}

func (mock *rateStoreMock) RatesForDateCalls() []struct{ Date time.Time } {
	mock.lockRatesForDate.RLock()
	defer mock.lockRatesForDate.RUnlock()
	return mock.calls.RatesForDate
}

func (mock *rateStoreMock) Save(ctx context.Context, table domain.RateTable) (int64, error) {
	if mock.SaveFunc == nil {
		panic("rateStoreMock.SaveFunc: method is nil but rateStore.Save was just called")
	}
	mock.lockSave.Lock()
	mock.calls.Save = append(mock.calls.Save, struct{ Table domain.RateTable }{table})
	mock.lockSave.Unlock()
	return mock.SaveFunc(ctx, table)
}

func (mock *rateStoreMock) SaveCalls() []struct{ Table domain.RateTable } {
	mock.lockSave.RLock()
	defer mock.lockSave.RUnlock()
	return mock.calls.Save
}

var _ rateFetcher = &rateFetcherMock{}

type rateFetcherMock struct {
	FetchRatesFunc func(ctx context.Context, date time.Time) (domain.RateTable, error)

	calls struct {
		FetchRates []struct{ Date time.Time }
	}
	lockFetchRates sync.RWMutex
}

func (mock *rateFetcherMock) FetchRates(ctx context.Context, date time.Time) (domain.RateTable, error) {
	if mock.FetchRatesFunc == nil {
		panic("rateFetcherMock.FetchRatesFunc: method is nil but rateFetcher.FetchRates was just called")
	}
	mock.lockFetchRates.Lock()
	mock.calls.FetchRates = append(mock.calls.FetchRates, struct{ Date time.Time }{date})
	mock.lockFetchRates.Unlock()
	return mock.FetchRatesFunc(ctx, date)
}

func (mock *rateFetcherMock) FetchRatesCalls() []struct{ Date time.Time } {
	mock.lockFetchRates.RLock()
	defer mock.lockFetchRates.RUnlock()
	return mock.calls.FetchRates
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
