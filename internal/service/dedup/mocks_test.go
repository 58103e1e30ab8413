package dedup

import (
	"context"
	"sync"
	"time"
)

//go:generate moq -out mocks_test.go -pkg dedup . messageRepo retrier

var _ messageRepo = &messageRepoMock{}

type messageRepoMock struct {
	TextExistsFunc    func(ctx context.Context, source string, from, to time.Time, text string) (bool, error)
	MessageExistsFunc func(ctx context.Context, source, externalID string) (bool, error)

	calls struct {
		TextExists []struct {
			Source   string
			From, To time.Time
			Text     string
		}
		MessageExists []struct{ Source, ExternalID string }
	}
	lock sync.RWMutex
}

func (mock *messageRepoMock) TextExists(ctx context.Context, source string, from, to time.Time, text string) (bool, error) {
	if mock.TextExistsFunc == nil {
		panic("messageRepoMock.TextExistsFunc: method is nil but messageRepo.TextExists was just called")
	}
	mock.lock.Lock()
	mock.calls.TextExists = append(mock.calls.TextExists, struct {
		Source   string
		From, To time.Time
		Text     string
	}{source, from, to, text})
	mock.lock.Unlock()
	return mock.TextExistsFunc(ctx, source, from, to, text)
}

func (mock *messageRepoMock) TextExistsCalls() []struct {
	Source   string
	From, To time.Time
	Text     string
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.TextExists
}

func (mock *messageRepoMock) MessageExists(ctx context.Context, source, externalID string) (bool, error) {
	if mock.MessageExistsFunc == nil {
		panic("messageRepoMock.MessageExistsFunc: method is nil but messageRepo.MessageExists was just called")
	}
	mock.lock.Lock()
	mock.calls.MessageExists = append(mock.calls.MessageExists, struct{ Source, ExternalID string }{source, externalID})
	mock.lock.Unlock()
	return mock.MessageExistsFunc(ctx, source, externalID)
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
