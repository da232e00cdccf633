package usecases

import (
	"context"
	"time"

	"parlor/internal/domain/chat"
	"parlor/internal/shared/logger"
)

type mockSessionRepository struct {
	SaveFunc                func(ctx context.Context, s *chat.Session) error
	FindByTokenFunc         func(ctx context.Context, token string) (*chat.Session, error)
	FindBySIDFunc           func(ctx context.Context, sid string) (*chat.Session, error)
	CountByStatusFunc       func(ctx context.Context, status chat.SessionStatus) (int64, error)
	ListQueuedFunc          func(ctx context.Context) ([]*chat.Session, error)
	ListFunc                func(ctx context.Context, filter chat.SessionFilter) ([]*chat.Session, int64, error)
	PromoteIfQueuedFunc     func(ctx context.Context, id uint, now time.Time, maxActive int) (bool, error)
	SetQueuePositionFunc    func(ctx context.Context, id uint, position int) (bool, error)
	TouchIfActiveFunc       func(ctx context.Context, id uint, now time.Time) (bool, error)
	EndIfLiveFunc           func(ctx context.Context, id uint, now time.Time) (bool, error)
	ExpireOverdueFunc       func(ctx context.Context, now time.Time) (int64, error)
	ExpireInactiveFunc      func(ctx context.Context, cutoff, now time.Time) (int64, error)
	CountQueuedAheadFunc    func(ctx context.Context, position int) (int64, error)
	EarliestActiveExpiryFun func(ctx context.Context) (*time.Time, error)
	AddUsageFunc            func(ctx context.Context, id uint, cost float64, tokens int64, now time.Time) (bool, error)
}

func (m *mockSessionRepository) Save(ctx context.Context, s *chat.Session) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, s)
	}
	return nil
}

func (m *mockSessionRepository) FindByToken(ctx context.Context, token string) (*chat.Session, error) {
	if m.FindByTokenFunc != nil {
		return m.FindByTokenFunc(ctx, token)
	}
	return nil, nil
}

func (m *mockSessionRepository) FindBySID(ctx context.Context, sid string) (*chat.Session, error) {
	if m.FindBySIDFunc != nil {
		return m.FindBySIDFunc(ctx, sid)
	}
	return nil, nil
}

func (m *mockSessionRepository) CountByStatus(ctx context.Context, status chat.SessionStatus) (int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx, status)
	}
	return 0, nil
}

func (m *mockSessionRepository) ListQueued(ctx context.Context) ([]*chat.Session, error) {
	if m.ListQueuedFunc != nil {
		return m.ListQueuedFunc(ctx)
	}
	return nil, nil
}

func (m *mockSessionRepository) List(ctx context.Context, filter chat.SessionFilter) ([]*chat.Session, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockSessionRepository) PromoteIfQueued(ctx context.Context, id uint, now time.Time, maxActive int) (bool, error) {
	if m.PromoteIfQueuedFunc != nil {
		return m.PromoteIfQueuedFunc(ctx, id, now, maxActive)
	}
	return false, nil
}

func (m *mockSessionRepository) SetQueuePosition(ctx context.Context, id uint, position int) (bool, error) {
	if m.SetQueuePositionFunc != nil {
		return m.SetQueuePositionFunc(ctx, id, position)
	}
	return false, nil
}

func (m *mockSessionRepository) TouchIfActive(ctx context.Context, id uint, now time.Time) (bool, error) {
	if m.TouchIfActiveFunc != nil {
		return m.TouchIfActiveFunc(ctx, id, now)
	}
	return false, nil
}

func (m *mockSessionRepository) EndIfLive(ctx context.Context, id uint, now time.Time) (bool, error) {
	if m.EndIfLiveFunc != nil {
		return m.EndIfLiveFunc(ctx, id, now)
	}
	return false, nil
}

func (m *mockSessionRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	if m.ExpireOverdueFunc != nil {
		return m.ExpireOverdueFunc(ctx, now)
	}
	return 0, nil
}

func (m *mockSessionRepository) ExpireInactive(ctx context.Context, cutoff, now time.Time) (int64, error) {
	if m.ExpireInactiveFunc != nil {
		return m.ExpireInactiveFunc(ctx, cutoff, now)
	}
	return 0, nil
}

func (m *mockSessionRepository) CountQueuedAhead(ctx context.Context, position int) (int64, error) {
	if m.CountQueuedAheadFunc != nil {
		return m.CountQueuedAheadFunc(ctx, position)
	}
	return 0, nil
}

func (m *mockSessionRepository) EarliestActiveExpiry(ctx context.Context) (*time.Time, error) {
	if m.EarliestActiveExpiryFun != nil {
		return m.EarliestActiveExpiryFun(ctx)
	}
	return nil, nil
}

func (m *mockSessionRepository) AddUsage(ctx context.Context, id uint, cost float64, tokens int64, now time.Time) (bool, error) {
	if m.AddUsageFunc != nil {
		return m.AddUsageFunc(ctx, id, cost, tokens, now)
	}
	return false, nil
}

type mockTokenGenerator struct {
	GenerateFunc func() (string, error)
}

func (m *mockTokenGenerator) Generate() (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	return "pst_test_token", nil
}

type mockNotifier struct {
	SessionReadyFunc func(ctx context.Context, email, token string) error
	calls            []string
}

func (m *mockNotifier) SessionReady(ctx context.Context, email, token string) error {
	m.calls = append(m.calls, email)
	if m.SessionReadyFunc != nil {
		return m.SessionReadyFunc(ctx, email, token)
	}
	return nil
}

type mockRetriever struct {
	RetrieveFunc func(ctx context.Context, query string, limit int) ([]Snippet, error)
}

func (m *mockRetriever) Retrieve(ctx context.Context, query string, limit int) ([]Snippet, error) {
	if m.RetrieveFunc != nil {
		return m.RetrieveFunc(ctx, query, limit)
	}
	return nil, nil
}

type mockResponder struct {
	ReplyFunc func(ctx context.Context, req ReplyRequest) (*ReplyResult, error)
}

func (m *mockResponder) Reply(ctx context.Context, req ReplyRequest) (*ReplyResult, error) {
	if m.ReplyFunc != nil {
		return m.ReplyFunc(ctx, req)
	}
	return &ReplyResult{Text: "ok"}, nil
}

type mockReconciler struct {
	ExecuteFunc func(ctx context.Context) (int, error)
	calls       int
}

func (m *mockReconciler) Execute(ctx context.Context) (int, error) {
	m.calls++
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx)
	}
	return 0, nil
}

type mockLogger struct {
	DebugFunc  func(msg string, args ...any)
	InfoFunc   func(msg string, args ...any)
	WarnFunc   func(msg string, args ...any)
	ErrorFunc  func(msg string, args ...any)
	InfowFunc  func(msg string, keysAndValues ...interface{})
	ErrorwFunc func(msg string, keysAndValues ...interface{})
	WarnwFunc  func(msg string, keysAndValues ...interface{})
	DebugwFunc func(msg string, keysAndValues ...interface{})
}

func (m *mockLogger) Debug(msg string, args ...any) {
	if m.DebugFunc != nil {
		m.DebugFunc(msg, args...)
	}
}

func (m *mockLogger) Info(msg string, args ...any) {
	if m.InfoFunc != nil {
		m.InfoFunc(msg, args...)
	}
}

func (m *mockLogger) Warn(msg string, args ...any) {
	if m.WarnFunc != nil {
		m.WarnFunc(msg, args...)
	}
}

func (m *mockLogger) Error(msg string, args ...any) {
	if m.ErrorFunc != nil {
		m.ErrorFunc(msg, args...)
	}
}

func (m *mockLogger) With(args ...any) logger.Interface { return m }

func (m *mockLogger) Named(name string) logger.Interface { return m }

func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {
	if m.DebugwFunc != nil {
		m.DebugwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Infow(msg string, keysAndValues ...interface{}) {
	if m.InfowFunc != nil {
		m.InfowFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{}) {
	if m.WarnwFunc != nil {
		m.WarnwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {
	if m.ErrorwFunc != nil {
		m.ErrorwFunc(msg, keysAndValues...)
	}
}
