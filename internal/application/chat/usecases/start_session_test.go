package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parlor/internal/domain/chat"
	"parlor/internal/shared/config"
	apperrors "parlor/internal/shared/errors"
)

func testChatConfig() *config.ChatConfig {
	return &config.ChatConfig{
		MaxConcurrentSessions:      2,
		MaxQueueSize:               3,
		SessionDurationMinutes:     30,
		InactivityThresholdMinutes: 5,
		AverageSessionMinutes:      10,
		MaxEstimatedWaitMinutes:    120,
		ReaperIntervalSeconds:      60,
	}
}

func reconstructQueued(t *testing.T, id uint, sid string, position int) *chat.Session {
	t.Helper()
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s, err := chat.ReconstructSession(
		id, sid, "pst_"+sid, chat.StatusQueued, &position,
		"", "", "", 0, 0,
		created, nil, nil, created.Add(30*time.Minute), nil,
	)
	require.NoError(t, err)
	return s
}

func reconstructActive(t *testing.T, id uint, sid string, expiresAt time.Time) *chat.Session {
	t.Helper()
	created := expiresAt.Add(-30 * time.Minute)
	s, err := chat.ReconstructSession(
		id, sid, "pst_"+sid, chat.StatusActive, nil,
		"", "", "", 0, 0,
		created, &created, &created, expiresAt, nil,
	)
	require.NoError(t, err)
	return s
}

func newTestEstimator(repo chat.SessionRepository) *WaitEstimator {
	return NewWaitEstimator(repo, testChatConfig(), &mockLogger{})
}

func TestStartSessionUseCase_Execute_AdmitsWhenSlotFree(t *testing.T) {
	var saved *chat.Session
	repo := &mockSessionRepository{
		CountByStatusFunc: func(ctx context.Context, status chat.SessionStatus) (int64, error) {
			if status == chat.StatusActive {
				return 1, nil
			}
			return 0, nil
		},
		SaveFunc: func(ctx context.Context, s *chat.Session) error {
			require.NoError(t, s.SetID(7))
			saved = s
			return nil
		},
	}

	uc := NewStartSessionUseCase(repo, &mockTokenGenerator{}, newTestEstimator(repo), testChatConfig(), &mockLogger{})
	result, err := uc.Execute(context.Background(), StartSessionCommand{
		Email:     "visitor@example.com",
		UserAgent: "test-agent",
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, string(chat.StatusActive), result.Status)
	assert.Equal(t, "pst_test_token", result.Token)
	assert.Zero(t, result.QueuePosition)
	assert.False(t, result.ExpiresAt.IsZero())

	require.NotNil(t, saved)
	assert.Equal(t, chat.StatusActive, saved.Status())
	assert.Nil(t, saved.QueuePosition())
	assert.Equal(t, "visitor@example.com", saved.Email())
	assert.NotNil(t, saved.ActivatedAt())
}

func TestStartSessionUseCase_Execute_QueuesAtCapacity(t *testing.T) {
	tests := []struct {
		name         string
		queuedCount  int64
		wantPosition int
	}{
		{name: "first in line", queuedCount: 0, wantPosition: 1},
		{name: "behind two others", queuedCount: 2, wantPosition: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var saved *chat.Session
			repo := &mockSessionRepository{
				CountByStatusFunc: func(ctx context.Context, status chat.SessionStatus) (int64, error) {
					if status == chat.StatusActive {
						return 2, nil
					}
					return tt.queuedCount, nil
				},
				SaveFunc: func(ctx context.Context, s *chat.Session) error {
					require.NoError(t, s.SetID(7))
					saved = s
					return nil
				},
			}

			uc := NewStartSessionUseCase(repo, &mockTokenGenerator{}, newTestEstimator(repo), testChatConfig(), &mockLogger{})
			result, err := uc.Execute(context.Background(), StartSessionCommand{})

			require.NoError(t, err)
			assert.Equal(t, string(chat.StatusQueued), result.Status)
			assert.Equal(t, tt.wantPosition, result.QueuePosition)
			assert.Positive(t, result.EstimatedWaitMinutes)

			require.NotNil(t, saved)
			require.NotNil(t, saved.QueuePosition())
			assert.Equal(t, tt.wantPosition, *saved.QueuePosition())
		})
	}
}

func TestStartSessionUseCase_Execute_RejectsWhenQueueFull(t *testing.T) {
	repo := &mockSessionRepository{
		CountByStatusFunc: func(ctx context.Context, status chat.SessionStatus) (int64, error) {
			if status == chat.StatusActive {
				return 2, nil
			}
			return 3, nil
		},
		SaveFunc: func(ctx context.Context, s *chat.Session) error {
			t.Fatal("no session may be saved when the queue is full")
			return nil
		},
	}

	uc := NewStartSessionUseCase(repo, &mockTokenGenerator{}, newTestEstimator(repo), testChatConfig(), &mockLogger{})
	result, err := uc.Execute(context.Background(), StartSessionCommand{})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperrors.IsCapacityError(err))

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.True(t, appErr.Retryable)
}

func TestStartSessionUseCase_Execute_RejectsInvalidEmail(t *testing.T) {
	repo := &mockSessionRepository{}
	uc := NewStartSessionUseCase(repo, &mockTokenGenerator{}, newTestEstimator(repo), testChatConfig(), &mockLogger{})

	_, err := uc.Execute(context.Background(), StartSessionCommand{Email: "not an email"})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
}

func TestStartSessionUseCase_Execute_TokenGenerationFailure(t *testing.T) {
	repo := &mockSessionRepository{}
	tokens := &mockTokenGenerator{
		GenerateFunc: func() (string, error) {
			return "", errors.New("entropy exhausted")
		},
	}

	uc := NewStartSessionUseCase(repo, tokens, newTestEstimator(repo), testChatConfig(), &mockLogger{})
	_, err := uc.Execute(context.Background(), StartSessionCommand{})

	require.Error(t, err)
	assert.False(t, apperrors.IsCapacityError(err))
}
