package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReapSessionsUseCase_Execute_ExpiresAndReconciles(t *testing.T) {
	var gotCutoff time.Time
	repo := &mockSessionRepository{
		ExpireOverdueFunc: func(ctx context.Context, now time.Time) (int64, error) {
			return 2, nil
		},
		ExpireInactiveFunc: func(ctx context.Context, cutoff, now time.Time) (int64, error) {
			gotCutoff = cutoff
			return 1, nil
		},
	}
	reconciler := &mockReconciler{
		ExecuteFunc: func(ctx context.Context) (int, error) {
			return 3, nil
		},
	}

	uc := NewReapSessionsUseCase(repo, reconciler, testChatConfig(), &mockLogger{})
	result, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), result.HardExpired)
	assert.Equal(t, int64(1), result.InactivityExpired)
	assert.Equal(t, 3, result.QueueActivated)
	assert.Equal(t, 1, reconciler.calls)
	// Cutoff sits one inactivity threshold in the past.
	assert.WithinDuration(t, time.Now().UTC().Add(-5*time.Minute), gotCutoff, 5*time.Second)
}

func TestReapSessionsUseCase_Execute_SkipsReconcileWhenNothingReclaimed(t *testing.T) {
	repo := &mockSessionRepository{}
	reconciler := &mockReconciler{}

	uc := NewReapSessionsUseCase(repo, reconciler, testChatConfig(), &mockLogger{})
	result, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Zero(t, result.HardExpired)
	assert.Zero(t, result.InactivityExpired)
	assert.Zero(t, reconciler.calls)
}

func TestReapSessionsUseCase_Execute_PartialFailureStillSweeps(t *testing.T) {
	repo := &mockSessionRepository{
		ExpireOverdueFunc: func(ctx context.Context, now time.Time) (int64, error) {
			return 0, errors.New("store unavailable")
		},
		ExpireInactiveFunc: func(ctx context.Context, cutoff, now time.Time) (int64, error) {
			return 4, nil
		},
	}
	reconciler := &mockReconciler{}

	uc := NewReapSessionsUseCase(repo, reconciler, testChatConfig(), &mockLogger{})
	result, err := uc.Execute(context.Background())

	require.Error(t, err)
	assert.Equal(t, int64(4), result.InactivityExpired)
	assert.Equal(t, 1, reconciler.calls)
}
