package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"parlor/internal/domain/chat"
)

func TestWaitEstimator_Estimate_BootstrapWhenNothingActive(t *testing.T) {
	repo := &mockSessionRepository{
		CountQueuedAheadFunc: func(ctx context.Context, position int) (int64, error) {
			return int64(position) - 1, nil
		},
		EarliestActiveExpiryFun: func(ctx context.Context) (*time.Time, error) {
			return nil, nil
		},
	}
	estimator := newTestEstimator(repo)

	assert.Equal(t, 2, estimator.Estimate(context.Background(), 1))
	assert.Equal(t, 6, estimator.Estimate(context.Background(), 3))
}

func TestWaitEstimator_Estimate_UsesEarliestExpiryAndPace(t *testing.T) {
	expiry := time.Now().UTC().Add(4 * time.Minute)
	repo := &mockSessionRepository{
		CountQueuedAheadFunc: func(ctx context.Context, position int) (int64, error) {
			return int64(position) - 1, nil
		},
		EarliestActiveExpiryFun: func(ctx context.Context) (*time.Time, error) {
			return &expiry, nil
		},
	}
	estimator := newTestEstimator(repo)

	// Position 1 waits only for the next slot: ceil(4m) = 4.
	assert.Equal(t, 4, estimator.Estimate(context.Background(), 1))
	// Position 3 adds two average session lengths of 10 minutes each.
	assert.Equal(t, 24, estimator.Estimate(context.Background(), 3))
}

func TestWaitEstimator_Estimate_ClampsToCeiling(t *testing.T) {
	expiry := time.Now().UTC().Add(30 * time.Minute)
	repo := &mockSessionRepository{
		CountQueuedAheadFunc: func(ctx context.Context, position int) (int64, error) {
			return int64(position) - 1, nil
		},
		EarliestActiveExpiryFun: func(ctx context.Context) (*time.Time, error) {
			return &expiry, nil
		},
	}
	estimator := newTestEstimator(repo)

	assert.Equal(t, 120, estimator.Estimate(context.Background(), 50))
}

func TestWaitEstimator_Estimate_FloorsAtOneMinute(t *testing.T) {
	expiry := time.Now().UTC().Add(-time.Minute)
	repo := &mockSessionRepository{
		CountQueuedAheadFunc: func(ctx context.Context, position int) (int64, error) {
			return 0, nil
		},
		EarliestActiveExpiryFun: func(ctx context.Context) (*time.Time, error) {
			return &expiry, nil
		},
	}
	estimator := newTestEstimator(repo)

	assert.Equal(t, 1, estimator.Estimate(context.Background(), 1))
}

func TestWaitEstimator_Estimate_StoreErrorDegradesToBootstrap(t *testing.T) {
	repo := &mockSessionRepository{
		CountQueuedAheadFunc: func(ctx context.Context, position int) (int64, error) {
			return 0, errors.New("store unavailable")
		},
		EarliestActiveExpiryFun: func(ctx context.Context) (*time.Time, error) {
			return nil, errors.New("store unavailable")
		},
	}
	estimator := newTestEstimator(repo)

	assert.Equal(t, 4, estimator.Estimate(context.Background(), 2))
}

func TestWaitEstimator_Estimate_RecountsAheadOfStalePosition(t *testing.T) {
	expiry := time.Now().UTC().Add(2 * time.Minute)
	repo := &mockSessionRepository{
		CountQueuedAheadFunc: func(ctx context.Context, position int) (int64, error) {
			// The line in front already drained.
			return 0, nil
		},
		EarliestActiveExpiryFun: func(ctx context.Context) (*time.Time, error) {
			return &expiry, nil
		},
	}
	estimator := newTestEstimator(repo)

	// A stale position 5 estimates as the new head of the line.
	assert.Equal(t, 2, estimator.Estimate(context.Background(), 5))
}

var _ chat.SessionRepository = (*mockSessionRepository)(nil)
