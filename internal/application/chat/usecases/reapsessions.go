package usecases

import (
	"context"
	"time"

	"parlor/internal/domain/chat"
	"parlor/internal/shared/biztime"
	"parlor/internal/shared/config"
	"parlor/internal/shared/logger"
)

// ReapResult summarizes one reaper sweep.
type ReapResult struct {
	HardExpired       int64
	InactivityExpired int64
	QueueActivated    int
}

// ReapSessionsUseCase expires sessions past their hard TTL or idle beyond the
// inactivity threshold, then reconciles the queue when anything was
// reclaimed. Each pass is independent: a failure in one is logged and the
// sweep carries on, since the next run covers whatever was missed.
type ReapSessionsUseCase struct {
	sessions  chat.SessionRepository
	reconcile ReconcileQueueExecutor
	cfg       *config.ChatConfig
	logger    logger.Interface
}

func NewReapSessionsUseCase(
	sessions chat.SessionRepository,
	reconcile ReconcileQueueExecutor,
	cfg *config.ChatConfig,
	log logger.Interface,
) *ReapSessionsUseCase {
	return &ReapSessionsUseCase{
		sessions:  sessions,
		reconcile: reconcile,
		cfg:       cfg,
		logger:    log,
	}
}

func (uc *ReapSessionsUseCase) Execute(ctx context.Context) (*ReapResult, error) {
	now := biztime.NowUTC()
	result := &ReapResult{}
	var firstErr error

	hard, err := uc.sessions.ExpireOverdue(ctx, now)
	if err != nil {
		uc.logger.Errorw("failed to expire overdue sessions", "error", err)
		firstErr = err
	} else {
		result.HardExpired = hard
	}

	cutoff := now.Add(-time.Duration(uc.cfg.InactivityThresholdMinutes) * time.Minute)
	idle, err := uc.sessions.ExpireInactive(ctx, cutoff, now)
	if err != nil {
		uc.logger.Errorw("failed to expire inactive sessions", "error", err)
		if firstErr == nil {
			firstErr = err
		}
	} else {
		result.InactivityExpired = idle
	}

	if result.HardExpired+result.InactivityExpired > 0 {
		promoted, err := uc.reconcile.Execute(ctx)
		if err != nil {
			uc.logger.Errorw("failed to reconcile queue after reaping", "error", err)
			if firstErr == nil {
				firstErr = err
			}
		} else {
			result.QueueActivated = promoted
		}
	}

	if result.HardExpired+result.InactivityExpired > 0 || result.QueueActivated > 0 {
		uc.logger.Infow("reaper sweep finished",
			"hard_expired", result.HardExpired,
			"inactivity_expired", result.InactivityExpired,
			"queue_activated", result.QueueActivated,
		)
	}
	return result, firstErr
}
