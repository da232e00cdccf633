package usecases

import (
	"context"
	"time"

	"parlor/internal/domain/chat"
	"parlor/internal/shared/biztime"
	"parlor/internal/shared/config"
	apperrors "parlor/internal/shared/errors"
	"parlor/internal/shared/logger"
)

type GetSessionStatusQuery struct {
	Token string
}

// GetSessionStatusResult reflects the session as stored after this poll's
// reconciliation pass. Queue fields are zero unless Status is queued.
type GetSessionStatusResult struct {
	SessionID            string
	Status               string
	ExpiresAt            time.Time
	QueuePosition        int
	EstimatedWaitMinutes int
	ActiveSessions       int64
	MaxSessions          int
}

// GetSessionStatusUseCase answers the client poll. Every poll doubles as a
// reconciliation trigger, so a queued visitor whose turn has come gets
// promoted by their own request rather than waiting for the next sweep.
type GetSessionStatusUseCase struct {
	sessions  chat.SessionRepository
	reconcile ReconcileQueueExecutor
	estimator *WaitEstimator
	cfg       *config.ChatConfig
	logger    logger.Interface
}

func NewGetSessionStatusUseCase(
	sessions chat.SessionRepository,
	reconcile ReconcileQueueExecutor,
	estimator *WaitEstimator,
	cfg *config.ChatConfig,
	log logger.Interface,
) *GetSessionStatusUseCase {
	return &GetSessionStatusUseCase{
		sessions:  sessions,
		reconcile: reconcile,
		estimator: estimator,
		cfg:       cfg,
		logger:    log,
	}
}

func (uc *GetSessionStatusUseCase) Execute(ctx context.Context, query GetSessionStatusQuery) (*GetSessionStatusResult, error) {
	if query.Token == "" {
		return nil, apperrors.NewUnauthorizedError("session token is required")
	}

	// Reconcile first so the answer reflects any promotion this poll earns.
	// A failed pass is not fatal; the stored state still answers the poll.
	if _, err := uc.reconcile.Execute(ctx); err != nil {
		uc.logger.Warnw("reconciliation during status poll failed", "error", err)
	}

	session, err := uc.sessions.FindByToken(ctx, query.Token)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, apperrors.NewUnauthorizedError("invalid or expired session token")
		}
		uc.logger.Errorw("failed to load session by token", "error", err)
		return nil, apperrors.NewInternalError("failed to get session status")
	}

	activeCount, err := uc.sessions.CountByStatus(ctx, chat.StatusActive)
	if err != nil {
		uc.logger.Warnw("failed to count active sessions", "error", err)
		activeCount = 0
	}

	status := session.Status()
	// An active row past its hard TTL is already dead even if the reaper has
	// not flipped it yet. The poll reports what the client will experience.
	if status == chat.StatusActive && session.IsPastExpiry(biztime.NowUTC()) {
		status = chat.StatusExpired
	}

	result := &GetSessionStatusResult{
		SessionID:      session.SID(),
		Status:         string(status),
		ExpiresAt:      session.ExpiresAt(),
		ActiveSessions: activeCount,
		MaxSessions:    uc.cfg.MaxConcurrentSessions,
	}

	if session.Status() == chat.StatusQueued {
		position := 1
		if pos := session.QueuePosition(); pos != nil {
			position = *pos
		}
		ahead, err := uc.sessions.CountQueuedAhead(ctx, position)
		if err != nil {
			uc.logger.Warnw("failed to count sessions ahead", "error", err)
		} else {
			position = int(ahead) + 1
		}
		result.QueuePosition = position
		result.EstimatedWaitMinutes = uc.estimator.Estimate(ctx, position)
	}

	return result, nil
}
