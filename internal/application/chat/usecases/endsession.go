package usecases

import (
	"context"

	"parlor/internal/domain/chat"
	"parlor/internal/shared/biztime"
	apperrors "parlor/internal/shared/errors"
	"parlor/internal/shared/logger"
)

type EndSessionCommand struct {
	Token string
}

type EndSessionResult struct {
	Status string
}

// EndSessionUseCase handles the explicit "I'm done" signal. Ending is
// idempotent: a session that already expired or ended acknowledges without
// error. A successful end frees a slot, so the queue is reconciled before
// returning.
type EndSessionUseCase struct {
	sessions  chat.SessionRepository
	reconcile ReconcileQueueExecutor
	logger    logger.Interface
}

func NewEndSessionUseCase(
	sessions chat.SessionRepository,
	reconcile ReconcileQueueExecutor,
	log logger.Interface,
) *EndSessionUseCase {
	return &EndSessionUseCase{sessions: sessions, reconcile: reconcile, logger: log}
}

func (uc *EndSessionUseCase) Execute(ctx context.Context, cmd EndSessionCommand) (*EndSessionResult, error) {
	if cmd.Token == "" {
		return nil, apperrors.NewUnauthorizedError("session token is required")
	}

	session, err := uc.sessions.FindByToken(ctx, cmd.Token)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, apperrors.NewUnauthorizedError("invalid or expired session token")
		}
		uc.logger.Errorw("failed to load session by token", "error", err)
		return nil, apperrors.NewInternalError("failed to end session")
	}

	ended, err := uc.sessions.EndIfLive(ctx, session.ID(), biztime.NowUTC())
	if err != nil {
		uc.logger.Errorw("failed to end session", "sid", session.SID(), "error", err)
		return nil, apperrors.NewInternalError("failed to end session")
	}

	status := chat.StatusEnded
	if !ended {
		// Already terminal. Report the stored status and treat the request
		// as satisfied.
		status = session.Status()
	}

	if ended {
		uc.logger.Infow("session ended", "sid", session.SID())
		if _, err := uc.reconcile.Execute(ctx); err != nil {
			uc.logger.Warnw("reconciliation after session end failed", "error", err)
		}
	}

	return &EndSessionResult{Status: string(status)}, nil
}
