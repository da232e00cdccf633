package usecases

import (
	"context"

	"parlor/internal/domain/chat"
	"parlor/internal/shared/biztime"
	apperrors "parlor/internal/shared/errors"
	"parlor/internal/shared/logger"
)

type HeartbeatCommand struct {
	Token string
}

type HeartbeatResult struct {
	Status string
}

// HeartbeatUseCase records client liveness. Touching is a guarded update on
// active sessions only: a heartbeat for a queued or already-terminal session
// is acknowledged without effect, so a client racing the reaper never sees
// an error for a beat that simply arrived late.
type HeartbeatUseCase struct {
	sessions chat.SessionRepository
	logger   logger.Interface
}

func NewHeartbeatUseCase(sessions chat.SessionRepository, log logger.Interface) *HeartbeatUseCase {
	return &HeartbeatUseCase{sessions: sessions, logger: log}
}

func (uc *HeartbeatUseCase) Execute(ctx context.Context, cmd HeartbeatCommand) (*HeartbeatResult, error) {
	if cmd.Token == "" {
		return nil, apperrors.NewUnauthorizedError("session token is required")
	}

	session, err := uc.sessions.FindByToken(ctx, cmd.Token)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, apperrors.NewUnauthorizedError("invalid or expired session token")
		}
		uc.logger.Errorw("failed to load session by token", "error", err)
		return nil, apperrors.NewInternalError("failed to record heartbeat")
	}

	now := biztime.NowUTC()
	if session.Status() == chat.StatusActive {
		// A beat must never extend a session past its hard TTL. The reaper
		// will flip the row; until then the token is no longer honored.
		if session.IsPastExpiry(now) {
			return nil, apperrors.NewUnauthorizedError("session has expired")
		}
		touched, err := uc.sessions.TouchIfActive(ctx, session.ID(), now)
		if err != nil {
			uc.logger.Errorw("failed to touch session", "sid", session.SID(), "error", err)
			return nil, apperrors.NewInternalError("failed to record heartbeat")
		}
		if !touched {
			uc.logger.Debugw("heartbeat lost guard, session no longer active", "sid", session.SID())
		}
	}

	return &HeartbeatResult{Status: string(session.Status())}, nil
}
