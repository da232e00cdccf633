package usecases

import (
	"context"
	"strings"
	"time"

	"parlor/internal/domain/chat"
	"parlor/internal/shared/biztime"
	"parlor/internal/shared/config"
	apperrors "parlor/internal/shared/errors"
	"parlor/internal/shared/id"
	"parlor/internal/shared/logger"
)

// StartSessionCommand carries the visitor metadata captured at admission.
type StartSessionCommand struct {
	Email     string
	UserAgent string
	Referrer  string
}

// StartSessionResult is what the client needs to either start talking or
// start waiting. QueuePosition and EstimatedWaitMinutes are only meaningful
// when Status is queued.
type StartSessionResult struct {
	SessionID            string
	Token                string
	Status               string
	ExpiresAt            time.Time
	QueuePosition        int
	EstimatedWaitMinutes int
}

// StartSessionUseCase admits a new session: active when a slot is free,
// queued when the line has room, rejected when it does not. Capacity is
// re-read from the store on every call; under concurrent admissions the
// limits hold eventually, not instantaneously.
type StartSessionUseCase struct {
	sessions  chat.SessionRepository
	tokens    TokenGenerator
	estimator *WaitEstimator
	cfg       *config.ChatConfig
	logger    logger.Interface
}

func NewStartSessionUseCase(
	sessions chat.SessionRepository,
	tokens TokenGenerator,
	estimator *WaitEstimator,
	cfg *config.ChatConfig,
	log logger.Interface,
) *StartSessionUseCase {
	return &StartSessionUseCase{
		sessions:  sessions,
		tokens:    tokens,
		estimator: estimator,
		cfg:       cfg,
		logger:    log,
	}
}

func (uc *StartSessionUseCase) Execute(ctx context.Context, cmd StartSessionCommand) (*StartSessionResult, error) {
	email := strings.TrimSpace(cmd.Email)
	if email != "" && !looksLikeEmail(email) {
		return nil, apperrors.NewValidationError("invalid email address")
	}

	token, err := uc.tokens.Generate()
	if err != nil {
		uc.logger.Errorw("failed to generate session token", "error", err)
		return nil, apperrors.NewInternalError("failed to create session")
	}
	sid, err := id.GenerateWithPrefix(id.PrefixChatSession, id.DefaultLength)
	if err != nil {
		uc.logger.Errorw("failed to generate session id", "error", err)
		return nil, apperrors.NewInternalError("failed to create session")
	}

	now := biztime.NowUTC()
	duration := time.Duration(uc.cfg.SessionDurationMinutes) * time.Minute

	activeCount, err := uc.sessions.CountByStatus(ctx, chat.StatusActive)
	if err != nil {
		uc.logger.Errorw("failed to count active sessions", "error", err)
		return nil, apperrors.NewInternalError("failed to create session")
	}

	if SlotsAvailable(activeCount, uc.cfg.MaxConcurrentSessions) > 0 {
		session, err := chat.NewActiveSession(sid, token, email, cmd.UserAgent, cmd.Referrer, duration, now)
		if err != nil {
			return nil, err
		}
		if err := uc.sessions.Save(ctx, session); err != nil {
			uc.logger.Errorw("failed to save active session", "sid", sid, "error", err)
			return nil, apperrors.NewInternalError("failed to create session")
		}
		uc.logger.Infow("session admitted", "sid", sid, "status", chat.StatusActive)
		return &StartSessionResult{
			SessionID: sid,
			Token:     token,
			Status:    string(chat.StatusActive),
			ExpiresAt: session.ExpiresAt(),
		}, nil
	}

	queuedCount, err := uc.sessions.CountByStatus(ctx, chat.StatusQueued)
	if err != nil {
		uc.logger.Errorw("failed to count queued sessions", "error", err)
		return nil, apperrors.NewInternalError("failed to create session")
	}
	if queuedCount >= int64(uc.cfg.MaxQueueSize) {
		uc.logger.Infow("admission rejected, queue full",
			"queued", queuedCount,
			"max_queue_size", uc.cfg.MaxQueueSize,
		)
		return nil, apperrors.NewCapacityError("all seats and the waiting line are full, please try again later")
	}

	position := int(queuedCount) + 1
	session, err := chat.NewQueuedSession(sid, token, email, cmd.UserAgent, cmd.Referrer, position, duration, now)
	if err != nil {
		return nil, err
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		uc.logger.Errorw("failed to save queued session", "sid", sid, "error", err)
		return nil, apperrors.NewInternalError("failed to create session")
	}

	uc.logger.Infow("session queued", "sid", sid, "position", position)
	return &StartSessionResult{
		SessionID:            sid,
		Token:                token,
		Status:               string(chat.StatusQueued),
		ExpiresAt:            session.ExpiresAt(),
		QueuePosition:        position,
		EstimatedWaitMinutes: uc.estimator.Estimate(ctx, position),
	}, nil
}

func looksLikeEmail(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	return !strings.ContainsAny(s, " \t")
}
