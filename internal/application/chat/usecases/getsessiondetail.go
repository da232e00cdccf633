package usecases

import (
	"context"
	"time"

	"parlor/internal/domain/chat"
	apperrors "parlor/internal/shared/errors"
	"parlor/internal/shared/logger"
)

type GetSessionDetailQuery struct {
	SID string
}

// GetSessionDetailResult carries everything an operator can see about one
// session. The token itself is never exposed here.
type GetSessionDetailResult struct {
	SessionID       string
	Status          string
	QueuePosition   *int
	Email           string
	UserAgent       string
	Referrer        string
	TotalCost       float64
	TotalTokensUsed int64
	CreatedAt       time.Time
	ActivatedAt     *time.Time
	LastActivityAt  *time.Time
	ExpiresAt       time.Time
	EndedAt         *time.Time
}

// GetSessionDetailUseCase backs the operator drill-down from the session
// table. Sessions are addressed by their public SID, not by token.
type GetSessionDetailUseCase struct {
	sessions chat.SessionRepository
	logger   logger.Interface
}

func NewGetSessionDetailUseCase(sessions chat.SessionRepository, log logger.Interface) *GetSessionDetailUseCase {
	return &GetSessionDetailUseCase{sessions: sessions, logger: log}
}

func (uc *GetSessionDetailUseCase) Execute(ctx context.Context, query GetSessionDetailQuery) (*GetSessionDetailResult, error) {
	if query.SID == "" {
		return nil, apperrors.NewValidationError("session id is required")
	}

	session, err := uc.sessions.FindBySID(ctx, query.SID)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, apperrors.NewNotFoundError("session not found")
		}
		uc.logger.Errorw("failed to load session by sid", "sid", query.SID, "error", err)
		return nil, apperrors.NewInternalError("failed to get session")
	}

	return &GetSessionDetailResult{
		SessionID:       session.SID(),
		Status:          string(session.Status()),
		QueuePosition:   session.QueuePosition(),
		Email:           session.Email(),
		UserAgent:       session.UserAgent(),
		Referrer:        session.Referrer(),
		TotalCost:       session.TotalCost(),
		TotalTokensUsed: session.TotalTokensUsed(),
		CreatedAt:       session.CreatedAt(),
		ActivatedAt:     session.ActivatedAt(),
		LastActivityAt:  session.LastActivityAt(),
		ExpiresAt:       session.ExpiresAt(),
		EndedAt:         session.EndedAt(),
	}, nil
}
