package usecases

import (
	"context"
	"time"

	"parlor/internal/domain/chat"
	apperrors "parlor/internal/shared/errors"
	"parlor/internal/shared/logger"
)

type ListSessionsQuery struct {
	Status   string
	Email    string
	Page     int
	PageSize int
}

type SessionSummary struct {
	SessionID       string
	Status          string
	QueuePosition   *int
	Email           string
	TotalCost       float64
	TotalTokensUsed int64
	CreatedAt       time.Time
	ActivatedAt     *time.Time
	LastActivityAt  *time.Time
	ExpiresAt       time.Time
	EndedAt         *time.Time
}

type ListSessionsResult struct {
	Sessions []SessionSummary
	Total    int64
	Page     int
	PageSize int
}

// ListSessionsUseCase backs the operator view of the session table.
type ListSessionsUseCase struct {
	sessions chat.SessionRepository
	logger   logger.Interface
}

func NewListSessionsUseCase(sessions chat.SessionRepository, log logger.Interface) *ListSessionsUseCase {
	return &ListSessionsUseCase{sessions: sessions, logger: log}
}

func (uc *ListSessionsUseCase) Execute(ctx context.Context, query ListSessionsQuery) (*ListSessionsResult, error) {
	filter := chat.SessionFilter{
		Email:    query.Email,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	if query.Status != "" {
		status := chat.SessionStatus(query.Status)
		if !status.IsValid() {
			return nil, apperrors.NewValidationError("invalid session status filter")
		}
		filter.Status = &status
	}

	sessions, total, err := uc.sessions.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list sessions", "error", err)
		return nil, apperrors.NewInternalError("failed to list sessions")
	}

	summaries := make([]SessionSummary, 0, len(sessions))
	for _, s := range sessions {
		summaries = append(summaries, SessionSummary{
			SessionID:       s.SID(),
			Status:          string(s.Status()),
			QueuePosition:   s.QueuePosition(),
			Email:           s.Email(),
			TotalCost:       s.TotalCost(),
			TotalTokensUsed: s.TotalTokensUsed(),
			CreatedAt:       s.CreatedAt(),
			ActivatedAt:     s.ActivatedAt(),
			LastActivityAt:  s.LastActivityAt(),
			ExpiresAt:       s.ExpiresAt(),
			EndedAt:         s.EndedAt(),
		})
	}

	return &ListSessionsResult{
		Sessions: summaries,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}
