package admin

import (
	"time"

	chatusecases "parlor/internal/application/chat/usecases"
	knowledgeusecases "parlor/internal/application/knowledge/usecases"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

type SessionResponse struct {
	SessionID       string     `json:"session_id"`
	Status          string     `json:"status"`
	QueuePosition   *int       `json:"queue_position,omitempty"`
	Email           string     `json:"email,omitempty"`
	TotalCost       float64    `json:"total_cost"`
	TotalTokensUsed int64      `json:"total_tokens_used"`
	CreatedAt       time.Time  `json:"created_at"`
	ActivatedAt     *time.Time `json:"activated_at,omitempty"`
	LastActivityAt  *time.Time `json:"last_activity_at,omitempty"`
	ExpiresAt       time.Time  `json:"expires_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
}

func NewSessionResponses(summaries []chatusecases.SessionSummary) []SessionResponse {
	out := make([]SessionResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, SessionResponse{
			SessionID:       s.SessionID,
			Status:          s.Status,
			QueuePosition:   s.QueuePosition,
			Email:           s.Email,
			TotalCost:       s.TotalCost,
			TotalTokensUsed: s.TotalTokensUsed,
			CreatedAt:       s.CreatedAt,
			ActivatedAt:     s.ActivatedAt,
			LastActivityAt:  s.LastActivityAt,
			ExpiresAt:       s.ExpiresAt,
			EndedAt:         s.EndedAt,
		})
	}
	return out
}

type SessionDetailResponse struct {
	SessionID       string     `json:"session_id"`
	Status          string     `json:"status"`
	QueuePosition   *int       `json:"queue_position,omitempty"`
	Email           string     `json:"email,omitempty"`
	UserAgent       string     `json:"user_agent,omitempty"`
	Referrer        string     `json:"referrer,omitempty"`
	TotalCost       float64    `json:"total_cost"`
	TotalTokensUsed int64      `json:"total_tokens_used"`
	CreatedAt       time.Time  `json:"created_at"`
	ActivatedAt     *time.Time `json:"activated_at,omitempty"`
	LastActivityAt  *time.Time `json:"last_activity_at,omitempty"`
	ExpiresAt       time.Time  `json:"expires_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
}

func NewSessionDetailResponse(detail *chatusecases.GetSessionDetailResult) SessionDetailResponse {
	return SessionDetailResponse{
		SessionID:       detail.SessionID,
		Status:          detail.Status,
		QueuePosition:   detail.QueuePosition,
		Email:           detail.Email,
		UserAgent:       detail.UserAgent,
		Referrer:        detail.Referrer,
		TotalCost:       detail.TotalCost,
		TotalTokensUsed: detail.TotalTokensUsed,
		CreatedAt:       detail.CreatedAt,
		ActivatedAt:     detail.ActivatedAt,
		LastActivityAt:  detail.LastActivityAt,
		ExpiresAt:       detail.ExpiresAt,
		EndedAt:         detail.EndedAt,
	}
}

type SaveArticleRequest struct {
	Title     string   `json:"title" binding:"required,max=200"`
	Body      string   `json:"body" binding:"required"`
	Tags      []string `json:"tags,omitempty"`
	Published bool     `json:"published"`
}

func (r *SaveArticleRequest) ToCommand(slug string) knowledgeusecases.SaveArticleCommand {
	return knowledgeusecases.SaveArticleCommand{
		Slug:      slug,
		Title:     r.Title,
		Body:      r.Body,
		Tags:      r.Tags,
		Published: r.Published,
	}
}

type ReapResponse struct {
	HardExpired       int64 `json:"hard_expired"`
	InactivityExpired int64 `json:"inactivity_expired"`
	QueueActivated    int   `json:"queue_activated"`
}
