package chat

import (
	"time"

	"parlor/internal/application/chat/usecases"
)

type StartSessionRequest struct {
	Email string `json:"email,omitempty" binding:"omitempty,max=254"`
}

func (r *StartSessionRequest) ToCommand(userAgent, referrer string) usecases.StartSessionCommand {
	return usecases.StartSessionCommand{
		Email:     r.Email,
		UserAgent: userAgent,
		Referrer:  referrer,
	}
}

type StartSessionResponse struct {
	SessionID            string    `json:"session_id"`
	Token                string    `json:"token"`
	Status               string    `json:"status"`
	ExpiresAt            time.Time `json:"expires_at"`
	QueuePosition        int       `json:"queue_position,omitempty"`
	EstimatedWaitMinutes int       `json:"estimated_wait_minutes,omitempty"`
}

func NewStartSessionResponse(result *usecases.StartSessionResult) StartSessionResponse {
	return StartSessionResponse{
		SessionID:            result.SessionID,
		Token:                result.Token,
		Status:               result.Status,
		ExpiresAt:            result.ExpiresAt,
		QueuePosition:        result.QueuePosition,
		EstimatedWaitMinutes: result.EstimatedWaitMinutes,
	}
}

type SessionStatusResponse struct {
	SessionID            string    `json:"session_id"`
	Status               string    `json:"status"`
	ExpiresAt            time.Time `json:"expires_at"`
	QueuePosition        int       `json:"queue_position,omitempty"`
	EstimatedWaitMinutes int       `json:"estimated_wait_minutes,omitempty"`
	ActiveSessions       int64     `json:"active_sessions"`
	MaxSessions          int       `json:"max_sessions"`
}

func NewSessionStatusResponse(result *usecases.GetSessionStatusResult) SessionStatusResponse {
	return SessionStatusResponse{
		SessionID:            result.SessionID,
		Status:               result.Status,
		ExpiresAt:            result.ExpiresAt,
		QueuePosition:        result.QueuePosition,
		EstimatedWaitMinutes: result.EstimatedWaitMinutes,
		ActiveSessions:       result.ActiveSessions,
		MaxSessions:          result.MaxSessions,
	}
}

type ConverseRequest struct {
	Message string `json:"message" binding:"required,max=4000"`
}

type ConverseResponse struct {
	Reply      string  `json:"reply"`
	TokensUsed int64   `json:"tokens_used"`
	Cost       float64 `json:"cost"`
	LatencyMS  int64   `json:"latency_ms"`
}

func NewConverseResponse(result *usecases.ConverseResult) ConverseResponse {
	return ConverseResponse{
		Reply:      result.Reply,
		TokensUsed: result.TokensUsed,
		Cost:       result.Cost,
		LatencyMS:  result.LatencyMS,
	}
}
