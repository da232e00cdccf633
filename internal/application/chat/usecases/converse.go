package usecases

import (
	"context"
	"strings"

	"parlor/internal/domain/chat"
	"parlor/internal/shared/biztime"
	apperrors "parlor/internal/shared/errors"
	"parlor/internal/shared/logger"
)

const (
	maxMessageLength = 4000
	snippetLimit     = 3
)

type ConverseCommand struct {
	Token   string
	Message string
}

type ConverseResult struct {
	Reply      string
	TokensUsed int64
	Cost       float64
	LatencyMS  int64
}

// ConverseUseCase runs one assistant turn for an active session. The store
// is the only authority on whether the session may talk: a token whose
// record is terminal or past its expiry is refused the same way a bad token
// is.
type ConverseUseCase struct {
	sessions  chat.SessionRepository
	retriever Retriever
	responder Responder
	logger    logger.Interface
}

func NewConverseUseCase(
	sessions chat.SessionRepository,
	retriever Retriever,
	responder Responder,
	log logger.Interface,
) *ConverseUseCase {
	return &ConverseUseCase{
		sessions:  sessions,
		retriever: retriever,
		responder: responder,
		logger:    log,
	}
}

func (uc *ConverseUseCase) Execute(ctx context.Context, cmd ConverseCommand) (*ConverseResult, error) {
	if cmd.Token == "" {
		return nil, apperrors.NewUnauthorizedError("session token is required")
	}
	message := strings.TrimSpace(cmd.Message)
	if message == "" {
		return nil, apperrors.NewValidationError("message is required")
	}
	if len(message) > maxMessageLength {
		return nil, apperrors.NewValidationError("message is too long")
	}

	session, err := uc.sessions.FindByToken(ctx, cmd.Token)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, apperrors.NewUnauthorizedError("invalid or expired session token")
		}
		uc.logger.Errorw("failed to load session by token", "error", err)
		return nil, apperrors.NewInternalError("failed to process message")
	}

	if session.Status() != chat.StatusActive || session.IsPastExpiry(biztime.NowUTC()) {
		return nil, apperrors.NewUnauthorizedError("session is not active")
	}

	var snippets []Snippet
	if uc.retriever != nil {
		snippets, err = uc.retriever.Retrieve(ctx, message, snippetLimit)
		if err != nil {
			// Grounding is best effort; reply without it.
			uc.logger.Warnw("knowledge retrieval failed", "sid", session.SID(), "error", err)
			snippets = nil
		}
	}

	reply, err := uc.responder.Reply(ctx, ReplyRequest{
		SessionSID: session.SID(),
		Message:    message,
		Context:    snippets,
	})
	if err != nil {
		uc.logger.Errorw("assistant backend failed", "sid", session.SID(), "error", err)
		return nil, apperrors.NewInternalError("assistant is unavailable, please try again")
	}

	recorded, err := uc.sessions.AddUsage(ctx, session.ID(), reply.Cost, reply.TokensUsed, biztime.NowUTC())
	if err != nil {
		uc.logger.Warnw("failed to record usage", "sid", session.SID(), "error", err)
	} else if !recorded {
		uc.logger.Warnw("usage not recorded, session left active state mid-turn", "sid", session.SID())
	}

	return &ConverseResult{
		Reply:      reply.Text,
		TokensUsed: reply.TokensUsed,
		Cost:       reply.Cost,
		LatencyMS:  reply.LatencyMS,
	}, nil
}
