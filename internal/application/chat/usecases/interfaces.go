package usecases

import "context"

type StartSessionExecutor interface {
	Execute(ctx context.Context, cmd StartSessionCommand) (*StartSessionResult, error)
}

type GetSessionStatusExecutor interface {
	Execute(ctx context.Context, query GetSessionStatusQuery) (*GetSessionStatusResult, error)
}

type HeartbeatExecutor interface {
	Execute(ctx context.Context, cmd HeartbeatCommand) (*HeartbeatResult, error)
}

type EndSessionExecutor interface {
	Execute(ctx context.Context, cmd EndSessionCommand) (*EndSessionResult, error)
}

type ReconcileQueueExecutor interface {
	Execute(ctx context.Context) (int, error)
}

type ReapSessionsExecutor interface {
	Execute(ctx context.Context) (*ReapResult, error)
}

type ConverseExecutor interface {
	Execute(ctx context.Context, cmd ConverseCommand) (*ConverseResult, error)
}

type ListSessionsExecutor interface {
	Execute(ctx context.Context, query ListSessionsQuery) (*ListSessionsResult, error)
}

type GetSessionDetailExecutor interface {
	Execute(ctx context.Context, query GetSessionDetailQuery) (*GetSessionDetailResult, error)
}

// TokenGenerator produces the unguessable secret a client uses to reference
// its own session.
type TokenGenerator interface {
	Generate() (string, error)
}

// SessionNotifier delivers the "your session is ready" notification. It is
// an opaque side effect: failures are logged and never fail a promotion.
type SessionNotifier interface {
	SessionReady(ctx context.Context, email, token string) error
}

// Snippet is one ranked knowledge base extract used to ground a reply.
type Snippet struct {
	Slug    string
	Title   string
	Excerpt string
}

// Retriever returns a ranked list of knowledge snippets for a query. The
// ranking strategy is opaque to the conversation flow.
type Retriever interface {
	Retrieve(ctx context.Context, query string, limit int) ([]Snippet, error)
}

// ReplyRequest carries one user turn to the generative backend.
type ReplyRequest struct {
	SessionSID string
	Message    string
	Context    []Snippet
}

// ReplyResult is the opaque backend's answer plus its usage metadata.
type ReplyResult struct {
	Text       string
	TokensUsed int64
	Cost       float64
	LatencyMS  int64
}

// Responder generates assistant replies. Generation is out of scope for the
// scheduler; only the usage metadata feeds back into the session record.
type Responder interface {
	Reply(ctx context.Context, req ReplyRequest) (*ReplyResult, error)
}
