package chat

import (
	"context"
	"time"
)

// SessionRepository is the store contract the scheduler coordinates through.
// There is no cross-statement transaction and no lock: every handler
// re-reads counts at the point of decision, and every transition that
// matters for capacity is a guarded update that reports whether it won.
// A false result from a guarded method means a concurrent caller already
// performed the transition; callers treat that as benign redundant work.
type SessionRepository interface {
	// Save inserts a new session. Single-row insert atomicity is assumed.
	Save(ctx context.Context, session *Session) error

	// FindByToken resolves a session by its secret token.
	FindByToken(ctx context.Context, token string) (*Session, error)

	// FindBySID resolves a session by its public identifier.
	FindBySID(ctx context.Context, sid string) (*Session, error)

	// CountByStatus re-queries the live count for a status. Callers must not
	// carry the result across decisions.
	CountByStatus(ctx context.Context, status SessionStatus) (int64, error)

	// ListQueued returns all queued sessions ordered by queue_position
	// ascending with created_at ascending as tiebreak (FIFO fairness).
	ListQueued(ctx context.Context) ([]*Session, error)

	// List returns sessions matching the filter, newest first, with the
	// total match count.
	List(ctx context.Context, filter SessionFilter) ([]*Session, int64, error)

	// PromoteIfQueued transitions a session to active, conditioned on the
	// row still being queued at write time AND the active count still being
	// below maxActive. Both checks live in the same guarded statement, so
	// racing promoters can never push the pool past its cap.
	PromoteIfQueued(ctx context.Context, id uint, now time.Time, maxActive int) (bool, error)

	// SetQueuePosition rewrites the advisory position of a queued session.
	// The write is conditioned on the row still being queued.
	SetQueuePosition(ctx context.Context, id uint, position int) (bool, error)

	// TouchIfActive records activity, conditioned on the row being active.
	TouchIfActive(ctx context.Context, id uint, now time.Time) (bool, error)

	// EndIfLive transitions a live session to ended.
	EndIfLive(ctx context.Context, id uint, now time.Time) (bool, error)

	// ExpireOverdue bulk-transitions every live session past its absolute
	// TTL to expired and returns how many rows changed.
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)

	// ExpireInactive bulk-transitions active sessions whose last activity
	// precedes the cutoff to expired and returns how many rows changed.
	ExpireInactive(ctx context.Context, cutoff, now time.Time) (int64, error)

	// CountQueuedAhead counts queued sessions with a position strictly less
	// than the given one.
	CountQueuedAhead(ctx context.Context, position int) (int64, error)

	// EarliestActiveExpiry returns the soonest expires_at among active
	// sessions, or nil when none are active.
	EarliestActiveExpiry(ctx context.Context) (*time.Time, error)

	// AddUsage accumulates cost and tokens and records activity,
	// conditioned on the row being active.
	AddUsage(ctx context.Context, id uint, cost float64, tokens int64, now time.Time) (bool, error)
}

// SessionFilter narrows admin session listings.
type SessionFilter struct {
	Status   *SessionStatus
	Email    string
	Page     int
	PageSize int
}
