package chat

import (
	"fmt"
	"time"
)

// Session is the only entity whose lifecycle the scheduler owns. It is
// created by admission, promoted by the reconciler, touched by heartbeats,
// and reclaimed by the reaper. Terminal sessions are never deleted.
type Session struct {
	id              uint
	sid             string
	token           string
	status          SessionStatus
	queuePosition   *int
	email           string
	userAgent       string
	referrer        string
	totalCost       float64
	totalTokensUsed int64
	createdAt       time.Time
	activatedAt     *time.Time
	lastActivityAt  *time.Time
	expiresAt       time.Time
	endedAt         *time.Time
}

// NewActiveSession creates a session admitted directly into a free slot.
func NewActiveSession(sid, token, email, userAgent, referrer string, duration time.Duration, now time.Time) (*Session, error) {
	s, err := newSession(sid, token, email, userAgent, referrer, duration, now)
	if err != nil {
		return nil, err
	}
	activated := now
	s.status = StatusActive
	s.activatedAt = &activated
	s.lastActivityAt = &activated
	return s, nil
}

// NewQueuedSession creates a session placed into the waiting queue with an
// advisory position. The position is best-effort at creation time; the
// reconciler owns the authoritative ordering.
func NewQueuedSession(sid, token, email, userAgent, referrer string, position int, duration time.Duration, now time.Time) (*Session, error) {
	if position < 1 {
		return nil, fmt.Errorf("queue position must be positive, got %d", position)
	}
	s, err := newSession(sid, token, email, userAgent, referrer, duration, now)
	if err != nil {
		return nil, err
	}
	s.status = StatusQueued
	s.queuePosition = &position
	return s, nil
}

func newSession(sid, token, email, userAgent, referrer string, duration time.Duration, now time.Time) (*Session, error) {
	if sid == "" {
		return nil, fmt.Errorf("session sid is required")
	}
	if token == "" {
		return nil, fmt.Errorf("session token is required")
	}
	if duration <= 0 {
		return nil, fmt.Errorf("session duration must be positive")
	}

	return &Session{
		sid:       sid,
		token:     token,
		email:     email,
		userAgent: userAgent,
		referrer:  referrer,
		createdAt: now,
		expiresAt: now.Add(duration),
	}, nil
}

// ReconstructSession rebuilds a session from persisted state.
func ReconstructSession(
	id uint,
	sid string,
	token string,
	status SessionStatus,
	queuePosition *int,
	email, userAgent, referrer string,
	totalCost float64,
	totalTokensUsed int64,
	createdAt time.Time,
	activatedAt, lastActivityAt *time.Time,
	expiresAt time.Time,
	endedAt *time.Time,
) (*Session, error) {
	if id == 0 {
		return nil, fmt.Errorf("session ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("session sid is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid session status %q", status)
	}
	if status == StatusQueued && queuePosition == nil {
		return nil, fmt.Errorf("queued session must carry a queue position")
	}
	if status != StatusQueued && queuePosition != nil {
		return nil, fmt.Errorf("non-queued session must not carry a queue position")
	}

	return &Session{
		id:              id,
		sid:             sid,
		token:           token,
		status:          status,
		queuePosition:   queuePosition,
		email:           email,
		userAgent:       userAgent,
		referrer:        referrer,
		totalCost:       totalCost,
		totalTokensUsed: totalTokensUsed,
		createdAt:       createdAt,
		activatedAt:     activatedAt,
		lastActivityAt:  lastActivityAt,
		expiresAt:       expiresAt,
		endedAt:         endedAt,
	}, nil
}

func (s *Session) ID() uint                   { return s.id }
func (s *Session) SID() string                { return s.sid }
func (s *Session) Token() string              { return s.token }
func (s *Session) Status() SessionStatus      { return s.status }
func (s *Session) Email() string              { return s.email }
func (s *Session) UserAgent() string          { return s.userAgent }
func (s *Session) Referrer() string           { return s.referrer }
func (s *Session) TotalCost() float64         { return s.totalCost }
func (s *Session) TotalTokensUsed() int64     { return s.totalTokensUsed }
func (s *Session) CreatedAt() time.Time       { return s.createdAt }
func (s *Session) ActivatedAt() *time.Time    { return s.activatedAt }
func (s *Session) LastActivityAt() *time.Time { return s.lastActivityAt }
func (s *Session) ExpiresAt() time.Time       { return s.expiresAt }
func (s *Session) EndedAt() *time.Time        { return s.endedAt }

// QueuePosition returns the stored queue position. Between reconciler passes
// this value is advisory only; the reconciler recomputes fresh positions on
// every pass.
func (s *Session) QueuePosition() *int {
	return s.queuePosition
}

func (s *Session) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("session ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("session ID cannot be zero")
	}
	s.id = id
	return nil
}

// IsPastExpiry reports whether the absolute TTL has elapsed. The TTL is a
// hard ceiling independent of activity.
func (s *Session) IsPastExpiry(now time.Time) bool {
	return now.After(s.expiresAt)
}

// IsInactiveSince reports whether the session has seen no activity since the
// cutoff. Sessions with no recorded activity fall back to creation time.
func (s *Session) IsInactiveSince(cutoff time.Time) bool {
	last := s.createdAt
	if s.lastActivityAt != nil {
		last = *s.lastActivityAt
	}
	return last.Before(cutoff)
}

// Activate promotes a queued (or pending) session into an active slot.
func (s *Session) Activate(now time.Time) error {
	if !s.status.CanTransitionTo(StatusActive) {
		return fmt.Errorf("cannot activate session in status %s", s.status)
	}
	activated := now
	s.status = StatusActive
	s.queuePosition = nil
	s.activatedAt = &activated
	s.lastActivityAt = &activated
	return nil
}

// Touch records client-reported activity. It only ever extends survival and
// never changes capacity accounting.
func (s *Session) Touch(now time.Time) error {
	if s.status != StatusActive {
		return fmt.Errorf("cannot touch session in status %s", s.status)
	}
	touched := now
	s.lastActivityAt = &touched
	return nil
}

// Expire reclaims the session. The reaper applies this to sessions past
// their TTL or inactivity threshold.
func (s *Session) Expire(now time.Time) error {
	if !s.status.CanTransitionTo(StatusExpired) {
		return fmt.Errorf("cannot expire session in status %s", s.status)
	}
	ended := now
	s.status = StatusExpired
	s.queuePosition = nil
	s.endedAt = &ended
	return nil
}

// End terminates the session at the holder's request.
func (s *Session) End(now time.Time) error {
	if !s.status.CanTransitionTo(StatusEnded) {
		return fmt.Errorf("cannot end session in status %s", s.status)
	}
	ended := now
	s.status = StatusEnded
	s.queuePosition = nil
	s.endedAt = &ended
	return nil
}

// RecordUsage accumulates conversation cost and token counts and counts as
// activity. The scheduler reads these values but never derives decisions
// from them.
func (s *Session) RecordUsage(cost float64, tokens int64, now time.Time) error {
	if s.status != StatusActive {
		return fmt.Errorf("cannot record usage for session in status %s", s.status)
	}
	if cost < 0 || tokens < 0 {
		return fmt.Errorf("usage amounts cannot be negative")
	}
	s.totalCost += cost
	s.totalTokensUsed += tokens
	touched := now
	s.lastActivityAt = &touched
	return nil
}
