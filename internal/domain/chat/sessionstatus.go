package chat

// SessionStatus represents the lifecycle state of a conversation session.
// Status moves only forward: {pending|queued} -> active -> {expired|ended}.
type SessionStatus string

const (
	StatusPending SessionStatus = "pending"
	StatusQueued  SessionStatus = "queued"
	StatusActive  SessionStatus = "active"
	StatusExpired SessionStatus = "expired"
	StatusEnded   SessionStatus = "ended"
)

func (s SessionStatus) String() string {
	return string(s)
}

func (s SessionStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusQueued, StatusActive, StatusExpired, StatusEnded:
		return true
	}
	return false
}

// IsTerminal reports whether the status is an end state. Terminal sessions
// are retained for audit and never transition again.
func (s SessionStatus) IsTerminal() bool {
	return s == StatusExpired || s == StatusEnded
}

// IsLive reports whether the session still occupies the scheduler's
// attention (a slot or a queue position).
func (s SessionStatus) IsLive() bool {
	return s == StatusPending || s == StatusQueued || s == StatusActive
}

// CanTransitionTo reports whether the forward-only lifecycle permits moving
// from s to target.
func (s SessionStatus) CanTransitionTo(target SessionStatus) bool {
	switch s {
	case StatusPending:
		return target == StatusQueued || target == StatusActive || target == StatusExpired || target == StatusEnded
	case StatusQueued:
		return target == StatusActive || target == StatusExpired || target == StatusEnded
	case StatusActive:
		return target == StatusExpired || target == StatusEnded
	default:
		return false
	}
}
