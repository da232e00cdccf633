package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionStatus_IsValid(t *testing.T) {
	valid := []SessionStatus{StatusPending, StatusQueued, StatusActive, StatusExpired, StatusEnded}
	for _, s := range valid {
		assert.True(t, s.IsValid(), "expected %s to be valid", s)
	}

	assert.False(t, SessionStatus("waiting").IsValid())
	assert.False(t, SessionStatus("").IsValid())
}

func TestSessionStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    SessionStatus
		to      SessionStatus
		allowed bool
	}{
		{"pending to queued", StatusPending, StatusQueued, true},
		{"pending to active", StatusPending, StatusActive, true},
		{"pending to expired", StatusPending, StatusExpired, true},
		{"queued to active", StatusQueued, StatusActive, true},
		{"queued to expired", StatusQueued, StatusExpired, true},
		{"queued to ended", StatusQueued, StatusEnded, true},
		{"active to expired", StatusActive, StatusExpired, true},
		{"active to ended", StatusActive, StatusEnded, true},
		{"active back to queued", StatusActive, StatusQueued, false},
		{"queued back to pending", StatusQueued, StatusPending, false},
		{"expired to active", StatusExpired, StatusActive, false},
		{"ended to active", StatusEnded, StatusActive, false},
		{"expired to ended", StatusExpired, StatusEnded, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestSessionStatus_Classification(t *testing.T) {
	assert.True(t, StatusExpired.IsTerminal())
	assert.True(t, StatusEnded.IsTerminal())
	assert.False(t, StatusActive.IsTerminal())

	assert.True(t, StatusPending.IsLive())
	assert.True(t, StatusQueued.IsLive())
	assert.True(t, StatusActive.IsLive())
	assert.False(t, StatusExpired.IsLive())
	assert.False(t, StatusEnded.IsLive())
}
