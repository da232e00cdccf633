package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestQueuedSession(t *testing.T, position int) *Session {
	s, err := NewQueuedSession("cs_abc123def456", "pst_deadbeef", "user@example.com", "test-agent", "", position, 30*time.Minute, testNow)
	require.NoError(t, err)
	return s
}

func newTestActiveSession(t *testing.T) *Session {
	s, err := NewActiveSession("cs_abc123def456", "pst_deadbeef", "", "test-agent", "", 30*time.Minute, testNow)
	require.NoError(t, err)
	return s
}

func TestNewActiveSession(t *testing.T) {
	s := newTestActiveSession(t)

	assert.Equal(t, StatusActive, s.Status())
	assert.Nil(t, s.QueuePosition())
	require.NotNil(t, s.ActivatedAt())
	assert.Equal(t, testNow, *s.ActivatedAt())
	require.NotNil(t, s.LastActivityAt())
	assert.Equal(t, testNow.Add(30*time.Minute), s.ExpiresAt())
	assert.Nil(t, s.EndedAt())
}

func TestNewQueuedSession(t *testing.T) {
	s := newTestQueuedSession(t, 3)

	assert.Equal(t, StatusQueued, s.Status())
	require.NotNil(t, s.QueuePosition())
	assert.Equal(t, 3, *s.QueuePosition())
	assert.Nil(t, s.ActivatedAt())
	assert.Nil(t, s.LastActivityAt())
	assert.Equal(t, testNow.Add(30*time.Minute), s.ExpiresAt())
}

func TestNewSession_Validation(t *testing.T) {
	tests := []struct {
		name string
		fn   func() (*Session, error)
	}{
		{"empty sid", func() (*Session, error) {
			return NewActiveSession("", "pst_x", "", "", "", time.Minute, testNow)
		}},
		{"empty token", func() (*Session, error) {
			return NewActiveSession("cs_x", "", "", "", "", time.Minute, testNow)
		}},
		{"zero duration", func() (*Session, error) {
			return NewActiveSession("cs_x", "pst_x", "", "", "", 0, testNow)
		}},
		{"zero queue position", func() (*Session, error) {
			return NewQueuedSession("cs_x", "pst_x", "", "", "", 0, time.Minute, testNow)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.fn()
			assert.Error(t, err)
		})
	}
}

func TestSession_Activate(t *testing.T) {
	s := newTestQueuedSession(t, 1)
	later := testNow.Add(5 * time.Minute)

	require.NoError(t, s.Activate(later))

	assert.Equal(t, StatusActive, s.Status())
	assert.Nil(t, s.QueuePosition())
	require.NotNil(t, s.ActivatedAt())
	assert.Equal(t, later, *s.ActivatedAt())
	require.NotNil(t, s.LastActivityAt())
	assert.Equal(t, later, *s.LastActivityAt())

	// Activation does not move the absolute TTL
	assert.Equal(t, testNow.Add(30*time.Minute), s.ExpiresAt())
}

func TestSession_Activate_InvalidStates(t *testing.T) {
	s := newTestActiveSession(t)
	require.NoError(t, s.End(testNow.Add(time.Minute)))

	assert.Error(t, s.Activate(testNow.Add(2*time.Minute)))
}

func TestSession_Touch(t *testing.T) {
	s := newTestActiveSession(t)
	later := testNow.Add(10 * time.Minute)

	require.NoError(t, s.Touch(later))
	assert.Equal(t, later, *s.LastActivityAt())

	queued := newTestQueuedSession(t, 1)
	assert.Error(t, queued.Touch(later))
}

func TestSession_Expire(t *testing.T) {
	s := newTestActiveSession(t)
	later := testNow.Add(31 * time.Minute)

	require.NoError(t, s.Expire(later))
	assert.Equal(t, StatusExpired, s.Status())
	require.NotNil(t, s.EndedAt())
	assert.Equal(t, later, *s.EndedAt())

	// Terminal states never transition again
	assert.Error(t, s.Expire(later.Add(time.Minute)))
	assert.Error(t, s.End(later.Add(time.Minute)))
}

func TestSession_End_ClearsQueuePosition(t *testing.T) {
	s := newTestQueuedSession(t, 2)

	require.NoError(t, s.End(testNow.Add(time.Minute)))
	assert.Equal(t, StatusEnded, s.Status())
	assert.Nil(t, s.QueuePosition())
}

func TestSession_IsPastExpiry(t *testing.T) {
	s := newTestActiveSession(t)

	assert.False(t, s.IsPastExpiry(testNow.Add(29*time.Minute)))
	assert.False(t, s.IsPastExpiry(testNow.Add(30*time.Minute)))
	assert.True(t, s.IsPastExpiry(testNow.Add(30*time.Minute+time.Second)))
}

func TestSession_IsInactiveSince(t *testing.T) {
	s := newTestActiveSession(t)
	require.NoError(t, s.Touch(testNow.Add(3*time.Minute)))

	assert.False(t, s.IsInactiveSince(testNow.Add(2*time.Minute)))
	assert.True(t, s.IsInactiveSince(testNow.Add(4*time.Minute)))

	// No recorded activity falls back to creation time
	queued := newTestQueuedSession(t, 1)
	assert.True(t, queued.IsInactiveSince(testNow.Add(time.Minute)))
}

func TestSession_RecordUsage(t *testing.T) {
	s := newTestActiveSession(t)
	later := testNow.Add(2 * time.Minute)

	require.NoError(t, s.RecordUsage(0.004, 123, later))
	require.NoError(t, s.RecordUsage(0.002, 77, later.Add(time.Minute)))

	assert.InDelta(t, 0.006, s.TotalCost(), 1e-9)
	assert.Equal(t, int64(200), s.TotalTokensUsed())
	assert.Equal(t, later.Add(time.Minute), *s.LastActivityAt())

	assert.Error(t, s.RecordUsage(-1, 0, later))

	queued := newTestQueuedSession(t, 1)
	assert.Error(t, queued.RecordUsage(0.01, 10, later))
}

func TestReconstructSession_PositionInvariant(t *testing.T) {
	pos := 1

	_, err := ReconstructSession(1, "cs_x", "pst_x", StatusQueued, nil, "", "", "", 0, 0, testNow, nil, nil, testNow.Add(time.Hour), nil)
	assert.Error(t, err, "queued without position must be rejected")

	_, err = ReconstructSession(1, "cs_x", "pst_x", StatusActive, &pos, "", "", "", 0, 0, testNow, nil, nil, testNow.Add(time.Hour), nil)
	assert.Error(t, err, "active with position must be rejected")

	s, err := ReconstructSession(1, "cs_x", "pst_x", StatusQueued, &pos, "", "", "", 0, 0, testNow, nil, nil, testNow.Add(time.Hour), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, *s.QueuePosition())
}
