package usecases

import (
	"context"

	"parlor/internal/domain/chat"
	"parlor/internal/shared/biztime"
	"parlor/internal/shared/config"
	"parlor/internal/shared/logger"
)

// bootstrapMinutesPerPosition is the fallback pace when nothing is active
// yet, so the earliest slot time cannot be read off an expiry.
const bootstrapMinutesPerPosition = 2

// WaitEstimator produces the advisory wait figure shown to queued visitors.
// It is a display heuristic only: it never blocks admission, and any store
// error degrades to the bootstrap figure instead of failing the caller.
type WaitEstimator struct {
	sessions chat.SessionRepository
	cfg      *config.ChatConfig
	logger   logger.Interface
}

func NewWaitEstimator(sessions chat.SessionRepository, cfg *config.ChatConfig, log logger.Interface) *WaitEstimator {
	return &WaitEstimator{sessions: sessions, cfg: cfg, logger: log}
}

// Estimate returns whole minutes of expected wait for a session at the given
// queue position, clamped to the configured ceiling.
func (e *WaitEstimator) Estimate(ctx context.Context, position int) int {
	if position < 1 {
		position = 1
	}

	current := position
	ahead, err := e.sessions.CountQueuedAhead(ctx, position)
	if err != nil {
		e.logger.Warnw("failed to count queued sessions ahead", "position", position, "error", err)
	} else {
		current = int(ahead) + 1
	}

	earliest, err := e.sessions.EarliestActiveExpiry(ctx)
	if err != nil {
		e.logger.Warnw("failed to read earliest active expiry", "error", err)
		return e.clamp(current * bootstrapMinutesPerPosition)
	}
	if earliest == nil {
		return e.clamp(current * bootstrapMinutesPerPosition)
	}

	wait := biztime.MinutesUntil(biztime.NowUTC(), *earliest) + (current-1)*e.cfg.AverageSessionMinutes
	return e.clamp(wait)
}

func (e *WaitEstimator) clamp(minutes int) int {
	if minutes < 1 {
		return 1
	}
	if max := e.cfg.MaxEstimatedWaitMinutes; max > 0 && minutes > max {
		return max
	}
	return minutes
}
