package scheduler

import (
	"context"
	"sync"
	"time"

	chatUsecases "parlor/internal/application/chat/usecases"
	"parlor/internal/shared/goroutine"
	"parlor/internal/shared/logger"
)

// ReaperScheduler runs the expiry sweep on a fixed interval. It is the
// scheduled backstop for sessions whose clients disappeared; request-driven
// reconciliation handles the common case faster.
type ReaperScheduler struct {
	reapUC   chatUsecases.ReapSessionsExecutor
	logger   logger.Interface
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	interval time.Duration
}

func NewReaperScheduler(
	reapUC chatUsecases.ReapSessionsExecutor,
	interval time.Duration,
	log logger.Interface,
) *ReaperScheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &ReaperScheduler{
		reapUC:   reapUC,
		logger:   log,
		stopChan: make(chan struct{}),
		interval: interval,
	}
}

// Start starts the scheduler
func (s *ReaperScheduler) Start(ctx context.Context) {
	s.logger.Infow("starting session reaper", "interval", s.interval)

	s.wg.Add(1)
	goroutine.SafeGo(s.logger, "session-reaper", func() {
		defer s.wg.Done()
		s.runLoop(ctx)
	})
}

// Stop stops the scheduler gracefully
func (s *ReaperScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Infow("stopping session reaper")
		close(s.stopChan)
		s.wg.Wait()
		s.logger.Infow("session reaper stopped")
	})
}

func (s *ReaperScheduler) runLoop(ctx context.Context) {
	// Sweep immediately on startup to clear anything that lapsed while the
	// process was down.
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("session reaper stopped due to context cancellation")
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *ReaperScheduler) sweep(ctx context.Context) {
	startTime := time.Now()

	result, err := s.reapUC.Execute(ctx)
	if err != nil {
		s.logger.Errorw("reaper sweep failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if result.HardExpired+result.InactivityExpired > 0 {
		s.logger.Infow("reaper sweep completed",
			"hard_expired", result.HardExpired,
			"inactivity_expired", result.InactivityExpired,
			"queue_activated", result.QueueActivated,
			"duration", time.Since(startTime),
		)
	}
}
