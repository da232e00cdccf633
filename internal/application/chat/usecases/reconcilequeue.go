package usecases

import (
	"context"

	"parlor/internal/domain/chat"
	"parlor/internal/shared/biztime"
	"parlor/internal/shared/config"
	apperrors "parlor/internal/shared/errors"
	"parlor/internal/shared/logger"
)

// ReconcileQueueUseCase promotes queued sessions into free slots and renumbers
// the remaining line to dense 1..N positions. It is idempotent and safe to
// run from any number of concurrent triggers: every promotion is a guarded
// status transition, and losing a guard just means another run already did
// the work.
type ReconcileQueueUseCase struct {
	sessions chat.SessionRepository
	notifier SessionNotifier
	cfg      *config.ChatConfig
	logger   logger.Interface
}

func NewReconcileQueueUseCase(
	sessions chat.SessionRepository,
	notifier SessionNotifier,
	cfg *config.ChatConfig,
	log logger.Interface,
) *ReconcileQueueUseCase {
	return &ReconcileQueueUseCase{
		sessions: sessions,
		notifier: notifier,
		cfg:      cfg,
		logger:   log,
	}
}

// Execute returns how many sessions this run promoted.
func (uc *ReconcileQueueUseCase) Execute(ctx context.Context) (int, error) {
	activeCount, err := uc.sessions.CountByStatus(ctx, chat.StatusActive)
	if err != nil {
		uc.logger.Errorw("failed to count active sessions", "error", err)
		return 0, apperrors.NewInternalError("failed to reconcile queue")
	}

	promoted := 0
	slots := SlotsAvailable(activeCount, uc.cfg.MaxConcurrentSessions)
	if slots > 0 {
		queued, err := uc.sessions.ListQueued(ctx)
		if err != nil {
			uc.logger.Errorw("failed to list queued sessions", "error", err)
			return 0, apperrors.NewInternalError("failed to reconcile queue")
		}

		// Attempt at most `slots` candidates, counting attempts rather than
		// wins. A lost guard usually means a concurrent run promoted the
		// same session, so the slot this run counted as free is gone;
		// skipping ahead to another candidate could push the pool past its
		// cap. If the guard was lost to a departure instead, the slot stays
		// idle until the next trigger closes the gap.
		if slots > len(queued) {
			slots = len(queued)
		}
		now := biztime.NowUTC()
		for _, session := range queued[:slots] {
			won, err := uc.sessions.PromoteIfQueued(ctx, session.ID(), now, uc.cfg.MaxConcurrentSessions)
			if err != nil {
				uc.logger.Errorw("failed to promote queued session", "sid", session.SID(), "error", err)
				continue
			}
			if !won {
				uc.logger.Debugw("promotion lost guard", "sid", session.SID())
				continue
			}
			promoted++
			uc.logger.Infow("session promoted from queue", "sid", session.SID())
			uc.notifyReady(ctx, session)
		}
	}

	if err := uc.renumber(ctx); err != nil {
		return promoted, err
	}
	return promoted, nil
}

// renumber heals the queue to consecutive positions starting at 1, in the
// order the store already keeps. Positions are advisory; a renumber lost to
// a concurrent run leaves a gap the next run closes.
func (uc *ReconcileQueueUseCase) renumber(ctx context.Context) error {
	queued, err := uc.sessions.ListQueued(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list queued sessions for renumbering", "error", err)
		return apperrors.NewInternalError("failed to reconcile queue")
	}

	for i, session := range queued {
		want := i + 1
		if pos := session.QueuePosition(); pos != nil && *pos == want {
			continue
		}
		if _, err := uc.sessions.SetQueuePosition(ctx, session.ID(), want); err != nil {
			uc.logger.Warnw("failed to renumber queued session",
				"sid", session.SID(),
				"position", want,
				"error", err,
			)
		}
	}
	return nil
}

func (uc *ReconcileQueueUseCase) notifyReady(ctx context.Context, session *chat.Session) {
	if uc.notifier == nil || session.Email() == "" {
		return
	}
	if err := uc.notifier.SessionReady(ctx, session.Email(), session.Token()); err != nil {
		uc.logger.Warnw("failed to send session ready notification",
			"sid", session.SID(),
			"error", err,
		)
	}
}
