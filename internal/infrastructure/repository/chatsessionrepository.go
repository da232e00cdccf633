package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"parlor/internal/domain/chat"
	"parlor/internal/infrastructure/persistence/mappers"
	"parlor/internal/infrastructure/persistence/models"
	apperrors "parlor/internal/shared/errors"
)

// liveStatuses are the states a session can still leave on its own.
var liveStatuses = []string{
	chat.StatusPending.String(),
	chat.StatusQueued.String(),
	chat.StatusActive.String(),
}

// ChatSessionRepository persists sessions through GORM. State transitions
// are single guarded UPDATE statements: the WHERE clause re-checks the prior
// status and RowsAffected reports whether this caller won. No transactions
// or row locks are taken anywhere.
type ChatSessionRepository struct {
	db     *gorm.DB
	mapper mappers.ChatSessionMapper
}

func NewChatSessionRepository(db *gorm.DB) *ChatSessionRepository {
	return &ChatSessionRepository{
		db:     db,
		mapper: mappers.NewChatSessionMapper(),
	}
}

func (r *ChatSessionRepository) Save(ctx context.Context, session *chat.Session) error {
	model := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return session.SetID(model.ID)
}

func (r *ChatSessionRepository) FindByToken(ctx context.Context, token string) (*chat.Session, error) {
	var model models.ChatSessionModel
	if err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("session not found")
		}
		return nil, fmt.Errorf("failed to find session by token: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *ChatSessionRepository) FindBySID(ctx context.Context, sid string) (*chat.Session, error) {
	var model models.ChatSessionModel
	if err := r.db.WithContext(ctx).
		Where("sid = ?", sid).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("session not found")
		}
		return nil, fmt.Errorf("failed to find session by sid: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *ChatSessionRepository) CountByStatus(ctx context.Context, status chat.SessionStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ChatSessionModel{}).
		Where("status = ?", status.String()).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}

func (r *ChatSessionRepository) ListQueued(ctx context.Context) ([]*chat.Session, error) {
	var modelList []models.ChatSessionModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", chat.StatusQueued.String()).
		Order("queue_position ASC, created_at ASC").
		Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list queued sessions: %w", err)
	}

	sessions := make([]*chat.Session, 0, len(modelList))
	for i := range modelList {
		session, err := r.mapper.ToDomain(&modelList[i])
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func (r *ChatSessionRepository) List(ctx context.Context, filter chat.SessionFilter) ([]*chat.Session, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ChatSessionModel{})
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Email != "" {
		query = query.Where("email = ?", filter.Email)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var modelList []models.ChatSessionModel
	if err := query.
		Order("created_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&modelList).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list sessions: %w", err)
	}

	sessions := make([]*chat.Session, 0, len(modelList))
	for i := range modelList {
		session, err := r.mapper.ToDomain(&modelList[i])
		if err != nil {
			return nil, 0, err
		}
		sessions = append(sessions, session)
	}
	return sessions, total, nil
}

// PromoteIfQueued moves one session from queued to active. The guard checks
// queue membership and the pool cap in the same statement: it loses when the
// session left the queue between read and write, or when the slot the caller
// counted as free is already taken. Neither is an error, just someone else's
// win. The active count rides in a derived table because MySQL rejects a
// plain subquery on the table being updated.
func (r *ChatSessionRepository) PromoteIfQueued(ctx context.Context, id uint, now time.Time, maxActive int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ChatSessionModel{}).
		Where("id = ? AND status = ?", id, chat.StatusQueued.String()).
		Where("(SELECT live.cnt FROM (SELECT COUNT(*) AS cnt FROM chat_sessions WHERE status = ?) AS live) < ?",
			chat.StatusActive.String(), maxActive).
		Updates(map[string]interface{}{
			"status":           chat.StatusActive.String(),
			"queue_position":   nil,
			"activated_at":     now,
			"last_activity_at": now,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to promote session: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *ChatSessionRepository) SetQueuePosition(ctx context.Context, id uint, position int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ChatSessionModel{}).
		Where("id = ? AND status = ?", id, chat.StatusQueued.String()).
		Update("queue_position", position)
	if result.Error != nil {
		return false, fmt.Errorf("failed to set queue position: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *ChatSessionRepository) TouchIfActive(ctx context.Context, id uint, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ChatSessionModel{}).
		Where("id = ? AND status = ?", id, chat.StatusActive.String()).
		Update("last_activity_at", now)
	if result.Error != nil {
		return false, fmt.Errorf("failed to touch session: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *ChatSessionRepository) EndIfLive(ctx context.Context, id uint, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ChatSessionModel{}).
		Where("id = ? AND status IN ?", id, liveStatuses).
		Updates(map[string]interface{}{
			"status":         chat.StatusEnded.String(),
			"queue_position": nil,
			"ended_at":       now,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to end session: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ExpireOverdue expires every live session whose hard TTL has passed,
// regardless of activity. Expiry is measured from creation, never extended.
func (r *ChatSessionRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ChatSessionModel{}).
		Where("status IN ? AND expires_at <= ?", liveStatuses, now).
		Updates(map[string]interface{}{
			"status":         chat.StatusExpired.String(),
			"queue_position": nil,
			"ended_at":       now,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to expire overdue sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// ExpireInactive expires active sessions whose last activity predates the
// cutoff. Sessions that never reported activity fall back to activation
// time.
func (r *ChatSessionRepository) ExpireInactive(ctx context.Context, cutoff, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ChatSessionModel{}).
		Where("status = ? AND COALESCE(last_activity_at, activated_at, created_at) <= ?",
			chat.StatusActive.String(), cutoff).
		Updates(map[string]interface{}{
			"status":   chat.StatusExpired.String(),
			"ended_at": now,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to expire inactive sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *ChatSessionRepository) CountQueuedAhead(ctx context.Context, position int) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ChatSessionModel{}).
		Where("status = ? AND queue_position < ?", chat.StatusQueued.String(), position).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count queued sessions ahead: %w", err)
	}
	return count, nil
}

func (r *ChatSessionRepository) EarliestActiveExpiry(ctx context.Context) (*time.Time, error) {
	var earliest sql.NullTime
	row := r.db.WithContext(ctx).
		Model(&models.ChatSessionModel{}).
		Where("status = ?", chat.StatusActive.String()).
		Select("MIN(expires_at)").
		Row()
	if err := row.Scan(&earliest); err != nil {
		return nil, fmt.Errorf("failed to read earliest active expiry: %w", err)
	}
	if !earliest.Valid {
		return nil, nil
	}
	t := earliest.Time
	return &t, nil
}

func (r *ChatSessionRepository) AddUsage(ctx context.Context, id uint, cost float64, tokens int64, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ChatSessionModel{}).
		Where("id = ? AND status = ?", id, chat.StatusActive.String()).
		Updates(map[string]interface{}{
			"total_cost":        gorm.Expr("total_cost + ?", cost),
			"total_tokens_used": gorm.Expr("total_tokens_used + ?", tokens),
			"last_activity_at":  now,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to add usage: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
