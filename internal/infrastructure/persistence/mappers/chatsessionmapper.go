package mappers

import (
	"parlor/internal/domain/chat"
	"parlor/internal/infrastructure/persistence/models"
)

// ChatSessionMapper handles the conversion between session domain entities
// and persistence models.
type ChatSessionMapper interface {
	ToModel(entity *chat.Session) *models.ChatSessionModel
	ToDomain(model *models.ChatSessionModel) (*chat.Session, error)
}

type ChatSessionMapperImpl struct{}

func NewChatSessionMapper() ChatSessionMapper {
	return &ChatSessionMapperImpl{}
}

func (m *ChatSessionMapperImpl) ToModel(entity *chat.Session) *models.ChatSessionModel {
	if entity == nil {
		return nil
	}
	return &models.ChatSessionModel{
		ID:              entity.ID(),
		SID:             entity.SID(),
		Token:           entity.Token(),
		Status:          entity.Status().String(),
		QueuePosition:   entity.QueuePosition(),
		Email:           entity.Email(),
		UserAgent:       entity.UserAgent(),
		Referrer:        entity.Referrer(),
		TotalCost:       entity.TotalCost(),
		TotalTokensUsed: entity.TotalTokensUsed(),
		CreatedAt:       entity.CreatedAt(),
		ActivatedAt:     entity.ActivatedAt(),
		LastActivityAt:  entity.LastActivityAt(),
		ExpiresAt:       entity.ExpiresAt(),
		EndedAt:         entity.EndedAt(),
	}
}

func (m *ChatSessionMapperImpl) ToDomain(model *models.ChatSessionModel) (*chat.Session, error) {
	if model == nil {
		return nil, nil
	}
	return chat.ReconstructSession(
		model.ID,
		model.SID,
		model.Token,
		chat.SessionStatus(model.Status),
		model.QueuePosition,
		model.Email,
		model.UserAgent,
		model.Referrer,
		model.TotalCost,
		model.TotalTokensUsed,
		model.CreatedAt,
		model.ActivatedAt,
		model.LastActivityAt,
		model.ExpiresAt,
		model.EndedAt,
	)
}
