package mappers

import (
	"strings"

	"parlor/internal/domain/knowledge"
	"parlor/internal/infrastructure/persistence/models"
)

// ArticleMapper handles the conversion between article domain entities and
// persistence models. Tags are stored as a comma-separated list.
type ArticleMapper interface {
	ToModel(entity *knowledge.Article) *models.ArticleModel
	ToDomain(model *models.ArticleModel) (*knowledge.Article, error)
}

type ArticleMapperImpl struct{}

func NewArticleMapper() ArticleMapper {
	return &ArticleMapperImpl{}
}

func (m *ArticleMapperImpl) ToModel(entity *knowledge.Article) *models.ArticleModel {
	if entity == nil {
		return nil
	}
	return &models.ArticleModel{
		ID:        entity.ID(),
		Slug:      entity.Slug(),
		Title:     entity.Title(),
		Body:      entity.Body(),
		Tags:      strings.Join(entity.Tags(), ","),
		Published: entity.Published(),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}
}

func (m *ArticleMapperImpl) ToDomain(model *models.ArticleModel) (*knowledge.Article, error) {
	if model == nil {
		return nil, nil
	}
	var tags []string
	if model.Tags != "" {
		tags = strings.Split(model.Tags, ",")
	}
	return knowledge.ReconstructArticle(
		model.ID,
		model.Slug,
		model.Title,
		model.Body,
		tags,
		model.Published,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
