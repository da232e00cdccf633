package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"parlor/internal/domain/knowledge"
	"parlor/internal/infrastructure/persistence/mappers"
	"parlor/internal/infrastructure/persistence/models"
	apperrors "parlor/internal/shared/errors"
)

type ArticleRepository struct {
	db     *gorm.DB
	mapper mappers.ArticleMapper
}

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{
		db:     db,
		mapper: mappers.NewArticleMapper(),
	}
}

func (r *ArticleRepository) Save(ctx context.Context, article *knowledge.Article) error {
	model := r.mapper.ToModel(article)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.NewConflictError("article slug already exists")
		}
		return fmt.Errorf("failed to save article: %w", err)
	}
	return article.SetID(model.ID)
}

func (r *ArticleRepository) Update(ctx context.Context, article *knowledge.Article) error {
	model := r.mapper.ToModel(article)
	result := r.db.WithContext(ctx).
		Model(&models.ArticleModel{}).
		Where("id = ?", model.ID).
		Select("title", "body", "tags", "published", "updated_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update article: %w", result.Error)
	}
	return nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.ArticleModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete article: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("article not found")
	}
	return nil
}

func (r *ArticleRepository) FindBySlug(ctx context.Context, slug string) (*knowledge.Article, error) {
	var model models.ArticleModel
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("article not found")
		}
		return nil, fmt.Errorf("failed to find article: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *ArticleRepository) List(ctx context.Context, publishedOnly bool) ([]*knowledge.Article, error) {
	query := r.db.WithContext(ctx).Model(&models.ArticleModel{})
	if publishedOnly {
		query = query.Where("published = ?", true)
	}

	var modelList []models.ArticleModel
	if err := query.Order("slug ASC").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}

	articles := make([]*knowledge.Article, 0, len(modelList))
	for i := range modelList {
		article, err := r.mapper.ToDomain(&modelList[i])
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, nil
}
