package usecases

import (
	"context"
	"time"

	"parlor/internal/domain/knowledge"
	apperrors "parlor/internal/shared/errors"
	"parlor/internal/shared/logger"
)

type ListArticlesQuery struct {
	IncludeUnpublished bool
}

type ArticleSummary struct {
	Slug      string
	Title     string
	Tags      []string
	Published bool
	UpdatedAt time.Time
}

type ListArticlesResult struct {
	Articles []ArticleSummary
}

type ListArticlesUseCase struct {
	articles knowledge.ArticleRepository
	logger   logger.Interface
}

func NewListArticlesUseCase(articles knowledge.ArticleRepository, log logger.Interface) *ListArticlesUseCase {
	return &ListArticlesUseCase{articles: articles, logger: log}
}

func (uc *ListArticlesUseCase) Execute(ctx context.Context, query ListArticlesQuery) (*ListArticlesResult, error) {
	articles, err := uc.articles.List(ctx, !query.IncludeUnpublished)
	if err != nil {
		uc.logger.Errorw("failed to list articles", "error", err)
		return nil, apperrors.NewInternalError("failed to list articles")
	}

	summaries := make([]ArticleSummary, 0, len(articles))
	for _, a := range articles {
		summaries = append(summaries, ArticleSummary{
			Slug:      a.Slug(),
			Title:     a.Title(),
			Tags:      a.Tags(),
			Published: a.Published(),
			UpdatedAt: a.UpdatedAt(),
		})
	}
	return &ListArticlesResult{Articles: summaries}, nil
}
