package usecases

import (
	"context"

	"parlor/internal/domain/knowledge"
	apperrors "parlor/internal/shared/errors"
	"parlor/internal/shared/logger"
)

type DeleteArticleUseCase struct {
	articles knowledge.ArticleRepository
	logger   logger.Interface
}

func NewDeleteArticleUseCase(articles knowledge.ArticleRepository, log logger.Interface) *DeleteArticleUseCase {
	return &DeleteArticleUseCase{articles: articles, logger: log}
}

func (uc *DeleteArticleUseCase) Execute(ctx context.Context, slug string) error {
	article, err := uc.articles.FindBySlug(ctx, slug)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return err
		}
		uc.logger.Errorw("failed to look up article", "slug", slug, "error", err)
		return apperrors.NewInternalError("failed to delete article")
	}

	if err := uc.articles.Delete(ctx, article.ID()); err != nil {
		uc.logger.Errorw("failed to delete article", "slug", slug, "error", err)
		return apperrors.NewInternalError("failed to delete article")
	}

	uc.logger.Infow("article deleted", "slug", slug)
	return nil
}
