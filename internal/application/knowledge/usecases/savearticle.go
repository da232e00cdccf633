package usecases

import (
	"context"
	"time"

	"parlor/internal/domain/knowledge"
	"parlor/internal/shared/biztime"
	apperrors "parlor/internal/shared/errors"
	"parlor/internal/shared/logger"
)

// SaveArticleCommand creates an article with the given slug, or updates the
// existing one. Upsert semantics keep the seeder and the admin editor on one
// path.
type SaveArticleCommand struct {
	Slug      string
	Title     string
	Body      string
	Tags      []string
	Published bool
}

type SaveArticleResult struct {
	Slug      string
	Created   bool
	UpdatedAt time.Time
}

type SaveArticleUseCase struct {
	articles knowledge.ArticleRepository
	logger   logger.Interface
}

func NewSaveArticleUseCase(articles knowledge.ArticleRepository, log logger.Interface) *SaveArticleUseCase {
	return &SaveArticleUseCase{articles: articles, logger: log}
}

func (uc *SaveArticleUseCase) Execute(ctx context.Context, cmd SaveArticleCommand) (*SaveArticleResult, error) {
	now := biztime.NowUTC()

	existing, err := uc.articles.FindBySlug(ctx, cmd.Slug)
	if err != nil && !apperrors.IsNotFoundError(err) {
		uc.logger.Errorw("failed to look up article", "slug", cmd.Slug, "error", err)
		return nil, apperrors.NewInternalError("failed to save article")
	}

	if existing != nil {
		if err := existing.Update(cmd.Title, cmd.Body, cmd.Tags, cmd.Published, now); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		if err := uc.articles.Update(ctx, existing); err != nil {
			uc.logger.Errorw("failed to update article", "slug", cmd.Slug, "error", err)
			return nil, apperrors.NewInternalError("failed to save article")
		}
		uc.logger.Infow("article updated", "slug", cmd.Slug)
		return &SaveArticleResult{Slug: cmd.Slug, Created: false, UpdatedAt: existing.UpdatedAt()}, nil
	}

	article, err := knowledge.NewArticle(cmd.Slug, cmd.Title, cmd.Body, cmd.Tags, cmd.Published, now)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := uc.articles.Save(ctx, article); err != nil {
		uc.logger.Errorw("failed to save article", "slug", cmd.Slug, "error", err)
		return nil, apperrors.NewInternalError("failed to save article")
	}

	uc.logger.Infow("article created", "slug", cmd.Slug)
	return &SaveArticleResult{Slug: cmd.Slug, Created: true, UpdatedAt: article.UpdatedAt()}, nil
}
