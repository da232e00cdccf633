package usecases

import (
	"context"
	"time"

	"parlor/internal/domain/knowledge"
	apperrors "parlor/internal/shared/errors"
	"parlor/internal/shared/logger"
	"parlor/internal/shared/services/markdown"
)

type GetArticleQuery struct {
	Slug string
	// IncludeUnpublished is only set on the operator path.
	IncludeUnpublished bool
}

type GetArticleResult struct {
	Slug      string
	Title     string
	Body      string
	BodyHTML  string
	Tags      []string
	Published bool
	UpdatedAt time.Time
}

type GetArticleUseCase struct {
	articles knowledge.ArticleRepository
	renderer markdown.Renderer
	logger   logger.Interface
}

func NewGetArticleUseCase(articles knowledge.ArticleRepository, renderer markdown.Renderer, log logger.Interface) *GetArticleUseCase {
	return &GetArticleUseCase{articles: articles, renderer: renderer, logger: log}
}

func (uc *GetArticleUseCase) Execute(ctx context.Context, query GetArticleQuery) (*GetArticleResult, error) {
	article, err := uc.articles.FindBySlug(ctx, query.Slug)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to load article", "slug", query.Slug, "error", err)
		return nil, apperrors.NewInternalError("failed to get article")
	}
	if !article.Published() && !query.IncludeUnpublished {
		return nil, apperrors.NewNotFoundError("article not found")
	}

	bodyHTML, err := uc.renderer.ToHTMLSanitized(article.Body())
	if err != nil {
		uc.logger.Warnw("failed to render article body", "slug", query.Slug, "error", err)
		bodyHTML = ""
	}

	return &GetArticleResult{
		Slug:      article.Slug(),
		Title:     article.Title(),
		Body:      article.Body(),
		BodyHTML:  bodyHTML,
		Tags:      article.Tags(),
		Published: article.Published(),
		UpdatedAt: article.UpdatedAt(),
	}, nil
}
