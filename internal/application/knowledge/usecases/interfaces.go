package usecases

import "context"

type SaveArticleExecutor interface {
	Execute(ctx context.Context, cmd SaveArticleCommand) (*SaveArticleResult, error)
}

type GetArticleExecutor interface {
	Execute(ctx context.Context, query GetArticleQuery) (*GetArticleResult, error)
}

type ListArticlesExecutor interface {
	Execute(ctx context.Context, query ListArticlesQuery) (*ListArticlesResult, error)
}

type DeleteArticleExecutor interface {
	Execute(ctx context.Context, slug string) error
}
