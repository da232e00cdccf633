package knowledge

import "context"

type ArticleRepository interface {
	Save(ctx context.Context, article *Article) error
	Update(ctx context.Context, article *Article) error
	Delete(ctx context.Context, id uint) error
	FindBySlug(ctx context.Context, slug string) (*Article, error)
	List(ctx context.Context, publishedOnly bool) ([]*Article, error)
}
