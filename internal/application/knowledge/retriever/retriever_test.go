package retriever

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parlor/internal/domain/knowledge"
)

type stubArticleRepository struct {
	articles []*knowledge.Article
	err      error
}

func (s *stubArticleRepository) Save(ctx context.Context, a *knowledge.Article) error   { return nil }
func (s *stubArticleRepository) Update(ctx context.Context, a *knowledge.Article) error { return nil }
func (s *stubArticleRepository) Delete(ctx context.Context, id uint) error              { return nil }
func (s *stubArticleRepository) FindBySlug(ctx context.Context, slug string) (*knowledge.Article, error) {
	return nil, nil
}
func (s *stubArticleRepository) List(ctx context.Context, publishedOnly bool) ([]*knowledge.Article, error) {
	return s.articles, s.err
}

func mustArticle(t *testing.T, slug, title, body string, tags []string) *knowledge.Article {
	t.Helper()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	a, err := knowledge.NewArticle(slug, title, body, tags, true, now)
	require.NoError(t, err)
	return a
}

func TestKeywordRetriever_Retrieve_RanksByOverlap(t *testing.T) {
	repo := &stubArticleRepository{
		articles: []*knowledge.Article{
			mustArticle(t, "shipping-times", "Shipping times", "Orders ship within two business days.", []string{"shipping"}),
			mustArticle(t, "pricing", "Pricing and plans", "Pricing starts at ten dollars. Pricing scales with seats.", []string{"billing"}),
			mustArticle(t, "returns", "Return policy", "Returns are accepted within thirty days.", nil),
		},
	}
	r := NewKeywordRetriever(repo)

	snippets, err := r.Retrieve(context.Background(), "what is your pricing?", 2)

	require.NoError(t, err)
	require.Len(t, snippets, 1)
	assert.Equal(t, "pricing", snippets[0].Slug)
	assert.NotEmpty(t, snippets[0].Excerpt)
}

func TestKeywordRetriever_Retrieve_LimitsResults(t *testing.T) {
	repo := &stubArticleRepository{
		articles: []*knowledge.Article{
			mustArticle(t, "shipping-times", "Shipping times", "shipping shipping shipping", nil),
			mustArticle(t, "shipping-costs", "Shipping costs", "shipping shipping", nil),
			mustArticle(t, "shipping-zones", "Shipping zones", "shipping", nil),
		},
	}
	r := NewKeywordRetriever(repo)

	snippets, err := r.Retrieve(context.Background(), "shipping", 2)

	require.NoError(t, err)
	require.Len(t, snippets, 2)
	assert.Equal(t, "shipping-times", snippets[0].Slug)
}

func TestKeywordRetriever_Retrieve_NoTermsNoQuery(t *testing.T) {
	r := NewKeywordRetriever(&stubArticleRepository{})

	snippets, err := r.Retrieve(context.Background(), "how do I ...", 3)
	require.NoError(t, err)
	assert.Empty(t, snippets)

	snippets, err = r.Retrieve(context.Background(), "anything", 0)
	require.NoError(t, err)
	assert.Empty(t, snippets)
}

func TestKeywordRetriever_Retrieve_TruncatesExcerptOnWordBoundary(t *testing.T) {
	long := ""
	for i := 0; i < 60; i++ {
		long += "refund policy details "
	}
	repo := &stubArticleRepository{
		articles: []*knowledge.Article{
			mustArticle(t, "refunds", "Refunds", long, nil),
		},
	}
	r := NewKeywordRetriever(repo)

	snippets, err := r.Retrieve(context.Background(), "refund", 1)

	require.NoError(t, err)
	require.Len(t, snippets, 1)
	assert.LessOrEqual(t, len(snippets[0].Excerpt), 260)
	assert.Contains(t, snippets[0].Excerpt, "...")
}
