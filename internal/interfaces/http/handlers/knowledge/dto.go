package knowledge

import (
	"time"

	"parlor/internal/application/knowledge/usecases"
)

type ArticleResponse struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	BodyHTML  string    `json:"body_html"`
	Tags      []string  `json:"tags,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewArticleResponse(result *usecases.GetArticleResult) ArticleResponse {
	return ArticleResponse{
		Slug:      result.Slug,
		Title:     result.Title,
		BodyHTML:  result.BodyHTML,
		Tags:      result.Tags,
		UpdatedAt: result.UpdatedAt,
	}
}

type ArticleSummaryResponse struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Tags      []string  `json:"tags,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewArticleSummaryResponses(summaries []usecases.ArticleSummary) []ArticleSummaryResponse {
	out := make([]ArticleSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, ArticleSummaryResponse{
			Slug:      s.Slug,
			Title:     s.Title,
			Tags:      s.Tags,
			UpdatedAt: s.UpdatedAt,
		})
	}
	return out
}
