package retriever

import (
	"context"
	"sort"
	"strings"

	chatusecases "parlor/internal/application/chat/usecases"
	"parlor/internal/domain/knowledge"
)

const excerptLength = 240

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "can": {}, "do": {}, "does": {},
	"for": {}, "how": {}, "i": {}, "in": {}, "is": {}, "it": {}, "my": {},
	"of": {}, "on": {}, "or": {}, "the": {}, "to": {}, "what": {}, "where": {},
	"why": {}, "with": {}, "you": {},
}

// KeywordRetriever ranks published articles against a user message by plain
// term overlap. It is deliberately simple: the corpus is small and curated,
// and ranking quality only shapes the grounding context, never correctness.
type KeywordRetriever struct {
	articles knowledge.ArticleRepository
}

func NewKeywordRetriever(articles knowledge.ArticleRepository) *KeywordRetriever {
	return &KeywordRetriever{articles: articles}
}

func (r *KeywordRetriever) Retrieve(ctx context.Context, query string, limit int) ([]chatusecases.Snippet, error) {
	if limit <= 0 {
		return nil, nil
	}
	terms := tokenize(query)
	if len(terms) == 0 {
		return nil, nil
	}

	articles, err := r.articles.List(ctx, true)
	if err != nil {
		return nil, err
	}

	type scored struct {
		article *knowledge.Article
		score   int
	}
	var matches []scored
	for _, a := range articles {
		s := score(a, terms)
		if s > 0 {
			matches = append(matches, scored{article: a, score: s})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	snippets := make([]chatusecases.Snippet, 0, len(matches))
	for _, m := range matches {
		snippets = append(snippets, chatusecases.Snippet{
			Slug:    m.article.Slug(),
			Title:   m.article.Title(),
			Excerpt: excerpt(m.article.Body()),
		})
	}
	return snippets, nil
}

func tokenize(query string) []string {
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		if _, skip := stopwords[f]; skip {
			continue
		}
		terms = append(terms, f)
	}
	return terms
}

func score(a *knowledge.Article, terms []string) int {
	title := strings.ToLower(a.Title())
	body := strings.ToLower(a.Body())
	tags := strings.ToLower(strings.Join(a.Tags(), " "))

	total := 0
	for _, term := range terms {
		if strings.Contains(title, term) {
			total += 3
		}
		if strings.Contains(tags, term) {
			total += 2
		}
		total += strings.Count(body, term)
	}
	return total
}

func excerpt(body string) string {
	body = strings.TrimSpace(body)
	if len(body) <= excerptLength {
		return body
	}
	cut := body[:excerptLength]
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
