package knowledge

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	knowledgeUsecases "parlor/internal/application/knowledge/usecases"
	"parlor/internal/shared/logger"
)

type seedArticle struct {
	Slug      string   `yaml:"slug"`
	Title     string   `yaml:"title"`
	Body      string   `yaml:"body"`
	Tags      []string `yaml:"tags"`
	Published bool     `yaml:"published"`
}

type seedFile struct {
	Articles []seedArticle `yaml:"articles"`
}

// Seeder loads knowledge base articles from a YAML file. Seeding is an
// upsert: rerunning against an existing database refreshes article content
// without duplicating rows.
type Seeder struct {
	save   knowledgeUsecases.SaveArticleExecutor
	logger logger.Interface
}

func NewSeeder(save knowledgeUsecases.SaveArticleExecutor, log logger.Interface) *Seeder {
	return &Seeder{save: save, logger: log}
}

func (s *Seeder) SeedFromFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	created, updated := 0, 0
	for _, article := range file.Articles {
		result, err := s.save.Execute(ctx, knowledgeUsecases.SaveArticleCommand{
			Slug:      article.Slug,
			Title:     article.Title,
			Body:      article.Body,
			Tags:      article.Tags,
			Published: article.Published,
		})
		if err != nil {
			return fmt.Errorf("failed to seed article %q: %w", article.Slug, err)
		}
		if result.Created {
			created++
		} else {
			updated++
		}
	}

	s.logger.Infow("knowledge base seeded",
		"file", path,
		"created", created,
		"updated", updated,
	)
	return nil
}
