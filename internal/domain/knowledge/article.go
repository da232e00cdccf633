package knowledge

import (
	"fmt"
	"regexp"
	"time"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Article is a curated knowledge base entry used to ground assistant
// replies and served read-only to end users.
type Article struct {
	id        uint
	slug      string
	title     string
	body      string
	tags      []string
	published bool
	createdAt time.Time
	updatedAt time.Time
}

func NewArticle(slug, title, body string, tags []string, published bool, now time.Time) (*Article, error) {
	if err := validateArticle(slug, title, body); err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []string{}
	}
	return &Article{
		slug:      slug,
		title:     title,
		body:      body,
		tags:      tags,
		published: published,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructArticle(id uint, slug, title, body string, tags []string, published bool, createdAt, updatedAt time.Time) (*Article, error) {
	if id == 0 {
		return nil, fmt.Errorf("article ID cannot be zero")
	}
	if err := validateArticle(slug, title, body); err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []string{}
	}
	return &Article{
		id:        id,
		slug:      slug,
		title:     title,
		body:      body,
		tags:      tags,
		published: published,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func validateArticle(slug, title, body string) error {
	if !slugPattern.MatchString(slug) {
		return fmt.Errorf("invalid slug %q: must be lowercase kebab-case", slug)
	}
	if len(title) == 0 {
		return fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	if len(body) == 0 {
		return fmt.Errorf("body is required")
	}
	return nil
}

func (a *Article) ID() uint             { return a.id }
func (a *Article) Slug() string         { return a.slug }
func (a *Article) Title() string        { return a.title }
func (a *Article) Body() string         { return a.body }
func (a *Article) Published() bool      { return a.published }
func (a *Article) CreatedAt() time.Time { return a.createdAt }
func (a *Article) UpdatedAt() time.Time { return a.updatedAt }

func (a *Article) Tags() []string {
	tagsCopy := make([]string, len(a.tags))
	copy(tagsCopy, a.tags)
	return tagsCopy
}

func (a *Article) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("article ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("article ID cannot be zero")
	}
	a.id = id
	return nil
}

func (a *Article) Update(title, body string, tags []string, published bool, now time.Time) error {
	if err := validateArticle(a.slug, title, body); err != nil {
		return err
	}
	if tags == nil {
		tags = []string{}
	}
	a.title = title
	a.body = body
	a.tags = tags
	a.published = published
	a.updatedAt = now
	return nil
}
