package api

import (
	"errors"
	"slices"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cortejtech/agency-admin/internal/db/models"
	"github.com/cortejtech/agency-admin/internal/store"
)

// PostSummary is a blog post without its body.
type PostSummary struct {
	ID            uint64            `json:"id"`
	Title         string            `json:"title"`
	Slug          string            `json:"slug"`
	Author        string            `json:"author"`
	Excerpt       string            `json:"excerpt"`
	FeaturedImage *string           `json:"featured_image"`
	Tags          models.StringList `json:"tags"`
	PublishedAt   *time.Time        `json:"published_at"`
	CreatedAt     time.Time         `json:"created_at"`
}

// Post is a blog post with its body rendered to HTML.
type Post struct {
	models.BlogPost
	ContentHTML string `json:"content_html"`
}

var latestPublished = []store.Order{ //nolint:gochecknoglobals
	{Column: "published_at", Desc: true},
	{Column: "id", Desc: true},
}

func (s *Service) summary(p models.BlogPost) PostSummary {
	excerpt := ""
	if p.Excerpt != nil {
		excerpt = *p.Excerpt
	}

	if excerpt == "" {
		excerpt = s.md.Summary(p.Content, summaryLength)
	}

	return PostSummary{
		ID:            p.ID,
		Title:         p.Title,
		Slug:          p.Slug,
		Author:        p.Author,
		Excerpt:       excerpt,
		FeaturedImage: p.FeaturedImage,
		Tags:          p.Tags,
		PublishedAt:   p.PublishedAt,
		CreatedAt:     p.CreatedAt,
	}
}

// Blog returns the published posts, latest first, optionally with one ?tag.
func (s *Service) Blog(c *fiber.Ctx) error {
	rows, err := s.posts.Select(c.UserContext(), store.Query{
		Filters: []store.Filter{store.Eq("is_published", true)},
		Order:   latestPublished,
	})
	if err != nil {
		return internalError(c, err, "blog posts")
	}

	tag := c.Query("tag")
	out := make([]PostSummary, 0, len(rows))

	for _, p := range rows {
		if tag != "" && !slices.Contains(p.Tags, tag) {
			continue
		}

		out = append(out, s.summary(p))
	}

	return c.JSON(out)
}

// BlogPost returns one published post by slug. With duplicate slugs the latest post wins.
func (s *Service) BlogPost(c *fiber.Ctx) error {
	p, err := s.posts.First(c.UserContext(), store.Query{
		Filters: []store.Filter{store.Eq("slug", c.Params("slug")), store.Eq("is_published", true)},
		Order:   latestPublished,
	})

	switch {
	case errors.Is(err, store.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "post not found")
	case err != nil:
		return internalError(c, err, "blog post")
	}

	html, err := s.md.HTML(p.Content)
	if err != nil {
		return internalError(c, err, "blog post")
	}

	return c.JSON(Post{BlogPost: *p, ContentHTML: html})
}
