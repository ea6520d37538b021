package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/cortejtech/agency-admin/internal/content"
	"github.com/cortejtech/agency-admin/internal/db/models"
	"github.com/cortejtech/agency-admin/internal/siteconfig"
	"github.com/cortejtech/agency-admin/internal/store"
)

// JobsResponse carries the open positions. Message is set when there are none.
type JobsResponse struct {
	Jobs    []models.Job `json:"jobs"`
	Message string       `json:"message,omitempty"`
}

// PageResponse is a page with its body rendered to HTML.
type PageResponse struct {
	models.Page
	ContentHTML string `json:"content_html"`
}

// Jobs returns the open positions, optionally filtered by ?type and ?location.
func (s *Service) Jobs(c *fiber.Ctx) error {
	q := store.Query{Order: orderOf(content.Jobs.Definition.Order)}

	for _, column := range []string{"type", "location"} {
		if v := c.Query(column); v != "" && v != "all" {
			q.Filters = append(q.Filters, store.Eq(column, v))
		}
	}

	rows, err := s.jobs.Select(c.UserContext(), q)
	if err != nil {
		return internalError(c, err, "jobs")
	}

	resp := JobsResponse{Jobs: rows}

	if len(rows) == 0 {
		resp.Jobs = []models.Job{}

		values, err := s.overlay.Load(c.UserContext())
		if err != nil {
			log.Error().Err(err).Msg("failed to load site settings, serving defaults")

			values = siteconfig.Defaults()
		}

		resp.Message = values.NoJobsMessage
	}

	return c.JSON(resp)
}

// Page returns a page by slug. With duplicate slugs the oldest page wins.
func (s *Service) Page(c *fiber.Ctx) error {
	p, err := s.pages.First(c.UserContext(), store.Query{
		Filters: []store.Filter{store.Eq("slug", c.Params("slug"))},
		Order:   []store.Order{{Column: "id"}},
	})

	switch {
	case errors.Is(err, store.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "page not found")
	case err != nil:
		return internalError(c, err, "page")
	}

	html, err := s.md.HTML(p.Content)
	if err != nil {
		return internalError(c, err, "page")
	}

	return c.JSON(PageResponse{Page: *p, ContentHTML: html})
}
