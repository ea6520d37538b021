// Package settings serves the site settings page of the back-office.
package settings

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/cortejtech/agency-admin/internal/config"
	"github.com/cortejtech/agency-admin/internal/siteconfig"
	"github.com/cortejtech/agency-admin/internal/web/handler"
	"github.com/cortejtech/agency-admin/internal/web/navigation"
)

const (
	// Path is the path below the admin group.
	Path = "/settings"

	// TemplateName is the name of the settings template.
	TemplateName = "admin/settings"
)

// Field is one input of the settings form.
type Field struct {
	Key       string
	Label     string
	Value     string
	Multiline bool
}

var labels = map[string]string{ //nolint:gochecknoglobals
	siteconfig.KeySiteName:       "Site name",
	siteconfig.KeyLogoURL:        "Logo URL",
	siteconfig.KeyContactEmail:   "Contact email",
	siteconfig.KeyContactPhone:   "Contact phone",
	siteconfig.KeyContactAddress: "Contact address",
	siteconfig.KeyNoJobsMessage:  "Message when there are no open jobs",
}

// Service is the settings handler service.
type Service struct {
	cfg     *config.Config
	overlay *siteconfig.Overlay
}

// Handler is the settings handler.
var Handler = Service{}

// Init registers the settings routes on the admin group.
func (s *Service) Init(router fiber.Router, cfg *config.Config, overlay *siteconfig.Overlay) error {
	if router == nil || cfg == nil || overlay == nil {
		return errors.New("router, cfg or overlay is nil")
	}

	s.cfg = cfg
	s.overlay = overlay

	router.Route(Path, func(r fiber.Router) {
		r.Get(handler.RouterRootPath, s.Get)
		r.Post(handler.RouterRootPath, s.Post)
	})

	return nil
}

func fields(values siteconfig.Settings) []Field {
	out := make([]Field, len(siteconfig.Keys))

	for i, k := range siteconfig.Keys {
		out[i] = Field{
			Key:       k,
			Label:     labels[k],
			Value:     values.Get(k),
			Multiline: k == siteconfig.KeyContactAddress || k == siteconfig.KeyNoJobsMessage,
		}
	}

	return out
}

func nav() *navigation.Context {
	return navigation.NewContext("Site Settings", "settings", "settings").
		AddBreadcrumb("Home", handler.AdminPath, false).
		AddBreadcrumb("Settings", handler.AdminPath+Path, true)
}

// Get renders the effective settings.
func (s *Service) Get(c *fiber.Ctx) error {
	values, err := s.overlay.Load(c.UserContext())
	if err != nil {
		log.Error().Err(err).Msg("failed to load site settings")

		return c.Status(fiber.StatusInternalServerError).Render(TemplateName, fiber.Map{
			"Fields":     fields(siteconfig.Defaults()),
			"Navigation": nav(),
			"Error":      "Failed to load settings",
		}, handler.BaseLayout)
	}

	return c.Render(TemplateName, fiber.Map{
		"Fields":     fields(values),
		"Navigation": nav(),
	}, handler.BaseLayout)
}

// Post saves every known key present in the form.
func (s *Service) Post(c *fiber.Ctx) error {
	submitted := make(map[string]string, len(siteconfig.Keys))

	args := c.Request().PostArgs()
	for _, k := range siteconfig.Keys {
		if args.Has(k) {
			submitted[k] = string(args.Peek(k))
		}
	}

	saveErr := s.overlay.Save(c.UserContext(), submitted)

	values, err := s.overlay.Load(c.UserContext())
	if err != nil {
		values = siteconfig.Defaults()
	}

	if saveErr != nil {
		log.Error().Err(saveErr).Msg("failed to save site settings")

		return c.Status(fiber.StatusInternalServerError).Render(TemplateName, fiber.Map{
			"Fields":     fields(values),
			"Navigation": nav(),
			"Error":      saveErr.Error(),
		}, handler.BaseLayout)
	}

	log.Info().Int("keys", len(submitted)).Msg("site settings saved")

	return c.Render(TemplateName, fiber.Map{
		"Fields":     fields(values),
		"Navigation": nav(),
		"Success":    "Settings saved successfully",
	}, handler.BaseLayout)
}
