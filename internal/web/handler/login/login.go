package login

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/cortejtech/agency-admin/internal/auth"
	"github.com/cortejtech/agency-admin/internal/config"
	"github.com/cortejtech/agency-admin/internal/web/handler"
	authmiddleware "github.com/cortejtech/agency-admin/internal/web/middleware/auth"
	"github.com/cortejtech/agency-admin/internal/web/session"
)

const (
	// Path is the path to the login page.
	Path = authmiddleware.LoginPath

	// TemplateName is the name of the login template.
	TemplateName = "login"
)

// Form is the login form.
type Form struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Next     string `form:"next"`
}

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	provider *auth.LocalProvider
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app fiber.Router, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New("app or db is nil")
	}

	s.cfg = cfg
	s.provider = auth.NewLocalProvider(db)

	// register routes
	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Post(handler.RouterRootPath, s.Post)
	})

	return nil
}

// nextURL only follows local admin urls.
func nextURL(next string) string {
	if strings.HasPrefix(next, handler.AdminPath) && !strings.HasPrefix(next, "//") {
		return next
	}

	return handler.AdminPath
}

func (s *Service) render(c *fiber.Ctx, status int, next string, err error) error {
	data := fiber.Map{
		"Title": s.cfg.Title,
		"Next":  next,
	}

	if err != nil {
		data["error"] = err.Error()
	}

	return c.Status(status).Render(TemplateName, data)
}

// Get handles the login page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	if authmiddleware.IsAuthenticated(c) {
		return c.Redirect(nextURL(c.Query("next")))
	}

	return s.render(c, fiber.StatusOK, c.Query("next"), nil)
}

// Post handles the login form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	form := new(Form)

	if err := c.BodyParser(form); err != nil {
		return s.render(c, fiber.StatusBadRequest, "", ErrInvalidFormData)
	}

	user, err := s.provider.Authenticate(c.UserContext(), form.Username, form.Password)
	if err != nil {
		log.Info().Err(err).Str("username", form.Username).Str("ip", c.IP()).Msg("login failed")
		return s.render(c, fiber.StatusUnauthorized, form.Next, ErrInvalidCredentials)
	}

	sessionID := session.GenerateSessionID()

	userSession := &session.Data{
		UserID:     user.ID,
		Username:   user.Username,
		LoggedInAt: time.Now().UTC(),
	}

	if err = userSession.Write(sessionID, s.cfg.Webserver.Session.ExpiryTime); err != nil {
		log.Error().Err(err).Msg("failed to write session")
		return s.render(c, fiber.StatusInternalServerError, form.Next, ErrInternalServerError)
	}

	// set login cookie
	cookieSettings := &fiber.Cookie{
		Name:     session.CookieName,
		Value:    sessionID,
		Path:     handler.RootPath,
		MaxAge:   int(s.cfg.Webserver.Session.ExpiryTime.Seconds()),
		Secure:   true,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}

	if s.cfg.DevMode {
		cookieSettings.Secure = false
	}

	c.Cookie(cookieSettings)

	log.Info().Str("username", user.Username).Msg("user logged in")

	return c.Redirect(nextURL(form.Next))
}
