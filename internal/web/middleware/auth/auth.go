package auth

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/cortejtech/agency-admin/internal/web/session"
)

const (
	// LoginPath is where unauthenticated requests are sent.
	LoginPath = "/login"

	// LocalsKey holds the *session.Data of the current request.
	LocalsKey = "CurrentUser"
)

// Middleware lets authenticated requests through and redirects everything else to the login page.
func Middleware(c *fiber.Ctx) error {
	sessData := new(session.Data)
	if err := sessData.Read(c.Cookies(session.CookieName)); err != nil || !sessData.IsAuthenticated() {
		return c.Redirect(LoginPath + "?next=" + url.QueryEscape(c.OriginalURL()))
	}

	c.Locals(LocalsKey, sessData)

	return c.Next()
}

// Current returns the session of the request, or nil outside the middleware.
func Current(c *fiber.Ctx) *session.Data {
	d, _ := c.Locals(LocalsKey).(*session.Data)
	return d
}

// IsAuthenticated reports whether the request carries a valid session.
func IsAuthenticated(c *fiber.Ctx) bool {
	if d := Current(c); d != nil {
		return d.IsAuthenticated()
	}

	d := new(session.Data)

	return d.Read(c.Cookies(session.CookieName)) == nil && d.IsAuthenticated()
}
