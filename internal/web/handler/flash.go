package handler

import (
	"encoding/json"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/cortejtech/agency-admin/internal/resource"
)

const flashCookie = "flash"

// SetFlash keeps notices for the next page load, used before redirects.
func SetFlash(c *fiber.Ctx, notices []resource.Notice) {
	if len(notices) == 0 {
		return
	}

	raw, err := json.Marshal(notices)
	if err != nil {
		return
	}

	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(string(raw)),
		Path:     RootPath,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// TakeFlash returns the notices set by the previous request and clears them.
func TakeFlash(c *fiber.Ctx) []resource.Notice {
	v := c.Cookies(flashCookie)
	if v == "" {
		return nil
	}

	c.ClearCookie(flashCookie)

	raw, err := url.QueryUnescape(v)
	if err != nil {
		return nil
	}

	var notices []resource.Notice
	if err = json.Unmarshal([]byte(raw), &notices); err != nil {
		return nil
	}

	return notices
}
