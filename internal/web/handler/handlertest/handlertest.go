// Package handlertest has helpers for testing fiber handlers without real templates.
package handlertest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cortejtech/agency-admin/internal/config"
	"github.com/cortejtech/agency-admin/internal/web/session"
)

// Views is a minimal Views engine. It writes the template name followed by the
// data as JSON, so tests can assert on what a handler rendered.
type Views struct{}

// Load implements fiber.Views.
func (Views) Load() error { return nil }

// Render implements fiber.Views.
func (Views) Render(w io.Writer, name string, data any, _ ...string) error {
	_, _ = io.WriteString(w, name+"\n")

	if m, ok := data.(fiber.Map); ok {
		if v, exists := m["error"]; exists && v != nil {
			_, _ = io.WriteString(w, v.(string)+"\n")
		}
	}

	return json.NewEncoder(w).Encode(data)
}

// NewApp returns an app rendering with Views and a fresh in-memory session store.
func NewApp() *fiber.App {
	session.Init(nil)

	return fiber.New(fiber.Config{Views: Views{}})
}

// Config returns a config usable by every handler.
func Config() *config.Config {
	return &config.Config{
		Title: "Test",
		Webserver: config.Webserver{
			URL:     "http://localhost",
			Port:    3000,
			Session: config.Session{ExpiryTime: time.Minute},
		},
	}
}

// Login writes a session for user id 1 and returns its cookie.
func Login(t *testing.T) *http.Cookie {
	t.Helper()

	id := session.GenerateSessionID()
	if err := (&session.Data{UserID: 1, Username: "admin"}).Write(id, time.Minute); err != nil {
		t.Fatalf("failed to write session: %v", err)
	}

	return &http.Cookie{Name: session.CookieName, Value: id}
}

// Do performs a request, adding cookies, and fails the test on transport errors.
func Do(t *testing.T, app *fiber.App, req *http.Request, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}

	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

// Get performs a GET request.
func Get(t *testing.T, app *fiber.App, target string, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	return Do(t, app, httptest.NewRequest(http.MethodGet, target, nil), cookies...)
}

// PostForm performs a url encoded POST request.
func PostForm(t *testing.T, app *fiber.App, target string, form url.Values, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	return Do(t, app, req, cookies...)
}

// Body reads the whole response body.
func Body(t *testing.T, resp *http.Response) string {
	t.Helper()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}

	return string(b)
}
