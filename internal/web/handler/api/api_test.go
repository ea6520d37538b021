package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cortejtech/agency-admin/internal/db/dbtest"
	"github.com/cortejtech/agency-admin/internal/db/models"
	"github.com/cortejtech/agency-admin/internal/siteconfig"
	"github.com/cortejtech/agency-admin/internal/store"
	"github.com/cortejtech/agency-admin/internal/web/handler/handlertest"
)

func setup(t *testing.T) (*fiber.App, *gorm.DB, *siteconfig.Overlay) {
	t.Helper()

	db := dbtest.Open(t)
	overlay := siteconfig.New(siteconfig.DBStore{DB: db}, nil)

	cfg := handlertest.Config()
	cfg.Webserver.ContactRateLimit = 2

	app := handlertest.NewApp()

	var s Service
	require.NoError(t, s.Init(app, cfg, db, overlay, nil))

	return app, db, overlay
}

func getJSON(t *testing.T, app *fiber.App, target string, out any) int {
	t.Helper()

	resp := handlertest.Get(t, app, target)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))

	return resp.StatusCode
}

func insert[T any](t *testing.T, db *gorm.DB, rows ...*T) {
	t.Helper()
	require.NoError(t, store.MustNew[T](db).Insert(context.Background(), rows...))
}

func ptr[V any](v V) *V { return &v }

func TestSite(t *testing.T) {
	app, _, overlay := setup(t)

	require.NoError(t, overlay.Save(context.Background(), map[string]string{siteconfig.KeySiteName: "Acme"}))

	var got siteconfig.Settings
	require.Equal(t, http.StatusOK, getJSON(t, app, "/api/site", &got))

	assert.Equal(t, "Acme", got.SiteName)
	assert.Equal(t, siteconfig.Defaults().ContactEmail, got.ContactEmail)
}

func TestServices_Featured(t *testing.T) {
	app, db, _ := setup(t)

	insert(t, db,
		&models.Service{Title: "SEO", Description: "d", Icon: "search", IsFeatured: ptr(true)},
		&models.Service{Title: "Ads", Description: "d", Icon: "megaphone", IsFeatured: ptr(false)},
	)

	var all []models.Service
	require.Equal(t, http.StatusOK, getJSON(t, app, "/api/services", &all))
	require.Len(t, all, 2)
	assert.Equal(t, "SEO", all[0].Title)

	var featured []models.Service
	require.Equal(t, http.StatusOK, getJSON(t, app, "/api/services?featured=true", &featured))
	require.Len(t, featured, 1)
	assert.Equal(t, "SEO", featured[0].Title)
}

func TestPortfolio_Category(t *testing.T) {
	app, db, _ := setup(t)

	insert(t, db,
		&models.PortfolioItem{Title: "Shop", Description: "d", Category: "web", ImageURL: "https://img/1"},
		&models.PortfolioItem{Title: "App", Description: "d", Category: "mobile", ImageURL: "https://img/2"},
	)

	var items []models.PortfolioItem
	require.Equal(t, http.StatusOK, getJSON(t, app, "/api/portfolio?category=mobile", &items))
	require.Len(t, items, 1)
	assert.Equal(t, "App", items[0].Title)

	require.Equal(t, http.StatusOK, getJSON(t, app, "/api/portfolio?category=all", &items))
	assert.Len(t, items, 2)
}

func TestBlog_OnlyPublished(t *testing.T) {
	app, db, _ := setup(t)

	now := time.Now().UTC()
	insert(t, db,
		&models.BlogPost{
			Title: "Hello", Slug: "hello", Author: "Ann", Content: "# Hello\n\nSome **bold** words",
			IsPublished: ptr(true), PublishedAt: &now, Tags: models.StringList{"news"},
		},
		&models.BlogPost{Title: "Draft", Slug: "draft", Author: "Ann", Content: "wip", IsPublished: ptr(false)},
	)

	var posts []PostSummary
	require.Equal(t, http.StatusOK, getJSON(t, app, "/api/blog", &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, "hello", posts[0].Slug)
	assert.Equal(t, "Hello Some bold words", posts[0].Excerpt)

	require.Equal(t, http.StatusOK, getJSON(t, app, "/api/blog?tag=events", &posts))
	assert.Empty(t, posts)

	var post Post
	require.Equal(t, http.StatusOK, getJSON(t, app, "/api/blog/hello", &post))
	assert.Contains(t, post.ContentHTML, "<strong>bold</strong>")

	var errResp ErrorResponse
	assert.Equal(t, http.StatusNotFound, getJSON(t, app, "/api/blog/draft", &errResp))
	assert.Equal(t, "post not found", errResp.Error)
}

func TestJobs(t *testing.T) {
	app, db, _ := setup(t)

	var empty JobsResponse
	require.Equal(t, http.StatusOK, getJSON(t, app, "/api/jobs", &empty))
	assert.Empty(t, empty.Jobs)
	assert.Equal(t, siteconfig.Defaults().NoJobsMessage, empty.Message)

	insert(t, db,
		&models.Job{
			Title: "Go developer", Type: "Full-time", Location: "Remote", Description: "d",
			Requirements: models.StringList{"Go"}, ApplyLink: "https://apply",
		},
		&models.Job{
			Title: "Designer", Type: "Contract", Location: "Delhi", Description: "d",
			Requirements: models.StringList{"Figma"}, ApplyLink: "https://apply",
		},
	)

	var jobs JobsResponse
	require.Equal(t, http.StatusOK, getJSON(t, app, "/api/jobs?type=Contract", &jobs))
	require.Len(t, jobs.Jobs, 1)
	assert.Equal(t, "Designer", jobs.Jobs[0].Title)
	assert.Empty(t, jobs.Message)
}

func TestPage(t *testing.T) {
	app, db, _ := setup(t)

	insert(t, db, &models.Page{Slug: "privacy", Title: "Privacy", Content: "We keep *nothing*."})

	var page PageResponse
	require.Equal(t, http.StatusOK, getJSON(t, app, "/api/pages/privacy", &page))
	assert.Equal(t, "Privacy", page.Title)
	assert.Contains(t, page.ContentHTML, "<em>nothing</em>")

	var errResp ErrorResponse
	assert.Equal(t, http.StatusNotFound, getJSON(t, app, "/api/pages/terms", &errResp))
}

func postContact(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	return handlertest.Do(t, app, req)
}

func TestContact(t *testing.T) {
	app, db, _ := setup(t)

	resp := postContact(t, app, `{"name":" Ann ","email":"ann@example.com","subject":"Hi","message":"Hello there","phone":""}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var ack ContactResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ack))
	assert.NotZero(t, ack.ID)

	rows, err := store.MustNew[models.ContactMessage](db).Select(context.Background(), store.Query{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ann", rows[0].Name)
	assert.Nil(t, rows[0].Phone)
}

func TestContact_DoesNotReadMessages(t *testing.T) {
	ctx := context.Background()
	app, db, _ := setup(t)
	table := store.MustNew[models.ContactMessage](db)

	for range 50 {
		require.NoError(t, table.Insert(ctx, &models.ContactMessage{
			Name: "Bob", Email: "bob@example.com", Subject: "Hi", Message: "Old",
		}))
	}

	selects := 0

	require.NoError(t, db.Callback().Query().After("gorm:query").Register("count_message_selects", func(tx *gorm.DB) {
		if tx.Statement.Table == "contact_messages" {
			selects++
		}
	}))

	resp := postContact(t, app, `{"name":"Ann","email":"ann@example.com","subject":"Hi","message":"Hello"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Zero(t, selects)

	count, err := table.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 51, count)
}

func TestContact_Validation(t *testing.T) {
	app, db, _ := setup(t)

	resp := postContact(t, app, `{"name":"Ann","email":"not-an-email","subject":"","message":"Hello"}`)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var errResp ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.ElementsMatch(t, []string{"email", "subject"}, errResp.Fields)

	count, err := store.MustNew[models.ContactMessage](db).Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.Equal(t, http.StatusBadRequest, postContact(t, app, `{`).StatusCode)
}

func TestContact_RateLimited(t *testing.T) {
	app, _, _ := setup(t)

	body := `{"name":"Ann","email":"ann@example.com","subject":"Hi","message":"Hello"}`

	require.Equal(t, http.StatusCreated, postContact(t, app, body).StatusCode)
	require.Equal(t, http.StatusCreated, postContact(t, app, body).StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, postContact(t, app, body).StatusCode)
}

func TestCORS(t *testing.T) {
	app, _, _ := setup(t)

	req := httptest.NewRequest(http.MethodGet, "/api/site", nil)
	req.Header.Set(fiber.HeaderOrigin, "https://www.example.com")

	resp := handlertest.Do(t, app, req)
	assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}
