package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContext(t *testing.T) {
	ctx := NewContext("Blog", "blog", "list")

	assert.Equal(t, "Blog", ctx.PageTitle)
	assert.Equal(t, "blog", ctx.ActiveSection)
	assert.Equal(t, "list", ctx.ActivePage)
	assert.NotNil(t, ctx.Breadcrumbs)
	assert.Empty(t, ctx.Breadcrumbs)
}

func TestContext_AddBreadcrumb_Chaining(t *testing.T) {
	ctx := NewContext("Edit Job", "jobs", "form").
		AddBreadcrumb("Home", "/admin", false).
		AddBreadcrumb("Careers", "/admin/jobs", false).
		AddBreadcrumb("Edit Job", "/admin/jobs/1/edit", true)

	require.Len(t, ctx.Breadcrumbs, 3)
	assert.Equal(t, "Home", ctx.Breadcrumbs[0].Title)
	assert.Equal(t, "/admin/jobs", ctx.Breadcrumbs[1].URL)
	assert.False(t, ctx.Breadcrumbs[1].Active)
	assert.True(t, ctx.Breadcrumbs[2].Active)
}

func TestContext_IsSectionActive(t *testing.T) {
	ctx := NewContext("Site Settings", "settings", "settings")

	assert.True(t, ctx.IsSectionActive("settings"))
	assert.False(t, ctx.IsSectionActive("dashboard"))
}

func TestContext_Menu(t *testing.T) {
	menu := NewContext("Careers", "jobs", "list").Menu()
	require.Len(t, menu, len(Sidebar))

	var active []string

	for _, item := range menu {
		if item.Active {
			active = append(active, item.Section)
		}
	}

	assert.Equal(t, []string{"jobs"}, active)

	// the shared sidebar is never marked
	for _, item := range Sidebar {
		assert.False(t, item.Active)
	}
}
