// Package navigation builds the sidebar and breadcrumbs of back-office pages.
package navigation

// BreadcrumbItem represents a single breadcrumb link.
type BreadcrumbItem struct {
	Title  string
	URL    string
	Active bool
}

// MenuItem is an entry of the sidebar.
type MenuItem struct {
	Section string
	Title   string
	URL     string
	Active  bool
}

// Sidebar lists the back-office sections in menu order.
var Sidebar = []MenuItem{ //nolint:gochecknoglobals
	{Section: "dashboard", Title: "Dashboard", URL: "/admin"},
	{Section: "blog", Title: "Blog", URL: "/admin/blog"},
	{Section: "services", Title: "Services", URL: "/admin/services"},
	{Section: "portfolio", Title: "Portfolio", URL: "/admin/portfolio"},
	{Section: "jobs", Title: "Careers", URL: "/admin/jobs"},
	{Section: "about", Title: "About Us", URL: "/admin/about"},
	{Section: "pages", Title: "Pages", URL: "/admin/pages"},
	{Section: "messages", Title: "Messages", URL: "/admin/messages"},
	{Section: "settings", Title: "Settings", URL: "/admin/settings"},
}

// Context represents the navigation context for a page.
type Context struct {
	ActiveSection string
	ActivePage    string
	Breadcrumbs   []BreadcrumbItem
	PageTitle     string
}

// NewContext creates a new navigation context.
func NewContext(pageTitle, activeSection, activePage string) *Context {
	return &Context{
		PageTitle:     pageTitle,
		ActiveSection: activeSection,
		ActivePage:    activePage,
		Breadcrumbs:   make([]BreadcrumbItem, 0),
	}
}

// AddBreadcrumb adds a breadcrumb item to the context.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{
		Title:  title,
		URL:    url,
		Active: active,
	})

	return c
}

// IsSectionActive checks if the given section is active.
func (c *Context) IsSectionActive(section string) bool {
	return c.ActiveSection == section
}

// Menu returns a copy of the sidebar with the active section marked.
func (c *Context) Menu() []MenuItem {
	out := make([]MenuItem, len(Sidebar))

	for i, item := range Sidebar {
		item.Active = c.IsSectionActive(item.Section)
		out[i] = item
	}

	return out
}
