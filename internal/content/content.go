// Package content declares the back-office entities: how each is validated,
// ordered and prepared, and which fields its admin screen shows.
package content

import (
	"slices"
	"time"

	"github.com/cortejtech/agency-admin/internal/db/models"
	"github.com/cortejtech/agency-admin/internal/resource"
	"github.com/cortejtech/agency-admin/internal/slug"
	"github.com/cortejtech/agency-admin/internal/store"
)

// Kind selects the input widget of a field.
type Kind string

// Field kinds.
const (
	KindText     Kind = "text"
	KindTextArea Kind = "textarea"
	KindMarkdown Kind = "markdown"
	KindList     Kind = "list"
	KindBool     Kind = "bool"
	KindURL      Kind = "url"
	KindEmail    Kind = "email"
	KindDate     Kind = "date"
)

// Field describes one editable field by its json name.
type Field struct {
	Name  string
	Label string
	Kind  Kind
	Help  string
}

// Screen binds an entity definition to its admin pages.
type Screen[T resource.Record] struct {
	// Path is the url segment below /admin.
	Path       string
	Title      string
	Definition resource.Definition[T]
	Fields     []Field
	// Columns are the json names shown in the list table.
	Columns []string
	// ReadOnly screens only list and delete.
	ReadOnly bool
}

// Required reports whether the named field must be filled in.
func (s Screen[T]) Required(name string) bool {
	return slices.Contains(s.Definition.Required, name)
}

var newestFirst = []store.Order{{Column: "created_at", Desc: true}, {Column: "id", Desc: true}}

func ptr[V any](v V) *V { return &v }

// About sections, oldest first.
var About = Screen[models.AboutItem]{
	Path:  "about",
	Title: "About Us",
	Definition: resource.Definition[models.AboutItem]{
		Label:    "About section",
		Required: []string{"title", "description"},
	},
	Fields: []Field{
		{Name: "title", Label: "Title", Kind: KindText},
		{Name: "description", Label: "Description", Kind: KindTextArea},
		{Name: "image_url", Label: "Image URL", Kind: KindURL, Help: "A link or a data URL"},
	},
	Columns: []string{"title", "description"},
}

// Blog posts, newest first. The slug follows the title unless set.
var Blog = Screen[models.BlogPost]{
	Path:  "blog",
	Title: "Blog",
	Definition: resource.Definition[models.BlogPost]{
		Label:    "Blog post",
		Required: []string{"title", "slug", "content", "author"},
		Order:    newestFirst,
		NewDraft: func() models.BlogPost { return models.BlogPost{IsPublished: ptr(false)} },
		Prepare:  prepareBlogPost,
	},
	Fields: []Field{
		{Name: "title", Label: "Title", Kind: KindText},
		{Name: "slug", Label: "Slug", Kind: KindText, Help: "Derived from the title when left empty"},
		{Name: "author", Label: "Author", Kind: KindText},
		{Name: "excerpt", Label: "Excerpt", Kind: KindTextArea},
		{Name: "content", Label: "Content", Kind: KindMarkdown},
		{Name: "featured_image", Label: "Featured image", Kind: KindURL},
		{Name: "tags", Label: "Tags", Kind: KindList, Help: "One per line"},
		{Name: "is_published", Label: "Published", Kind: KindBool},
	},
	Columns: []string{"title", "author", "is_published", "created_at"},
}

func prepareBlogPost(p *models.BlogPost) {
	slug.Fill(&p.Slug, p.Title)

	switch {
	case !p.Published():
		p.PublishedAt = nil
	case p.PublishedAt == nil:
		p.PublishedAt = ptr(time.Now().UTC())
	}
}

// Portfolio items, newest first.
var Portfolio = Screen[models.PortfolioItem]{
	Path:  "portfolio",
	Title: "Portfolio",
	Definition: resource.Definition[models.PortfolioItem]{
		Label:    "Portfolio item",
		Required: []string{"title", "description", "category", "image_url"},
		Order:    newestFirst,
	},
	Fields: []Field{
		{Name: "title", Label: "Title", Kind: KindText},
		{Name: "description", Label: "Description", Kind: KindTextArea},
		{Name: "category", Label: "Category", Kind: KindText},
		{Name: "image_url", Label: "Image URL", Kind: KindURL},
		{Name: "client", Label: "Client", Kind: KindText},
		{Name: "project_url", Label: "Project URL", Kind: KindURL},
		{Name: "tags", Label: "Tags", Kind: KindList, Help: "One per line"},
		{Name: "completion_date", Label: "Completion date", Kind: KindDate},
	},
	Columns: []string{"title", "category", "client"},
}

// Services, in creation order.
var Services = Screen[models.Service]{
	Path:  "services",
	Title: "Services",
	Definition: resource.Definition[models.Service]{
		Label:    "Service",
		Required: []string{"title", "description", "icon"},
		NewDraft: func() models.Service { return models.Service{IsFeatured: ptr(false)} },
	},
	Fields: []Field{
		{Name: "title", Label: "Title", Kind: KindText},
		{Name: "description", Label: "Description", Kind: KindTextArea},
		{Name: "icon", Label: "Icon", Kind: KindText, Help: "Icon name, e.g. search"},
		{Name: "is_featured", Label: "Featured", Kind: KindBool},
	},
	Columns: []string{"title", "icon", "is_featured"},
}

// Jobs, newest first.
var Jobs = Screen[models.Job]{
	Path:  "jobs",
	Title: "Careers",
	Definition: resource.Definition[models.Job]{
		Label:    "Job",
		Required: []string{"title", "type", "location", "description", "requirements", "apply_link"},
		Order:    newestFirst,
		NewDraft: func() models.Job { return models.Job{Type: "Full-time"} },
	},
	Fields: []Field{
		{Name: "title", Label: "Title", Kind: KindText},
		{Name: "type", Label: "Type", Kind: KindText, Help: "Full-time, Part-time, Contract"},
		{Name: "location", Label: "Location", Kind: KindText},
		{Name: "description", Label: "Description", Kind: KindTextArea},
		{Name: "requirements", Label: "Requirements", Kind: KindList, Help: "One per line"},
		{Name: "apply_link", Label: "Apply link", Kind: KindURL},
		{Name: "salary", Label: "Salary", Kind: KindText},
	},
	Columns: []string{"title", "type", "location"},
}

// Messages from the contact form, newest first. The back-office only reads and deletes them.
var Messages = Screen[models.ContactMessage]{
	Path:  "messages",
	Title: "Messages",
	Definition: resource.Definition[models.ContactMessage]{
		Label:    "Message",
		Required: []string{"name", "email", "subject", "message"},
		Order:    newestFirst,
	},
	Fields: []Field{
		{Name: "name", Label: "Name", Kind: KindText},
		{Name: "email", Label: "Email", Kind: KindEmail},
		{Name: "phone", Label: "Phone", Kind: KindText},
		{Name: "subject", Label: "Subject", Kind: KindText},
		{Name: "message", Label: "Message", Kind: KindTextArea},
	},
	Columns:  []string{"name", "email", "subject", "created_at"},
	ReadOnly: true,
}

// Pages are static pages addressed by slug.
var Pages = Screen[models.Page]{
	Path:  "pages",
	Title: "Pages",
	Definition: resource.Definition[models.Page]{
		Label:    "Page",
		Required: []string{"slug", "title", "content"},
		Prepare:  func(p *models.Page) { slug.Fill(&p.Slug, p.Title) },
	},
	Fields: []Field{
		{Name: "title", Label: "Title", Kind: KindText},
		{Name: "slug", Label: "Slug", Kind: KindText, Help: "Derived from the title when left empty"},
		{Name: "content", Label: "Content", Kind: KindMarkdown},
		{Name: "meta_title", Label: "Meta title", Kind: KindText},
		{Name: "meta_description", Label: "Meta description", Kind: KindTextArea},
	},
	Columns: []string{"title", "slug", "updated_at"},
}
