// Package crud serves the back-office list, form and delete pages of one entity.
package crud

import (
	"errors"
	"reflect"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/cortejtech/agency-admin/internal/config"
	"github.com/cortejtech/agency-admin/internal/content"
	"github.com/cortejtech/agency-admin/internal/resource"
	"github.com/cortejtech/agency-admin/internal/store"
	"github.com/cortejtech/agency-admin/internal/web/handler"
	"github.com/cortejtech/agency-admin/internal/web/navigation"
)

// Template names.
const (
	ListTemplate   = "admin/resource/list"
	FormTemplate   = "admin/resource/form"
	ViewTemplate   = "admin/resource/view"
	DeleteTemplate = "admin/resource/delete"
)

// ErrInvalidID is returned for a non numeric id parameter.
var ErrInvalidID = errors.New("invalid id")

// Service is the handler of one entity.
type Service[T resource.Record] struct {
	handler.Service
	screen content.Screen[T]
	table  *store.Table[T]
	cfg    *config.Config
	base   string
}

// New returns the handler for screen.
func New[T resource.Record](screen content.Screen[T]) *Service[T] {
	return &Service[T]{screen: screen}
}

// Init registers the routes below router, which is expected to be the admin group.
func (s *Service[T]) Init(router fiber.Router, cfg *config.Config, db *gorm.DB) error {
	if router == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	table, err := store.New[T](db)
	if err != nil {
		return err
	}

	s.cfg = cfg
	s.table = table
	s.base = handler.AdminPath + "/" + s.screen.Path

	router.Route("/"+s.screen.Path, func(r fiber.Router) {
		r.Get(handler.RouterRootPath, s.List)

		if !s.screen.ReadOnly {
			r.Get("/new", s.New)
			r.Post("/new", s.Create)
			r.Get("/:id/edit", s.Edit)
			r.Post("/:id/edit", s.Update)
		}

		r.Get("/:id", s.View)
		r.Get("/:id/delete", s.ConfirmDelete)
		r.Post("/:id/delete", s.Delete)
	})

	return nil
}

// Path returns the url of the list page.
func (s *Service[T]) Path() string {
	return s.base
}

// Title returns the menu title of the entity.
func (s *Service[T]) Title() string {
	return s.screen.Title
}

// Count returns the number of stored records.
func (s *Service[T]) Count(c *fiber.Ctx) (int64, error) {
	return s.table.Count(c.UserContext())
}

func (s *Service[T]) manager() (*resource.Manager[T], error) {
	return resource.New(s.screen.Definition, s.table)
}

func (s *Service[T]) nav(page, title, url string) *navigation.Context {
	nav := navigation.NewContext(title, s.screen.Path, page).
		AddBreadcrumb("Home", handler.AdminPath, false)

	if page == "list" {
		return nav.AddBreadcrumb(s.screen.Title, s.base, true)
	}

	return nav.AddBreadcrumb(s.screen.Title, s.base, false).
		AddBreadcrumb(title, url, true)
}

type column struct {
	Name  string
	Label string
}

type row struct {
	ID    uint64
	Cells []string
}

type formField struct {
	content.Field
	Value    string
	Checked  bool
	Required bool
	Invalid  bool
}

type screenView struct {
	Path     string
	Title    string
	Label    string
	Base     string
	ReadOnly bool
}

func (s *Service[T]) view(m *resource.Manager[T]) screenView {
	return screenView{
		Path:     s.screen.Path,
		Title:    s.screen.Title,
		Label:    m.Label(),
		Base:     s.base,
		ReadOnly: s.screen.ReadOnly,
	}
}

func (s *Service[T]) columns() []column {
	out := make([]column, len(s.screen.Columns))
	for i, name := range s.screen.Columns {
		out[i] = column{Name: name, Label: columnLabel(s.screen.Fields, name)}
	}

	return out
}

func (s *Service[T]) row(rec T) row {
	v := reflect.ValueOf(rec)
	r := row{ID: rec.PrimaryKey(), Cells: make([]string, len(s.screen.Columns))}

	for i, name := range s.screen.Columns {
		fv, _ := fieldByJSON(v, name)
		r.Cells[i] = display(fv, ", ")
	}

	return r
}

func (s *Service[T]) formFields(rec T, invalid []string) []formField {
	v := reflect.ValueOf(rec)
	out := make([]formField, len(s.screen.Fields))

	for i, f := range s.screen.Fields {
		fv, _ := fieldByJSON(v, f.Name)

		out[i] = formField{
			Field:    f,
			Value:    display(fv, "\n"),
			Checked:  checked(fv),
			Required: s.screen.Required(f.Name),
		}

		for _, name := range invalid {
			if name == f.Name {
				out[i].Invalid = true
			}
		}
	}

	return out
}

func parseID(c *fiber.Ctx) (uint64, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidID
	}

	return id, nil
}

// parseForm decodes the submitted form over draft. Unchecked checkboxes are absent
// from the form, so bool fields are set explicitly.
func (s *Service[T]) parseForm(c *fiber.Ctx, draft *T) error {
	if err := c.BodyParser(draft); err != nil {
		return err
	}

	v := reflect.ValueOf(draft).Elem()

	for _, f := range s.screen.Fields {
		if f.Kind != content.KindBool {
			continue
		}

		if fv, ok := fieldByJSON(v, f.Name); ok {
			setBool(fv, c.FormValue(f.Name) != "")
		}
	}

	return nil
}

// List renders every record.
func (s *Service[T]) List(c *fiber.Ctx) error {
	m, err := s.manager()
	if err != nil {
		return err
	}

	status := fiber.StatusOK
	if err = m.List(c.UserContext()); err != nil {
		status = fiber.StatusInternalServerError
	}

	items := m.Items()
	rows := make([]row, len(items))

	for i, it := range items {
		rows[i] = s.row(it)
	}

	notices := append(handler.TakeFlash(c), m.TakeNotices()...)

	return c.Status(status).Render(ListTemplate, fiber.Map{
		"Screen":     s.view(m),
		"Columns":    s.columns(),
		"Rows":       rows,
		"Notices":    notices,
		"Navigation": s.nav("list", s.screen.Title, s.base),
	}, handler.BaseLayout)
}

func (s *Service[T]) renderForm(c *fiber.Ctx, m *resource.Manager[T], status int, id uint64, draft T, invalid []string) error {
	title := "New " + m.Label()
	action := s.base + "/new"

	if id != 0 {
		title = "Edit " + m.Label()
		action = s.base + "/" + strconv.FormatUint(id, 10) + "/edit"
	}

	return c.Status(status).Render(FormTemplate, fiber.Map{
		"Screen":     s.view(m),
		"Action":     action,
		"Fields":     s.formFields(draft, invalid),
		"Notices":    m.TakeNotices(),
		"Navigation": s.nav("form", title, action),
	}, handler.BaseLayout)
}

// submitStatus maps a failed submit to the status of the re-rendered form.
func submitStatus(err error) (int, []string) {
	var verr *resource.ValidationError

	switch {
	case errors.As(err, &verr):
		return fiber.StatusUnprocessableEntity, verr.Fields
	case resource.IsNotFound(err):
		return fiber.StatusNotFound, nil
	case errors.Is(err, resource.ErrBusy):
		return fiber.StatusConflict, nil
	default:
		return fiber.StatusInternalServerError, nil
	}
}

// New renders an empty form.
func (s *Service[T]) New(c *fiber.Ctx) error {
	m, err := s.manager()
	if err != nil {
		return err
	}

	draft, err := m.BeginCreate()
	if err != nil {
		return err
	}

	return s.renderForm(c, m, fiber.StatusOK, 0, draft, nil)
}

// Create stores a new record. A failed submit re-renders the form with the draft.
func (s *Service[T]) Create(c *fiber.Ctx) error {
	m, err := s.manager()
	if err != nil {
		return err
	}

	draft, err := m.BeginCreate()
	if err != nil {
		return err
	}

	if err = s.parseForm(c, &draft); err != nil {
		log.Warn().Err(err).Str("table", m.Table()).Msg("failed to parse form")
		return fiber.NewError(fiber.StatusBadRequest, "invalid form data")
	}

	draft, err = m.Create(c.UserContext(), draft)
	if err != nil {
		status, invalid := submitStatus(err)
		return s.renderForm(c, m, status, 0, draft, invalid)
	}

	handler.SetFlash(c, m.TakeNotices())

	return c.Redirect(s.base)
}

// lookup lists the table and reports whether the record of the id parameter is listed.
func (s *Service[T]) lookup(c *fiber.Ctx) (*resource.Manager[T], uint64, bool, error) {
	id, err := parseID(c)
	if err != nil {
		return nil, 0, false, fiber.ErrNotFound
	}

	m, err := s.manager()
	if err != nil {
		return nil, 0, false, err
	}

	if err = m.List(c.UserContext()); err != nil {
		return nil, 0, false, err
	}

	_, ok := m.Find(id)

	return m, id, ok, nil
}

// load is lookup failing with 404 for a record that is not listed.
func (s *Service[T]) load(c *fiber.Ctx) (*resource.Manager[T], uint64, error) {
	m, id, ok, err := s.lookup(c)
	if err != nil {
		return nil, 0, err
	}

	if !ok {
		return nil, 0, fiber.ErrNotFound
	}

	return m, id, nil
}

// Edit renders the form of an existing record.
func (s *Service[T]) Edit(c *fiber.Ctx) error {
	m, id, err := s.load(c)
	if err != nil {
		return err
	}

	draft, err := m.BeginEdit(id)
	if err != nil {
		return err
	}

	return s.renderForm(c, m, fiber.StatusOK, id, draft, nil)
}

// Update replaces a record with the submitted form. A record deleted since the
// form was opened still goes through the manager, so the form comes back with
// the draft and a notice.
func (s *Service[T]) Update(c *fiber.Ctx) error {
	m, id, listed, err := s.lookup(c)
	if err != nil {
		return err
	}

	var draft T

	// starting from the stored record keeps fields the form does not carry
	if listed {
		if draft, err = m.BeginEdit(id); err != nil {
			return err
		}
	}

	if err = s.parseForm(c, &draft); err != nil {
		log.Warn().Err(err).Str("table", m.Table()).Msg("failed to parse form")
		return fiber.NewError(fiber.StatusBadRequest, "invalid form data")
	}

	draft, err = m.Update(c.UserContext(), id, draft)
	if err != nil {
		status, invalid := submitStatus(err)
		return s.renderForm(c, m, status, id, draft, invalid)
	}

	handler.SetFlash(c, m.TakeNotices())

	return c.Redirect(s.base)
}

// View renders all fields of a record read-only.
func (s *Service[T]) View(c *fiber.Ctx) error {
	m, id, err := s.load(c)
	if err != nil {
		return err
	}

	rec, _ := m.Find(id)
	url := s.base + "/" + strconv.FormatUint(id, 10)

	return c.Render(ViewTemplate, fiber.Map{
		"Screen":     s.view(m),
		"ID":         id,
		"Fields":     s.formFields(rec, nil),
		"Navigation": s.nav("view", m.Label(), url),
	}, handler.BaseLayout)
}

// ConfirmDelete asks for confirmation before deleting.
func (s *Service[T]) ConfirmDelete(c *fiber.Ctx) error {
	m, id, err := s.load(c)
	if err != nil {
		return err
	}

	if err = m.RequestDelete(id); err != nil {
		return err
	}

	rec, _ := m.Find(id)
	url := s.base + "/" + strconv.FormatUint(id, 10) + "/delete"

	return c.Render(DeleteTemplate, fiber.Map{
		"Screen":     s.view(m),
		"ID":         id,
		"Record":     s.row(rec),
		"Action":     url,
		"Navigation": s.nav("delete", "Delete "+m.Label(), url),
	}, handler.BaseLayout)
}

// Delete removes the record once the form carries confirm=yes.
// Without confirmation nothing happens.
func (s *Service[T]) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fiber.ErrNotFound
	}

	if c.FormValue("confirm") != "yes" {
		return c.Redirect(s.base)
	}

	m, err := s.manager()
	if err != nil {
		return err
	}

	if err = m.RequestDelete(id); err != nil {
		return err
	}

	if err = m.ConfirmDelete(c.UserContext()); err != nil {
		log.Warn().Err(err).Str("table", m.Table()).Uint64("id", id).Msg("delete failed")
	}

	handler.SetFlash(c, m.TakeNotices())

	return c.Redirect(s.base)
}
