package api

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/cortejtech/agency-admin/internal/content"
	"github.com/cortejtech/agency-admin/internal/db/models"
	"github.com/cortejtech/agency-admin/internal/resource"
)

// ContactForm is the body of POST /api/contact, as JSON or url encoded form.
type ContactForm struct {
	Name    string `json:"name"    form:"name"    validate:"required,max=255"`
	Email   string `json:"email"   form:"email"   validate:"required,email,max=255"`
	Phone   string `json:"phone"   form:"phone"   validate:"omitempty,max=50"`
	Subject string `json:"subject" form:"subject" validate:"required,max=255"`
	Message string `json:"message" form:"message" validate:"required,max=10000"`
}

// ContactResponse acknowledges a stored message.
type ContactResponse struct {
	ID      uint64 `json:"id"`
	Message string `json:"message"`
}

var validate = newValidator() //nolint:gochecknoglobals

// newValidator reports fields by their json name.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

func (f *ContactForm) trim() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Subject = strings.TrimSpace(f.Subject)
	f.Message = strings.TrimSpace(f.Message)
}

// invalidFields lists the json names of the fields that failed validation.
func invalidFields(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make([]string, len(verrs))
	for i, fe := range verrs {
		out[i] = fe.Field()
	}

	return out
}

// Contact stores a message of the public contact form.
func (s *Service) Contact(c *fiber.Ctx) error {
	form := new(ContactForm)
	if err := c.BodyParser(form); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	form.trim()

	if err := validate.Struct(form); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error:  "please check the highlighted fields",
			Fields: invalidFields(err),
		})
	}

	def := content.Messages.Definition
	def.NoRelist = true

	m, err := resource.New(def, s.messages)
	if err != nil {
		return internalError(c, err, "contact form")
	}

	msg, err := m.Create(c.UserContext(), models.ContactMessage{
		Name:    form.Name,
		Email:   form.Email,
		Phone:   &form.Phone,
		Subject: form.Subject,
		Message: form.Message,
	})
	if err != nil {
		log.Error().Err(err).Str("ip", c.IP()).Msg("failed to store contact message")
		return fail(c, fiber.StatusInternalServerError, "failed to send message, please try again")
	}

	log.Info().Uint64("id", msg.ID).Str("email", msg.Email).Msg("contact message received")

	return c.Status(fiber.StatusCreated).JSON(ContactResponse{
		ID:      msg.ID,
		Message: "Thank you for your message. We will get back to you soon.",
	})
}
