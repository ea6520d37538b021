package handler

import (
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/cortejtech/agency-admin/internal/db/models"
)

var registerOnce sync.Once //nolint:gochecknoglobals

// RegisterFormDecoders teaches the fiber body parser the custom form types.
// Empty inputs decode to zero values.
func RegisterFormDecoders() {
	registerOnce.Do(func() {
		fiber.SetParserDecoder(fiber.ParserConfig{
			IgnoreUnknownKeys: true,
			ZeroEmpty:         true,
			ParserType: []fiber.ParserType{
				{Customtype: models.StringList{}, Converter: models.StringListConverter},
			},
		})
	})
}
