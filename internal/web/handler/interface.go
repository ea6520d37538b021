// Package handler holds what the web handlers share: layout names, the
// handler contract, flash notices and form decoding.
package handler

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/cortejtech/agency-admin/internal/config"
)

// Service is the interface for a web handler service.
type Service interface {
	Init(app fiber.Router, cfg *config.Config, db *gorm.DB) error
}
