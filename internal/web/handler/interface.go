package handler

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/dirbridge/dirbridge/internal/config"
	"github.com/dirbridge/dirbridge/internal/tenant"
)

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, db *gorm.DB, tenants *tenant.Cache) error
}
