// Package subscription exposes the group provisioning routes of a
// subscription.
package subscription

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/dirbridge/dirbridge/internal/config"
	controller "github.com/dirbridge/dirbridge/internal/db/controller/subscription"
	"github.com/dirbridge/dirbridge/internal/groups"
	"github.com/dirbridge/dirbridge/internal/tenant"
	"github.com/dirbridge/dirbridge/internal/web/handler"
)

const (
	// Path is the path of the subscription route group.
	Path = "/api/subscription"
)

// Service is the subscription handler service.
type Service struct {
	handler.Service
	cfg    *config.Config
	db     *gorm.DB
	engine *groups.Engine
}

// Handler is the subscription handler.
var Handler = Service{}

// Init initializes the subscription handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, tenants *tenant.Cache) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.db = db
	s.cfg = cfg
	s.engine = groups.NewEngine(db, tenants)

	// register routes
	app.Route(Path, func(router fiber.Router) {
		router.Post("/:id/group", s.Create)
		router.Put("/:id/group", s.Link)
		router.Delete("/:id/group", s.Delete)
		router.Get("/:id/status", s.Status)
	})

	return nil
}

// Create provisions the directory group described by the subscription
// parameters and answers 204 once the group and its project association
// exist.
func (s *Service) Create(c *fiber.Ctx) error {
	id, ok := subscriptionID(c)
	if !ok {
		return invalidID(c)
	}

	if err := s.engine.Create(id); err != nil {
		return handler.Fail(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Link attaches the subscription to an existing directory group and
// returns the linked group.
func (s *Service) Link(c *fiber.Ctx) error {
	id, ok := subscriptionID(c)
	if !ok {
		return invalidID(c)
	}

	linked, err := s.engine.Link(id)
	if err != nil {
		return handler.Fail(c, err)
	}

	return c.JSON(linked)
}

// Delete removes the subscription configuration. With remote=true the
// directory group itself is deleted as well. Deleting an already absent
// group is not an error.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, ok := subscriptionID(c)
	if !ok {
		return invalidID(c)
	}

	if err := s.engine.Delete(id, c.QueryBool("remote", false)); err != nil {
		return handler.Fail(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Status reports whether the subscribed group still exists and how many
// direct user members it carries.
func (s *Service) Status(c *fiber.Ctx) error {
	id, ok := subscriptionID(c)
	if !ok {
		return invalidID(c)
	}

	sub, err := controller.FindOne(s.db, id)
	if err != nil {
		return handler.Fail(c, err)
	}

	parameters, err := controller.GetParameters(s.db, id)
	if err != nil {
		return handler.Fail(c, err)
	}

	status, err := s.engine.Status(sub.NodeID, parameters)
	if err != nil {
		return handler.Fail(c, err)
	}

	return c.JSON(status)
}

// subscriptionID parses the :id route parameter.
func subscriptionID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, false
	}

	return uint(id), true
}

// invalidID answers 400 for an unparseable :id route parameter.
func invalidID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(handler.Problem{Message: "invalid subscription identifier"})
}
