// Package authn exposes the authentication endpoint of a node.
package authn

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/dirbridge/dirbridge/internal/config"
	"github.com/dirbridge/dirbridge/internal/identity"
	"github.com/dirbridge/dirbridge/internal/tenant"
	"github.com/dirbridge/dirbridge/internal/web/handler"
)

const (
	// Path is the path of the authentication route group.
	Path = "/api/auth"
)

// Service is the authentication handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	pipeline  *identity.Pipeline
	validator *validator.Validate
}

// Handler is the authentication handler.
var Handler = Service{}

// Init initializes the authentication handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, tenants *tenant.Cache) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.db = db
	s.cfg = cfg
	s.pipeline = identity.NewPipeline(db, tenants)
	s.validator = validator.New()

	// register routes
	app.Route(Path, func(router fiber.Router) {
		router.Post("/:node", s.Post)
	})

	return nil
}

// resolvedResponse is the JSON body returned on successful authentication.
type resolvedResponse struct {
	// Login is the application login the directory account resolved to.
	Login string `json:"login"`
	// Primary reports whether the account lives in the primary repository.
	Primary bool `json:"primary"`
}

// Post authenticates a directory credential against the node of the route.
// The answer never tells an unknown account apart from a wrong secret.
func (s *Service) Post(c *fiber.Ctx) error {
	nodeID := c.Params("node")

	var credential identity.Credential
	if err := c.BodyParser(&credential); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(handler.Problem{Message: "malformed credential"})
	}

	if err := s.validator.Struct(credential); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(handler.Problem{Message: "name and secret are required"})
	}

	if !s.pipeline.Accept(credential.Name, nodeID) {
		return refuse(c)
	}

	resolved, err := s.pipeline.Authenticate(credential, nodeID, c.QueryBool("primary", true))
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrBadCredentials),
			errors.Is(err, identity.ErrNoMail),
			errors.Is(err, identity.ErrAmbiguousAccount),
			errors.Is(err, identity.ErrCannotBuildLogin):
			return refuse(c)
		default:
			log.Error().Err(err).Str("node", nodeID).Msg("authentication backend failure")

			return handler.Fail(c, err)
		}
	}

	return c.JSON(resolvedResponse{Login: resolved.Login, Primary: resolved.Primary})
}

// refuse answers an opaque 401 without leaking the refusal reason.
func refuse(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(handler.Problem{Message: "authentication refused"})
}
