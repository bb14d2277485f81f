// Package node exposes node level health and directory search routes.
package node

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/dirbridge/dirbridge/internal/config"
	"github.com/dirbridge/dirbridge/internal/groups"
	"github.com/dirbridge/dirbridge/internal/tenant"
	"github.com/dirbridge/dirbridge/internal/web/handler"
)

const (
	// Path is the path of the node route group.
	Path = "/api/node"

	// GroupSearchPath is the path of the group search route group.
	GroupSearchPath = "/api/group"
)

// Service is the node handler service.
type Service struct {
	handler.Service
	cfg    *config.Config
	db     *gorm.DB
	engine *groups.Engine
}

// Handler is the node handler.
var Handler = Service{}

// Init initializes the node handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, tenants *tenant.Cache) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.db = db
	s.cfg = cfg
	s.engine = groups.NewEngine(db, tenants)

	// register routes
	app.Route(Path, func(router fiber.Router) {
		router.Get("/:node/status", s.Status)
	})
	app.Route(GroupSearchPath, func(router fiber.Router) {
		router.Get("/:node/:criteria", s.FindGroups)
	})

	return nil
}

// statusResponse is the JSON body of the node status route.
type statusResponse struct {
	// Node is the checked node identifier.
	Node string `json:"node"`
	// Up reports whether the node configuration can reach its database.
	Up bool `json:"up"`
}

// Status probes the node configuration with a harmless directory lookup
// and reports whether the backing database answers.
func (s *Service) Status(c *fiber.Ctx) error {
	nodeID := c.Params("node")

	if err := s.engine.CheckStatus(nodeID); err != nil {
		log.Warn().Err(err).Str("node", nodeID).Msg("node status check failed")

		return c.JSON(statusResponse{Node: nodeID, Up: false})
	}

	return c.JSON(statusResponse{Node: nodeID, Up: true})
}

// FindGroups returns the groups of the node whose name contains the
// given criteria, ordered by name.
func (s *Service) FindGroups(c *fiber.Ctx) error {
	nodeID := c.Params("node")

	matches, err := s.engine.FindGroupsByName(nodeID, c.Params("criteria"))
	if err != nil {
		return handler.Fail(c, err)
	}

	return c.JSON(matches)
}
