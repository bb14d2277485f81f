// Package daemon wires the database, the tenant cache and the web
// service together.
package daemon

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/dirbridge/dirbridge/internal/config"
	"github.com/dirbridge/dirbridge/internal/db/dsn"
	"github.com/dirbridge/dirbridge/internal/db/models"
	"github.com/dirbridge/dirbridge/internal/tenant"
	"github.com/dirbridge/dirbridge/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	webService web.Service
	subscriber *tenant.Subscriber
	addr       string
}

// Start starts the Daemon's web service.
func (d *Daemon) Start() error {
	if d.subscriber != nil {
		go func() {
			if err := d.subscriber.Run(context.Background()); err != nil {
				log.Error().Err(err).Msg("invalidation subscriber stopped")
			}
		}()
	}

	return d.webService.Start(d.addr)
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	db, err := gorm.Open(openDialector(cfg), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	if err = db.AutoMigrate(
		&models.Node{},
		&models.NodeParameter{},
		&models.Project{},
		&models.Subscription{},
		&models.SubscriptionParameter{},
		&models.ContainerScope{},
		&models.DirectoryGroup{},
		&models.DirectoryMembership{},
		&models.DirectoryCompany{},
		&models.DirectoryUser{},
		&models.DirectoryUserMail{},
		&models.DirectoryCredential{},
		&models.AppUser{},
		&models.ProjectGroup{},
	); err != nil {
		panic("failed to migrate database")
	}

	seed(cfg, db)

	tenants := tenant.NewCache(db)

	daemon := &Daemon{
		webService: *web.New(cfg, db, tenants),
		addr:       fmt.Sprintf(":%d", cfg.Webserver.Port),
	}

	// Listen for configuration invalidation published by peers.
	if cfg.Redis.Enabled {
		subscriber, err := tenant.NewSubscriber(tenants, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect redis")
		}

		daemon.subscriber = subscriber
	}

	return daemon
}

// openDialector selects the gorm driver from the configured engine.
func openDialector(cfg *config.Config) gorm.Dialector {
	switch cfg.DB.GormEngine {
	case "postgres":
		return gormpostgres.Open(dsn.Postgres(cfg))
	case "sqlite":
		return sqlite.Open(dsn.Sqlite(cfg))
	default:
		return gormmysql.Open(dsn.Create(cfg))
	}
}
