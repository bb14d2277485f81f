package config

import (
	"github.com/dirbridge/dirbridge/internal/logger"
)

// Redis holds the connection settings of the external cache layer used
// to coordinate configuration invalidation between instances.
type Redis struct {
	Enabled  bool   // true = listen on the invalidation channel
	Addr     string // host:port of the redis server
	Password string // optional password
	DB       int    // redis database number
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Redis     Redis
	Title     string
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	CleanPath      bool   // use clean path middleware to allow multi slash requests
	DisableRecover bool   // disable recover middleware
	Domain         string // domain name for the webserver
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown
	URL            string // base url for the webserver
}
