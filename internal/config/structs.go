package config

import (
	"time"

	"github.com/cortejtech/agency-admin/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Redis     Redis
	Admin     Admin
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic     bool    // enable static file browsing (for development purposes only)
	Port             int     // listening port for the webserver
	ShutDownTime     int     // wait time for shutdown
	URL              string  // base url for the webserver
	CORSAllowOrigins string  // comma separated origins allowed to call the public api
	ContactRateLimit int     // max contact form submissions per ip and minute
	Session          Session // session settings
}

// Redis holds the optional settings cache connection.
type Redis struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Admin holds the bootstrap account settings.
type Admin struct {
	Username        string
	InitialPassword string // random password is generated and logged when empty
}
