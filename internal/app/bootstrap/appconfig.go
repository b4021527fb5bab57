// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework-level settings (ports, TLS, log level, body limits); AppConfig
// holds everything specific to ValidS.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// HTTP surface
	APIPrefix   string   // Mount point of the JSON API (default /api/v1)
	ProjectName string   // Shown by the root document
	CORSOrigins []string // Allowed origins; empty disables CORS headers

	// Bearer tokens
	SecretKey      string        // HMAC key for access tokens (>= 32 bytes outside dev)
	AccessTokenTTL time.Duration // Lifetime of an issued token

	// Login throttling
	LoginRateLimit  int           // Attempts per login (and 5x per IP) within the window
	LoginRateWindow time.Duration // Sliding window for LoginRateLimit

	// Audit logging destinations (all, db, log, off)
	AuditLogAuth  string
	AuditLogAdmin string

	// Startup seeding
	SuperAdminUsername string // Creates this superadmin when none exists
	SuperAdminEmail    string
	SuperAdminPassword string
	SeedSampleData     bool // Insert the sample ISO 27001 chain when absent
}
