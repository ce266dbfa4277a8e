// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level, and request limits. AppConfig is everything
// specific to SevaHub.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connections in the driver pool
	MongoMinPoolSize uint64 // Min connections kept warm in the pool

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: sevahub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// CSRF protection
	CSRFKey string // 32-byte key for CSRF token signing

	// Base URL for OAuth callbacks and absolute links
	BaseURL string // e.g., "https://sevahub.org" or "http://localhost:3000"

	// Audit logging
	AuditLogAuth   string // Auth event logging: "all" (db+log), "db", "log", or "off"
	AuditLogAction string // Domain action logging: "all", "db", "log", or "off"

	// Google OAuth
	GoogleClientID     string
	GoogleClientSecret string

	// Seed data
	SeedStudents bool // Insert sample sponsorship students when the collection is empty
}
