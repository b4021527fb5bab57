// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/valids/internal/app/system/auditlog"
	"github.com/dalemusser/valids/internal/app/system/passwords"
	"github.com/dalemusser/valids/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// minSecretLen is the shortest secret_key accepted outside dev.
const minSecretLen = 32

// appConfigKeys defines the configuration keys for ValidS.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, api_prefix, etc.
//   - Environment variables: VALIDS_MONGO_URI, VALIDS_SECRET_KEY, etc.
//   - Command-line flags: --mongo_uri, --secret_key, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "valids", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "api_prefix", Default: "/api/v1", Desc: "Path prefix for the JSON API"},
	{Name: "project_name", Default: "ValidS API", Desc: "Project name shown at the root endpoint"},
	{Name: "cors_origins", Default: "http://localhost:3000,http://localhost:8080", Desc: "Comma-separated allowed CORS origins"},

	// Tokens
	{Name: "secret_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Access token signing key (at least 32 bytes in production)"},
	{Name: "access_token_ttl", Default: "30m", Desc: "Access token lifetime (e.g., 30m, 8h)"},

	// Login throttling
	{Name: "login_rate_limit", Default: 5, Desc: "Login attempts per username within login_rate_window"},
	{Name: "login_rate_window", Default: "15m", Desc: "Window for login_rate_limit"},

	// Audit logging settings
	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	// SuperAdmin bootstrap
	{Name: "superadmin_username", Default: "", Desc: "Username of the superadmin created on startup when none exists"},
	{Name: "superadmin_email", Default: "", Desc: "Email of the startup superadmin"},
	{Name: "superadmin_password", Default: "", Desc: "Password of the startup superadmin"},
	{Name: "seed_sample_data", Default: false, Desc: "Insert the sample ISO 27001 field/question/control chain"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, VALIDS_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "VALIDS", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		APIPrefix:   strings.TrimRight(strings.TrimSpace(appValues.String("api_prefix")), "/"),
		ProjectName: appValues.String("project_name"),
		CORSOrigins: splitList(appValues.String("cors_origins")),

		SecretKey:      appValues.String("secret_key"),
		AccessTokenTTL: appValues.Duration("access_token_ttl", 30*time.Minute),

		LoginRateLimit:  appValues.Int("login_rate_limit"),
		LoginRateWindow: appValues.Duration("login_rate_window", 15*time.Minute),

		AuditLogAuth:  strings.ToLower(appValues.String("audit_log_auth")),
		AuditLogAdmin: strings.ToLower(appValues.String("audit_log_admin")),

		SuperAdminUsername: strings.TrimSpace(appValues.String("superadmin_username")),
		SuperAdminEmail:    strings.TrimSpace(appValues.String("superadmin_email")),
		SuperAdminPassword: appValues.String("superadmin_password"),
		SeedSampleData:     appValues.Bool("seed_sample_data"),
	}

	if n := timeouts.ConfigureFromEnv(); n > 0 {
		cur := timeouts.Current()
		logger.Info("timeouts overridden from environment",
			zap.Duration("ping", cur.Ping),
			zap.Duration("short", cur.Short),
			zap.Duration("medium", cur.Medium),
			zap.Duration("long", cur.Long))
	}

	return coreCfg, appCfg, nil
}

// splitList splits a comma-separated value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The Mongo URI is checked before connecting; the token secret must be
// strong whenever the app is not running in dev.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	return validateAppConfig(coreCfg.Env, appCfg)
}

func validateAppConfig(env string, appCfg AppConfig) error {
	if appCfg.MongoDatabase == "" {
		return fmt.Errorf("mongo_database is required")
	}
	if appCfg.APIPrefix == "" || !strings.HasPrefix(appCfg.APIPrefix, "/") {
		return fmt.Errorf("api_prefix must be a non-root path starting with '/' (got %q)", appCfg.APIPrefix)
	}
	if env != "dev" && len(appCfg.SecretKey) < minSecretLen {
		return fmt.Errorf("secret_key must be at least %d bytes outside dev", minSecretLen)
	}
	if appCfg.AccessTokenTTL <= 0 {
		return fmt.Errorf("access_token_ttl must be positive")
	}
	if appCfg.LoginRateLimit <= 0 || appCfg.LoginRateWindow <= 0 {
		return fmt.Errorf("login_rate_limit and login_rate_window must be positive")
	}
	if !auditlog.ValidDest(appCfg.AuditLogAuth) {
		return fmt.Errorf("audit_log_auth must be one of all, db, log, off (got %q)", appCfg.AuditLogAuth)
	}
	if !auditlog.ValidDest(appCfg.AuditLogAdmin) {
		return fmt.Errorf("audit_log_admin must be one of all, db, log, off (got %q)", appCfg.AuditLogAdmin)
	}
	if appCfg.SuperAdminUsername != "" && (appCfg.SuperAdminEmail == "" || appCfg.SuperAdminPassword == "") {
		return fmt.Errorf("superadmin_username requires superadmin_email and superadmin_password")
	}
	if len(appCfg.SuperAdminPassword) > passwords.MaxBytes {
		return fmt.Errorf("superadmin_password must be at most %d bytes", passwords.MaxBytes)
	}
	return nil
}
