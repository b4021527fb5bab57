// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	adminfeature "github.com/dalemusser/valids/internal/app/features/admin"
	assignmentsfeature "github.com/dalemusser/valids/internal/app/features/assignments"
	auditlogfeature "github.com/dalemusser/valids/internal/app/features/auditlog"
	companiesfeature "github.com/dalemusser/valids/internal/app/features/companies"
	controlsfeature "github.com/dalemusser/valids/internal/app/features/controls"
	fieldsfeature "github.com/dalemusser/valids/internal/app/features/fields"
	healthfeature "github.com/dalemusser/valids/internal/app/features/health"
	homefeature "github.com/dalemusser/valids/internal/app/features/home"
	isofeature "github.com/dalemusser/valids/internal/app/features/iso"
	loginfeature "github.com/dalemusser/valids/internal/app/features/login"
	questionsfeature "github.com/dalemusser/valids/internal/app/features/questions"
	submissionsfeature "github.com/dalemusser/valids/internal/app/features/submissions"
	usersfeature "github.com/dalemusser/valids/internal/app/features/users"
	auditstore "github.com/dalemusser/valids/internal/app/store/audit"
	userstore "github.com/dalemusser/valids/internal/app/store/users"
	"github.com/dalemusser/valids/internal/app/system/auditlog"
	"github.com/dalemusser/valids/internal/app/system/auth"
	"github.com/dalemusser/valids/internal/app/system/ratelimit"
	"github.com/dalemusser/valids/internal/app/system/reqlog"
	"github.com/dalemusser/valids/internal/app/system/respond"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// ipLimitFactor scales the per-login attempt limit into the per-IP limit.
const ipLimitFactor = 5

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// The root serves the welcome document and /health. Everything else lives
// under api_prefix: /auth and /admin carry their own public endpoints and
// take the authenticate middleware to apply per route; the remaining
// resource routers sit behind a group that always authenticates.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	tokens := auth.NewTokenIssuer(appCfg.SecretKey, appCfg.AccessTokenTTL)
	mw := auth.NewMiddleware(tokens, userstore.New(db), logger)
	limiter := ratelimit.NewLoginLimiter(appCfg.LoginRateLimit*ipLimitFactor, appCfg.LoginRateLimit, appCfg.LoginRateWindow)
	audit := auditlog.New(auditstore.New(db), logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})

	r := chi.NewRouter()
	r.Use(reqlog.Middleware(logger))
	if len(appCfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   appCfg.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", reqlog.Header},
			ExposedHeaders:   []string{reqlog.Header},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.NotFound(w, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	homeHandler := homefeature.NewHandler(appCfg.ProjectName, appCfg.APIPrefix, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	api := chi.NewRouter()

	// Authentication
	loginHandler := loginfeature.NewHandler(db, tokens, limiter, audit, logger)
	api.Mount("/auth", loginfeature.Routes(loginHandler, mw.Authenticate))

	// Superadmin tools (create-superadmin is public)
	adminHandler := adminfeature.NewHandler(db, audit, logger)
	api.Mount("/admin", adminfeature.Routes(adminHandler, mw.Authenticate))

	api.Group(func(pr chi.Router) {
		pr.Use(mw.Authenticate)

		pr.Mount("/admin/audit-events", auditlogfeature.Routes(auditlogfeature.NewHandler(db, logger)))

		pr.Mount("/users", usersfeature.Routes(usersfeature.NewHandler(db, audit, logger)))
		pr.Mount("/companies", companiesfeature.Routes(companiesfeature.NewHandler(db, audit, logger)))

		// Catalog
		pr.Mount("/iso", isofeature.Routes(isofeature.NewHandler(db, logger)))
		pr.Mount("/controls", controlsfeature.Routes(controlsfeature.NewHandler(db, logger)))
		pr.Mount("/questions", questionsfeature.Routes(questionsfeature.NewHandler(db, logger)))
		pr.Mount("/fields", fieldsfeature.Routes(fieldsfeature.NewHandler(db, logger)))

		// Assessment work
		pr.Mount("/submissions", submissionsfeature.Routes(submissionsfeature.NewHandler(db, audit, logger)))
		pr.Mount("/assignments", assignmentsfeature.Routes(assignmentsfeature.NewHandler(db, audit, logger)))
	})

	r.Mount(appCfg.APIPrefix, api)

	logger.Info("routes mounted",
		zap.String("api_prefix", appCfg.APIPrefix),
		zap.Strings("cors_origins", appCfg.CORSOrigins),
		zap.String("env", coreCfg.Env))

	return r, nil
}
