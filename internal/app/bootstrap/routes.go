// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	authfeature "github.com/Foragefoxoffice/Cotco-backend/internal/app/features/auth"
	blogsfeature "github.com/Foragefoxoffice/Cotco-backend/internal/app/features/blogs"
	categoriesfeature "github.com/Foragefoxoffice/Cotco-backend/internal/app/features/categories"
	contactsfeature "github.com/Foragefoxoffice/Cotco-backend/internal/app/features/contacts"
	healthfeature "github.com/Foragefoxoffice/Cotco-backend/internal/app/features/health"
	maincategoriesfeature "github.com/Foragefoxoffice/Cotco-backend/internal/app/features/maincategories"
	machinesfeature "github.com/Foragefoxoffice/Cotco-backend/internal/app/features/machines"
	pagesfeature "github.com/Foragefoxoffice/Cotco-backend/internal/app/features/pages"
	rolesfeature "github.com/Foragefoxoffice/Cotco-backend/internal/app/features/roles"
	usersfeature "github.com/Foragefoxoffice/Cotco-backend/internal/app/features/users"
	rolestore "github.com/Foragefoxoffice/Cotco-backend/internal/app/store/roles"
	userstore "github.com/Foragefoxoffice/Cotco-backend/internal/app/store/users"
	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/apicors"
	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/auth"
	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/uploads"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// The API surface:
//   - /health, /ready, /readyz, /livez: probes for load balancers
//   - /uploads/*: uploaded files (local storage only)
//   - /api/v1/*: the JSON API consumed by the marketing site and admin UI
//
// Write access across the API is guarded by the JWT `protect` middleware
// built here; each feature decides which of its routes are public reads.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	// Token manager issues and verifies the JWT auth cookie.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	tokens, err := auth.NewManager(appCfg.JWTSecret, appCfg.JWTExpiry, secure, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	// The fetcher resolves token claims to fresh user+role data on each
	// request, so role changes and deactivated accounts take effect
	// immediately.
	fetcher := &userstore.Fetcher{
		Users: userstore.New(db),
		Roles: rolestore.New(db),
	}
	protect := tokens.Protect(fetcher)

	up := uploads.New(deps.FileStorage, logger)

	r := chi.NewRouter()

	// ─────────────────────────────────────────────────────────────────────────
	// Global middleware (applies to ALL routes)
	// ─────────────────────────────────────────────────────────────────────────

	// Request timeout middleware: prevents requests from hanging indefinitely.
	r.Use(chimw.Timeout(30 * time.Second))

	// CORS middleware: must be early in the chain to handle preflight requests.
	r.Use(middleware.CORSFromConfig(coreCfg))

	// Security headers middleware: adds X-Frame-Options, X-Content-Type-Options, etc.
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	// ─────────────────────────────────────────────────────────────────────────
	// Routes
	// ─────────────────────────────────────────────────────────────────────────

	// Health check endpoints for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	// Uploaded files (local storage only). Served with permissive CORS so the
	// marketing site can load images cross-origin; S3/CloudFront serves these
	// itself when that backend is configured.
	if appCfg.StorageType == "local" || appCfg.StorageType == "" {
		r.Handle(uploads.URLPrefix+"/*",
			apicors.Middleware()(fileserver.Handler(uploads.URLPrefix, appCfg.StorageLocalPath)))
	}

	// JSON API
	r.Route("/api/v1", func(api chi.Router) {
		authHandler := authfeature.NewHandler(db, tokens, deps.Mailer, up, authfeature.Config{
			AppName:   appCfg.AppName,
			LoginURL:  appCfg.LoginURL,
			OTPExpiry: appCfg.OTPExpiry,
		}, logger)
		api.Mount("/auth", authfeature.Routes(authHandler, protect))

		usersHandler := usersfeature.NewHandler(db, logger)
		api.Mount("/users", usersfeature.Routes(usersHandler, protect))

		rolesHandler := rolesfeature.NewHandler(db, logger)
		api.Mount("/roles", rolesfeature.Routes(rolesHandler, protect))

		categoriesHandler := categoriesfeature.NewHandler(db, logger)
		api.Mount("/categories", categoriesfeature.Routes(categoriesHandler, protect))

		mainCategoriesHandler := maincategoriesfeature.NewHandler(db, up, logger)
		api.Mount("/main-categories", maincategoriesfeature.Routes(mainCategoriesHandler, protect))

		blogsHandler := blogsfeature.NewHandler(db, logger)
		api.Mount("/blogs", blogsfeature.Routes(blogsHandler, protect))

		machinesHandler := machinesfeature.NewHandler(db, up, logger)
		api.Mount("/machines", machinesfeature.Routes(machinesHandler, protect))

		contactsHandler := contactsfeature.NewHandler(db, up, logger)
		api.Mount("/contact-entries", contactsfeature.Routes(contactsHandler, protect))

		// Singleton page documents mount at the API root: /api/v1/homepage,
		// /api/v1/aboutpage, and the rest of the page set.
		pagesHandler := pagesfeature.NewHandler(db, up, logger)
		api.Mount("/", pagesfeature.Routes(pagesHandler, protect))
	})

	return r, nil
}
