package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"twoem/internal/config"
	"twoem/internal/http/middleware"
	"twoem/internal/service"
)

// Services bundles everything the HTTP layer depends on.
type Services struct {
	Files       service.FileService
	Eulogies    service.EulogyService
	Auth        service.AuthService
	Contact     service.ContactService
	Catalog     service.CatalogService
	Credentials service.CredentialService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Keep
// handlers minimal and free of business logic.
func RegisterRoutes(app *fiber.App, db *sql.DB, cfg config.AuthConfig, svcs Services) {
	// Operational endpoints stay outside the /api prefix.
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())
	app.Get("/docs", func(c *fiber.Ctx) error {
		return c.Redirect("/swagger/index.html", fiber.StatusFound)
	})

	api := app.Group("/api")
	auth := middleware.RequireAuth(cfg.JWTSecret)
	admin := middleware.RequireAdmin()

	// Accounts and sessions
	api.Post("/auth/register", Register(svcs.Auth))
	api.Post("/auth/login", Login(svcs.Auth))
	api.Get("/auth/me", auth, Me(svcs.Auth))

	// Files: authenticated throughout
	api.Get("/files", auth, ListFiles(svcs.Files))
	api.Post("/files", auth, UploadFile(svcs.Files))
	api.Get("/files/:id", auth, DownloadFile(svcs.Files))

	// Eulogies: reading is public, writing requires an account
	api.Get("/eulogies", ListEulogies(svcs.Eulogies))
	api.Post("/eulogies", auth, UploadEulogy(svcs.Eulogies))
	api.Get("/eulogies/:id", DownloadEulogy(svcs.Eulogies))

	// Contact form and services catalog
	api.Post("/contact", SubmitContact(svcs.Contact))
	api.Get("/contact", auth, admin, ListContacts(svcs.Contact))
	api.Get("/services", ListServices(svcs.Catalog))

	// Credential intake
	api.Post("/credentials", auth, SaveCredential(svcs.Credentials))
	api.Get("/credentials", auth, admin, ListCredentials(svcs.Credentials))

	// Admin surface
	adminGrp := api.Group("/admin", auth, admin)
	adminGrp.Delete("/files/:id", DeleteFile(svcs.Files))
	adminGrp.Delete("/eulogies/:id", DeleteEulogy(svcs.Eulogies))
	adminGrp.Post("/cleanup-expired", CleanupExpired(svcs.Eulogies))
	adminGrp.Get("/stats", AdminStats(svcs.Files, svcs.Eulogies))
}
