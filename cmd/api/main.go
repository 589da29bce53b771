package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"twoem/docs"
	"twoem/internal/config"
	"twoem/internal/database"
	"twoem/internal/database/migration"
	handlers "twoem/internal/http/handler"
	"twoem/internal/http/middleware"
	"twoem/internal/otel"
	"twoem/internal/repository/postgres"
	"twoem/internal/service"
	"twoem/internal/storage"
)

// @title TWOEM Online Productions API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	loc, err := time.LoadLocation(os.Getenv("TZ"))
	if err != nil {
		loc = time.UTC
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Tracing is a no-op unless OTEL_* env vars enable it
	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(context.Background())

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	sweepDeleted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "eulogy_sweep_deleted_total",
		Help: "Total number of expired eulogies removed by sweeps.",
	})
	prometheus.MustRegister(sweepDeleted)

	// Initialize repositories and services
	fileRepo := postgres.NewFilePostgres(db)
	eulogyRepo := postgres.NewEulogyPostgres(db)
	userRepo := postgres.NewUserPostgres(db)
	contactRepo := postgres.NewContactPostgres(db)
	catalogRepo := postgres.NewServicePostgres(db)
	credentialRepo := postgres.NewCredentialPostgres(db)

	authSvc := service.NewAuthService(userRepo, cfg.Auth)
	catalogSvc := service.NewCatalogService(catalogRepo)
	credentialSvc, err := service.NewCredentialService(credentialRepo, cfg.CredentialsKey)
	if err != nil {
		log.Fatalf("failed to initialize credential sealing: %v", err)
	}
	svcs := handlers.Services{
		Files:       service.NewFileService(objStore, fileRepo, cfg.MaxFileSizeBytes),
		Eulogies:    service.NewEulogyService(objStore, eulogyRepo, sweepDeleted),
		Auth:        authSvc,
		Contact:     service.NewContactService(contactRepo),
		Catalog:     catalogSvc,
		Credentials: credentialSvc,
	}

	// Seed the bootstrap admin and the default services catalog
	if err := authSvc.EnsureAdmin(ctx); err != nil {
		log.Fatalf("failed to ensure admin account: %v", err)
	}
	if err := catalogSvc.Seed(ctx); err != nil {
		log.Fatalf("failed to seed services catalog: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger(loc))
	app.Use(otelfiber.Middleware())

	promMW, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register request metrics: %v", err)
	}
	app.Use(promMW.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, cfg.Auth, svcs)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	// Background expiry sweeper; the admin cleanup endpoint remains
	// available when disabled
	if cfg.SweepIntervalSec > 0 {
		go runSweeper(ctx, svcs.Eulogies, time.Duration(cfg.SweepIntervalSec)*time.Second, loc)
	}

	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

func runSweeper(ctx context.Context, svc service.EulogyService, interval time.Duration, loc *time.Location) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := svc.Sweep(ctx)
			if err != nil {
				log.Printf("sweep: %v", err)
				continue
			}
			if deleted > 0 {
				log.Printf("sweep removed %d expired eulogies at %s", deleted, time.Now().In(loc).Format(time.RFC3339))
			}
		}
	}
}
