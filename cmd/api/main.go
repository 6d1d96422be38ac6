package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pollapi/docs"
	"pollapi/internal/auth"
	"pollapi/internal/config"
	"pollapi/internal/database"
	"pollapi/internal/database/migration"
	handlers "pollapi/internal/http/handler"
	"pollapi/internal/http/middleware"
	"pollapi/internal/otel"
	"pollapi/internal/repository/postgres"
	"pollapi/internal/service"
	"pollapi/internal/storage"
)

// @title Polling API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	loc := time.UTC
	ctx := context.Background()

	// Tracing: exports to OTLP unless OTEL_SDK_DISABLED=true
	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(context.Background())

	// PostgreSQL connection (pooled via database/sql, instrumented by otelsql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// S3-compatible object storage for results exports
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	tokens, err := auth.NewTokenManager(cfg.Auth)
	if err != nil {
		log.Fatalf("failed to initialize token manager: %v", err)
	}

	// Repositories and services
	accountRepo := postgres.NewAccountPostgres(db)
	workspaceRepo := postgres.NewWorkspacePostgres(db)
	groupRepo := postgres.NewGroupPostgres(db)
	pollRepo := postgres.NewPollPostgres(db)
	voteRepo := postgres.NewVotePostgres(db)

	svcs := handlers.Services{
		Accounts:   service.NewAccountService(accountRepo, tokens, cfg.Auth.BcryptCost),
		Workspaces: service.NewWorkspaceService(workspaceRepo, groupRepo, accountRepo),
		Groups:     service.NewGroupService(groupRepo, workspaceRepo),
		Polls:      service.NewPollService(pollRepo, workspaceRepo, groupRepo, objStore),
		Votes:      service.NewVoteService(voteRepo, pollRepo, workspaceRepo, groupRepo, objStore),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, db, tokens, svcs)

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

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
