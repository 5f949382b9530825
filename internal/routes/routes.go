package routes

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/registra-api/registra/internal/config"
	"github.com/registra-api/registra/internal/infra"
	"github.com/registra-api/registra/internal/middleware"
	"github.com/registra-api/registra/internal/registration"
	"github.com/registra-api/registra/web"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	Pools  *infra.Manager
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	if d.Pools == nil {
		return fmt.Errorf("database pool manager is required")
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(helmet.New())
	// Plain text access log: [HH:MM:SS] 200 -  145ms METHOD /path
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	// Health
	RegisterHealthRoutes(app)

	// Services and handlers
	repo := registration.NewPostgresRepository(d.Pools)
	svc := registration.NewService(repo)
	handler := registration.NewHandler(svc, d.Logger)

	api := app.Group("/api")
	rateLimiter := middleware.RegisterRateLimit(d.Cache, 5)
	RegisterRegistrationRoutes(api, handler, rateLimiter)

	// Static landing page, after the API routes so unknown paths fall
	// through to the embedded assets.
	app.Use(filesystem.New(filesystem.Config{
		Root:       http.FS(web.Assets),
		PathPrefix: "static",
	}))

	return nil
}
