// Package routes wires repositories, services and handlers into the
// fiber application.
package routes

import (
	"pixvault/internal/config"
	"pixvault/internal/handlers"
	"pixvault/internal/middleware"
	"pixvault/internal/repositories"
	"pixvault/internal/scheduler"
	"pixvault/internal/services/account"
	"pixvault/internal/services/auth"
	"pixvault/internal/services/notification"
	"pixvault/internal/services/pixkey"
	"pixvault/internal/services/withdrawal"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services bundles what main needs beyond route registration, namely
// the processor the periodic scheduler drives.
type Services struct {
	Processor *withdrawal.Processor
}

// SetupRoutes builds the dependency graph and registers every route.
func SetupRoutes(app *fiber.App) *Services {
	store := repositories.NewStore(repositories.DB)
	cache := repositories.CacheService

	notifier := notification.NewService(store.Users())
	metrics := withdrawal.NewPrometheusMetrics()

	authService := auth.NewService(store)
	accountService := account.NewService(store, cache)
	pixKeyService := pixkey.NewService(store.PixKeys())
	withdrawalService := withdrawal.NewService(store, cache, notifier, metrics)
	processor := withdrawal.NewProcessor(store, cache, notifier, metrics, withdrawal.ProcessorConfig{
		MaxConcurrent: config.GetIntEnv("WITHDRAWAL_MAX_CONCURRENT", withdrawal.MaxConcurrentJobs),
		ItemTimeout:   config.GetDurationEnv("WITHDRAWAL_ITEM_TIMEOUT", withdrawal.DefaultItemTimeout),
	})

	authHandler := handlers.NewAuthHandler(authService)
	accountHandler := handlers.NewAccountHandler(accountService)
	pixKeyHandler := handlers.NewPixKeyHandler(pixKeyService)
	withdrawalHandler := handlers.NewWithdrawalHandler(withdrawalService, processor)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to PixVault API",
			"version": "1.0.0",
			"docs":    "/api",
		})
	})
	app.Get("/health", handlers.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Public endpoints
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.Refresh)

	// Protected endpoints
	protected := api.Use(middleware.Auth())

	protected.Get("/account", accountHandler.GetAccount)
	protected.Post("/account/deposit", accountHandler.Deposit)
	protected.Get("/account/history", accountHandler.History)
	protected.Get("/account/withdrawals", accountHandler.Withdrawals)

	protected.Post("/pix-keys", pixKeyHandler.Create)
	protected.Get("/pix-keys", pixKeyHandler.List)
	protected.Delete("/pix-keys/:id", pixKeyHandler.Delete)

	protected.Post("/withdrawals", withdrawalHandler.Withdraw)
	protected.Post("/withdrawals/process", withdrawalHandler.ProcessScheduled)

	return &Services{Processor: processor}
}

// NewScheduler builds the periodic batch trigger around the wired
// processor.
func NewScheduler(services *Services) *scheduler.Scheduler {
	interval := config.GetDurationEnv("WITHDRAWAL_SCHEDULER_INTERVAL", scheduler.DefaultInterval)
	return scheduler.New(services.Processor, interval)
}
