package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/chipinapp/chipin/docs"
	"github.com/chipinapp/chipin/internal/balance"
	"github.com/chipinapp/chipin/internal/config"
	"github.com/chipinapp/chipin/internal/database"
	"github.com/chipinapp/chipin/internal/event"
	"github.com/chipinapp/chipin/internal/expense"
	expensesplit "github.com/chipinapp/chipin/internal/expense/split"
	"github.com/chipinapp/chipin/internal/notification"
	"github.com/chipinapp/chipin/internal/settlement"
	"github.com/chipinapp/chipin/internal/user"
	"github.com/chipinapp/chipin/pkg/logging"
	mw "github.com/chipinapp/chipin/pkg/middleware"
)

// @title        ChipIn API
// @version      1.0
// @description  Shared expense tracking and debt settlement for group events.
// @BasePath     /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	logging.Setup()

	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	slog.Info("Connected to database")

	// Split Strategy Factory (Factory Pattern)
	splitFactory := expensesplit.NewFactory()

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	// Event feature
	eventRepo := event.NewRepository(db)
	eventService := event.NewService(eventRepo)
	eventHandler := event.NewHandler(eventService)

	// Expense feature (with split factory injected)
	expenseRepo := expense.NewRepository(db)
	expenseService := expense.NewService(expenseRepo, splitFactory)
	expenseHandler := expense.NewHandler(expenseService)

	// Balance feature: the store aggregate is the fast path, the local
	// recompute over the raw expense list is the fallback
	balanceRepo := balance.NewRepository(db)
	storeSource := balance.NewStoreSource(balanceRepo)
	localSource := balance.NewLocalSource(expenseRepo, eventRepo)
	balanceService := balance.NewService(storeSource, localSource)
	balanceHandler := balance.NewHandler(balanceService)

	// Settlement feature; suggestions read balances through the same
	// store-preferred, local-fallback policy as the balances endpoint
	settlementRepo := settlement.NewRepository(db)
	settlementService := settlement.NewService(settlementRepo, expenseRepo, balanceService)
	settlementHandler := settlement.NewHandler(settlementService)

	// Notification feature
	notificationRepo := notification.NewRepository(db)
	notificationService := notification.NewService(notificationRepo)
	notificationHandler := notification.NewHandler(notificationService)

	// Notification hooks fire after ledger and membership writes
	hooks := notification.NewLedgerHooks(notificationService, userRepo)
	expenseService.SetNotifier(hooks)
	settlementService.SetNotifier(hooks)
	eventService.SetNotifier(hooks)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(mw.Metrics)
	r.Use(mw.ParticipantHeaderMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Mount feature routers
		r.Mount("/users", userHandler.Routes())
		r.Mount("/events", eventHandler.Routes())
		r.Mount("/expenses", expenseHandler.Routes())
		r.Mount("/balances", balanceHandler.Routes())
		r.Mount("/settlements", settlementHandler.Routes())
		r.Mount("/notifications", notificationHandler.Routes())
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	slog.Info("Server starting", "port", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		slog.Error("Server failed to start", "error", err)
		os.Exit(1)
	}
}
