package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/freshplate/ordering-client/internal/api/handlers"
	"github.com/freshplate/ordering-client/internal/api/middleware"
	"github.com/freshplate/ordering-client/internal/cart"
	"github.com/freshplate/ordering-client/internal/config"
	"github.com/freshplate/ordering-client/internal/gateway"
	"github.com/freshplate/ordering-client/internal/health"
	"github.com/freshplate/ordering-client/internal/kvstore"
	"github.com/freshplate/ordering-client/internal/metrics"
	"github.com/freshplate/ordering-client/internal/notifications"
	"github.com/freshplate/ordering-client/internal/session"
	"github.com/freshplate/ordering-client/internal/telemetry"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	shutdownTracing, err := telemetry.Setup(context.Background(), cfg)
	if err != nil {
		slog.Error("❌ Error setting up tracing", "error", err.Error())
		os.Exit(1)
	}

	// State store setup
	kv, err := newStateStore(cfg)
	if err != nil {
		slog.Error("❌ Error opening the state store", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := kv.Close(); err != nil {
			slog.Error("⚠️ Error closing state store", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ State store closed")
		}
	}()

	sess := session.New(kv)
	cartStore := cart.New(kv)
	apiClient := gateway.New(cfg, sess)
	poller := notifications.NewPoller(apiClient)

	sessionHandler := handlers.NewSessionHandler(apiClient, sess)
	cartHandler := handlers.NewCartHandler(cartStore)
	orderHandler := handlers.NewOrderHandler(apiClient, cartStore)
	catalogHandler := handlers.NewCatalogHandler(apiClient)
	inventoryHandler := handlers.NewInventoryHandler(apiClient)
	notificationHandler := handlers.NewNotificationHandler(poller)
	profileHandler := handlers.NewProfileHandler(apiClient)
	guard := middleware.NewSessionGuard(sess)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{KV: kv})
	if err != nil {
		slog.Error("❌ Error creating health handler", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("client state restored",
		slog.String("env", cfg.Env),
		slog.String("storage", cfg.Storage.Backend),
		slog.Bool("logged_in", sess.IsAuthenticated()),
		slog.Int("cart_items", cartStore.ItemCount()),
	)

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/session/login", sessionHandler.Login())
	routerMux.HandleFunc("POST /api/v1/session/register", sessionHandler.Register())
	routerMux.HandleFunc("DELETE /api/v1/session", sessionHandler.Logout())
	routerMux.HandleFunc("GET /api/v1/session", sessionHandler.Current())

	routerMux.HandleFunc("GET /api/v1/cart", cartHandler.Get())
	routerMux.HandleFunc("POST /api/v1/cart/items", cartHandler.AddItem())
	routerMux.HandleFunc("PUT /api/v1/cart/items/{id}", cartHandler.UpdateQuantity())
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{id}", cartHandler.RemoveItem())
	routerMux.HandleFunc("DELETE /api/v1/cart", cartHandler.Clear())

	routerMux.HandleFunc("GET /api/v1/foods", catalogHandler.List())
	routerMux.HandleFunc("GET /api/v1/foods/{id}", catalogHandler.Get())
	routerMux.HandleFunc("POST /api/v1/foods", guard.RequireStaff(catalogHandler.Create()))
	routerMux.HandleFunc("PUT /api/v1/foods/{id}", guard.RequireStaff(catalogHandler.Update()))
	routerMux.HandleFunc("DELETE /api/v1/foods/{id}", guard.RequireStaff(catalogHandler.Delete()))

	routerMux.HandleFunc("POST /api/v1/orders", guard.RequireSession(orderHandler.Checkout()))
	routerMux.HandleFunc("GET /api/v1/orders", guard.RequireSession(orderHandler.List()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", guard.RequireSession(orderHandler.Get()))
	routerMux.HandleFunc("GET /api/v1/staff/orders", guard.RequireStaff(orderHandler.StaffList()))
	routerMux.HandleFunc("POST /api/v1/staff/orders/{id}/approve", guard.RequireStaff(orderHandler.Approve()))
	routerMux.HandleFunc("POST /api/v1/staff/orders/{id}/reject", guard.RequireStaff(orderHandler.Reject()))

	routerMux.HandleFunc("GET /api/v1/staff/inventory", guard.RequireStaff(inventoryHandler.List()))
	routerMux.HandleFunc("POST /api/v1/staff/inventory", guard.RequireStaff(inventoryHandler.Create()))
	routerMux.HandleFunc("PUT /api/v1/staff/inventory/{id}", guard.RequireStaff(inventoryHandler.Update()))
	routerMux.HandleFunc("DELETE /api/v1/staff/inventory/{id}", guard.RequireStaff(inventoryHandler.Delete()))
	routerMux.HandleFunc("PATCH /api/v1/staff/inventory/{id}/quantity", guard.RequireStaff(inventoryHandler.UpdateQuantity()))

	routerMux.HandleFunc("GET /api/v1/notifications", guard.RequireSession(notificationHandler.List()))
	routerMux.HandleFunc("POST /api/v1/notifications/{id}/read", guard.RequireSession(notificationHandler.MarkRead()))
	routerMux.HandleFunc("POST /api/v1/notifications/read-all", guard.RequireSession(notificationHandler.MarkAllRead()))

	routerMux.HandleFunc("GET /api/v1/profile", guard.RequireSession(profileHandler.Get()))
	routerMux.HandleFunc("PUT /api/v1/profile", guard.RequireSession(profileHandler.Update()))

	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /healthz", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Client gateway is starting...", slog.String("address", cfg.Addr), slog.String("upstream", cfg.Upstream.BaseURL))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {

		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Tracing shutdown encountered an issue", slog.String("error", err.Error()))
	}

}

// newStateStore opens the configured key-value backend.
func newStateStore(cfg *config.Config) (kvstore.Store, error) {

	if cfg.Storage.Backend == "redis" {
		client, err := kvstore.NewRedisClient(cfg)
		if err != nil {
			return nil, err
		}
		return kvstore.NewRedisStore(client), nil
	}

	return kvstore.NewFileStore(cfg.Storage.Path)
}
