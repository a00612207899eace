package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/aaravmahajanofficial/shophub-storefront/docs"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/cache"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/clients"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/config"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/events"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/health"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/metrics"
	repository "github.com/aaravmahajanofficial/shophub-storefront/internal/repositories"
	service "github.com/aaravmahajanofficial/shophub-storefront/internal/services"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/tracing"
	"github.com/aaravmahajanofficial/shophub-storefront/pkg/sendgrid"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const version = "1.0.0"

//	@title						ShopHub Storefront API
//	@version					1.0
//	@description				Storefront gateway in front of the ShopHub product, auth, cart, order, payment and admin services.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {

	// Load config
	cfg := config.MustLoad()

	// Logger setup
	level := slog.LevelDebug
	if cfg.IsProduction() {
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Tracing setup
	shutdownTracing, err := tracing.Setup(context.Background(), &cfg.Otel, cfg.Env, version)
	if err != nil {
		slog.Error("❌ Error setting up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	store := cache.NewRedisCache(redisClient, &cfg.Cache)

	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	// Event stream
	publisher := events.NewNoopPublisher()
	if cfg.Kafka.Enabled() {
		publisher = events.NewKafkaPublisher(&cfg.Kafka)
		slog.Info("Publishing storefront events to kafka", slog.String("topic", cfg.Kafka.Topic))
	}

	defer func() {
		if err := publisher.Close(); err != nil {
			slog.Error("⚠️ Error closing event publisher", slog.String("error", err.Error()))
		}
	}()

	registry := clients.NewRegistry(&cfg.Services)
	emailService := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	notificationService := service.NewNotificationService(repos.Notification, emailService)
	catalogService := service.NewCatalogService(registry.Products, store, &cfg.Cache, &cfg.Catalog)
	authService := service.NewAuthService(registry.Auth, repository.NewRateLimitRepo(redisClient, &cfg.RateConfig), store, cfg.Cache.ProfileTTL)
	cartService := service.NewCartService(registry.Cart, catalogService, repository.NewGuestCartRepo(store, cfg.Cache.GuestCartTTL), publisher)
	orderService := service.NewOrderService(registry.Orders, publisher)
	checkoutService := service.NewCheckoutService(cartService, registry.Orders, registry.Payments, notificationService, publisher)
	contactService := service.NewContactService(repos.Contact, notificationService, publisher, cfg.SendGrid.SupportEmail)
	adminService := service.NewAdminService(registry.Admin, catalogService, repos.Contact, notificationService, publisher, registry.All())

	secureCookies := cfg.Security.CookieSecure || cfg.IsProduction()

	catalogHandler := handlers.NewCatalogHandler(catalogService, &cfg.Catalog)
	authHandler := handlers.NewAuthHandler(authService, cartService, middleware.CookieOptions{
		Name:   cfg.Security.CookieName,
		MaxAge: cfg.Security.CookieMaxAge,
		Secure: secureCookies,
	})
	cartHandler := handlers.NewCartHandler(cartService, cfg.Cache.GuestCartTTL, secureCookies)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	orderHandler := handlers.NewOrderHandler(orderService)
	contactHandler := handlers.NewContactHandler(contactService)
	adminHandler := handlers.NewAdminHandler(adminService)

	healthHandler, err := health.NewHealthHandler(cfg, version, registry.All())
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey), cfg.Security.CookieName)
	admin := func(next http.HandlerFunc) http.HandlerFunc {
		return authMiddleware.Authenticate(middleware.RequireAdmin(authService, next))
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", version))

	// Setup router
	routerMux := http.NewServeMux()

	routerMux.HandleFunc("GET /api/v1/home", catalogHandler.Home())
	routerMux.HandleFunc("GET /api/v1/products", catalogHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", catalogHandler.GetProduct())
	routerMux.HandleFunc("GET /api/v1/categories", catalogHandler.Categories())

	routerMux.HandleFunc("POST /api/v1/auth/register", authHandler.Register())
	routerMux.HandleFunc("POST /api/v1/auth/login", authHandler.Login())
	routerMux.HandleFunc("POST /api/v1/auth/google", authHandler.GoogleLogin())
	routerMux.HandleFunc("POST /api/v1/auth/logout", authHandler.Logout())
	routerMux.HandleFunc("GET /api/v1/auth/me", authMiddleware.Authenticate(authHandler.Me()))

	routerMux.HandleFunc("GET /api/v1/cart", authMiddleware.OptionalAuth(cartHandler.GetCart()))
	routerMux.HandleFunc("DELETE /api/v1/cart", authMiddleware.OptionalAuth(cartHandler.ClearCart()))
	routerMux.HandleFunc("POST /api/v1/cart/items", authMiddleware.OptionalAuth(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/cart/items/{productId}", authMiddleware.OptionalAuth(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{productId}", authMiddleware.OptionalAuth(cartHandler.RemoveItem()))
	routerMux.HandleFunc("POST /api/v1/cart/sync", authMiddleware.Authenticate(cartHandler.SyncCart()))

	routerMux.HandleFunc("POST /api/v1/checkout", authMiddleware.Authenticate(checkoutHandler.Checkout()))
	routerMux.HandleFunc("POST /api/v1/checkout/verify", authMiddleware.Authenticate(checkoutHandler.VerifyPayment()))

	routerMux.HandleFunc("GET /api/v1/orders", authMiddleware.Authenticate(orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", authMiddleware.Authenticate(orderHandler.GetOrder()))
	routerMux.HandleFunc("POST /api/v1/orders/{id}/cancel", authMiddleware.Authenticate(orderHandler.CancelOrder()))

	routerMux.HandleFunc("POST /api/v1/contact", authMiddleware.OptionalAuth(contactHandler.Submit()))

	routerMux.HandleFunc("GET /api/v1/admin/dashboard", admin(adminHandler.Dashboard()))
	routerMux.HandleFunc("GET /api/v1/admin/users", admin(adminHandler.ListUsers()))
	routerMux.HandleFunc("GET /api/v1/admin/orders", admin(adminHandler.ListOrders()))
	routerMux.HandleFunc("GET /api/v1/admin/orders/{id}", admin(adminHandler.GetOrder()))
	routerMux.HandleFunc("PUT /api/v1/admin/orders/{id}/status", admin(adminHandler.UpdateOrderStatus()))
	routerMux.HandleFunc("POST /api/v1/admin/products", admin(adminHandler.CreateProduct()))
	routerMux.HandleFunc("PUT /api/v1/admin/products/{id}", admin(adminHandler.UpdateProduct()))
	routerMux.HandleFunc("DELETE /api/v1/admin/products/{id}", admin(adminHandler.DeleteProduct()))
	routerMux.HandleFunc("GET /api/v1/admin/contact-messages", admin(adminHandler.ListContactMessages()))
	routerMux.HandleFunc("POST /api/v1/admin/contact-messages/{id}/resolve", admin(adminHandler.ResolveContactMessage()))
	routerMux.HandleFunc("GET /api/v1/admin/notifications", admin(adminHandler.ListNotifications()))
	routerMux.HandleFunc("GET /api/v1/admin/services/health", admin(adminHandler.ServicesHealth()))

	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "storefront")

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() { // Starts the HTTP server in a new goroutine so it doesn't block the main thread.

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
		slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
	}

}
