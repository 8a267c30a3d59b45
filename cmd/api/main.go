package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/solestyle/shop-backend/internal/modules/auth"
	"github.com/solestyle/shop-backend/internal/modules/cart"
	"github.com/solestyle/shop-backend/internal/modules/catalog"
	"github.com/solestyle/shop-backend/internal/modules/checkout"
	"github.com/solestyle/shop-backend/internal/modules/user"
	"github.com/solestyle/shop-backend/internal/modules/wishlist"
	"github.com/solestyle/shop-backend/internal/pkg/cache"
	"github.com/solestyle/shop-backend/internal/pkg/config"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load configuration")
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		logrus.WithError(err).Fatal("open database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logrus.WithError(err).Fatal("ping database")
	}
	logrus.Info("connected to the database")

	redisCache := cache.NewRedisCache(cfg.Redis.Addr, "shop")

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	mw := auth.NewMiddleware(cfg.Auth.JWTSecret)

	// ── Identity & Sessions ─────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	user.NewHandler(userService).RegisterRoutes(router)

	authService := auth.NewService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.AdminEmail)
	auth.NewHandler(authService, cfg.Auth.TokenTTL).RegisterRoutes(router)

	// ── Catalog ─────────────────────────────────────────────
	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo, redisCache)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	// ── Cart & Wishlist ─────────────────────────────────────
	cartRepo := cart.NewPostgresRepository(db)
	cartService := cart.NewService(cartRepo)
	cart.NewHandler(cartService).RegisterRoutes(router, mw)

	wishlistRepo := wishlist.NewPostgresRepository(db)
	wishlistService := wishlist.NewService(wishlistRepo)
	wishlist.NewHandler(wishlistService).RegisterRoutes(router, mw)

	// ── Checkout & Orders ───────────────────────────────────
	gateway := checkout.NewSSLCommerzGateway(
		cfg.Gateway.StoreID,
		cfg.Gateway.StorePassword,
		cfg.Gateway.BaseURL,
		cfg.Gateway.Timeout,
	)
	orderRepo := checkout.NewPostgresRepository(db)
	checkoutService := checkout.NewService(orderRepo, cartRepo, gateway, checkout.Config{
		Currency:       cfg.Gateway.Currency,
		PublicBaseURL:  cfg.Server.PublicBaseURL,
		CallbackSecret: cfg.Gateway.CallbackSecret,
	})
	checkout.NewHandler(checkoutService, cfg.Server.ClientBaseURL).RegisterRoutes(router, mw)

	if cfg.Checkout.PendingTTL > 0 {
		go sweepStalePending(checkoutService, cfg.Checkout.PendingTTL, cfg.Checkout.SweepInterval)
	}

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("server is running"))
	})

	// ── Start Server ────────────────────────────────────────
	logrus.WithField("port", cfg.Server.Port).Info("shop API server starting")
	if err := http.ListenAndServe(":"+cfg.Server.Port, router); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}

// sweepStalePending reaps orphaned pending orders left behind by abandoned
// checkout attempts.
func sweepStalePending(svc checkout.Service, ttl, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if _, err := svc.ExpireStalePending(ctx, ttl); err != nil {
			logrus.WithError(err).Warn("stale pending sweep failed")
		}
		cancel()
	}
}
