package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/matthews-wong/setaside-be/internal/authn"
	"github.com/matthews-wong/setaside-be/internal/config"
	"github.com/matthews-wong/setaside-be/internal/modules/auth"
	"github.com/matthews-wong/setaside-be/internal/modules/order"
	"github.com/matthews-wong/setaside-be/internal/modules/product"
	"github.com/matthews-wong/setaside-be/internal/modules/user"
)

func main() {
	// .env is optional outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Logger)

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	logger.Info().Msg("connected to database")

	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.Uploads.Dir).Msg("failed to create upload directory")
	}

	tokens := authn.NewTokens(cfg.JWT.Secret, time.Duration(cfg.JWT.TTLHours)*time.Hour)

	// ── Repositories & services ─────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	productRepo := product.NewPostgresRepository(db)
	orderRepo := order.NewPostgresRepository(db)

	mw := authn.NewMiddleware(tokens, userRepo, logger)

	userService := user.NewService(userRepo, logger)
	authService := auth.NewService(userRepo, tokens, logger)
	productService := product.NewService(productRepo, logger)
	orderService := order.NewService(orderRepo, productRepo, logger)

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(authn.RequestLogger(logger))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	uploadServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Uploads.Dir)))
	router.Get("/uploads/*", uploadServer.ServeHTTP)

	router.Route(cfg.Server.APIPrefix, func(r chi.Router) {
		auth.NewHandler(authService, userService, mw).RegisterRoutes(r)
		user.NewHandler(userService, mw).RegisterRoutes(r)
		product.NewHandler(productService, mw, cfg.Uploads.Dir).RegisterRoutes(r)
		order.NewHandler(orderService, mw).RegisterRoutes(r)
	})

	logger.Info().Str("addr", cfg.Server.Address()).Str("prefix", cfg.Server.APIPrefix).Msg("server starting")
	if err := http.ListenAndServe(cfg.Server.Address(), router); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
