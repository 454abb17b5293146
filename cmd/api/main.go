package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/cloudkeep/cloudkeep-auth/internal/appwrite"
	"github.com/cloudkeep/cloudkeep-auth/internal/config"
	"github.com/cloudkeep/cloudkeep-auth/internal/handler"
	"github.com/cloudkeep/cloudkeep-auth/internal/middleware"
	"github.com/cloudkeep/cloudkeep-auth/internal/service"
	"github.com/cloudkeep/cloudkeep-auth/internal/token"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	codec := token.NewCodec(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.AppName, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	backend := appwrite.NewClient(
		cfg.AppwriteEndpoint,
		cfg.AppwriteProjectID,
		cfg.AppwriteAPIKey,
		cfg.AppwriteDatabaseID,
		cfg.UsersCollectionID,
	)

	authService := service.NewAuthService(backend, codec, cfg.FrontendURL)
	authHandler := handler.NewAuthHandler(authService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message": "Welcome to " + cfg.AppName,
			"version": cfg.APIVersion,
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	base := "/" + cfg.APIVersion + "/auth"

	r.With(middleware.RateLimit(cfg.RegisterLimitPerMin)).Post(base+"/register", authHandler.HandleRegister)
	r.With(middleware.RateLimit(cfg.LoginLimitPerMin)).Post(base+"/login", authHandler.HandleLogin)

	// Refresh carries no rate limit: it already requires possession of a
	// valid signed refresh token.
	r.Post(base+"/refresh", authHandler.HandleRefresh)

	r.Group(func(r chi.Router) {
		r.Use(middleware.BearerAuth(codec))
		r.With(middleware.RateLimit(cfg.MeLimitPerMin)).Get(base+"/me", authHandler.HandleMe)
		r.With(middleware.RateLimit(cfg.LogoutLimitPerMin)).Post(base+"/logout", authHandler.HandleLogout)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
