package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"rockbot-frontend/cmd"
	"rockbot-frontend/internal/api"
	"rockbot-frontend/internal/assistant"
	"rockbot-frontend/internal/backend"
	"rockbot-frontend/internal/database"
)

type FrontendConfig struct {
	BackendURL   string `env:"BACKEND_URL,notEmpty,required"`
	AssistantURL string `env:"ASSISTANT_URL,notEmpty,required"`
	Port         string `env:"PORT" envDefault:"4000"`
	AppDataDir   string `env:"APP_DATA_DIR" envDefault:"./rockbot-frontend"`
}

func main() {
	log.Println("Starting frontend gateway...")

	cmd.LoadEnvFile()

	var cfg FrontendConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("error parsing config: %v", err)
	}

	db, err := database.New(cfg.AppDataDir)
	if err != nil {
		log.Fatalf("Failed to open chat log cache: %v", err)
	}

	backendClient := backend.NewClient(cfg.BackendURL)
	assistantClient := assistant.NewClient(cfg.AssistantURL)

	// --- Chi Router Setup ---
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"}, // TODO: make this an env var
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(90 * time.Second))

	r.Get("/health", api.RestHandler(func(r *http.Request) (any, error) { return nil, nil }))

	api.NewAuthService(backendClient).AddRoutes(r)
	api.NewChatService(db, assistantClient).AddRoutes(r)
	api.NewAdminService(backendClient).AddRoutes(r)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Goroutine for graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Fatalf("Server forced to shutdown: %v", err)
		}
	}()

	log.Printf("Frontend gateway listening on port %s", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on %s: %v\n", cfg.Port, err)
	}

	log.Println("Server stopped.")
}
