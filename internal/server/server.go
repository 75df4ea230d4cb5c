// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the composition root: the one place where the store, the auth
// services, the handlers, and the middleware chain are wired together.
// main.go only reads config and calls New/Start.
//
// DEPENDENCY FLOW:
//
//	mongodb.DB → AuthService/JobService → AuthHandler/JobHandler → routes
//	           ↘ TokenService (signing secret held here for process lifetime)
//
// Handlers never touch the store; services never touch HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tanvir/jobtrackr/internal/auth"
	"github.com/tanvir/jobtrackr/internal/handler"
	"github.com/tanvir/jobtrackr/internal/middleware"
	"github.com/tanvir/jobtrackr/internal/repository/mongodb"
	"github.com/tanvir/jobtrackr/internal/service"
)

// Config holds everything the server needs at construction time.
type Config struct {
	Port      string
	MongoURI  string
	MongoDB   string
	JWTSecret string
	TokenTTL  time.Duration
}

// Server owns the router and the store connection. The connection is created
// once here and closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *mongodb.DB
}

// New connects to the document store and wires the full dependency graph.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := mongodb.New(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return nil, fmt.Errorf("opening document store: %w", err)
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		_ = db.Close(ctx)
		return nil, fmt.Errorf("creating token service: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	s.setupRoutes(tokens)

	return s, nil
}

// setupRoutes configures middleware and route handlers.
//
// ROUTE MAP:
//
//	GET    /          → liveness (public)
//	POST   /register  → create account (public)
//	POST   /login     → issue access token (public)
//	POST   /jobs      → create job        (bearer token)
//	GET    /jobs      → list jobs         (bearer token)
//	GET    /jobs/{id} → get job           (bearer token)
//	PUT    /jobs/{id} → update job        (bearer token)
//	DELETE /jobs/{id} → delete job        (bearer token)
//
// MIDDLEWARE ORDER: RequestID first so the logger can report it; Recoverer
// before our logger so a panic still produces a request log line with a 500.
func (s *Server) setupRoutes(tokens *auth.TokenService) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	passwords := auth.NewPasswordService()
	authService := service.NewAuthService(s.db, passwords, tokens, s.logger)
	jobService := service.NewJobService(s.db, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	jobHandler := handler.NewJobHandler(jobService, s.logger)

	s.router.Get("/", handler.HandleHome)
	s.router.Post("/register", authHandler.HandleRegister)
	s.router.Post("/login", authHandler.HandleLogin)

	// Every /jobs route requires a valid, unexpired bearer token.
	s.router.Route("/jobs", func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))
		r.Post("/", jobHandler.HandleCreate)
		r.Get("/", jobHandler.HandleList)
		r.Get("/{id}", jobHandler.HandleGet)
		r.Put("/{id}", jobHandler.HandleUpdate)
		r.Delete("/{id}", jobHandler.HandleDelete)
	})
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests (30s
// budget), disconnect from the store.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:         ":" + s.config.Port,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.String("port", s.config.Port),
			slog.String("database", s.config.MongoDB),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		if err := s.db.Close(ctx); err != nil {
			return fmt.Errorf("closing document store: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
