package server

import (
	"context"
	"net/http"
	"time"

	"github.com/hongminglow/user-auth-be/internal/auth"
	"github.com/hongminglow/user-auth-be/internal/config"
	"github.com/hongminglow/user-auth-be/internal/http/handlers"
	"github.com/hongminglow/user-auth-be/internal/middleware"
	"github.com/hongminglow/user-auth-be/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.UserStore, hasher *auth.PasswordHasher) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           Handler(cfg, store, hasher),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Handler builds the routed, middleware-wrapped handler tree.
func Handler(cfg config.Config, store storage.UserStore, hasher *auth.PasswordHasher) http.Handler {
	mux := http.NewServeMux()
	var pinger storage.Pinger
	if p, ok := store.(storage.Pinger); ok {
		pinger = p
	}
	handlers.NewHealthHandler(time.Now(), pinger).Register(mux)
	handlers.NewAuthHandler(store, hasher, &cfg).Register(mux)

	return middleware.Logging(middleware.Recover(middleware.CORS(cfg.CORSOrigins, mux)))
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
