package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/hongminglow/user-auth-be/internal/http/respond"
	"github.com/hongminglow/user-auth-be/internal/storage"
)

const healthPingTimeout = 2 * time.Second

// HealthHandler returns uptime and store connectivity.
type HealthHandler struct {
	startedAt time.Time
	store     storage.Pinger
}

// NewHealthHandler creates a health endpoint handler. store may be nil.
func NewHealthHandler(startedAt time.Time, store storage.Pinger) *HealthHandler {
	return &HealthHandler{startedAt: startedAt, store: store}
}

// Register wires the handler into a ServeMux.
func (h *HealthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.handle)
}

func (h *HealthHandler) handle(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	status, code, database := "ok", http.StatusOK, "ok"
	if h.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			log.Printf("health: store ping failed: %v", err)
			status, code, database = "degraded", http.StatusServiceUnavailable, "unavailable"
		}
	}
	respond.JSON(w, code, map[string]string{
		"status":   status,
		"uptime":   time.Since(h.startedAt).Truncate(time.Second).String(),
		"database": database,
	})
}
