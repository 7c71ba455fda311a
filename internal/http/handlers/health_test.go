package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hongminglow/user-auth-be/internal/storage/memory"
)

type downPinger struct{}

func (downPinger) Ping(context.Context) error { return errors.New("no route to host") }

func getHealth(t *testing.T, h *HealthHandler) (int, map[string]string) {
	t.Helper()
	mux := http.NewServeMux()
	h.Register(mux)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHealthOK(t *testing.T) {
	code, body := getHealth(t, NewHealthHandler(time.Now().Add(-time.Minute), memory.NewUserStore()))
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "ok", body["status"])
	require.Equal(t, "ok", body["database"])
	require.NotEmpty(t, body["uptime"])
}

func TestHealthDegraded(t *testing.T) {
	code, body := getHealth(t, NewHealthHandler(time.Now(), downPinger{}))
	require.Equal(t, http.StatusServiceUnavailable, code)
	require.Equal(t, "degraded", body["status"])
	require.Equal(t, "unavailable", body["database"])
}
