package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/user-auth-be/internal/auth"
	"github.com/hongminglow/user-auth-be/internal/config"
	"github.com/hongminglow/user-auth-be/internal/middleware"
	"github.com/hongminglow/user-auth-be/internal/storage/memory"
)

func TestHandlerRoutes(t *testing.T) {
	hasher, err := auth.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)
	cfg := config.Config{Port: "5001", DBTimeout: time.Second, CORSOrigins: []string{"*"}}

	ts := httptest.NewServer(Handler(cfg, memory.NewUserStore(), hasher))
	defer ts.Close()

	cases := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodPost, "/api/auth/register", `{"email":"s@x.com","password":"p"}`, http.StatusCreated},
		{http.MethodPost, "/api/auth/login", `{"email":"s@x.com","password":"p"}`, http.StatusOK},
		{http.MethodPost, "/api/auth/forgot-password", "", http.StatusOK},
		{http.MethodPost, "/api/auth/unknown", "", http.StatusNotFound},
	}
	for _, tc := range cases {
		req, err := http.NewRequest(tc.method, ts.URL+tc.path, bytes.NewBufferString(tc.body))
		require.NoError(t, err)
		req.Header.Set("Origin", "https://app.example")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		require.Equal(t, tc.want, resp.StatusCode, tc.path)
		require.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader), tc.path)
		require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"), tc.path)
	}
}

func TestNewUsesConfiguredAddress(t *testing.T) {
	hasher, err := auth.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)

	srv := New(config.Config{Port: "6001"}, memory.NewUserStore(), hasher)
	require.Equal(t, ":6001", srv.inner.Addr)
}
