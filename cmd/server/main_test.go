package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"souq-be/internal/config"
	"souq-be/internal/middleware"
	"souq-be/internal/storage"
	"souq-be/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		AppPort:       "8080",
		AppEnv:        "test",
		StorageDriver: config.DriverMemory,
		RateLimit:     100,
		RateBurst:     100,
		CORSOrigin:    "http://localhost:3000",
	}
}

func TestSetupRouter(t *testing.T) {
	api := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	router := setupRouter(testConfig(), api, middleware.NewRateLimiter(100, 100))

	t.Run("Panics become 500", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})

	t.Run("Preflight answered by CORS", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestNewServer(t *testing.T) {
	s := store.New(storage.NewMemory(), nil)
	srv := newServer(testConfig(), s, middleware.NewRateLimiter(100, 100))

	assert.Equal(t, ":8080", srv.Addr)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "OK")
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestRun(t *testing.T) {
	origStart := startServerFunc
	defer func() { startServerFunc = origStart }()

	var served http.Handler
	startServerFunc = func(ctx context.Context, srv *http.Server) error {
		served = srv.Handler
		return http.ErrServerClosed
	}

	t.Setenv("APP_ENV", "test")
	t.Setenv("STORAGE_DRIVER", "memory")

	t.Run("Starts and stops", func(t *testing.T) {
		t.Setenv("SEED_FILE", "")
		require.NoError(t, run())
		assert.NotNil(t, served)
	})

	t.Run("Seeds at startup", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "seed.yaml")
		require.NoError(t, os.WriteFile(path, []byte("products:\n  - name: Saffron\n    price: 25\n"), 0o600))
		t.Setenv("SEED_FILE", path)

		var body string
		startServerFunc = func(ctx context.Context, srv *http.Server) error {
			req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
			rr := httptest.NewRecorder()
			srv.Handler.ServeHTTP(rr, req)
			body = rr.Body.String()
			return nil
		}

		require.NoError(t, run())
		assert.True(t, strings.Contains(body, "Saffron"))
	})

	t.Run("Invalid config", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "redis")
		assert.Error(t, run())
	})

	t.Run("Storage failure", func(t *testing.T) {
		origOpen := openStorageFunc
		defer func() { openStorageFunc = origOpen }()
		openStorageFunc = func(ctx context.Context, cfg *config.Config) (storage.Backend, error) {
			return nil, assert.AnError
		}
		assert.ErrorIs(t, run(), assert.AnError)
	})
}
