package entrypoint

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		HTTP: config.HTTP{CORSAllowedOrigins: []string{"*"}},
		Store: config.Store{
			Driver:        config.StoreDriverSQLite,
			DatabasePath:  filepath.Join(t.TempDir(), "bookshelf.db"),
			ProbeInterval: 10 * time.Millisecond,
			ProbeTimeout:  time.Second,
		},
		Log: config.Log{Level: "error"},
	}
}

func TestOpenStore(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		s, err := OpenStore(sqliteConfig(t))
		require.NoError(t, err)
		defer s.Close(context.Background())

		assert.IsType(t, &database.Database{}, s)
		assert.NoError(t, s.Ping(context.Background()))
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := sqliteConfig(t)
		cfg.Store.Driver = "postgres"

		_, err := OpenStore(cfg)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "postgres")
	})
}

func TestRunSeed(t *testing.T) {
	cfg := sqliteConfig(t)

	require.NoError(t, RunSeed(context.Background(), cfg))
	require.NoError(t, RunSeed(context.Background(), cfg))

	db, err := database.NewDatabase(cfg.Store.DatabasePath)
	require.NoError(t, err)
	defer db.Close(context.Background())

	authors, err := db.ListAuthors(context.Background())
	require.NoError(t, err)
	assert.Len(t, authors, 3)

	books, err := db.ListBooksWithAuthors(context.Background())
	require.NoError(t, err)
	assert.Len(t, books, 10)
}

func TestNewHandler_CORS(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("simple request", func(t *testing.T) {
		handler := NewHandler(inner, sqliteConfig(t))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/authors", nil)
		req.Header.Set("Origin", "https://example.com")

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		handler := NewHandler(inner, sqliteConfig(t))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/books", nil)
		req.Header.Set("Origin", "https://example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)

		handler.ServeHTTP(w, req)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodGet)
	})

	t.Run("disallowed origin", func(t *testing.T) {
		cfg := sqliteConfig(t)
		cfg.HTTP.CORSAllowedOrigins = []string{"https://books.example.com"}
		handler := NewHandler(inner, cfg)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/authors", nil)
		req.Header.Set("Origin", "https://evil.example.com")

		handler.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}
