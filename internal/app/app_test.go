package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"learntrack_backend/internal/config"
	"learntrack_backend/internal/model"
	"learntrack_backend/internal/store"
	"learntrack_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Server.Mode = gin.TestMode
	cfg.JWT.Secret = "app-test-secret"
	cfg.JWT.ExpireTime = time.Hour
	cfg.Store.Type = store.TypeMemory
	cfg.Storage.Type = util.StorageLocal
	cfg.Storage.LocalPath = filepath.Join(dir, "uploads")
	cfg.RateLimit.MaxRequests = 1000
	cfg.RateLimit.WindowMinutes = 1
	cfg.CORS.AllowedOrigins = []string{"http://localhost:3000"}
	cfg.Seed.SampleCourses = true
	cfg.Log.File = filepath.Join(dir, "app.log")
	return cfg
}

func TestNewApp(t *testing.T) {
	application, err := NewApp(testConfig(t))
	require.NoError(t, err)
	t.Cleanup(application.Close)

	serve := func(method, path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		application.Router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
		return w
	}

	t.Run("sample courses seeded", func(t *testing.T) {
		records, err := application.Store.Read(context.Background(), model.CollectionCourses)
		require.NoError(t, err)
		assert.Len(t, records, 5)
	})

	t.Run("health is public", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve(http.MethodGet, "/api/health").Code)
	})

	t.Run("metrics exposed", func(t *testing.T) {
		w := serve(http.MethodGet, "/metrics")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "http_requests_total")
	})

	t.Run("protected routes need a token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve(http.MethodGet, "/api/courses").Code)
		assert.Equal(t, http.StatusUnauthorized, serve(http.MethodGet, "/api/teacher/courses").Code)
	})

	t.Run("swagger doc served", func(t *testing.T) {
		w := serve(http.MethodGet, "/swagger/doc.json")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "/api/rankings")
	})

	t.Run("config reload updates allowed origins", func(t *testing.T) {
		newCfg := testConfig(t)
		newCfg.CORS.AllowedOrigins = []string{"https://learntrack.example.com"}
		for _, cb := range application.configCallbacks {
			cb(newCfg)
		}
		assert.True(t, application.origins.Allowed("https://learntrack.example.com"))
		assert.False(t, application.origins.Allowed("http://localhost:3000"))
	})
}

func TestNewAppServesUploadsAfterStorageFallback(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Type = util.StorageMinio
	cfg.Storage.MinioEndpoint = ""
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.Storage.LocalPath, "t1"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Storage.LocalPath, "t1", "clip.mp4"), []byte("video"), 0644))

	application, err := NewApp(cfg)
	require.NoError(t, err)
	t.Cleanup(application.Close)

	w := httptest.NewRecorder()
	application.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/uploads/t1/clip.mp4", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "video", w.Body.String())
}

func TestNewAppUnknownStore(t *testing.T) {
	cfg := testConfig(t)
	cfg.Store.Type = "cassandra"
	_, err := NewApp(cfg)
	assert.ErrorIs(t, err, store.ErrUnknownStoreType)
}
