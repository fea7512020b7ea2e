package configwatcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"learntrack_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchConfigReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cors:\n  allowed_origins: [\"http://a.test\"]\nstorage:\n  type: minio\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *config.Config, 1)
	go WatchConfig(ctx, dir, func(cfg *config.Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})

	// 等待 watcher 建立
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("cors:\n  allowed_origins: [\"http://b.test\"]\nstorage:\n  type: minio\n"), 0644))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, []string{"http://b.test"}, cfg.CORS.AllowedOrigins)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}
}
