package service

import (
	"context"
	"testing"

	"learntrack_backend/internal/config"
	"learntrack_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStorageServiceFallsBackToLocal(t *testing.T) {
	root := t.TempDir()
	cfg := &config.Config{}
	cfg.Storage.Type = util.StorageMinio
	cfg.Storage.LocalPath = root
	cfg.Storage.MinioBucket = "course-videos"

	// 空 endpoint 在 minio.New 阶段即失败，不访问网络
	s := NewStorageService(context.Background(), cfg)

	got, ok := s.LocalRoot()
	require.True(t, ok)
	assert.Equal(t, root, got)
}

func TestStorageServiceLocalRoot(t *testing.T) {
	s := &StorageService{Provider: &MinioStorageProvider{Bucket: "course-videos"}}
	_, ok := s.LocalRoot()
	assert.False(t, ok)

	s = &StorageService{Provider: &LocalStorageProvider{Root: "uploads"}}
	root, ok := s.LocalRoot()
	assert.True(t, ok)
	assert.Equal(t, "uploads", root)
}
