package database

import (
	"os"
	"path/filepath"
	"time"

	"learntrack_backend/pkg/logger"

	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

// InitBolt 打开（必要时创建）本地 bbolt 文件
func InitBolt(path string) (*bbolt.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Bolt store opened", zap.String("path", path))
	return db, nil
}
