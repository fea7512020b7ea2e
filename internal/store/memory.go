package store

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore 进程内存储，主要用于测试
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string][]byte)}
}

func (s *MemoryStore) Read(ctx context.Context, collection string) ([]json.RawMessage, error) {
	s.mu.RLock()
	data := s.collections[collection]
	s.mu.RUnlock()
	return decodeArray(collection, data)
}

func (s *MemoryStore) Write(ctx context.Context, collection string, records []json.RawMessage) error {
	data, err := encodeArray(collection, records)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.collections[collection] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}
