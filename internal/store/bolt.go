package store

import (
	"context"
	"encoding/json"

	"go.etcd.io/bbolt"
)

var collectionsBucket = []byte("collections")

// BoltStore 单个 bucket，key 为集合名，value 为 JSON 数组
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(db *bbolt.DB) (*BoltStore, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(collectionsBucket)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Read(ctx context.Context, collection string) ([]json.RawMessage, error) {
	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(collectionsBucket)
		if b == nil {
			return nil
		}
		// bbolt 返回的切片只在事务内有效
		if v := b.Get([]byte(collection)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decodeArray(collection, data)
}

func (s *BoltStore) Write(ctx context.Context, collection string, records []json.RawMessage) error {
	data, err := encodeArray(collection, records)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(collectionsBucket)
		if err != nil {
			return err
		}
		return b.Put([]byte(collection), data)
	})
}

func (s *BoltStore) Ping(ctx context.Context) error {
	return s.db.View(func(tx *bbolt.Tx) error { return nil })
}
