// Package store 实现记录存储：按集合名保存扁平记录的整表读写。
// 只支持整集合覆盖写，没有部分更新和事务，并发写入时后写者覆盖先写者。
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	TypeMemory = "memory"
	TypeBolt   = "bolt"
	TypeRedis  = "redis"
	TypeMySQL  = "mysql"
)

var ErrUnknownStoreType = errors.New("unknown record store type")

// RecordStore 记录存储协作者
type RecordStore interface {
	// Read 返回集合中的全部记录，集合不存在时返回空切片
	Read(ctx context.Context, collection string) ([]json.RawMessage, error)
	// Write 用 records 整体覆盖集合
	Write(ctx context.Context, collection string, records []json.RawMessage) error
}

func decodeArray(collection string, data []byte) ([]json.RawMessage, error) {
	if len(data) == 0 {
		return []json.RawMessage{}, nil
	}
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", collection, err)
	}
	if records == nil {
		records = []json.RawMessage{}
	}
	return records, nil
}

func encodeArray(collection string, records []json.RawMessage) ([]byte, error) {
	if records == nil {
		records = []json.RawMessage{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode collection %s: %w", collection, err)
	}
	return data, nil
}

// Pinger 可选接口，健康检查时探测后端是否可用
type Pinger interface {
	Ping(ctx context.Context) error
}
