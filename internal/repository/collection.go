package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"learntrack_backend/internal/store"
)

var ErrRecordNotFound = errors.New("record not found")

// collection 对单个集合做整表读-改-写，没有锁也没有事务
type collection[T any] struct {
	store store.RecordStore
	name  string
}

func newCollection[T any](s store.RecordStore, name string) collection[T] {
	return collection[T]{store: s, name: name}
}

func (c collection[T]) all(ctx context.Context) ([]T, error) {
	records, err := c.store.Read(ctx, c.name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.name, err)
	}
	items := make([]T, 0, len(records))
	for _, r := range records {
		var item T
		if err := json.Unmarshal(r, &item); err != nil {
			return nil, fmt.Errorf("decode %s record: %w", c.name, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (c collection[T]) save(ctx context.Context, items []T) error {
	records := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("encode %s record: %w", c.name, err)
		}
		records = append(records, data)
	}
	if err := c.store.Write(ctx, c.name, records); err != nil {
		return fmt.Errorf("write %s: %w", c.name, err)
	}
	return nil
}

func (c collection[T]) append(ctx context.Context, newItems ...T) error {
	items, err := c.all(ctx)
	if err != nil {
		return err
	}
	return c.save(ctx, append(items, newItems...))
}

func (c collection[T]) filter(ctx context.Context, keep func(T) bool) ([]T, error) {
	items, err := c.all(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0)
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (c collection[T]) count(ctx context.Context, match func(T) bool) (int, error) {
	items, err := c.filter(ctx, match)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// first 返回第一条匹配记录，没有则返回 ErrRecordNotFound
func (c collection[T]) first(ctx context.Context, match func(T) bool) (*T, error) {
	items, err := c.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if match(items[i]) {
			return &items[i], nil
		}
	}
	return nil, ErrRecordNotFound
}

// update 修改第一条匹配记录并写回整个集合。mutate 返回错误时不写入。
func (c collection[T]) update(ctx context.Context, match func(T) bool, mutate func(*T) error) (*T, error) {
	items, err := c.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if !match(items[i]) {
			continue
		}
		if err := mutate(&items[i]); err != nil {
			return nil, err
		}
		if err := c.save(ctx, items); err != nil {
			return nil, err
		}
		updated := items[i]
		return &updated, nil
	}
	return nil, ErrRecordNotFound
}
