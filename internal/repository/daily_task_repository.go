package repository

import (
	"context"

	"learntrack_backend/internal/model"
	"learntrack_backend/internal/store"
)

// DailyTaskRepository 每个用户一个集合，集合内最多一条进度记录
type DailyTaskRepository struct {
	store store.RecordStore
}

func NewDailyTaskRepository(s store.RecordStore) *DailyTaskRepository {
	return &DailyTaskRepository{store: s}
}

func (r *DailyTaskRepository) progress(userID string) collection[model.DailyTaskProgress] {
	return newCollection[model.DailyTaskProgress](r.store, model.DailyTasksCollection(userID))
}

// Get 没有保存过时返回 nil
func (r *DailyTaskRepository) Get(ctx context.Context, userID string) (*model.DailyTaskProgress, error) {
	items, err := r.progress(userID).all(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

func (r *DailyTaskRepository) Save(ctx context.Context, userID string, p model.DailyTaskProgress) error {
	return r.progress(userID).save(ctx, []model.DailyTaskProgress{p})
}
