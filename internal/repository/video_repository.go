package repository

import (
	"context"

	"learntrack_backend/internal/model"
	"learntrack_backend/internal/store"
)

type VideoRepository struct {
	videos collection[model.VideoMetadata]
}

func NewVideoRepository(s store.RecordStore) *VideoRepository {
	return &VideoRepository{videos: newCollection[model.VideoMetadata](s, model.CollectionVideos)}
}

func (r *VideoRepository) Create(ctx context.Context, v *model.VideoMetadata) error {
	if v.ID == "" {
		v.ID = model.GenerateUUID()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = model.Now()
	}
	return r.videos.append(ctx, *v)
}

func (r *VideoRepository) FindByCourse(ctx context.Context, courseID string) ([]model.VideoMetadata, error) {
	return r.videos.filter(ctx, func(v model.VideoMetadata) bool { return v.CourseID == courseID })
}
