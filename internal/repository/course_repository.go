package repository

import (
	"context"

	"learntrack_backend/internal/model"
	"learntrack_backend/internal/store"
)

type CourseRepository struct {
	courses collection[model.Course]
}

func NewCourseRepository(s store.RecordStore) *CourseRepository {
	return &CourseRepository{courses: newCollection[model.Course](s, model.CollectionCourses)}
}

func (r *CourseRepository) Create(ctx context.Context, course *model.Course) error {
	if course.ID == "" {
		course.ID = model.GenerateUUID()
	}
	return r.courses.append(ctx, *course)
}

// CreateMany 一次写入多门课程（示例数据）
func (r *CourseRepository) CreateMany(ctx context.Context, courses []model.Course) error {
	return r.courses.append(ctx, courses...)
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*model.Course, error) {
	return r.courses.first(ctx, func(c model.Course) bool { return c.ID == id })
}

func (r *CourseRepository) FindAll(ctx context.Context) ([]model.Course, error) {
	return r.courses.all(ctx)
}

func (r *CourseRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Course, error) {
	set := toSet(ids)
	return r.courses.filter(ctx, func(c model.Course) bool { return set[c.ID] })
}

func (r *CourseRepository) FindByTeacher(ctx context.Context, teacherID string) ([]model.Course, error) {
	return r.courses.filter(ctx, func(c model.Course) bool { return c.TeacherID == teacherID })
}

// Count 全局课程数量
func (r *CourseRepository) Count(ctx context.Context) (int, error) {
	return r.courses.count(ctx, func(model.Course) bool { return true })
}
