package repository

import (
	"context"
	"strings"

	"learntrack_backend/internal/model"
	"learntrack_backend/internal/store"
)

type UserRepository struct {
	users collection[model.User]
}

func NewUserRepository(s store.RecordStore) *UserRepository {
	return &UserRepository{users: newCollection[model.User](s, model.CollectionUsers)}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = model.GenerateUUID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = model.Now()
	}
	return r.users.append(ctx, *user)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.users.first(ctx, func(u model.User) bool { return u.ID == id })
}

// FindByEmail 邮箱比较不区分大小写
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.users.first(ctx, func(u model.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *UserRepository) FindAll(ctx context.Context) ([]model.User, error) {
	return r.users.all(ctx)
}

func (r *UserRepository) FindByRole(ctx context.Context, role model.UserRole) ([]model.User, error) {
	return r.users.filter(ctx, func(u model.User) bool { return u.Role == role })
}

// FindByIDs 按集合中的顺序返回
func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	set := toSet(ids)
	return r.users.filter(ctx, func(u model.User) bool { return set[u.ID] })
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
