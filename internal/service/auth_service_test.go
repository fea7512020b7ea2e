package service

import (
	"context"
	"testing"
	"time"

	"learntrack_backend/internal/config"
	"learntrack_backend/internal/model"
	"learntrack_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(r *repos) *AuthService {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour}}
	return NewAuthService(r.users, cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	svc := newAuthService(r)

	user, err := svc.Register(ctx, RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1", Role: model.Student})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Empty(t, user.PasswordHash)

	stored, err := r.users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash)

	res, err := svc.Login(ctx, "ada@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, res.User.ID)

	claims, err := util.ParseJWT(res.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.Student, claims.Role)

	_, err = svc.Login(ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestRegisterRejects(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(newRepos())

	_, err := svc.Register(ctx, RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret1", Role: model.Teacher})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{Name: "B", Email: "A@example.com", Password: "secret2", Role: model.Student})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)

	_, err = svc.Register(ctx, RegisterRequest{Name: "C", Email: "c@example.com", Password: "secret3", Role: "admin"})
	assert.ErrorIs(t, err, util.ErrInvalidRole)

	_, err = svc.Register(ctx, RegisterRequest{Name: " ", Email: "d@example.com", Password: "secret4", Role: model.Student})
	assert.ErrorIs(t, err, util.ErrMissingField)
}
