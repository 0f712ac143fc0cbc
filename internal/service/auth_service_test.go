package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarundeepakjain/Quintz/internal/model"
)

func newTestAuth() (*AuthService, *fakeUserRepo) {
	users := newFakeUserRepo()
	return NewAuthService(users, "test-secret"), users
}

func TestSignupAndLogin(t *testing.T) {
	auth, users := newTestAuth()
	ctx := context.Background()

	err := auth.Signup(ctx, model.SignupRequest{
		Username: "bob",
		Name:     "Bob",
		Password: "hunter2",
		Role:     model.RoleParticipant,
	})
	require.NoError(t, err)

	// Role selects the stats shape.
	bob := users.users["bob"]
	require.NotNil(t, bob.ParticipantStats)
	assert.Nil(t, bob.AdminStats)
	assert.NotEqual(t, "hunter2", bob.PasswordHash)

	resp, err := auth.Login(ctx, model.LoginRequest{
		Username: "bob", Password: "hunter2", Role: model.RoleParticipant,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	claims, err := auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "bob", claims.Username)
	assert.Equal(t, model.RoleParticipant, claims.Role)
}

func TestSignupDuplicateUsername(t *testing.T) {
	auth, _ := newTestAuth()
	ctx := context.Background()

	req := model.SignupRequest{Username: "bob", Password: "x", Role: model.RoleParticipant}
	require.NoError(t, auth.Signup(ctx, req))

	err := auth.Signup(ctx, req)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLoginRejectsWrongPasswordAndRole(t *testing.T) {
	auth, _ := newTestAuth()
	ctx := context.Background()

	require.NoError(t, auth.Signup(ctx, model.SignupRequest{
		Username: "bob", Password: "hunter2", Role: model.RoleParticipant,
	}))

	_, err := auth.Login(ctx, model.LoginRequest{Username: "bob", Password: "wrong", Role: model.RoleParticipant})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Same credentials under the wrong role fail too.
	_, err = auth.Login(ctx, model.LoginRequest{Username: "bob", Password: "hunter2", Role: model.RoleAdmin})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login(ctx, model.LoginRequest{Username: "nobody", Password: "x", Role: model.RoleParticipant})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	auth, _ := newTestAuth()
	ctx := context.Background()

	require.NoError(t, auth.Signup(ctx, model.SignupRequest{
		Username: "bob", Password: "old", Role: model.RoleParticipant,
	}))

	err := auth.ChangePassword(ctx, "bob", "wrong", "new")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, auth.ChangePassword(ctx, "bob", "old", "new"))

	_, err = auth.Login(ctx, model.LoginRequest{Username: "bob", Password: "new", Role: model.RoleParticipant})
	assert.NoError(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	auth, _ := newTestAuth()

	_, err := auth.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
