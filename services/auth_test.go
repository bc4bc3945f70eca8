package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/chandrashekar-chandu/nature-market/models"
)

func newAuthFixture() (*memUserStore, *AuthService) {
	users := newMemUserStore()
	return users, NewAuthService(users, []byte("test-secret"))
}

func TestRegister(t *testing.T) {
	users, svc := newAuthFixture()

	user, err := svc.Register(context.Background(), "Alice", "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Empty(t, user.Cart)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("hunter22")),
		"password must be stored hashed")

	stored, err := users.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", stored.Password)

	_, err = svc.Register(context.Background(), "Alice Again", "alice@example.com", "other-pass")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLoginAndParseToken(t *testing.T) {
	_, svc := newAuthFixture()

	registered, err := svc.Register(context.Background(), "Bob", "bob@example.com", "secret123")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "bob@example.com", "wrong")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	token, user, err := svc.Login(context.Background(), "bob@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	subject, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, subject.UserID)
	assert.Equal(t, models.RoleUser, subject.Role)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, svc := newAuthFixture()

	_, err := svc.ParseToken("not-a-token")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	// Token signed with a different secret.
	other := NewAuthService(newMemUserStore(), []byte("other-secret"))
	_, err = other.Register(context.Background(), "Eve", "eve@example.com", "secret123")
	require.NoError(t, err)
	token, _, err := other.Login(context.Background(), "eve@example.com", "secret123")
	require.NoError(t, err)

	_, err = svc.ParseToken(token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestProfile(t *testing.T) {
	_, svc := newAuthFixture()

	registered, err := svc.Register(context.Background(), "Carol", "carol@example.com", "secret123")
	require.NoError(t, err)

	user, err := svc.Profile(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "Carol", user.Name)
}
