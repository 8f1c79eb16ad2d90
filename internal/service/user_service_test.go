package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-server/internal/repository"
	"todo-server/internal/repository/jsonfile"
)

func newTestStore(t *testing.T) repository.Store {
	t.Helper()
	store, err := jsonfile.New(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestRegisterThenAuthenticate(t *testing.T) {
	users := NewUserService(newTestStore(t))
	ctx := context.Background()

	registered, err := users.Register(ctx, "a@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, registered.ID)
	assert.Equal(t, "a@example.com", registered.Email)
	assert.NotEqual(t, "secret123", registered.PasswordHash)
	assert.False(t, registered.CreatedAt.IsZero())

	authenticated, err := users.Authenticate(ctx, "a@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, authenticated.ID)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"missing email", "", "secret123", ErrMissingCredentials},
		{"missing password", "a@example.com", "", ErrMissingCredentials},
		{"short password", "a@example.com", "12345", ErrPasswordTooShort},
	}

	users := NewUserService(newTestStore(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := users.Register(context.Background(), tt.email, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := NewUserService(newTestStore(t))
	ctx := context.Background()

	_, err := users.Register(ctx, "a@example.com", "secret123")
	require.NoError(t, err)

	_, err = users.Register(ctx, "a@example.com", "different456")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthenticateFailures(t *testing.T) {
	users := NewUserService(newTestStore(t))
	ctx := context.Background()

	_, err := users.Register(ctx, "a@example.com", "secret123")
	require.NoError(t, err)

	// unknown email and wrong password are indistinguishable
	_, err = users.Authenticate(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = users.Authenticate(ctx, "a@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetByID(t *testing.T) {
	users := NewUserService(newTestStore(t))
	ctx := context.Background()

	registered, err := users.Register(ctx, "a@example.com", "secret123")
	require.NoError(t, err)

	got, err := users.GetByID(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.Email, got.Email)

	_, err = users.GetByID(ctx, "0")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
