package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"todo-server/internal/domain"
	"todo-server/internal/repository"
)

var (
	// ErrMissingCredentials indicates a registration or login request without email or password.
	ErrMissingCredentials = errors.New("email and password are required")
	// ErrPasswordTooShort indicates a registration password below the minimum length.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	// ErrUserAlreadyExists is returned when registering an email that is already taken.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidCredentials indicates an unknown email or a wrong password.
	// Deliberately the same error for both so a caller cannot probe which
	// emails are registered.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserNotFound indicates a lookup for an id with no matching record.
	ErrUserNotFound = errors.New("user not found")
)

const minPasswordLength = 6

// UserService describes account lifecycle operations.
type UserService interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

type userService struct {
	store repository.Store
}

func NewUserService(store repository.Store) UserService {
	return &userService{store: store}
}

func (s *userService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	if len(password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	users, err := s.store.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return nil, ErrUserAlreadyExists
		}
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := domain.User{
		ID:           newID(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	users = append(users, user)
	if err := s.store.SaveUsers(ctx, users); err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	users, err := s.store.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			if !VerifyPassword(password, users[i].PasswordHash) {
				return nil, ErrInvalidCredentials
			}
			user := users[i]
			return &user, nil
		}
	}

	return nil, ErrInvalidCredentials
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	users, err := s.store.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			user := users[i]
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}
