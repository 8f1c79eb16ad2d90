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
	// ErrTodoNotFound indicates an operation against an id absent from the user's partition.
	ErrTodoNotFound = errors.New("todo not found")
	// ErrEmptyTodoText indicates a create request whose text is empty after trimming.
	ErrEmptyTodoText = errors.New("todo text is required")
)

// TodoUpdate carries the optional fields of an update; nil means the field
// is left as is.
type TodoUpdate struct {
	Text      *string
	Completed *bool
}

// TodoService provides CRUD over one user's todo partition. Every operation
// loads the full partition, mutates it in memory, and saves it back; the
// cycle is not atomic across concurrent requests for the same user (see
// repository.Store).
type TodoService interface {
	List(ctx context.Context, userID string) ([]domain.Todo, error)
	Get(ctx context.Context, userID, todoID string) (*domain.Todo, error)
	Create(ctx context.Context, userID, text string) (*domain.Todo, error)
	Update(ctx context.Context, userID, todoID string, update TodoUpdate) (*domain.Todo, error)
	Toggle(ctx context.Context, userID, todoID string) (*domain.Todo, error)
	Delete(ctx context.Context, userID, todoID string) error
	ClearCompleted(ctx context.Context, userID string) (int, error)
}

type todoService struct {
	store repository.Store
}

func NewTodoService(store repository.Store) TodoService {
	return &todoService{store: store}
}

func (s *todoService) List(ctx context.Context, userID string) ([]domain.Todo, error) {
	return s.store.LoadTodos(ctx, userID)
}

func (s *todoService) Get(ctx context.Context, userID, todoID string) (*domain.Todo, error) {
	todos, err := s.store.LoadTodos(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range todos {
		if todos[i].ID == todoID {
			todo := todos[i]
			return &todo, nil
		}
	}
	return nil, ErrTodoNotFound
}

func (s *todoService) Create(ctx context.Context, userID, text string) (*domain.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyTodoText
	}

	todos, err := s.store.LoadTodos(ctx, userID)
	if err != nil {
		return nil, err
	}

	todo := domain.Todo{
		ID:        newID(),
		Text:      text,
		Completed: false,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}

	todos = append(todos, todo)
	if err := s.store.SaveTodos(ctx, userID, todos); err != nil {
		return nil, err
	}

	return &todo, nil
}

func (s *todoService) Update(ctx context.Context, userID, todoID string, update TodoUpdate) (*domain.Todo, error) {
	return s.mutate(ctx, userID, todoID, func(todo *domain.Todo) {
		if update.Text != nil {
			todo.Text = strings.TrimSpace(*update.Text)
		}
		if update.Completed != nil {
			todo.Completed = *update.Completed
		}
	})
}

func (s *todoService) Toggle(ctx context.Context, userID, todoID string) (*domain.Todo, error) {
	return s.mutate(ctx, userID, todoID, func(todo *domain.Todo) {
		todo.Completed = !todo.Completed
	})
}

func (s *todoService) Delete(ctx context.Context, userID, todoID string) error {
	todos, err := s.store.LoadTodos(ctx, userID)
	if err != nil {
		return err
	}

	remaining := todos[:0:0]
	for i := range todos {
		if todos[i].ID != todoID {
			remaining = append(remaining, todos[i])
		}
	}
	if len(remaining) == len(todos) {
		return ErrTodoNotFound
	}

	return s.store.SaveTodos(ctx, userID, remaining)
}

func (s *todoService) ClearCompleted(ctx context.Context, userID string) (int, error) {
	todos, err := s.store.LoadTodos(ctx, userID)
	if err != nil {
		return 0, err
	}

	active := todos[:0:0]
	for i := range todos {
		if !todos[i].Completed {
			active = append(active, todos[i])
		}
	}

	deleted := len(todos) - len(active)
	if err := s.store.SaveTodos(ctx, userID, active); err != nil {
		return 0, err
	}

	return deleted, nil
}

// mutate applies fn to the matching todo, stamps UpdatedAt, and saves the
// partition back.
func (s *todoService) mutate(ctx context.Context, userID, todoID string, fn func(*domain.Todo)) (*domain.Todo, error) {
	todos, err := s.store.LoadTodos(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range todos {
		if todos[i].ID != todoID {
			continue
		}
		fn(&todos[i])
		now := time.Now().UTC()
		todos[i].UpdatedAt = &now

		if err := s.store.SaveTodos(ctx, userID, todos); err != nil {
			return nil, err
		}
		todo := todos[i]
		return &todo, nil
	}

	return nil, ErrTodoNotFound
}
