package repository

import (
	"context"

	"todo-server/internal/domain"
)

// Store defines whole-collection persistence for users and per-user todo
// partitions. Loads return a full snapshot (empty on first run); saves fully
// replace the collection or partition. There is no locking: two concurrent
// saves to the same partition race and the last writer wins. Callers own the
// read-modify-write cycle and must not assume it is atomic.
type Store interface {
	LoadUsers(ctx context.Context) ([]domain.User, error)
	SaveUsers(ctx context.Context, users []domain.User) error
	LoadTodos(ctx context.Context, userID string) ([]domain.Todo, error)
	SaveTodos(ctx context.Context, userID string, todos []domain.Todo) error
	Close() error
}
