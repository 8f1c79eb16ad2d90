// Package jsonfile persists users and todos as JSON documents on disk:
// one users.json for the whole user collection and one todos/<userID>.json
// per user partition, created lazily on first write.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"todo-server/internal/domain"
	"todo-server/internal/repository"
)

const (
	usersFile = "users.json"
	todosDir  = "todos"
)

// Store reads and rewrites whole JSON documents per call. It keeps no cache
// and no locks; the weak-consistency contract of repository.Store applies.
type Store struct {
	dataDir string
}

// New creates the data directory layout and returns a store rooted at dataDir.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dataDir, todosDir), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dataDir: dataDir}, nil
}

var _ repository.Store = (*Store)(nil)

func (s *Store) LoadUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := readDocument(filepath.Join(s.dataDir, usersFile), &users); err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return users, nil
}

func (s *Store) SaveUsers(ctx context.Context, users []domain.User) error {
	if err := writeDocument(filepath.Join(s.dataDir, usersFile), users); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

func (s *Store) LoadTodos(ctx context.Context, userID string) ([]domain.Todo, error) {
	var todos []domain.Todo
	if err := readDocument(s.todosFile(userID), &todos); err != nil {
		return nil, fmt.Errorf("load todos for user %s: %w", userID, err)
	}
	return todos, nil
}

func (s *Store) SaveTodos(ctx context.Context, userID string, todos []domain.Todo) error {
	if err := writeDocument(s.todosFile(userID), todos); err != nil {
		return fmt.Errorf("save todos for user %s: %w", userID, err)
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) todosFile(userID string) string {
	// The user ID is generated internally and never contains path
	// separators, but keep Base as a guard against a hostile caller.
	return filepath.Join(s.dataDir, todosDir, filepath.Base(userID)+".json")
}

// readDocument decodes a JSON document into out. A missing file is the
// first-run case and leaves out untouched.
func readDocument(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

func writeDocument(path string, in any) error {
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
