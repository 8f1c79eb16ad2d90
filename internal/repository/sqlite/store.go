// Package sqlite is an alternate record store backend. It keeps the exact
// contract of repository.Store, whole-collection loads and full-replace
// saves, so swapping it for the JSON document store changes nothing for
// callers.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"todo-server/internal/domain"
	"todo-server/internal/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS todos (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL,
	user_id TEXT NOT NULL,
	text TEXT NOT NULL,
	completed INTEGER NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME
);
CREATE INDEX IF NOT EXISTS idx_todos_user ON todos (user_id);
`

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

var _ repository.Store = (*Store)(nil)

// Init creates the tables. The seq column preserves insertion order across
// the full-replace saves.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

func (s *Store) LoadUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, email, password_hash, created_at
FROM users
ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func (s *Store) SaveUsers(ctx context.Context, users []domain.User) error {
	return s.replace(ctx, `DELETE FROM users`, nil, func(tx *sql.Tx) error {
		for i := range users {
			u := &users[i]
			if _, err := tx.ExecContext(ctx, `
INSERT INTO users (id, email, password_hash, created_at)
VALUES (?, ?, ?, ?)`,
				u.ID, u.Email, u.PasswordHash, u.CreatedAt,
			); err != nil {
				return fmt.Errorf("insert user %s: %w", u.ID, err)
			}
		}
		return nil
	})
}

func (s *Store) LoadTodos(ctx context.Context, userID string) ([]domain.Todo, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, user_id, text, completed, created_at, updated_at
FROM todos
WHERE user_id = ?
ORDER BY seq`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("select todos: %w", err)
	}
	defer rows.Close()

	var todos []domain.Todo
	for rows.Next() {
		var t domain.Todo
		var updatedAt sql.NullTime
		if err := rows.Scan(&t.ID, &t.UserID, &t.Text, &t.Completed, &t.CreatedAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		if updatedAt.Valid {
			v := updatedAt.Time
			t.UpdatedAt = &v
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todos: %w", err)
	}
	return todos, nil
}

func (s *Store) SaveTodos(ctx context.Context, userID string, todos []domain.Todo) error {
	return s.replace(ctx, `DELETE FROM todos WHERE user_id = ?`, []any{userID}, func(tx *sql.Tx) error {
		for i := range todos {
			t := &todos[i]
			var updatedAt sql.NullTime
			if t.UpdatedAt != nil {
				updatedAt = sql.NullTime{Time: *t.UpdatedAt, Valid: true}
			}
			if _, err := tx.ExecContext(ctx, `
INSERT INTO todos (id, user_id, text, completed, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
				t.ID, t.UserID, t.Text, t.Completed, t.CreatedAt, updatedAt,
			); err != nil {
				return fmt.Errorf("insert todo %s: %w", t.ID, err)
			}
		}
		return nil
	})
}

func (s *Store) Close() error {
	return s.db.Close()
}

// replace runs a delete statement and the given inserts inside one
// transaction, making a save an atomic full rewrite of its collection.
func (s *Store) replace(ctx context.Context, deleteStmt string, deleteArgs []any, insert func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteStmt, deleteArgs...); err != nil {
		return fmt.Errorf("clear collection: %w", err)
	}
	if err := insert(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
