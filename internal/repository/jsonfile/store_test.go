package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-server/internal/domain"
)

func TestLoadOnFirstRun(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	users, err := store.LoadUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)

	todos, err := store.LoadTodos(context.Background(), "1700000000000")
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestUsersRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	users := []domain.User{
		{ID: "1", Email: "a@example.com", PasswordHash: "$2a$10$abc", CreatedAt: created},
		{ID: "2", Email: "b@example.com", PasswordHash: "$2a$10$def", CreatedAt: created},
	}
	require.NoError(t, store.SaveUsers(context.Background(), users))

	// a fresh store must see the same collection: nothing is cached in memory
	reopened, err := New(dir)
	require.NoError(t, err)
	loaded, err := reopened.LoadUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, users, loaded)
}

func TestSaveReplacesWholeCollection(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.SaveUsers(ctx, []domain.User{{ID: "1", Email: "a@example.com"}}))
	require.NoError(t, store.SaveUsers(ctx, []domain.User{{ID: "2", Email: "b@example.com"}}))

	users, err := store.LoadUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "2", users[0].ID)
}

func TestTodoPartitionsAreIsolated(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)
	ctx := context.Background()

	todosA := []domain.Todo{{ID: "10", Text: "buy milk", UserID: "userA", CreatedAt: time.Now().UTC().Truncate(time.Second)}}
	todosB := []domain.Todo{{ID: "20", Text: "walk dog", UserID: "userB", CreatedAt: time.Now().UTC().Truncate(time.Second)}}
	require.NoError(t, store.SaveTodos(ctx, "userA", todosA))
	require.NoError(t, store.SaveTodos(ctx, "userB", todosB))

	gotA, err := store.LoadTodos(ctx, "userA")
	require.NoError(t, err)
	assert.Equal(t, todosA, gotA)

	gotB, err := store.LoadTodos(ctx, "userB")
	require.NoError(t, err)
	assert.Equal(t, todosB, gotB)

	// one document per user, created lazily on first write
	assert.FileExists(t, filepath.Join(dir, "todos", "userA.json"))
	assert.FileExists(t, filepath.Join(dir, "todos", "userB.json"))
	assert.NoFileExists(t, filepath.Join(dir, "todos", "userC.json"))
}

func TestLoadCorruptDocumentFails(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"), []byte("{not json"), 0o644))

	_, err = store.LoadUsers(context.Background())
	assert.Error(t, err)
}

func TestTodosPreserveInsertionOrder(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	var todos []domain.Todo
	for _, id := range []string{"3", "1", "2"} {
		todos = append(todos, domain.Todo{ID: id, Text: "t" + id, UserID: "u", CreatedAt: time.Now().UTC().Truncate(time.Second)})
	}
	require.NoError(t, store.SaveTodos(ctx, "u", todos))

	loaded, err := store.LoadTodos(ctx, "u")
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	for i := range todos {
		assert.Equal(t, todos[i].ID, loaded[i].ID)
	}
}
