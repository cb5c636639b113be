package sqlite

import (
	"context"
	"testing"
	"time"

	"accounts-backend/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, repo *UserRepository, id, email string) *entities.User {
	t.Helper()
	user := entities.NewUser(id, "Test User", email)
	user.PasswordHash = "$2a$10$hash"
	require.NoError(t, repo.Add(context.Background(), user))
	return user
}

func TestUserRepository_AddAndGetByID(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	seedUser(t, repo, "abc123", "Alice@Example.com")

	got, err := repo.GetByID(context.Background(), "ABC123")

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ABC123", got.UserID)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.True(t, got.IsActive)
	assert.False(t, got.IsAdmin)
	assert.Nil(t, got.UpdatedAt)
}

func TestUserRepository_GetByID_Missing(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	got, err := repo.GetByID(context.Background(), "NOBODY")

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepository_GetAll(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	seedUser(t, repo, "bbb222", "b@example.com")
	seedUser(t, repo, "aaa111", "a@example.com")

	users, err := repo.GetAll(context.Background())

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "AAA111", users[0].UserID)
	assert.Equal(t, "BBB222", users[1].UserID)
}

func TestUserRepository_Update(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	user := seedUser(t, repo, "abc123", "alice@example.com")

	user.Name = "Renamed"
	user.IsAdmin = true
	now := time.Now().UTC()
	user.UpdatedAt = &now
	require.NoError(t, repo.Update(context.Background(), user))

	got, err := repo.GetByID(context.Background(), "ABC123")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Renamed", got.Name)
	assert.True(t, got.IsAdmin)
	require.NotNil(t, got.UpdatedAt)
	assert.WithinDuration(t, now, *got.UpdatedAt, time.Second)
}

func TestUserRepository_Delete(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	seedUser(t, repo, "abc123", "alice@example.com")

	deleted, err := repo.Delete(context.Background(), "ABC123")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(context.Background(), "ABC123")
	require.NoError(t, err)
	assert.False(t, deleted)
}
