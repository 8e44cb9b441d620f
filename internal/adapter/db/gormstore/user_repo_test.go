package gormstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	domain "users-page-service/internal/domain/user"
	pkgerrors "users-page-service/pkg/errors"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A single connection keeps the in-memory database shared.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(db))
	return db
}

func newUser(i int) *domain.User {
	return &domain.User{
		FirstName: fmt.Sprintf("First%d", i),
		LastName:  fmt.Sprintf("Last%d", i),
		Email:     fmt.Sprintf("user%d@example.com", i),
		Phone:     fmt.Sprintf("+7999%07d", i),
	}
}

func TestUserRepo_Create(t *testing.T) {
	repo := NewUserRepo(setupTestDB(t), zaptest.NewLogger(t))

	created, err := repo.Create(context.Background(), newUser(1))
	require.NoError(t, err)

	assert.Positive(t, created.ID)
	assert.Equal(t, "First1", created.FirstName)
	assert.Equal(t, "user1@example.com", created.Email)

	updatedAt, err := time.Parse(time.RFC3339, created.UpdatedAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), updatedAt, time.Minute)
}

func TestUserRepo_Create_Nil(t *testing.T) {
	repo := NewUserRepo(setupTestDB(t), zaptest.NewLogger(t))

	_, err := repo.Create(context.Background(), nil)
	assert.Error(t, err)
}

func TestUserRepo_Create_DuplicateEmail(t *testing.T) {
	repo := NewUserRepo(setupTestDB(t), zaptest.NewLogger(t))

	_, err := repo.Create(context.Background(), newUser(1))
	require.NoError(t, err)

	_, err = repo.Create(context.Background(), newUser(1))
	assert.Error(t, err)
}

func TestUserRepo_GetByID(t *testing.T) {
	repo := NewUserRepo(setupTestDB(t), zaptest.NewLogger(t))

	created, err := repo.Create(context.Background(), newUser(1))
	require.NoError(t, err)

	got, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = repo.GetByID(context.Background(), 999)
	var notFound *pkgerrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestUserRepo_GetByEmail(t *testing.T) {
	repo := NewUserRepo(setupTestDB(t), zaptest.NewLogger(t))

	_, err := repo.Create(context.Background(), newUser(1))
	require.NoError(t, err)

	got, err := repo.GetByEmail(context.Background(), "user1@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Last1", got.LastName)

	got, err = repo.GetByEmail(context.Background(), "missing@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepo_ListAllAndCount(t *testing.T) {
	repo := NewUserRepo(setupTestDB(t), zaptest.NewLogger(t))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	users, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)

	for i := 1; i <= 5; i++ {
		_, err := repo.Create(context.Background(), newUser(i))
		require.NoError(t, err)
	}

	n, err = repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	users, err = repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 5)
	for i := 1; i < len(users); i++ {
		assert.Less(t, users[i-1].ID, users[i].ID)
	}
	assert.Equal(t, "user1@example.com", users[0].Email)
}
