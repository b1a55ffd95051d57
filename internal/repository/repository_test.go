package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"thaichat/internal/database"
	"thaichat/internal/models"
	"thaichat/internal/seed"
	"thaichat/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, seed.Database(db, false))
	return db
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New()
}

func isNotFound(err error) bool {
	var appErr *models.AppError
	return errors.As(err, &appErr) && appErr.Code == "NOT_FOUND"
}

func isConflict(err error) bool {
	var appErr *models.AppError
	return errors.As(err, &appErr) && appErr.Code == "CONFLICT"
}

func TestGormUserRepository(t *testing.T) {
	repo := NewGormUserRepository(newTestDB(t))
	ctx := context.Background()

	t.Run("GetByID seeded", func(t *testing.T) {
		user, err := repo.GetByID(ctx, 18581680)
		require.NoError(t, err)
		assert.Equal(t, "panida", user.Username)
	})

	t.Run("GetByID missing", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 424242)
		assert.True(t, isNotFound(err))
	})

	t.Run("FindByUsernameOrEmail", func(t *testing.T) {
		byName, err := repo.FindByUsernameOrEmail(ctx, "kuyyy", "")
		require.NoError(t, err)
		require.NotNil(t, byName)
		assert.Equal(t, int64(71157855), byName.ID)

		byEmail, err := repo.FindByUsernameOrEmail(ctx, "", "admin@thaichat.com")
		require.NoError(t, err)
		require.NotNil(t, byEmail)
		assert.Equal(t, "admin", byEmail.Username)

		absent, err := repo.FindByUsernameOrEmail(ctx, "ghost", "ghost@example.com")
		require.NoError(t, err)
		assert.Nil(t, absent)

		neither, err := repo.FindByUsernameOrEmail(ctx, "", "")
		require.NoError(t, err)
		assert.Nil(t, neither)
	})

	t.Run("Create and Count", func(t *testing.T) {
		before, err := repo.Count(ctx)
		require.NoError(t, err)

		user := &models.User{Username: "extra", Email: "extra@example.com", Password: "x"}
		require.NoError(t, repo.Create(ctx, user))
		assert.NotZero(t, user.ID)

		after, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, before+1, after)
	})

	t.Run("Create duplicate identity conflicts", func(t *testing.T) {
		before, err := repo.Count(ctx)
		require.NoError(t, err)

		err = repo.Create(ctx, &models.User{Username: "panida", Email: "other@example.com", Password: "x"})
		assert.True(t, isConflict(err), "duplicate username must conflict, got %v", err)

		after, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("Update", func(t *testing.T) {
		user, err := repo.GetByID(ctx, 18581680)
		require.NoError(t, err)

		bio := "new bio"
		user.Bio = &bio
		require.NoError(t, repo.Update(ctx, user))

		reloaded, err := repo.GetByID(ctx, 18581680)
		require.NoError(t, err)
		require.NotNil(t, reloaded.Bio)
		assert.Equal(t, "new bio", *reloaded.Bio)
	})
}

func TestGormMessageRepository(t *testing.T) {
	repo := NewGormMessageRepository(newTestDB(t))
	ctx := context.Background()

	t.Run("List seeded in creation order", func(t *testing.T) {
		messages, err := repo.List(ctx, 50)
		require.NoError(t, err)
		require.Len(t, messages, 3)
		assert.Equal(t, int64(1), messages[0].ID)
		assert.Equal(t, int64(3), messages[2].ID)
	})

	t.Run("List window is a suffix", func(t *testing.T) {
		for i := 0; i < 10; i++ {
			require.NoError(t, repo.Create(ctx, &models.Message{
				Content:  fmt.Sprintf("extra %d", i),
				Username: "panida",
				UserID:   18581680,
			}))
		}

		window, err := repo.List(ctx, 5)
		require.NoError(t, err)
		require.Len(t, window, 5)
		assert.Equal(t, "extra 5", window[0].Content)
		assert.Equal(t, "extra 9", window[4].Content)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, 1))
		_, err := repo.GetByID(ctx, 1)
		assert.True(t, isNotFound(err))
		assert.True(t, isNotFound(repo.Delete(ctx, 1)))
	})
}

func TestGormThemeRepository(t *testing.T) {
	repo := NewGormThemeRepository(newTestDB(t))
	ctx := context.Background()

	t.Run("List", func(t *testing.T) {
		themes, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, themes, 4)
	})

	t.Run("Active defaults to theme 1", func(t *testing.T) {
		active, err := repo.Active(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), active.ID)
	})

	t.Run("Find by id then name", func(t *testing.T) {
		byID, err := repo.Find(ctx, 2, "")
		require.NoError(t, err)
		assert.Equal(t, "Sunset Orange", byID.Name)

		byName, err := repo.Find(ctx, 0, "Forest Green")
		require.NoError(t, err)
		assert.Equal(t, int64(3), byName.ID)

		_, err = repo.Find(ctx, 0, "nonexistent")
		assert.True(t, isNotFound(err))
	})

	t.Run("SetActive round trip", func(t *testing.T) {
		require.NoError(t, repo.SetActive(ctx, 2))

		active, err := repo.Active(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), active.ID)

		// Unknown id fails and leaves the selection alone
		assert.True(t, isNotFound(repo.SetActive(ctx, 99)))
		active, err = repo.Active(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), active.ID)
	})
}

func TestMemoryRepositoriesMatchContracts(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	users := NewMemoryUserRepository(st)
	messages := NewMemoryMessageRepository(st)
	themes := NewMemoryThemeRepository(st)

	user, err := users.GetByID(ctx, 18581680)
	require.NoError(t, err)
	assert.Equal(t, "panida", user.Username)

	_, err = users.GetByID(ctx, 424242)
	assert.True(t, isNotFound(err))

	err = users.Create(ctx, &models.User{Username: "panida", Email: "dup@example.com"})
	assert.True(t, isConflict(err))

	list, err := messages.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(2), list[0].ID)

	_, err = themes.Find(ctx, 0, "nonexistent")
	assert.True(t, isNotFound(err))
}
