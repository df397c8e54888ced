package repositories_test

import (
	"fmt"
	"sync"
	"testing"

	"contactbook/internal/models"
	"contactbook/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB opens a private in-memory SQLite database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps the in-memory database alive and serializes writers
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Contact{}))
	return db
}

type stores struct {
	users    repositories.UserRepository
	contacts repositories.ContactRepository
}

func eachStore(t *testing.T, run func(t *testing.T, s stores)) {
	t.Run("gorm", func(t *testing.T) {
		db := openTestDB(t)
		run(t, stores{
			users:    repositories.NewGORMUserRepository(db),
			contacts: repositories.NewGORMContactRepository(db),
		})
	})
	t.Run("memory", func(t *testing.T) {
		run(t, stores{
			users:    repositories.NewMemoryUserRepository(),
			contacts: repositories.NewMemoryContactRepository(),
		})
	})
}

func TestUserRepository(t *testing.T) {
	eachStore(t, func(t *testing.T, s stores) {
		user := &models.User{Username: "testuser", PasswordHash: "hash"}
		require.NoError(t, s.users.Create(user))
		assert.NotEmpty(t, user.ID)

		found, err := s.users.GetByUsername("testuser")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
		assert.Equal(t, "hash", found.PasswordHash)

		_, err = s.users.GetByUsername("nobody")
		assert.ErrorIs(t, err, repositories.ErrNotFound)

		err = s.users.Create(&models.User{Username: "testuser", PasswordHash: "other"})
		assert.ErrorIs(t, err, repositories.ErrDuplicateKey)
	})
}

func TestUserRepository_ConcurrentDuplicateRegistration(t *testing.T) {
	eachStore(t, func(t *testing.T, s stores) {
		const attempts = 8
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			succeeded int
		)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := s.users.Create(&models.User{Username: "racer", PasswordHash: "hash"}); err == nil {
					mu.Lock()
					succeeded++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, succeeded)
	})
}

func TestContactRepository_ListByOwner(t *testing.T) {
	eachStore(t, func(t *testing.T, s stores) {
		contacts, err := s.contacts.ListByOwner("owner-a")
		require.NoError(t, err)
		assert.NotNil(t, contacts)
		assert.Empty(t, contacts)

		for _, c := range []*models.Contact{
			{UserID: "owner-a", Name: "A1", Email: "a1@example.com", PhoneNumber: "1"},
			{UserID: "owner-a", Name: "A2", Email: "a2@example.com", PhoneNumber: "2"},
			{UserID: "owner-b", Name: "B1", Email: "b1@example.com", PhoneNumber: "3"},
		} {
			require.NoError(t, s.contacts.Create(c))
			assert.NotEmpty(t, c.ID)
		}

		contacts, err = s.contacts.ListByOwner("owner-a")
		require.NoError(t, err)
		assert.Len(t, contacts, 2)
		for _, c := range contacts {
			assert.Equal(t, "owner-a", c.UserID)
		}
	})
}

func TestContactRepository_UpdateByID(t *testing.T) {
	eachStore(t, func(t *testing.T, s stores) {
		contact := &models.Contact{UserID: "owner-a", Name: "Old", Email: "old@example.com", PhoneNumber: "1"}
		require.NoError(t, s.contacts.Create(contact))

		fields := models.ContactFields{Name: "New", Email: "new@example.com", PhoneNumber: "2"}

		// unscoped update ignores the owner
		updated, err := s.contacts.UpdateByID(contact.ID, "", fields)
		require.NoError(t, err)
		assert.Equal(t, contact.ID, updated.ID)
		assert.Equal(t, "owner-a", updated.UserID)
		assert.Equal(t, "New", updated.Name)
		assert.Equal(t, "new@example.com", updated.Email)
		assert.Equal(t, "2", updated.PhoneNumber)

		_, err = s.contacts.UpdateByID(contact.ID, "owner-b", fields)
		assert.ErrorIs(t, err, repositories.ErrNotFound)

		_, err = s.contacts.UpdateByID(contact.ID, "owner-a", fields)
		assert.NoError(t, err)

		_, err = s.contacts.UpdateByID("missing", "", fields)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestContactRepository_DeleteByID(t *testing.T) {
	eachStore(t, func(t *testing.T, s stores) {
		contact := &models.Contact{UserID: "owner-a", Name: "Gone", Email: "gone@example.com", PhoneNumber: "1"}
		require.NoError(t, s.contacts.Create(contact))

		_, err := s.contacts.DeleteByID(contact.ID, "owner-b")
		assert.ErrorIs(t, err, repositories.ErrNotFound)

		deleted, err := s.contacts.DeleteByID(contact.ID, "")
		require.NoError(t, err)
		assert.Equal(t, contact.ID, deleted.ID)
		assert.Equal(t, "Gone", deleted.Name)

		_, err = s.contacts.DeleteByID(contact.ID, "")
		assert.ErrorIs(t, err, repositories.ErrNotFound)

		contacts, err := s.contacts.ListByOwner("owner-a")
		require.NoError(t, err)
		assert.Empty(t, contacts)
	})
}
