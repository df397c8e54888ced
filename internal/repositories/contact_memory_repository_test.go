package repositories_test

import (
	"bytes"
	"testing"
	"unsafe"

	"contactbook/internal/models"
	"contactbook/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fiber route params alias the request buffer, which is reused once the
// handler returns. The store must not keep such a string as a map key.
func TestMemoryContactRepository_UpdateByIDDoesNotRetainIDArgument(t *testing.T) {
	repo := repositories.NewMemoryContactRepository()
	contact := &models.Contact{UserID: "owner-1", Name: "Ada", Email: "ada@example.com", PhoneNumber: "555-0100"}
	require.NoError(t, repo.Create(contact))

	buf := []byte(contact.ID)
	aliased := unsafe.String(&buf[0], len(buf))

	_, err := repo.UpdateByID(aliased, "", models.ContactFields{Name: "Ada L.", Email: "ada@example.com", PhoneNumber: "555-0199"})
	require.NoError(t, err)

	copy(buf, bytes.Repeat([]byte("x"), len(buf)))

	list, err := repo.ListByOwner("owner-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ada L.", list[0].Name)

	deleted, err := repo.DeleteByID(contact.ID, "")
	require.NoError(t, err)
	assert.Equal(t, contact.ID, deleted.ID)

	list, err = repo.ListByOwner("owner-1")
	require.NoError(t, err)
	assert.Empty(t, list)
}
