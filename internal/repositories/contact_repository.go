package repositories

import (
	"contactbook/internal/models"
)

// ContactRepository defines the interface for contact data access.
//
// UpdateByID and DeleteByID match on id alone when ownerID is empty; a
// non-empty ownerID additionally restricts the match to that owner.
type ContactRepository interface {
	Create(contact *models.Contact) error
	ListByOwner(ownerID string) ([]models.Contact, error)
	UpdateByID(id, ownerID string, fields models.ContactFields) (*models.Contact, error)
	DeleteByID(id, ownerID string) (*models.Contact, error)
}
