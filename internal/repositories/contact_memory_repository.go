package repositories

import (
	"fmt"
	"sync"
	"time"

	"contactbook/internal/models"

	"github.com/google/uuid"
)

// MemoryContactRepository is an in-memory implementation of ContactRepository.
type MemoryContactRepository struct {
	contacts map[string]models.Contact
	mu       sync.RWMutex
}

// NewMemoryContactRepository creates a new instance of MemoryContactRepository.
func NewMemoryContactRepository() *MemoryContactRepository {
	return &MemoryContactRepository{
		contacts: make(map[string]models.Contact),
	}
}

// Create adds a new contact.
func (r *MemoryContactRepository) Create(contact *models.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	now := time.Now()
	contact.CreatedAt = now
	contact.UpdatedAt = now
	r.contacts[contact.ID] = *contact
	return nil
}

// ListByOwner returns the contacts owned by ownerID in no particular order.
func (r *MemoryContactRepository) ListByOwner(ownerID string) ([]models.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	contacts := make([]models.Contact, 0)
	for _, c := range r.contacts {
		if c.UserID == ownerID {
			contacts = append(contacts, c)
		}
	}
	return contacts, nil
}

// UpdateByID replaces the editable fields of an existing contact.
func (r *MemoryContactRepository) UpdateByID(id, ownerID string, fields models.ContactFields) (*models.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contact, ok := r.lookup(id, ownerID)
	if !ok {
		return nil, fmt.Errorf("contact with ID %s: %w", id, ErrNotFound)
	}
	fields.Apply(&contact)
	contact.UpdatedAt = time.Now()
	r.contacts[contact.ID] = contact
	return &contact, nil
}

// DeleteByID removes a contact and returns it.
func (r *MemoryContactRepository) DeleteByID(id, ownerID string) (*models.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contact, ok := r.lookup(id, ownerID)
	if !ok {
		return nil, fmt.Errorf("contact with ID %s: %w", id, ErrNotFound)
	}
	delete(r.contacts, id)
	return &contact, nil
}

// lookup must be called with mu held.
func (r *MemoryContactRepository) lookup(id, ownerID string) (models.Contact, bool) {
	contact, ok := r.contacts[id]
	if !ok || (ownerID != "" && contact.UserID != ownerID) {
		return models.Contact{}, false
	}
	return contact, true
}
