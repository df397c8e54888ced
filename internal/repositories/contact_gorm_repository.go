package repositories

import (
	"errors"
	"fmt"

	"contactbook/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMContactRepository is a GORM implementation of ContactRepository.
type GORMContactRepository struct {
	db *gorm.DB
}

// NewGORMContactRepository creates a new instance of GORMContactRepository.
func NewGORMContactRepository(db *gorm.DB) *GORMContactRepository {
	return &GORMContactRepository{
		db: db,
	}
}

// Create creates a new contact in the database.
func (r *GORMContactRepository) Create(contact *models.Contact) error {
	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	if err := r.db.Create(contact).Error; err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

// ListByOwner retrieves every contact owned by ownerID.
func (r *GORMContactRepository) ListByOwner(ownerID string) ([]models.Contact, error) {
	contacts := make([]models.Contact, 0)
	if err := r.db.Where("user_id = ?", ownerID).Order("created_at").Find(&contacts).Error; err != nil {
		return nil, fmt.Errorf("failed to list contacts for user %s: %w", ownerID, err)
	}
	return contacts, nil
}

// UpdateByID replaces the editable fields of a contact and returns the stored result.
func (r *GORMContactRepository) UpdateByID(id, ownerID string, fields models.ContactFields) (*models.Contact, error) {
	res := r.scoped(id, ownerID).Model(&models.Contact{}).Updates(map[string]interface{}{
		"name":         fields.Name,
		"email":        fields.Email,
		"phone_number": fields.PhoneNumber,
	})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update contact %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("contact with ID %s: %w", id, ErrNotFound)
	}

	var contact models.Contact
	if err := r.db.First(&contact, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// deleted between the update and the read
			return nil, fmt.Errorf("contact with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to reload contact %s: %w", id, err)
	}
	return &contact, nil
}

// DeleteByID removes a contact and returns the record as it was before deletion.
func (r *GORMContactRepository) DeleteByID(id, ownerID string) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.Transaction(func(tx *gorm.DB) error {
		q := tx.Where("id = ?", id)
		if ownerID != "" {
			q = q.Where("user_id = ?", ownerID)
		}
		if err := q.First(&contact).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Contact{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("contact with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to delete contact %s: %w", id, err)
	}
	return &contact, nil
}

func (r *GORMContactRepository) scoped(id, ownerID string) *gorm.DB {
	q := r.db.Where("id = ?", id)
	if ownerID != "" {
		q = q.Where("user_id = ?", ownerID)
	}
	return q
}
