package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"contactbook/internal/models"
	"contactbook/internal/repositories"
)

// ContactService handles business logic related to contacts.
type ContactService struct {
	repo        repositories.ContactRepository
	publisher   EventPublisher
	ownerScoped bool
}

// NewContactService creates a new ContactService. publisher may be nil.
// When ownerScoped is false, updates and deletes match a contact by id alone,
// so any authenticated user can change any contact whose id they know.
func NewContactService(repo repositories.ContactRepository, publisher EventPublisher, ownerScoped bool) *ContactService {
	return &ContactService{
		repo:        repo,
		publisher:   publisher,
		ownerScoped: ownerScoped,
	}
}

// CreateContact stores a new contact owned by userID.
func (s *ContactService) CreateContact(userID string, fields models.ContactFields) (*models.Contact, error) {
	contact := &models.Contact{UserID: userID}
	fields.Apply(contact)
	if err := s.repo.Create(contact); err != nil {
		return nil, err
	}
	s.publish(EventContactCreated, contact)
	return contact, nil
}

// ListContacts returns the contacts owned by userID.
func (s *ContactService) ListContacts(userID string) ([]models.Contact, error) {
	return s.repo.ListByOwner(userID)
}

// UpdateContact replaces the fields of the contact with the given id.
func (s *ContactService) UpdateContact(userID, id string, fields models.ContactFields) (*models.Contact, error) {
	contact, err := s.repo.UpdateByID(id, s.scope(userID), fields)
	if err != nil {
		return nil, translateNotFound(err)
	}
	s.publish(EventContactUpdated, contact)
	return contact, nil
}

// DeleteContact removes the contact with the given id and returns it.
func (s *ContactService) DeleteContact(userID, id string) (*models.Contact, error) {
	contact, err := s.repo.DeleteByID(id, s.scope(userID))
	if err != nil {
		return nil, translateNotFound(err)
	}
	s.publish(EventContactDeleted, contact)
	return contact, nil
}

func (s *ContactService) scope(userID string) string {
	if s.ownerScoped {
		return userID
	}
	return ""
}

// publish is best-effort; a failed publish never fails the request.
func (s *ContactService) publish(eventType string, contact *models.Contact) {
	if s.publisher == nil {
		return
	}
	event := ContactEvent{
		Type:      eventType,
		ContactID: contact.ID,
		UserID:    contact.UserID,
		At:        time.Now().UTC(),
	}
	if err := s.publisher.PublishContactEvent(event); err != nil {
		log.Printf("Warning: failed to publish %s event for contact %s: %v", eventType, contact.ID, err)
	}
}

func translateNotFound(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrContactNotFound, err)
	}
	return err
}
