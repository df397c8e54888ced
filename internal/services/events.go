package services

import "time"

// Contact event types.
const (
	EventContactCreated = "contact.created"
	EventContactUpdated = "contact.updated"
	EventContactDeleted = "contact.deleted"
)

// ContactEvent describes a change to a contact.
type ContactEvent struct {
	Type      string    `json:"type"`
	ContactID string    `json:"contactId"`
	UserID    string    `json:"userId"`
	At        time.Time `json:"at"`
}

// EventPublisher delivers contact events to interested consumers.
type EventPublisher interface {
	PublishContactEvent(event ContactEvent) error
}
