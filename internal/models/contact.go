package models

import "time"

// Contact is an address book entry owned by a single user.
type Contact struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID      string    `json:"userId" gorm:"index;not null;type:varchar(36)"`
	Name        string    `json:"name" gorm:"not null"`
	Email       string    `json:"email" gorm:"not null"`
	PhoneNumber string    `json:"phoneNumber" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ContactFields are the user-editable fields of a contact.
type ContactFields struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
}

// Apply copies the editable fields onto the contact.
func (f ContactFields) Apply(c *Contact) {
	c.Name = f.Name
	c.Email = f.Email
	c.PhoneNumber = f.PhoneNumber
}
