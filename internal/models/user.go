package models

import "time"

// User is an account that owns contacts.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null;type:varchar(100)"`
	PasswordHash string    `json:"-" gorm:"column:password;not null;type:varchar(255)"` // bcrypt hash, never serialized
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
