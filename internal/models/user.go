// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a chat user with identity and profile fields.
// Password carries the bcrypt hash and is never serialized.
type User struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Password     string    `gorm:"not null" json:"-"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Avatar       string    `json:"avatar"`
	Bio          *string   `json:"bio"`
	Location     *string   `json:"location"`
	Website      *string   `json:"website"`
	DateOfBirth  *string   `json:"dateOfBirth"`
	IsOnline     bool      `json:"isOnline"`
	LastActivity time.Time `json:"lastActivity"`
	CreatedAt    time.Time `json:"createdAt"`
}
