// Package models contains data structures for the application's domain models.
package models

import (
	"crypto/md5"
	"fmt"
	"strings"
	"time"
)

// User represents a registered account.
//
// A user is created in a pending state carrying a one-time activation token.
// ActivationToken is non-nil exactly while Activated is false; confirming the
// email clears the token and the account never returns to pending.
type User struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"size:50;unique;not null" json:"name"`
	Email           string    `gorm:"size:255;unique;not null" json:"email"`
	Password        string    `gorm:"not null" json:"-"`
	Activated       bool      `gorm:"not null;default:false" json:"activated"`
	ActivationToken *string   `gorm:"size:64;index" json:"-"`
	IsAdmin         bool      `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Statuses        []Status  `gorm:"foreignKey:UserID" json:"statuses,omitempty"`
}

// Gravatar returns the Gravatar URL for the user's email at the given size.
func (u *User) Gravatar(size int) string {
	hash := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(u.Email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=%d", hash, size)
}
