package models

import "time"

// Status is a short message posted by a user. Statuses are what the feed
// aggregates; they are never edited, only created and deleted.
type Status struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"size:140;not null" json:"content"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
