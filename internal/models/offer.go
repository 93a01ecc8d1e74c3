package models

import "time"

type Offer struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	IsActive    bool      `gorm:"not null" json:"is_active"`
	ShowLimit   int       `gorm:"not null" json:"show_limit"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}
