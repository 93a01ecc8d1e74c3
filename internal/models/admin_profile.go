package models

import "time"

// AdminProfileRowID is the primary key of the only admin_profiles row.
const AdminProfileRowID = 1

type AdminProfile struct {
	RowID        uint      `gorm:"column:row_id;primaryKey" json:"-"`
	ID           string    `gorm:"column:admin_id;not null" json:"id"`
	Email        string    `gorm:"not null" json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `gorm:"not null" json:"-"`
	UpdatedAt    time.Time `json:"updated_at"`
}
