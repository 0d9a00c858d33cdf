package models

import (
	"time"
)

// Admin is one entry of the flat allow-list behind every privileged action.
// The external contract is still a single shared code sent in request
// bodies; the code itself is stored only as a bcrypt hash.
type Admin struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	CodeHash  string    `json:"-" gorm:"size:255;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for the Admin model
func (Admin) TableName() string {
	return "admins"
}
