package models

import (
	"time"

	"gorm.io/gorm"
)

// Category groups posts under a named topic. The posts list is derived by
// querying on category_id.
type Category struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"uniqueIndex;not null" json:"name"`
	UserID uint   `gorm:"not null;index" json:"author_id"`
	User   User   `gorm:"foreignKey:UserID" json:"author,omitempty"`

	// Shares is reserved; nothing increments it yet.
	Shares int `gorm:"not null;default:0" json:"shares"`

	Posts []Post `gorm:"foreignKey:CategoryID" json:"posts,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
