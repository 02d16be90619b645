// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Role defines a user's privilege level.
type Role string

const (
	// RoleAdmin grants administrative privileges.
	RoleAdmin Role = "admin"
	// RoleUser is the default role for registered users.
	RoleUser Role = "user"
)

// AccountLevel is the user's account tier.
type AccountLevel string

const (
	AccountLevelBronze AccountLevel = "bronze"
	AccountLevelSilver AccountLevel = "silver"
	AccountLevelGold   AccountLevel = "gold"
)

// User represents a registered author or reader.
//
// Relationship sets (followers, following, blocked users, profile viewers,
// authored posts) are derived views over the follows/blocks/profile_views/posts
// tables rather than stored id arrays, so they can never dangle.
type User struct {
	ID             uint         `gorm:"primaryKey" json:"_id"`
	Username       string       `gorm:"uniqueIndex;not null" json:"username"`
	Email          string       `gorm:"uniqueIndex;not null" json:"email"`
	Password       string       `gorm:"not null" json:"-"`
	Role           Role         `gorm:"type:varchar(10);default:'user'" json:"role"`
	Bio            string       `json:"bio"`
	Location       string       `json:"location"`
	Gender         string       `gorm:"type:varchar(20)" json:"gender"`
	AccountLevel   AccountLevel `gorm:"type:varchar(10);default:'bronze'" json:"account_level"`
	ProfilePicture string       `json:"profile_picture"`
	IsVerified     bool         `gorm:"default:false" json:"is_verified"`
	LastLogin      time.Time    `json:"last_login"`

	// Hashed single-use tokens for the password-reset and account-verification
	// flows. Only the SHA-256 hash of an issued token is stored.
	PasswordResetToken   string     `json:"-"`
	PasswordResetExpires *time.Time `json:"-"`
	VerificationToken    string     `json:"-"`
	VerificationExpires  *time.Time `json:"-"`

	// Populated by the service layer for profile responses; never persisted.
	Posts          []Post `gorm:"-" json:"posts,omitempty"`
	Following      []User `gorm:"-" json:"following,omitempty"`
	Followers      []User `gorm:"-" json:"followers,omitempty"`
	BlockedUsers   []User `gorm:"-" json:"blocked_users,omitempty"`
	ProfileViewers []User `gorm:"-" json:"profile_viewers,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
