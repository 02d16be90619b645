// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents an authored article.
//
// Engagement state lives in the reactions/post_views tables plus the claps
// counter; comment ids are derived by querying comments on post_id, so the
// stored document never carries back-reference arrays.
type Post struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"uniqueIndex;not null" json:"title"`
	Content    string    `gorm:"type:text" json:"content"`
	ImageURL   string    `gorm:"not null" json:"image_url"`
	UserID     uint      `gorm:"not null;index" json:"author_id"`
	User       User      `gorm:"foreignKey:UserID" json:"author"`
	CategoryID *uint     `gorm:"index" json:"category_id,omitempty"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	// Claps is a monotonically increasing counter; every clap counts,
	// with no per-user cap. Incremented atomically at the storage layer.
	Claps int `gorm:"not null;default:0" json:"claps"`

	// ScheduledPublish hides the post from feed listings until the
	// timestamp passes. Nil means immediately visible.
	ScheduledPublish *time.Time `json:"scheduled_publish,omitempty"`

	Comments []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`

	// LikesCount is not persisted; computed at query time.
	LikesCount int `gorm:"-:migration;->" json:"likes_count"`
	// DislikesCount is not persisted; computed at query time.
	DislikesCount int `gorm:"-:migration;->" json:"dislikes_count"`
	// ViewsCount is not persisted; computed at query time.
	ViewsCount int `gorm:"-:migration;->" json:"views_count"`
	// Liked/Disliked indicate the requesting user's reaction (computed).
	Liked    bool `gorm:"-:migration;->" json:"liked"`
	Disliked bool `gorm:"-:migration;->" json:"disliked"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Published reports whether the post is past its scheduled publication time.
func (p *Post) Published(now time.Time) bool {
	return p.ScheduledPublish == nil || !p.ScheduledPublish.After(now)
}
