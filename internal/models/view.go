package models

import "time"

// PostView records that a user has viewed a post. Repeat views are
// idempotent no-ops; the unique pair index backs the ON CONFLICT insert.
type PostView struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_view_pair" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_view_pair" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileView records that a viewer has looked at another user's profile.
// Unlike post views, a repeat profile view is rejected with a conflict; a
// profile is counted as viewed at most once ever per viewer.
type ProfileView struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ViewerID  uint      `gorm:"not null;uniqueIndex:idx_profile_view_pair" json:"viewer_id"`
	ProfileID uint      `gorm:"not null;uniqueIndex:idx_profile_view_pair" json:"profile_id"`
	CreatedAt time.Time `json:"created_at"`

	Viewer User `gorm:"foreignKey:ViewerID" json:"viewer,omitempty"`
}
