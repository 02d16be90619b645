package models

import "time"

// ReactionKind is the type of a user's reaction to a post.
type ReactionKind string

const (
	// ReactionLike marks the post as liked.
	ReactionLike ReactionKind = "like"
	// ReactionDislike marks the post as disliked.
	ReactionDislike ReactionKind = "dislike"
)

// Reaction is a user's like or dislike on a post. At most one row exists per
// (user, post) pair, which makes like/dislike mutually exclusive by
// construction: switching reaction is an upsert on the same row.
type Reaction struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	UserID    uint         `gorm:"not null;uniqueIndex:idx_reaction_pair" json:"user_id"`
	PostID    uint         `gorm:"not null;uniqueIndex:idx_reaction_pair" json:"post_id"`
	Kind      ReactionKind `gorm:"type:varchar(10);not null" json:"kind"`
	CreatedAt time.Time    `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Post Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
}
