package repository

import (
	"context"

	"blogify/internal/cache"
	"blogify/internal/models"

	"gorm.io/gorm"
)

// RelationshipRepository defines persistence operations for the social graph:
// follows, blocks and profile views. A single follows row carries both
// directions of the relationship, so followers and following are two queries
// over the same table and can never disagree.
type RelationshipRepository interface {
	Follow(ctx context.Context, followerID, followingID uint) error
	Unfollow(ctx context.Context, followerID, followingID uint) error
	IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error)
	Followers(ctx context.Context, userID uint) ([]models.User, error)
	Following(ctx context.Context, userID uint) ([]models.User, error)

	Block(ctx context.Context, blockerID, blockedID uint) error
	Unblock(ctx context.Context, blockerID, blockedID uint) error
	BlockedUsers(ctx context.Context, blockerID uint) ([]models.User, error)
	// BlockerIDs returns the ids of every user who has blocked viewerID.
	// Feed queries exclude these authors.
	BlockerIDs(ctx context.Context, viewerID uint) ([]uint, error)

	RecordProfileView(ctx context.Context, viewerID, profileID uint) error
	ProfileViewers(ctx context.Context, profileID uint) ([]models.User, error)
}

type relationshipRepository struct {
	db *gorm.DB
}

// NewRelationshipRepository returns a new RelationshipRepository implementation.
func NewRelationshipRepository(db *gorm.DB) RelationshipRepository {
	return &relationshipRepository{db: db}
}

func (r *relationshipRepository) Follow(ctx context.Context, followerID, followingID uint) error {
	follow := &models.Follow{FollowerID: followerID, FollowingID: followingID}
	if err := r.db.WithContext(ctx).Create(follow).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Already following this user")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, followerID)
	cache.InvalidateUser(ctx, followingID)
	return nil
}

func (r *relationshipRepository) Unfollow(ctx context.Context, followerID, followingID uint) error {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewValidationError("Not following this user")
	}
	cache.InvalidateUser(ctx, followerID)
	cache.InvalidateUser(ctx, followingID)
	return nil
}

func (r *relationshipRepository) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *relationshipRepository) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.following_id = ?", userID).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *relationshipRepository) Following(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN follows ON follows.following_id = users.id").
		Where("follows.follower_id = ?", userID).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *relationshipRepository) Block(ctx context.Context, blockerID, blockedID uint) error {
	block := &models.Block{BlockerID: blockerID, BlockedID: blockedID}
	if err := r.db.WithContext(ctx).Create(block).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Already blocking this user")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, blockerID)
	return nil
}

func (r *relationshipRepository) Unblock(ctx context.Context, blockerID, blockedID uint) error {
	result := r.db.WithContext(ctx).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&models.Block{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewValidationError("Not blocking this user")
	}
	cache.InvalidateUser(ctx, blockerID)
	return nil
}

func (r *relationshipRepository) BlockedUsers(ctx context.Context, blockerID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN blocks ON blocks.blocked_id = users.id").
		Where("blocks.blocker_id = ?", blockerID).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *relationshipRepository) BlockerIDs(ctx context.Context, viewerID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Block{}).
		Where("blocked_id = ?", viewerID).
		Pluck("blocker_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *relationshipRepository) RecordProfileView(ctx context.Context, viewerID, profileID uint) error {
	view := &models.ProfileView{ViewerID: viewerID, ProfileID: profileID}
	if err := r.db.WithContext(ctx).Create(view).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("You have already viewed this profile")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, profileID)
	return nil
}

func (r *relationshipRepository) ProfileViewers(ctx context.Context, profileID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN profile_views ON profile_views.viewer_id = users.id").
		Where("profile_views.profile_id = ?", profileID).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
