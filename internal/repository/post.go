package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"blogify/internal/cache"
	"blogify/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines persistence operations for posts and their
// engagement state. Reaction counts and view counts are derived from the
// reactions and post_views tables at query time.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error)
	// ListVisible returns published posts excluding those authored by any of
	// excludedAuthors, newest first. Posts scheduled past now are hidden.
	ListVisible(ctx context.Context, excludedAuthors []uint, now time.Time, currentUserID uint, limit, offset int) ([]*models.Post, error)
	// Search narrows the visible set by case-insensitive author username and
	// category name substrings. An empty filter string means "not supplied".
	Search(ctx context.Context, author, category string, excludedAuthors []uint, now time.Time, currentUserID uint, limit, offset int) ([]*models.Post, error)
	// PublicLatest returns the newest n published posts with category data,
	// for the unauthenticated landing feed.
	PublicLatest(ctx context.Context, n int, now time.Time) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error

	React(ctx context.Context, userID, postID uint, kind models.ReactionKind) error
	Clap(ctx context.Context, postID uint) error
	RecordView(ctx context.Context, userID, postID uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("A post with this title already exists")
		}
		return models.NewInternalError(err)
	}
	// The cached category view embeds its posts.
	if post.CategoryID != nil {
		cache.InvalidateCategory(ctx, *post.CategoryID)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	var post models.Post

	fetch := func() error {
		err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
			Preload("User").
			Preload("Category").
			Preload("Comments", func(db *gorm.DB) *gorm.DB {
				return db.Order("created_at ASC")
			}).
			Preload("Comments.User").
			First(&post, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	}

	// Only the anonymous view is cacheable; liked/disliked flags are per user.
	var err error
	if currentUserID == 0 {
		err = cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	if err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListVisible(ctx context.Context, excludedAuthors []uint, now time.Time, currentUserID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	q := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Preload("Category").
		Where("scheduled_publish IS NULL OR scheduled_publish <= ?", now)
	if len(excludedAuthors) > 0 {
		q = q.Where("posts.user_id NOT IN ?", excludedAuthors)
	}
	if err := q.Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Search(ctx context.Context, author, category string, excludedAuthors []uint, now time.Time, currentUserID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	q := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Preload("Category").
		Where("scheduled_publish IS NULL OR scheduled_publish <= ?", now)
	if len(excludedAuthors) > 0 {
		q = q.Where("posts.user_id NOT IN ?", excludedAuthors)
	}
	if author != "" {
		q = q.Joins("JOIN users ON users.id = posts.user_id").
			Where("LOWER(users.username) LIKE ?", "%"+strings.ToLower(author)+"%")
	}
	if category != "" {
		q = q.Joins("JOIN categories ON categories.id = posts.category_id").
			Where("LOWER(categories.name) LIKE ?", "%"+strings.ToLower(category)+"%")
	}
	if err := q.Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) PublicLatest(ctx context.Context, n int, now time.Time) ([]*models.Post, error) {
	if n <= 0 {
		n = 4
	}
	var posts []*models.Post
	if err := r.applyPostDetails(r.db.WithContext(ctx), 0).
		Preload("User").
		Preload("Category").
		Where("scheduled_publish IS NULL OR scheduled_publish <= ?", now).
		Order("posts.created_at DESC").
		Limit(n).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// applyPostDetails adds subqueries computing reaction and view counts, plus
// the requesting user's own reaction flags, in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id AND reactions.kind = 'like') AS likes_count, " +
		"(SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id AND reactions.kind = 'dislike') AS dislikes_count, " +
		"(SELECT COUNT(*) FROM post_views WHERE post_views.post_id = posts.id) AS views_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+
			", EXISTS(SELECT 1 FROM reactions WHERE reactions.post_id = posts.id AND reactions.user_id = ? AND reactions.kind = 'like') AS liked"+
			", EXISTS(SELECT 1 FROM reactions WHERE reactions.post_id = posts.id AND reactions.user_id = ? AND reactions.kind = 'dislike') AS disliked",
			currentUserID, currentUserID)
	}
	return db.Select(selectQuery + ", FALSE AS liked, FALSE AS disliked")
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	var prevCategoryID *uint
	r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", post.ID).
		Select("category_id").
		Scan(&prevCategoryID)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(post).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("A post with this title already exists")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	if prevCategoryID != nil {
		cache.InvalidateCategory(ctx, *prevCategoryID)
	}
	if post.CategoryID != nil && (prevCategoryID == nil || *prevCategoryID != *post.CategoryID) {
		cache.InvalidateCategory(ctx, *post.CategoryID)
	}
	return nil
}

// Delete removes the post together with its reactions, views and comments in
// one transaction, so no engagement rows can outlive the post.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	var categoryID *uint
	r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		Select("category_id").
		Scan(&categoryID)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.PostView{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Post{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("Post", id)
		}
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, id)
	if categoryID != nil {
		cache.InvalidateCategory(ctx, *categoryID)
	}
	return nil
}

// React upserts the single reaction row for the (user, post) pair. Switching
// between like and dislike rewrites the same row, so the two can never
// coexist regardless of call order.
func (r *postRepository) React(ctx context.Context, userID, postID uint, kind models.ReactionKind) error {
	reaction := &models.Reaction{
		UserID:    userID,
		PostID:    postID,
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"kind": kind}),
	}).Create(reaction).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}

// Clap increments the clap counter atomically. Every call counts.
func (r *postRepository) Clap(ctx context.Context, postID uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", postID).
		UpdateColumn("claps", gorm.Expr("claps + 1"))
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Post", postID)
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}

// RecordView inserts a post_views row; a repeat view is a no-op.
func (r *postRepository) RecordView(ctx context.Context, userID, postID uint) error {
	view := &models.PostView{
		UserID:    userID,
		PostID:    postID,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
		DoNothing: true,
	}).Create(view).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}
