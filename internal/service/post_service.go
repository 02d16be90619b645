package service

import (
	"context"
	"time"

	"blogify/internal/models"
	"blogify/internal/repository"
	"blogify/internal/validation"
)

// PostService carries content and visibility rules for posts.
type PostService struct {
	postRepo repository.PostRepository
	relRepo  repository.RelationshipRepository
	catRepo  repository.CategoryRepository

	// now is swappable in tests.
	now func() time.Time
}

// CreatePostInput is the payload for authoring a post.
type CreatePostInput struct {
	UserID     uint
	Title      string
	Content    string
	ImageURL   string
	CategoryID *uint
}

// UpdatePostInput is a partial patch: nil fields keep prior values. For the
// category the outer pointer distinguishes "absent" from the inner nil,
// which clears the reference.
type UpdatePostInput struct {
	UserID     uint
	PostID     uint
	Title      *string
	Content    *string
	ImageURL   *string
	CategoryID **uint
}

// NewPostService wires a PostService.
func NewPostService(
	postRepo repository.PostRepository,
	relRepo repository.RelationshipRepository,
	catRepo repository.CategoryRepository,
) *PostService {
	return &PostService{
		postRepo: postRepo,
		relRepo:  relRepo,
		catRepo:  catRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreatePost authors a post. The image is required at creation; the title
// must be globally unique.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validation.ValidatePostTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePostBody(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.ImageURL == "" {
		return nil, models.NewValidationError("An image is required to create a post")
	}
	if in.CategoryID != nil {
		if _, err := s.catRepo.GetByID(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
	}

	post := &models.Post{
		Title:      in.Title,
		Content:    in.Content,
		ImageURL:   in.ImageURL,
		UserID:     in.UserID,
		CategoryID: in.CategoryID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

// GetPost fetches a single post with comments and engagement counts. Direct
// fetches are not visibility filtered.
func (s *PostService) GetPost(ctx context.Context, id, viewerID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, viewerID)
}

// ListVisible returns the viewer's feed: published posts minus those from
// authors who block the viewer. The block set is fetched fresh on every call.
func (s *PostService) ListVisible(ctx context.Context, viewerID uint, limit, offset int) ([]*models.Post, error) {
	excluded, err := s.relRepo.BlockerIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return s.postRepo.ListVisible(ctx, excluded, s.now(), viewerID, limit, offset)
}

// Search narrows the viewer's feed by author and category name substrings.
// At least one filter must be supplied; a filter that matches nothing yields
// an empty result rather than falling back to the unfiltered feed.
func (s *PostService) Search(ctx context.Context, viewerID uint, author, category string, limit, offset int) ([]*models.Post, error) {
	if author == "" && category == "" {
		return nil, models.NewValidationError("Provide an author or category to search for")
	}
	excluded, err := s.relRepo.BlockerIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return s.postRepo.Search(ctx, author, category, excluded, s.now(), viewerID, limit, offset)
}

// PublicLatest returns the newest published posts for the anonymous landing
// feed. No block filtering applies: an anonymous viewer has no block graph.
func (s *PostService) PublicLatest(ctx context.Context, n int) ([]*models.Post, error) {
	return s.postRepo.PublicLatest(ctx, n, s.now())
}

// UpdatePost applies a partial update. Only the author may update.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}
	if post.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own posts")
	}

	if in.Title != nil {
		if err := validation.ValidatePostTitle(*in.Title); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.Title = *in.Title
	}
	if in.Content != nil {
		if err := validation.ValidatePostBody(*in.Content); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.Content = *in.Content
	}
	if in.ImageURL != nil {
		if *in.ImageURL == "" {
			return nil, models.NewValidationError("A post image cannot be removed")
		}
		post.ImageURL = *in.ImageURL
	}
	if in.CategoryID != nil {
		if *in.CategoryID != nil {
			if _, err := s.catRepo.GetByID(ctx, **in.CategoryID); err != nil {
				return nil, err
			}
		}
		post.CategoryID = *in.CategoryID
		post.Category = nil
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

// DeletePost removes the post and its engagement rows. Only the author may
// delete.
func (s *PostService) DeletePost(ctx context.Context, postID, userID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, postID)
}

// SchedulePublish hides the post from feeds until the given time. The time
// must be strictly in the future; only the author may schedule.
func (s *PostService) SchedulePublish(ctx context.Context, postID, userID uint, when time.Time) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, models.NewForbiddenError("You can only schedule your own posts")
	}
	if !when.After(s.now()) {
		return nil, models.NewValidationError("Scheduled publish time must be in the future")
	}

	whenUTC := when.UTC()
	post.ScheduledPublish = &whenUTC
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, postID, userID)
}
