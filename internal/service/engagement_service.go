package service

import (
	"context"

	"blogify/internal/models"
	"blogify/internal/observability"
	"blogify/internal/repository"
)

// EngagementService carries the like/dislike/clap/view rules. All mutations
// are atomic at the storage layer; the service adds existence checks and
// metrics.
type EngagementService struct {
	postRepo repository.PostRepository
}

// NewEngagementService wires an EngagementService.
func NewEngagementService(postRepo repository.PostRepository) *EngagementService {
	return &EngagementService{postRepo: postRepo}
}

// Like marks the post liked by the user. A prior dislike is replaced; liking
// an already liked post is a no-op.
func (s *EngagementService) Like(ctx context.Context, userID, postID uint) (*models.Post, error) {
	return s.react(ctx, userID, postID, models.ReactionLike)
}

// Dislike marks the post disliked by the user. A prior like is replaced.
func (s *EngagementService) Dislike(ctx context.Context, userID, postID uint) (*models.Post, error) {
	return s.react(ctx, userID, postID, models.ReactionDislike)
}

func (s *EngagementService) react(ctx context.Context, userID, postID uint, kind models.ReactionKind) (*models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, userID); err != nil {
		return nil, err
	}
	if err := s.postRepo.React(ctx, userID, postID, kind); err != nil {
		return nil, err
	}
	observability.EngagementEvents.WithLabelValues(string(kind)).Inc()
	return s.postRepo.GetByID(ctx, postID, userID)
}

// Clap increments the post's clap counter. Unbounded; every call counts.
func (s *EngagementService) Clap(ctx context.Context, userID, postID uint) (*models.Post, error) {
	if err := s.postRepo.Clap(ctx, postID); err != nil {
		return nil, err
	}
	observability.EngagementEvents.WithLabelValues("clap").Inc()
	return s.postRepo.GetByID(ctx, postID, userID)
}

// RecordView adds the user to the post's viewer set. Repeat views succeed
// without effect.
func (s *EngagementService) RecordView(ctx context.Context, userID, postID uint) (*models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, userID); err != nil {
		return nil, err
	}
	if err := s.postRepo.RecordView(ctx, userID, postID); err != nil {
		return nil, err
	}
	observability.EngagementEvents.WithLabelValues("view").Inc()
	return s.postRepo.GetByID(ctx, postID, userID)
}
