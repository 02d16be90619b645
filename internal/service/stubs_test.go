package service

import (
	"context"
	"time"

	"blogify/internal/models"
)

type userRepoStub struct {
	createFn                     func(context.Context, *models.User) error
	getByIDFn                    func(context.Context, uint) (*models.User, error)
	getByEmailFn                 func(context.Context, string) (*models.User, error)
	getByUsernameFn              func(context.Context, string) (*models.User, error)
	getByResetTokenHashFn        func(context.Context, string, time.Time) (*models.User, error)
	getByVerificationTokenHashFn func(context.Context, string, time.Time) (*models.User, error)
	updateFn                     func(context.Context, *models.User) error
	deleteFn                     func(context.Context, uint) error
	listFn                       func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByResetTokenHash(ctx context.Context, hash string, now time.Time) (*models.User, error) {
	return s.getByResetTokenHashFn(ctx, hash, now)
}
func (s *userRepoStub) GetByVerificationTokenHash(ctx context.Context, hash string, now time.Time) (*models.User, error) {
	return s.getByVerificationTokenHashFn(ctx, hash, now)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

type relationshipRepoStub struct {
	followFn            func(context.Context, uint, uint) error
	unfollowFn          func(context.Context, uint, uint) error
	isFollowingFn       func(context.Context, uint, uint) (bool, error)
	followersFn         func(context.Context, uint) ([]models.User, error)
	followingFn         func(context.Context, uint) ([]models.User, error)
	blockFn             func(context.Context, uint, uint) error
	unblockFn           func(context.Context, uint, uint) error
	blockedUsersFn      func(context.Context, uint) ([]models.User, error)
	blockerIDsFn        func(context.Context, uint) ([]uint, error)
	recordProfileViewFn func(context.Context, uint, uint) error
	profileViewersFn    func(context.Context, uint) ([]models.User, error)
}

func (s *relationshipRepoStub) Follow(ctx context.Context, followerID, followingID uint) error {
	return s.followFn(ctx, followerID, followingID)
}
func (s *relationshipRepoStub) Unfollow(ctx context.Context, followerID, followingID uint) error {
	return s.unfollowFn(ctx, followerID, followingID)
}
func (s *relationshipRepoStub) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followingID)
}
func (s *relationshipRepoStub) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followersFn(ctx, userID)
}
func (s *relationshipRepoStub) Following(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followingFn(ctx, userID)
}
func (s *relationshipRepoStub) Block(ctx context.Context, blockerID, blockedID uint) error {
	return s.blockFn(ctx, blockerID, blockedID)
}
func (s *relationshipRepoStub) Unblock(ctx context.Context, blockerID, blockedID uint) error {
	return s.unblockFn(ctx, blockerID, blockedID)
}
func (s *relationshipRepoStub) BlockedUsers(ctx context.Context, blockerID uint) ([]models.User, error) {
	return s.blockedUsersFn(ctx, blockerID)
}
func (s *relationshipRepoStub) BlockerIDs(ctx context.Context, viewerID uint) ([]uint, error) {
	return s.blockerIDsFn(ctx, viewerID)
}
func (s *relationshipRepoStub) RecordProfileView(ctx context.Context, viewerID, profileID uint) error {
	return s.recordProfileViewFn(ctx, viewerID, profileID)
}
func (s *relationshipRepoStub) ProfileViewers(ctx context.Context, profileID uint) ([]models.User, error) {
	return s.profileViewersFn(ctx, profileID)
}

type postRepoStub struct {
	createFn       func(context.Context, *models.Post) error
	getByIDFn      func(context.Context, uint, uint) (*models.Post, error)
	getByUserIDFn  func(context.Context, uint, int, int, uint) ([]*models.Post, error)
	listVisibleFn  func(context.Context, []uint, time.Time, uint, int, int) ([]*models.Post, error)
	searchFn       func(context.Context, string, string, []uint, time.Time, uint, int, int) ([]*models.Post, error)
	publicLatestFn func(context.Context, int, time.Time) ([]*models.Post, error)
	updateFn       func(context.Context, *models.Post) error
	deleteFn       func(context.Context, uint) error
	reactFn        func(context.Context, uint, uint, models.ReactionKind) error
	clapFn         func(context.Context, uint) error
	recordViewFn   func(context.Context, uint, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset, currentUserID)
}
func (s *postRepoStub) ListVisible(ctx context.Context, excludedAuthors []uint, now time.Time, currentUserID uint, limit, offset int) ([]*models.Post, error) {
	return s.listVisibleFn(ctx, excludedAuthors, now, currentUserID, limit, offset)
}
func (s *postRepoStub) Search(ctx context.Context, author, category string, excludedAuthors []uint, now time.Time, currentUserID uint, limit, offset int) ([]*models.Post, error) {
	return s.searchFn(ctx, author, category, excludedAuthors, now, currentUserID, limit, offset)
}
func (s *postRepoStub) PublicLatest(ctx context.Context, n int, now time.Time) ([]*models.Post, error) {
	return s.publicLatestFn(ctx, n, now)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) React(ctx context.Context, userID, postID uint, kind models.ReactionKind) error {
	return s.reactFn(ctx, userID, postID, kind)
}
func (s *postRepoStub) Clap(ctx context.Context, postID uint) error {
	return s.clapFn(ctx, postID)
}
func (s *postRepoStub) RecordView(ctx context.Context, userID, postID uint) error {
	return s.recordViewFn(ctx, userID, postID)
}

type categoryRepoStub struct {
	createFn  func(context.Context, *models.Category) error
	getByIDFn func(context.Context, uint) (*models.Category, error)
	listFn    func(context.Context, int, int) ([]models.Category, error)
	updateFn  func(context.Context, *models.Category) error
	deleteFn  func(context.Context, uint) error
}

func (s *categoryRepoStub) Create(ctx context.Context, category *models.Category) error {
	return s.createFn(ctx, category)
}
func (s *categoryRepoStub) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	return s.getByIDFn(ctx, id)
}
func (s *categoryRepoStub) List(ctx context.Context, limit, offset int) ([]models.Category, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *categoryRepoStub) Update(ctx context.Context, category *models.Category) error {
	return s.updateFn(ctx, category)
}
func (s *categoryRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint) ([]*models.Comment, error)
	updateFn     func(context.Context, *models.Comment) error
	deleteFn     func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

type mailerStub struct {
	resetCalls  []string
	verifyCalls []string
}

func (m *mailerStub) SendPasswordReset(_ context.Context, email, token string) error {
	m.resetCalls = append(m.resetCalls, email+":"+token)
	return nil
}
func (m *mailerStub) SendVerification(_ context.Context, email, token string) error {
	m.verifyCalls = append(m.verifyCalls, email+":"+token)
	return nil
}
