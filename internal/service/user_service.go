// Package service implements the business rules on top of the repositories.
package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"blogify/internal/config"
	"blogify/internal/mailer"
	"blogify/internal/models"
	"blogify/internal/observability"
	"blogify/internal/repository"
	"blogify/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// UserService carries registration, authentication, profile and social-graph
// rules for users.
type UserService struct {
	userRepo repository.UserRepository
	relRepo  repository.RelationshipRepository
	postRepo repository.PostRepository
	mail     mailer.Mailer
	cfg      *config.Config

	// now is swappable in tests.
	now func() time.Time
}

// RegisterInput is the payload for creating an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// UpdateProfileInput carries optional profile fields; empty strings keep
// prior values.
type UpdateProfileInput struct {
	UserID         uint
	Bio            string
	Location       string
	Gender         string
	AccountLevel   string
	ProfilePicture string
}

// NewUserService wires a UserService.
func NewUserService(
	userRepo repository.UserRepository,
	relRepo repository.RelationshipRepository,
	postRepo repository.PostRepository,
	mail mailer.Mailer,
	cfg *config.Config,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		relRepo:  relRepo,
		postRepo: postRepo,
		mail:     mail,
		cfg:      cfg,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Register creates an account and returns the user with a signed session token.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, "", models.NewValidationError("Username, email, and password are required")
	}
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}

	// Friendly pre-checks; the unique indexes are the real guard.
	if existing, err := s.userRepo.GetByUsername(ctx, in.Username); err != nil {
		return nil, "", err
	} else if existing != nil {
		return nil, "", models.NewConflictError("Username already taken")
	}
	if existing, err := s.userRepo.GetByEmail(ctx, in.Email); err != nil {
		return nil, "", err
	} else if existing != nil {
		return nil, "", models.NewConflictError("Email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}

	user := &models.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  string(hashed),
		Role:      models.RoleUser,
		LastLogin: s.now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.signSessionToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	observability.Logger.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user, token, nil
}

// Authenticate verifies a username and password, stamps last_login, and
// returns the user with a signed session token.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, string, error) {
	if username == "" || password == "" {
		return nil, "", models.NewValidationError("Username and password are required")
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", models.NewNotFoundError("User", username)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", models.NewUnauthorizedError("Invalid credentials")
	}

	user.LastLogin = s.now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.signSessionToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *UserService) signSessionToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iat": s.now().Unix(),
		"exp": s.now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return signed, nil
}

// Profile returns the user with all derived relationship views populated.
func (s *UserService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.populateRelations(ctx, user, true); err != nil {
		return nil, err
	}
	return user, nil
}

// PublicProfile returns the user's public view: posts, followers and
// following, but not who they block or who viewed them.
func (s *UserService) PublicProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.populateRelations(ctx, user, false); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) populateRelations(ctx context.Context, user *models.User, includePrivate bool) error {
	posts, err := s.postRepo.GetByUserID(ctx, user.ID, 100, 0, 0)
	if err != nil {
		return err
	}
	user.Posts = make([]models.Post, 0, len(posts))
	for _, p := range posts {
		user.Posts = append(user.Posts, *p)
	}

	if user.Following, err = s.relRepo.Following(ctx, user.ID); err != nil {
		return err
	}
	if user.Followers, err = s.relRepo.Followers(ctx, user.ID); err != nil {
		return err
	}
	if !includePrivate {
		return nil
	}
	if user.BlockedUsers, err = s.relRepo.BlockedUsers(ctx, user.ID); err != nil {
		return err
	}
	if user.ProfileViewers, err = s.relRepo.ProfileViewers(ctx, user.ID); err != nil {
		return err
	}
	return nil
}

// UpdateProfile applies a partial profile update.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500
	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}
	if in.Location != "" {
		user.Location = in.Location
	}
	if in.Gender != "" {
		user.Gender = in.Gender
	}
	if in.AccountLevel != "" {
		switch models.AccountLevel(in.AccountLevel) {
		case models.AccountLevelBronze, models.AccountLevelSilver, models.AccountLevelGold:
			user.AccountLevel = models.AccountLevel(in.AccountLevel)
		default:
			return nil, models.NewValidationError("Account level must be bronze, silver or gold")
		}
	}
	if in.ProfilePicture != "" {
		user.ProfilePicture = in.ProfilePicture
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Follow subscribes viewer to target's activity.
func (s *UserService) Follow(ctx context.Context, viewerID, targetID uint) error {
	if viewerID == targetID {
		return models.NewValidationError("You cannot follow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}
	return s.relRepo.Follow(ctx, viewerID, targetID)
}

// Unfollow removes viewer's subscription to target.
func (s *UserService) Unfollow(ctx context.Context, viewerID, targetID uint) error {
	if viewerID == targetID {
		return models.NewValidationError("You cannot unfollow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}
	return s.relRepo.Unfollow(ctx, viewerID, targetID)
}

// Block hides viewer's posts from target. One-directional.
func (s *UserService) Block(ctx context.Context, viewerID, targetID uint) error {
	if viewerID == targetID {
		return models.NewValidationError("You cannot block yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}
	return s.relRepo.Block(ctx, viewerID, targetID)
}

// Unblock lifts a block.
func (s *UserService) Unblock(ctx context.Context, viewerID, targetID uint) error {
	if viewerID == targetID {
		return models.NewValidationError("You cannot unblock yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}
	return s.relRepo.Unblock(ctx, viewerID, targetID)
}

// ViewProfile records that viewer looked at profile. Counted once ever per
// viewer; a repeat view conflicts.
func (s *UserService) ViewProfile(ctx context.Context, viewerID, profileID uint) error {
	if viewerID == profileID {
		return models.NewValidationError("Viewing your own profile is not counted")
	}
	if _, err := s.userRepo.GetByID(ctx, profileID); err != nil {
		return err
	}
	return s.relRepo.RecordProfileView(ctx, viewerID, profileID)
}

// IssuePasswordResetToken generates a single-use reset token, stores its hash
// with an expiry, and hands the plaintext to the mailer.
func (s *UserService) IssuePasswordResetToken(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return models.NewNotFoundError("User", email)
	}

	token, hash, err := generateToken()
	if err != nil {
		return err
	}
	expires := s.now().Add(time.Duration(s.cfg.TokenTTLMinutes) * time.Minute)
	user.PasswordResetToken = hash
	user.PasswordResetExpires = &expires
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	return s.mail.SendPasswordReset(ctx, user.Email, token)
}

// ConsumePasswordResetToken replaces the credential if the token matches and
// has not expired, then clears the token fields.
func (s *UserService) ConsumePasswordResetToken(ctx context.Context, token, newPassword string) error {
	if err := validation.ValidatePassword(newPassword); err != nil {
		return models.NewValidationError(err.Error())
	}

	user, err := s.userRepo.GetByResetTokenHash(ctx, hashToken(token), s.now())
	if err != nil {
		return err
	}
	if user == nil {
		return models.NewTokenError("Password reset token is invalid or has expired")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	user.Password = string(hashed)
	user.PasswordResetToken = ""
	user.PasswordResetExpires = nil
	return s.userRepo.Update(ctx, user)
}

// IssueVerificationToken generates a single-use account verification token.
func (s *UserService) IssueVerificationToken(ctx context.Context, userID uint) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsVerified {
		return models.NewConflictError("Account is already verified")
	}

	token, hash, err := generateToken()
	if err != nil {
		return err
	}
	expires := s.now().Add(time.Duration(s.cfg.TokenTTLMinutes) * time.Minute)
	user.VerificationToken = hash
	user.VerificationExpires = &expires
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	return s.mail.SendVerification(ctx, user.Email, token)
}

// ConsumeVerificationToken marks the account verified if the token matches
// and has not expired.
func (s *UserService) ConsumeVerificationToken(ctx context.Context, token string) error {
	user, err := s.userRepo.GetByVerificationTokenHash(ctx, hashToken(token), s.now())
	if err != nil {
		return err
	}
	if user == nil {
		return models.NewTokenError("Verification token is invalid or has expired")
	}

	user.IsVerified = true
	user.VerificationToken = ""
	user.VerificationExpires = nil
	return s.userRepo.Update(ctx, user)
}

// generateToken returns a random token and the hash that gets stored.
func generateToken() (token, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", models.NewInternalError(err)
	}
	token = hex.EncodeToString(buf)
	return token, hashToken(token), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
