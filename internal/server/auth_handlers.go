package server

import (
	"blogify/internal/middleware"
	"blogify/internal/models"
	"blogify/internal/service"

	"github.com/gofiber/fiber/v2"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// sessionResponse is the envelope shared by register and login.
type sessionResponse struct {
	Status   string      `json:"status"`
	Token    string      `json:"token"`
	ID       uint        `json:"_id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
}

// Register creates a new account and returns a session token.
func (s *Server) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	user, token, err := s.userService.Register(c.UserContext(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(sessionResponse{
		Status:   "success",
		Token:    token,
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	})
}

// Login verifies credentials and returns a session token.
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if req.Username == "" || req.Password == "" {
		return models.RespondWithError(c, models.NewValidationError("Username and password are required"))
	}

	user, token, err := s.userService.Authenticate(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(sessionResponse{
		Status:   "success",
		Token:    token,
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	})
}

// ForgotPassword issues a password reset token to the given email.
func (s *Server) ForgotPassword(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return models.RespondWithError(c, models.NewValidationError("Email is required"))
	}

	if err := s.userService.IssuePasswordResetToken(c.UserContext(), req.Email); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Password reset email sent",
	})
}

// ResetPassword consumes a reset token and replaces the password.
func (s *Server) ResetPassword(c *fiber.Ctx) error {
	token := c.Params("token")
	var req struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil || req.Password == "" {
		return models.RespondWithError(c, models.NewValidationError("Password is required"))
	}

	if err := s.userService.ConsumePasswordResetToken(c.UserContext(), token, req.Password); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Password reset successfully, please login",
	})
}

// SendVerificationEmail issues an account verification token.
func (s *Server) SendVerificationEmail(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	if err := s.userService.IssueVerificationToken(c.UserContext(), userID); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Account verification email sent",
	})
}

// VerifyAccount consumes a verification token and marks the account verified.
func (s *Server) VerifyAccount(c *fiber.Ctx) error {
	token := c.Params("token")

	if err := s.userService.ConsumeVerificationToken(c.UserContext(), token); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Account successfully verified",
	})
}
