// Package server contains the HTTP handlers and route wiring for the API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"blogify/internal/cache"
	"blogify/internal/config"
	"blogify/internal/database"
	"blogify/internal/mailer"
	"blogify/internal/middleware"
	"blogify/internal/models"
	"blogify/internal/repository"
	"blogify/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo    repository.UserRepository
	relRepo     repository.RelationshipRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	catRepo     repository.CategoryRepository

	userService       *service.UserService
	postService       *service.PostService
	engagementService *service.EngagementService
	commentService    *service.CommentService
	categoryService   *service.CategoryService
}

// NewServer creates a server instance, connecting to the database and Redis.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient()), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use this with an in-memory database.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	middleware.InitMiddleware(cfg)

	userRepo := repository.NewUserRepository(db)
	relRepo := repository.NewRelationshipRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	catRepo := repository.NewCategoryRepository(db)

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("blogify-api"),
		userRepo:       userRepo,
		relRepo:        relRepo,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
		catRepo:        catRepo,
	}
	s.userService = service.NewUserService(userRepo, relRepo, postRepo, mailer.NewLogMailer(), cfg)
	s.postService = service.NewPostService(postRepo, relRepo, catRepo)
	s.engagementService = service.NewEngagementService(postRepo)
	s.commentService = service.NewCommentService(commentRepo, postRepo)
	s.categoryService = service.NewCategoryService(catRepo)

	return s
}

// SetupMiddleware configures the middleware stack for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))

	// Propagate request ID and user ID into the request context for logging.
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())

	app.Use(middleware.StructuredLogger())

	// CORS before middlewares that can short-circuit, so browser clients
	// still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP).
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Status:  "failed",
				Message: "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api/v1")

	users := api.Group("/users")
	users.Post("/register", middleware.RateLimit(3, 10*time.Minute, "register"), s.Register)
	users.Post("/login", middleware.RateLimit(10, 5*time.Minute, "login"), s.Login)
	users.Post("/forgot-password", middleware.RateLimit(3, 10*time.Minute, "forgot_password"), s.ForgotPassword)
	users.Put("/reset-password/:token", middleware.RateLimit(5, 10*time.Minute, "reset_password"), s.ResetPassword)
	users.Get("/public-profile/:userId", s.GetPublicProfile)

	users.Get("/profile", middleware.AuthRequired, s.GetProfile)
	users.Put("/update-profile", middleware.AuthRequired, s.UpdateProfile)
	users.Put("/follow/:id", middleware.AuthRequired, s.FollowUser)
	users.Put("/unfollow/:id", middleware.AuthRequired, s.UnfollowUser)
	users.Put("/block/:id", middleware.AuthRequired, s.BlockUser)
	users.Put("/unblock/:id", middleware.AuthRequired, s.UnblockUser)
	users.Get("/view-other-profile/:userId", middleware.AuthRequired, s.ViewOtherProfile)
	users.Post("/account-verification-email", middleware.AuthRequired, s.SendVerificationEmail)
	users.Put("/verify-account/:token", middleware.AuthRequired, s.VerifyAccount)

	posts := api.Group("/posts")
	posts.Get("/public", s.GetPublicPosts)
	posts.Get("/", middleware.AuthRequired, s.GetPosts)
	posts.Get("/search", middleware.AuthRequired, s.SearchPosts)
	posts.Post("/", middleware.AuthRequired, s.CreatePost)
	// Specific /:id/:resource routes before the generic /:id routes.
	posts.Put("/like/:postId", middleware.AuthRequired, s.LikePost)
	posts.Put("/dislike/:postId", middleware.AuthRequired, s.DislikePost)
	posts.Put("/claps/:postId", middleware.AuthRequired, s.ClapPost)
	posts.Put("/schedule/:postId", middleware.AuthRequired, s.SchedulePost)
	posts.Put("/:postId/post-view-count", middleware.AuthRequired, s.RecordPostView)
	posts.Get("/:id", middleware.OptionalAuth, s.GetPost)
	posts.Put("/:id", middleware.AuthRequired, s.UpdatePost)
	posts.Delete("/:id", middleware.AuthRequired, s.DeletePost)

	comments := api.Group("/comments", middleware.AuthRequired)
	comments.Post("/:postId", s.CreateComment)
	comments.Put("/:commentId", s.UpdateComment)
	comments.Delete("/:commentId", s.DeleteComment)

	categories := api.Group("/categories")
	categories.Get("/", s.GetCategories)
	categories.Get("/:id", s.GetCategory)
	categories.Post("/", middleware.AuthRequired, s.CreateCategory)
	categories.Put("/:id", middleware.AuthRequired, s.UpdateCategory)
	categories.Delete("/:id", middleware.AuthRequired, s.DeleteCategory)

	// Unmatched routes get the canonical not-found envelope.
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "failed",
			"message": fmt.Sprintf("Cannot find %s on this server", c.OriginalURL()),
		})
	})
}

// LivenessCheck handles liveness probe requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck reports database and cache health.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The app keeps serving without a cache.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// NewApp builds the Fiber application with middleware and routes applied.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Blogify API",
		ErrorHandler: unhandledErrorResponder,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.app = app
	return app
}

// unhandledErrorResponder shapes errors that escape the handlers. Application
// errors keep their taxonomy mapping; anything else becomes the legacy 500
// envelope with the error detail in the stack field.
func unhandledErrorResponder(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return models.RespondWithError(c, appErr)
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"status":  "failed",
			"message": fiberErr.Message,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"status":  "Failed",
		"message": "Something went wrong",
		"stack":   err.Error(),
	})
}

// Start runs the server until Listen returns.
func (s *Server) Start() error {
	app := s.NewApp()
	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully stops the server and closes connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
