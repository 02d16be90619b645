// Package seed provides database seeding utilities for development.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"blogify/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options configuration for the seeder.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// DefaultPassword is the login password for every seeded account.
const DefaultPassword = "Seeded!Passw0rd"

var categoryNames = []string{
	"Programming", "Linux", "Frontend", "Backend", "DevOps", "Cloud",
	"Databases", "Security", "Career", "Open Source", "Homelab", "AI",
}

// Seed populates the database with fake users, categories, posts,
// relationships, and engagement.
func Seed(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return err
	}
	log.Printf("Created %d users", len(users))

	categories, err := createCategories(db, users)
	if err != nil {
		return err
	}
	log.Printf("Created %d categories", len(categories))

	posts, err := createPosts(db, users, categories, opts.NumPosts)
	if err != nil {
		return err
	}
	log.Printf("Created %d posts", len(posts))

	if err := createSocialGraph(db, users); err != nil {
		return err
	}
	if err := createEngagement(db, users, posts); err != nil {
		return err
	}

	log.Println("Seeding complete")
	return nil
}

func clearData(db *gorm.DB) error {
	// Children before parents to keep foreign keys happy.
	for _, model := range []any{
		&models.Reaction{}, &models.PostView{}, &models.ProfileView{},
		&models.Comment{}, &models.Post{}, &models.Category{},
		&models.Follow{}, &models.Block{}, &models.User{},
	} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	// One bcrypt hash shared across accounts keeps seeding fast.
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		user := models.User{
			Username:       fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
			Email:          gofakeit.Email(),
			Password:       string(hash),
			Role:           models.RoleUser,
			Bio:            gofakeit.Sentence(10),
			Location:       gofakeit.City(),
			Gender:         gofakeit.RandomString([]string{"male", "female", "nonbinary", "prefer not to say"}),
			ProfilePicture: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
			IsVerified:     gofakeit.Bool(),
			LastLogin:      gofakeit.DateRange(time.Now().AddDate(0, -3, 0), time.Now()),
		}
		if err := db.Create(&user).Error; err != nil {
			// Random usernames can collide; skip and keep going.
			continue
		}
		users = append(users, user)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("no users created")
	}
	return users, nil
}

func createCategories(db *gorm.DB, users []models.User) ([]models.Category, error) {
	categories := make([]models.Category, 0, len(categoryNames))
	for _, name := range categoryNames {
		category := models.Category{
			Name:   name,
			UserID: users[rand.Intn(len(users))].ID,
			Shares: gofakeit.Number(0, 50),
		}
		if err := db.Create(&category).Error; err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}

func createPosts(db *gorm.DB, users []models.User, categories []models.Category, count int) ([]models.Post, error) {
	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		post := models.Post{
			Title:    fmt.Sprintf("%s (%s)", gofakeit.Sentence(5), gofakeit.UUID()[:8]),
			Content:  gofakeit.Paragraph(2, 4, 8, "\n\n"),
			ImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID()),
			UserID:   users[rand.Intn(len(users))].ID,
			Claps:    gofakeit.Number(0, 40),
		}
		if rand.Intn(100) < 80 {
			post.CategoryID = &categories[rand.Intn(len(categories))].ID
		}
		// A slice of posts is scheduled into the future.
		if rand.Intn(100) < 10 {
			when := time.Now().UTC().Add(time.Duration(gofakeit.Number(1, 240)) * time.Hour)
			post.ScheduledPublish = &when
		}
		if err := db.Create(&post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func createSocialGraph(db *gorm.DB, users []models.User) error {
	follows, blocks := 0, 0
	for i := range users {
		for _, j := range rand.Perm(len(users))[:min(len(users), 6)] {
			// One row per pair; a follow is mutual.
			if j <= i {
				continue
			}
			follow := models.Follow{FollowerID: users[i].ID, FollowingID: users[j].ID}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow).Error; err != nil {
				return err
			}
			follows++
		}
		// Occasional blocks exercise the feed filter.
		if rand.Intn(100) < 15 {
			j := rand.Intn(len(users))
			if j != i {
				block := models.Block{BlockerID: users[i].ID, BlockedID: users[j].ID}
				if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&block).Error; err != nil {
					return err
				}
				blocks++
			}
		}
	}
	log.Printf("Created %d follows, %d blocks", follows, blocks)
	return nil
}

func createEngagement(db *gorm.DB, users []models.User, posts []models.Post) error {
	reactions, views, comments := 0, 0, 0
	for _, post := range posts {
		for _, j := range rand.Perm(len(users))[:min(len(users), 8)] {
			user := users[j]

			if rand.Intn(100) < 60 {
				view := models.PostView{UserID: user.ID, PostID: post.ID}
				if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&view).Error; err != nil {
					return err
				}
				views++
			}
			if rand.Intn(100) < 40 {
				kind := models.ReactionLike
				if rand.Intn(100) < 25 {
					kind = models.ReactionDislike
				}
				reaction := models.Reaction{UserID: user.ID, PostID: post.ID, Kind: kind}
				if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&reaction).Error; err != nil {
					return err
				}
				reactions++
			}
			if rand.Intn(100) < 25 {
				comment := models.Comment{
					UserID:  user.ID,
					PostID:  post.ID,
					Message: gofakeit.Sentence(gofakeit.Number(5, 20)),
				}
				if err := db.Create(&comment).Error; err != nil {
					return err
				}
				comments++
			}
		}
	}
	log.Printf("Created %d reactions, %d views, %d comments", reactions, views, comments)
	return nil
}
