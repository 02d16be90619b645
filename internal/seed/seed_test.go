package seed

import (
	"testing"

	"blogify/internal/database"
	"blogify/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:seedtest?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

func TestSeedPopulatesDatabase(t *testing.T) {
	db := setupSeedTestDB(t)

	if err := Seed(db, Options{NumUsers: 8, NumPosts: 20, ShouldClean: true}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var userCount, postCount, categoryCount int64
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.Post{}).Count(&postCount)
	db.Model(&models.Category{}).Count(&categoryCount)

	if userCount == 0 {
		t.Fatal("expected seeded users")
	}
	if postCount != 20 {
		t.Fatalf("expected 20 posts, got %d", postCount)
	}
	if categoryCount == 0 {
		t.Fatal("expected seeded categories")
	}

	// Re-seeding with cleanup starts from a blank slate.
	if err := Seed(db, Options{NumUsers: 3, NumPosts: 5, ShouldClean: true}); err != nil {
		t.Fatalf("re-seed: %v", err)
	}
	db.Model(&models.Post{}).Count(&postCount)
	if postCount != 5 {
		t.Fatalf("after re-seed: expected 5 posts, got %d", postCount)
	}
}
