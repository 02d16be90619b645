package database

import "blogify/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Category{},
		&models.Post{},
		&models.Comment{},
		&models.Reaction{},
		&models.PostView{},
		&models.ProfileView{},
		&models.Follow{},
		&models.Block{},
	}
}
