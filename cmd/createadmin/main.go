package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"meridian/internal/database"
	"meridian/internal/logger"
	"meridian/internal/models"
)

// createadmin bootstraps (or repairs) an admin account with a password,
// so the admin console stays reachable before any magic-link mail is
// configured.
func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	email := flag.String("email", "", "admin email address")
	password := flag.String("password", "", "admin password")
	firstName := flag.String("first-name", "", "first name")
	lastName := flag.String("last-name", "", "last name")
	flag.Parse()

	if err := run(*email, *password, *firstName, *lastName); err != nil {
		logger.Get().Fatalf("createadmin: %v", err)
	}
}

func run(email, password, firstName, lastName string) error {
	if email == "" || password == "" {
		return fmt.Errorf("both -email and -password are required")
	}
	if len(password) < 12 {
		return fmt.Errorf("password must be at least 12 characters")
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	db := dbManager.DB()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	var user models.User
	err = db.Where("email = ?", email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{
			Email:     email,
			Role:      models.RoleAdmin,
			FirstName: firstName,
			LastName:  lastName,
			Password:  string(hash),
			IsActive:  true,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create admin: %w", err)
		}
		logger.Get().Infow("Admin created", "email", email, "id", user.ID)

	case err != nil:
		return fmt.Errorf("failed to look up user: %w", err)

	default:
		updates := map[string]interface{}{
			"role":      models.RoleAdmin,
			"password":  string(hash),
			"is_active": true,
		}
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		logger.Get().Infow("Existing user promoted to admin", "email", email, "id", user.ID)
	}

	return nil
}
