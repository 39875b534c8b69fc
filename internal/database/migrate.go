package database

import (
	"fmt"
	"log"

	"DealDoor/internal/models"
)

func Migrate() error {
	log.Println("Running database migrations...")

	err := DB.AutoMigrate(
		&models.User{},
		&models.PendingUser{},
		&models.Listing{},
		&models.ListingImage{},
		&models.Conversation{},
		&models.Message{},
		&models.WaitlistRequest{},
		&models.BountyClaim{},
		&models.Payout{},
		&models.Notification{},
	)

	if err != nil {
		log.Printf("Error migrating database: %v", err)
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Println("Database migration completed successfully")
	return nil
}
