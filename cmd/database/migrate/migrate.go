package migration

import (
	"My-Tax-Tracker/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.Receipt{}); err != nil {
		log.Fatalf("Error migrating receipt database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.RevokedToken{}); err != nil {
		log.Fatalf("Error migrating revoked token database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
