package database

import (
	"fmt"
	"log"
	"os"

	"resonance-backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=resonance_store port=5432 sslmode=disable"
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	// Ensure PostgreSQL has gen_random_uuid() available (pgcrypto extension).
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		return fmt.Errorf("failed to enable pgcrypto extension: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Category{},
		&models.Instrument{},
		&models.Cart{},
		&models.CartItem{},
	); err != nil {
		return err
	}

	return nil
}

// SeedDefaultCategories populates the standard storefront categories on an
// empty database. Safe to run on every startup.
func SeedDefaultCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		// Catalog already populated
		return nil
	}

	categories := []models.Category{
		{Name: "Guitars", Slug: "guitars", Description: "Acoustic and electric guitars"},
		{Name: "Bass Guitars", Slug: "bass-guitars", Description: "Electric and acoustic bass guitars"},
		{Name: "Drums", Slug: "drums", Description: "Complete drum kits and percussion instruments"},
		{Name: "Keyboards", Slug: "keyboards", Description: "Digital pianos, synthesizers, and MIDI keyboards"},
		{Name: "Wind Instruments", Slug: "wind-instruments", Description: "Saxophones, trumpets, flutes, and more"},
		{Name: "Amps & Effects", Slug: "amps-effects", Description: "Amplifiers, effect pedals, and audio gear"},
	}

	if err := db.Create(&categories).Error; err != nil {
		return err
	}

	log.Printf("Seeded %d default categories", len(categories))
	return nil
}
