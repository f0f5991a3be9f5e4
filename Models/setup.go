package Models

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the database from the environment and runs migrations.
// The returned handle is passed to every controller explicitly; nothing in
// this package holds a global connection.
func Connect() (*gorm.DB, error) {
	DbHost := os.Getenv("DB_HOST")
	DbUser := os.Getenv("DB_USER")
	DbPassword := os.Getenv("DB_PASSWORD")
	DbName := os.Getenv("DB_NAME")
	DbPort := os.Getenv("DB_PORT")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		DbHost, DbUser, DbPassword, DbName, DbPort)

	connection, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(connection); err != nil {
		return nil, err
	}

	return connection, nil
}

// Migrate creates or updates the schema. Shared with the test suites, which
// run it against an in-memory database.
func Migrate(db *gorm.DB) error {
	// 1. Base tables with no dependencies
	if err := db.AutoMigrate(
		&User{},
		&Resident{},
		&Expense{},
	); err != nil {
		return err
	}

	// 2. Tables keyed on residents, then the derived rollup
	return db.AutoMigrate(
		&Payment{},
		&PaymentTransaction{},
		&MonthlySummary{},
	)
}

// SeedAdmin creates the initial admin account from ADMIN_USERNAME and
// ADMIN_PASSWORD when no users exist yet. Does nothing on subsequent runs.
func SeedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		log.Println("ADMIN_USERNAME/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := User{
		Username: username,
		Password: string(hash),
		Role:     RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Seeded admin account %q", username)
	return nil
}
