package config

import (
	"log"
	"os"
	"strconv"

	"canteen-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to sign tokens — read from env or fallback
var JWTSecret = []byte(getEnv("JWT_SECRET", "canteen_super_secret_2024"))

// TaxRate applied on top of the cart subtotal at placement.
var TaxRate = getEnvFloat("TAX_RATE", 0.05)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func InitDB() {
	// In-memory by default: orders and accounts reset on restart, matching
	// the session-local model. Set DB_DSN to a file path to persist.
	dsn := getEnv("DB_DSN", "file::memory:?cache=shared")

	var err error
	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate all models
	err = DB.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.Portion{},
		&models.ItemWindow{},
		&models.Order{},
		&models.OrderLine{},
		&models.OrderStatusHistory{},
		&models.PasswordResetRequest{},
		&models.Feedback{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("✅ Database connected and migrated successfully")
}
