package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"canteen-api/models"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens a fresh in-memory database named after the test so parallel
// tests never share state.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
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
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string, role models.UserRole) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := models.User{
		Name:         name,
		Email:        name + "@canteen.test",
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return &user
}

func seedItem(t *testing.T, db *gorm.DB, name string, offered bool, portions map[string]float64) *models.MenuItem {
	t.Helper()
	item := models.MenuItem{
		Name:        name,
		Description: "A seeded test dish",
		Category:    "Lunch",
		Offered:     offered,
		Windows:     []models.ItemWindow{{Window: models.WindowAllDay}},
	}
	for pname, price := range portions {
		item.Portions = append(item.Portions, models.Portion{Name: pname, Price: price})
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return &item
}

var ctx = context.Background()
