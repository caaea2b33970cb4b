package services

import (
	"mallparking/database"
	"mallparking/models"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 以記憶體 SQLite 取代全域 DB，每個測試拿到獨立的資料庫
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Lot{},
		&models.Spot{},
		&models.Reservation{},
		&models.Feedback{},
	))

	database.DB = db
}

func createTestUser(t *testing.T, email string) *models.User {
	t.Helper()
	user, err := RegisterUser(&models.RegisterRequest{
		Username: "tester",
		Email:    email,
		Password: "password123",
	})
	require.NoError(t, err)
	return user
}

func createTestLot(t *testing.T, totalSlots int, price float64, vehicleType string) *models.Lot {
	t.Helper()
	lot, err := CreateLot(&models.CreateLotRequest{
		Name:        "City Mall",
		Location:    "Downtown",
		Price:       price,
		Address:     "1 Main Street",
		Pincode:     "560001",
		TotalSlots:  totalSlots,
		VehicleType: vehicleType,
	})
	require.NoError(t, err)
	return lot
}
