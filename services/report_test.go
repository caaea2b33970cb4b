package services

import (
	"mallparking/database"
	"mallparking/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOccupancySnapshot(t *testing.T) {
	setupTestDB(t)

	lotA := createTestLot(t, 3, 50, "4-wheeler")
	createTestLot(t, 2, 30, "2-wheeler")

	user := createTestUser(t, "frank@example.com")
	_, err := BookSpot(user.UserID, &models.BookingRequest{LotID: lotA.LotID, VehicleType: "4-wheeler", DurationHours: 1})
	require.NoError(t, err)

	snapshot, err := OccupancySnapshot()
	require.NoError(t, err)
	require.Len(t, snapshot, 2)

	assert.Equal(t, lotA.LotID, snapshot[0].LotID)
	assert.Equal(t, 3, snapshot[0].TotalSpots)
	assert.Equal(t, 1, snapshot[0].Occupied)
	assert.Equal(t, 0, snapshot[1].Occupied)
}

func TestSpendingHistoryOrderedByStartTime(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "grace@example.com")

	// 兩筆已結束的預約，開始時間不同天
	older := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 7, 15, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 7, 15, 11, 0, 0, 0, time.UTC)

	require.NoError(t, database.DB.Create(&models.Reservation{
		UserID: user.UserID, SpotID: 1, StartTime: newer, EndTime: &end,
		TotalCost: 80, IsActive: false, DurationHours: 2, VehicleType: "4-wheeler",
	}).Error)
	require.NoError(t, database.DB.Create(&models.Reservation{
		UserID: user.UserID, SpotID: 2, StartTime: older, EndTime: &end,
		TotalCost: 40, IsActive: false, DurationHours: 1, VehicleType: "4-wheeler",
	}).Error)

	// 進行中的預約不列入消費記錄
	require.NoError(t, database.DB.Create(&models.Reservation{
		UserID: user.UserID, SpotID: 3, StartTime: time.Now().UTC(),
		TotalCost: 50, IsActive: true, DurationHours: 1, VehicleType: "4-wheeler",
	}).Error)

	history, err := SpendingHistory(user.UserID)
	require.NoError(t, err)
	require.Len(t, history, 2)

	assert.Equal(t, "01 Jul", history[0].Label)
	assert.Equal(t, 40.0, history[0].Cost)
	assert.Equal(t, "15 Jul", history[1].Label)
	assert.Equal(t, 80.0, history[1].Cost)
}
