package services

import (
	"mallparking/database"
	"mallparking/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateCost(t *testing.T) {
	start := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	// 任何非零停放時間至少收一小時
	assert.Equal(t, 100.0, CalculateCost(start, start.Add(1*time.Second), 100))

	// 超過整點一秒就進入下一小時
	assert.Equal(t, 200.0, CalculateCost(start, start.Add(3601*time.Second), 100))

	// 剛好整點不多收
	assert.Equal(t, 100.0, CalculateCost(start, start.Add(1*time.Hour), 100))

	// 區間顛倒時視為零，仍收最低一小時
	assert.Equal(t, 100.0, CalculateCost(start, start.Add(-1*time.Hour), 100))

	// 90 分鐘收兩小時
	assert.Equal(t, 100.0, CalculateCost(start, start.Add(90*time.Minute), 50))
}

func TestBookAndReleaseScenario(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "alice@example.com")
	lot := createTestLot(t, 2, 50, "4-wheeler")

	// 預約兩小時：費用為估算值（費率 × 時數），取編號最小的車位
	reservation, err := BookSpot(user.UserID, &models.BookingRequest{
		LotID:         lot.LotID,
		VehicleType:   "4-wheeler",
		DurationHours: 2,
	})
	require.NoError(t, err)
	assert.True(t, reservation.IsActive)
	assert.Nil(t, reservation.EndTime)
	assert.Equal(t, 100.0, reservation.TotalCost)

	var spot models.Spot
	require.NoError(t, database.DB.First(&spot, reservation.SpotID).Error)
	assert.Equal(t, "S1", spot.SlotNumber)
	assert.Equal(t, models.SpotStatusOccupied, spot.Status)

	// 同一使用者的第二次預約必須在任何變更前被擋下
	_, err = BookSpot(user.UserID, &models.BookingRequest{LotID: lot.LotID, VehicleType: "4-wheeler", DurationHours: 1})
	assert.ErrorIs(t, err, ErrActiveReservationExists)

	var occupiedCount int64
	require.NoError(t, database.DB.Model(&models.Spot{}).
		Where("lot_id = ? AND status = ?", lot.LotID, models.SpotStatusOccupied).
		Count(&occupiedCount).Error)
	assert.EqualValues(t, 1, occupiedCount)

	// 模擬已停放 90 分鐘後結算：ceil(1.5) = 2 小時 × 50
	simulatedStart := time.Now().UTC().Add(-90 * time.Minute)
	require.NoError(t, database.DB.Model(&models.Reservation{}).
		Where("reservation_id = ?", reservation.ReservationID).
		Update("start_time", simulatedStart).Error)

	released, err := ReleaseSpot(reservation.ReservationID, user.UserID)
	require.NoError(t, err)
	assert.False(t, released.IsActive)
	assert.NotNil(t, released.EndTime)
	assert.Equal(t, 100.0, released.TotalCost)

	require.NoError(t, database.DB.First(&spot, reservation.SpotID).Error)
	assert.Equal(t, models.SpotStatusAvailable, spot.Status)
}

func TestBookSpotNoSpotAvailable(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "bob@example.com")
	lot := createTestLot(t, 1, 30, "2-wheeler")

	// 車種不符時沒有可用車位
	_, err := BookSpot(user.UserID, &models.BookingRequest{LotID: lot.LotID, VehicleType: "4-wheeler", DurationHours: 1})
	assert.ErrorIs(t, err, ErrNoSpotAvailable)

	// 唯一車位被佔走後同樣沒有可用車位
	other := createTestUser(t, "carol@example.com")
	_, err = BookSpot(other.UserID, &models.BookingRequest{LotID: lot.LotID, VehicleType: "2-wheeler", DurationHours: 1})
	require.NoError(t, err)

	_, err = BookSpot(user.UserID, &models.BookingRequest{LotID: lot.LotID, VehicleType: "2-wheeler", DurationHours: 1})
	assert.ErrorIs(t, err, ErrNoSpotAvailable)
}

func TestBookSpotLotNotFound(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "dave@example.com")
	_, err := BookSpot(user.UserID, &models.BookingRequest{LotID: 999, VehicleType: "4-wheeler", DurationHours: 1})
	assert.ErrorIs(t, err, ErrLotNotFound)
}

func TestReleaseSpotPermissions(t *testing.T) {
	setupTestDB(t)

	owner := createTestUser(t, "owner@example.com")
	stranger := createTestUser(t, "stranger@example.com")
	lot := createTestLot(t, 1, 40, "4-wheeler")

	reservation, err := BookSpot(owner.UserID, &models.BookingRequest{LotID: lot.LotID, VehicleType: "4-wheeler", DurationHours: 1})
	require.NoError(t, err)

	// 不存在的預約
	_, err = ReleaseSpot(999, owner.UserID)
	assert.ErrorIs(t, err, ErrReservationNotFound)

	// 只有本人能結算
	_, err = ReleaseSpot(reservation.ReservationID, stranger.UserID)
	assert.ErrorIs(t, err, ErrForbidden)

	// 他人嘗試結算失敗後車位必須仍為 Occupied
	var spot models.Spot
	require.NoError(t, database.DB.First(&spot, reservation.SpotID).Error)
	assert.Equal(t, models.SpotStatusOccupied, spot.Status)

	_, err = ReleaseSpot(reservation.ReservationID, owner.UserID)
	require.NoError(t, err)

	// 已結束的預約不能再結算
	_, err = ReleaseSpot(reservation.ReservationID, owner.UserID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGetActiveAndPastReservations(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "erin@example.com")
	lot := createTestLot(t, 2, 20, "4-wheeler")

	active, err := GetActiveReservation(user.UserID)
	require.NoError(t, err)
	assert.Nil(t, active)

	reservation, err := BookSpot(user.UserID, &models.BookingRequest{LotID: lot.LotID, VehicleType: "4-wheeler", DurationHours: 1})
	require.NoError(t, err)

	active, err = GetActiveReservation(user.UserID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, reservation.ReservationID, active.ReservationID)

	_, err = ReleaseSpot(reservation.ReservationID, user.UserID)
	require.NoError(t, err)

	active, err = GetActiveReservation(user.UserID)
	require.NoError(t, err)
	assert.Nil(t, active)

	past, err := GetPastReservations(user.UserID)
	require.NoError(t, err)
	require.Len(t, past, 1)
	assert.False(t, past[0].IsActive)
}
