package services

import (
	"fmt"
	"mallparking/database"
	"mallparking/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spotCount(t *testing.T, lotID int) int64 {
	t.Helper()
	var count int64
	require.NoError(t, database.DB.Model(&models.Spot{}).Where("lot_id = ?", lotID).Count(&count).Error)
	return count
}

func occupySpot(t *testing.T, spotID int) {
	t.Helper()
	require.NoError(t, database.DB.Model(&models.Spot{}).
		Where("spot_id = ?", spotID).
		Update("status", models.SpotStatusOccupied).Error)
}

func TestCreateLotCreatesSpots(t *testing.T) {
	setupTestDB(t)

	lot := createTestLot(t, 3, 50, "4-wheeler")
	assert.EqualValues(t, 3, spotCount(t, lot.LotID))

	var spots []models.Spot
	require.NoError(t, database.DB.Where("lot_id = ?", lot.LotID).Order("spot_id ASC").Find(&spots).Error)
	for i, spot := range spots {
		assert.Equal(t, fmt.Sprintf("S%d", i+1), spot.SlotNumber)
		assert.Equal(t, models.SpotStatusAvailable, spot.Status)
		assert.Equal(t, "4-wheeler", spot.VehicleType)
	}
}

func TestUpdateLotGrow(t *testing.T) {
	setupTestDB(t)

	lot := createTestLot(t, 2, 50, "4-wheeler")

	newSlots := 4
	updated, err := UpdateLot(lot.LotID, &models.UpdateLotRequest{TotalSlots: &newSlots})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.TotalSlots)
	assert.EqualValues(t, 4, spotCount(t, lot.LotID))

	// 新車位編號接續現有序號
	var spots []models.Spot
	require.NoError(t, database.DB.Where("lot_id = ?", lot.LotID).Order("spot_id ASC").Find(&spots).Error)
	assert.Equal(t, "S3", spots[2].SlotNumber)
	assert.Equal(t, "S4", spots[3].SlotNumber)
}

func TestUpdateLotShrinkRemovesNewestAvailable(t *testing.T) {
	setupTestDB(t)

	lot := createTestLot(t, 4, 50, "4-wheeler")

	var spots []models.Spot
	require.NoError(t, database.DB.Where("lot_id = ?", lot.LotID).Order("spot_id ASC").Find(&spots).Error)

	// 佔用 S1，縮減時應移除 ID 最大的兩個可用車位（S3、S4）
	occupySpot(t, spots[0].SpotID)

	newSlots := 2
	updated, err := UpdateLot(lot.LotID, &models.UpdateLotRequest{TotalSlots: &newSlots})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.TotalSlots)
	assert.EqualValues(t, 2, spotCount(t, lot.LotID))

	var remaining []models.Spot
	require.NoError(t, database.DB.Where("lot_id = ?", lot.LotID).Order("spot_id ASC").Find(&remaining).Error)
	assert.Equal(t, "S1", remaining[0].SlotNumber)
	assert.Equal(t, "S2", remaining[1].SlotNumber)
}

func TestUpdateLotShrinkCapacityConflict(t *testing.T) {
	setupTestDB(t)

	lot := createTestLot(t, 3, 50, "4-wheeler")

	var spots []models.Spot
	require.NoError(t, database.DB.Where("lot_id = ?", lot.LotID).Find(&spots).Error)
	occupySpot(t, spots[0].SpotID)
	occupySpot(t, spots[1].SpotID)

	// 要移除兩個車位但只有一個 Available：整個操作失敗且不留部分變更
	newSlots := 1
	_, err := UpdateLot(lot.LotID, &models.UpdateLotRequest{TotalSlots: &newSlots})
	assert.ErrorIs(t, err, ErrCapacityConflict)

	assert.EqualValues(t, 3, spotCount(t, lot.LotID))

	var unchanged models.Lot
	require.NoError(t, database.DB.First(&unchanged, lot.LotID).Error)
	assert.Equal(t, 3, unchanged.TotalSlots)
}

func TestUpdateLotScalarFields(t *testing.T) {
	setupTestDB(t)

	lot := createTestLot(t, 2, 50, "4-wheeler")

	name := "Harbor Mall"
	price := 75.0
	updated, err := UpdateLot(lot.LotID, &models.UpdateLotRequest{Name: &name, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "Harbor Mall", updated.Name)
	assert.Equal(t, 75.0, updated.Price)
	assert.Equal(t, 2, updated.TotalSlots)
	assert.EqualValues(t, 2, spotCount(t, lot.LotID))
}

func TestDeleteLotOccupancyConflict(t *testing.T) {
	setupTestDB(t)

	lot := createTestLot(t, 2, 50, "4-wheeler")

	var spots []models.Spot
	require.NoError(t, database.DB.Where("lot_id = ?", lot.LotID).Find(&spots).Error)
	occupySpot(t, spots[0].SpotID)

	err := DeleteLot(lot.LotID)
	assert.ErrorIs(t, err, ErrOccupancyConflict)
	assert.EqualValues(t, 2, spotCount(t, lot.LotID))
}

func TestDeleteLotRemovesSpots(t *testing.T) {
	setupTestDB(t)

	lot := createTestLot(t, 2, 50, "4-wheeler")

	require.NoError(t, DeleteLot(lot.LotID))
	assert.EqualValues(t, 0, spotCount(t, lot.LotID))

	_, err := GetLotByID(lot.LotID)
	assert.ErrorIs(t, err, ErrLotNotFound)
}

func TestGetLotsAvailabilityCounts(t *testing.T) {
	setupTestDB(t)

	lot := createTestLot(t, 3, 50, "4-wheeler")

	var spots []models.Spot
	require.NoError(t, database.DB.Where("lot_id = ?", lot.LotID).Find(&spots).Error)
	occupySpot(t, spots[0].SpotID)

	lots, err := GetLots("")
	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.Equal(t, 2, lots[0].AvailableSpots)

	// 地點過濾不分大小寫
	lots, err = GetLots("downtown")
	require.NoError(t, err)
	assert.Len(t, lots, 1)

	lots, err = GetLots("nowhere")
	require.NoError(t, err)
	assert.Len(t, lots, 0)
}
