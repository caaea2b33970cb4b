package services

import (
	"fmt"
	"log"
	"mallparking/database"
	"mallparking/models"
)

// LotOccupancy 單一停車場的即時佔用統計
type LotOccupancy struct {
	LotID      int    `json:"lot_id"`
	Name       string `json:"name"`
	TotalSpots int    `json:"total_spots"`
	Occupied   int    `json:"occupied"`
}

// SpendingEntry 使用者單筆消費記錄，label 為開始日期（例如 "02 Jan"）
type SpendingEntry struct {
	Label string  `json:"label"`
	Cost  float64 `json:"cost"`
}

// OccupancySnapshot 計算每個停車場的總車位與佔用數，即時讀取不做快取
func OccupancySnapshot() ([]LotOccupancy, error) {
	var lots []models.Lot
	if err := database.DB.Order("lot_id ASC").Find(&lots).Error; err != nil {
		log.Printf("Failed to query lots for occupancy snapshot: %v", err)
		return nil, fmt.Errorf("failed to query lots: %w", err)
	}

	snapshot := make([]LotOccupancy, 0, len(lots))
	for _, lot := range lots {
		var occupiedCount int64
		if err := database.DB.Model(&models.Spot{}).
			Where("lot_id = ? AND status = ?", lot.LotID, models.SpotStatusOccupied).
			Count(&occupiedCount).Error; err != nil {
			log.Printf("Failed to count occupied spots for lot %d: %v", lot.LotID, err)
			return nil, fmt.Errorf("failed to count occupied spots for lot %d: %w", lot.LotID, err)
		}
		snapshot = append(snapshot, LotOccupancy{
			LotID:      lot.LotID,
			Name:       lot.Name,
			TotalSpots: lot.TotalSlots,
			Occupied:   int(occupiedCount),
		})
	}
	return snapshot, nil
}

// SpendingHistory 查詢使用者所有已結束預約的消費，依開始時間由舊到新
func SpendingHistory(userID int) ([]SpendingEntry, error) {
	var reservations []models.Reservation
	if err := database.DB.Where("user_id = ? AND is_active = ?", userID, false).
		Order("start_time ASC").
		Find(&reservations).Error; err != nil {
		log.Printf("Failed to query spending history for user %d: %v", userID, err)
		return nil, fmt.Errorf("failed to query spending history: %w", err)
	}

	history := make([]SpendingEntry, 0, len(reservations))
	for _, r := range reservations {
		history = append(history, SpendingEntry{
			Label: r.StartTime.Format("02 Jan"),
			Cost:  r.TotalCost,
		})
	}
	return history, nil
}

// LogOccupancySnapshot 定時任務用，將即時佔用統計寫入日誌
func LogOccupancySnapshot() error {
	snapshot, err := OccupancySnapshot()
	if err != nil {
		return err
	}
	for _, entry := range snapshot {
		log.Printf("Occupancy: lot %d (%s) %d/%d occupied", entry.LotID, entry.Name, entry.Occupied, entry.TotalSpots)
	}
	return nil
}
