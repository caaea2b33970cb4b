package services

import (
	"errors"
	"fmt"
	"log"
	"mallparking/database"
	"mallparking/models"
	"math"
	"time"

	"gorm.io/gorm"
)

// CalculateCost 依實際停放區間與每小時費率計算費用
// 不足一小時向上取整，任何非零停放時間至少收一小時
func CalculateCost(startTime, endTime time.Time, hourlyRate float64) float64 {
	elapsedSeconds := endTime.Sub(startTime).Seconds()
	if elapsedSeconds < 0 {
		elapsedSeconds = 0
	}
	billedHours := math.Ceil(elapsedSeconds / 3600.0)
	if billedHours < 1 {
		billedHours = 1
	}
	return hourlyRate * billedHours
}

// BookSpot 為使用者預約指定停車場內符合車種的第一個可用車位
// 預約時的 total_cost 為估算值（費率 × 預計時數），結算時才會以實際時間重算
func BookSpot(userID int, req *models.BookingRequest) (*models.Reservation, error) {
	vehicleType := req.VehicleType
	if vehicleType == "" {
		vehicleType = "4-wheeler"
	}
	duration := req.DurationHours
	if duration < 1 {
		duration = 1
	}

	var lot models.Lot
	if err := database.DB.First(&lot, req.LotID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLotNotFound
		}
		log.Printf("Failed to find lot %d: %v", req.LotID, err)
		return nil, fmt.Errorf("failed to find lot %d: %w", req.LotID, err)
	}

	// 每位使用者同時只能有一筆進行中的預約，任何變更前先檢查
	var activeCount int64
	if err := database.DB.Model(&models.Reservation{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&activeCount).Error; err != nil {
		log.Printf("Failed to check active reservations for user %d: %v", userID, err)
		return nil, fmt.Errorf("failed to check active reservations: %w", err)
	}
	if activeCount > 0 {
		log.Printf("User %d already has an active reservation", userID)
		return nil, ErrActiveReservationExists
	}

	tx := database.DB.Begin()

	var candidates []models.Spot
	if err := tx.Where("lot_id = ? AND vehicle_type = ? AND status = ?", req.LotID, vehicleType, models.SpotStatusAvailable).
		Order("spot_id ASC").
		Find(&candidates).Error; err != nil {
		tx.Rollback()
		log.Printf("Failed to query available spots for lot %d: %v", req.LotID, err)
		return nil, fmt.Errorf("failed to query available spots: %w", err)
	}

	// 條件式更新搶佔車位，避免兩筆預約同時拿到同一個車位
	var booked *models.Spot
	for i := range candidates {
		result := tx.Model(&models.Spot{}).
			Where("spot_id = ? AND status = ?", candidates[i].SpotID, models.SpotStatusAvailable).
			Update("status", models.SpotStatusOccupied)
		if result.Error != nil {
			tx.Rollback()
			log.Printf("Failed to occupy spot %d: %v", candidates[i].SpotID, result.Error)
			return nil, fmt.Errorf("failed to occupy spot %d: %w", candidates[i].SpotID, result.Error)
		}
		if result.RowsAffected == 1 {
			booked = &candidates[i]
			break
		}
	}
	if booked == nil {
		tx.Rollback()
		log.Printf("No available spot in lot %d for vehicle type %s", req.LotID, vehicleType)
		return nil, ErrNoSpotAvailable
	}

	reservation := &models.Reservation{
		UserID:        userID,
		SpotID:        booked.SpotID,
		StartTime:     time.Now().UTC(),
		IsActive:      true,
		DurationHours: duration,
		VehicleType:   vehicleType,
		TotalCost:     lot.Price * float64(duration),
	}
	if err := tx.Create(reservation).Error; err != nil {
		tx.Rollback()
		log.Printf("Failed to create reservation for user %d on spot %d: %v", userID, booked.SpotID, err)
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("User %d booked spot %d (%s) in lot %d, estimated cost %.2f", userID, booked.SpotID, booked.SlotNumber, req.LotID, reservation.TotalCost)
	return reservation, nil
}

// ReleaseSpot 結束預約並以實際停放時間重算費用，車位回復為 Available
// 只有預約本人能結算，已結束的預約不能再結算
func ReleaseSpot(reservationID, actorID int) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := database.DB.First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		log.Printf("Failed to find reservation %d: %v", reservationID, err)
		return nil, fmt.Errorf("failed to find reservation %d: %w", reservationID, err)
	}

	if reservation.UserID != actorID || !reservation.IsActive {
		log.Printf("Release denied: reservation %d, actor %d, owner %d, active %v", reservationID, actorID, reservation.UserID, reservation.IsActive)
		return nil, ErrForbidden
	}

	var spot models.Spot
	if err := database.DB.First(&spot, reservation.SpotID).Error; err != nil {
		log.Printf("Failed to find spot %d for reservation %d: %v", reservation.SpotID, reservationID, err)
		return nil, fmt.Errorf("failed to find spot %d: %w", reservation.SpotID, err)
	}

	var lot models.Lot
	if err := database.DB.First(&lot, spot.LotID).Error; err != nil {
		log.Printf("Failed to find lot %d for spot %d: %v", spot.LotID, spot.SpotID, err)
		return nil, fmt.Errorf("failed to find lot %d: %w", spot.LotID, err)
	}

	endTime := time.Now().UTC()
	totalCost := CalculateCost(reservation.StartTime, endTime, lot.Price)

	// 結算的四項變更必須一起提交
	tx := database.DB.Begin()

	updates := map[string]interface{}{
		"end_time":   endTime,
		"is_active":  false,
		"total_cost": totalCost,
	}
	if err := tx.Model(&reservation).Updates(updates).Error; err != nil {
		tx.Rollback()
		log.Printf("Failed to update reservation %d: %v", reservationID, err)
		return nil, fmt.Errorf("failed to update reservation %d: %w", reservationID, err)
	}

	if err := tx.Model(&spot).Update("status", models.SpotStatusAvailable).Error; err != nil {
		tx.Rollback()
		log.Printf("Failed to release spot %d: %v", spot.SpotID, err)
		return nil, fmt.Errorf("failed to release spot %d: %w", spot.SpotID, err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	reservation.EndTime = &endTime
	reservation.IsActive = false
	reservation.TotalCost = totalCost

	log.Printf("User %d released reservation %d, final cost %.2f", actorID, reservationID, totalCost)
	return &reservation, nil
}

// GetActiveReservation 查詢使用者目前進行中的預約，沒有則回傳 nil
func GetActiveReservation(userID int) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := database.DB.Where("user_id = ? AND is_active = ?", userID, true).
		First(&reservation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("Failed to get active reservation for user %d: %v", userID, err)
		return nil, fmt.Errorf("failed to get active reservation: %w", err)
	}
	return &reservation, nil
}

// GetPastReservations 查詢使用者已結束的預約，依開始時間由新到舊
func GetPastReservations(userID int) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := database.DB.Where("user_id = ? AND is_active = ?", userID, false).
		Order("start_time DESC").
		Find(&reservations).Error; err != nil {
		log.Printf("Failed to get past reservations for user %d: %v", userID, err)
		return nil, fmt.Errorf("failed to get past reservations: %w", err)
	}
	return reservations, nil
}

// GetAllReservations 查詢所有預約記錄（管理員用），依開始時間由新到舊
func GetAllReservations() ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := database.DB.Order("start_time DESC").Find(&reservations).Error; err != nil {
		log.Printf("Failed to get all reservations: %v", err)
		return nil, fmt.Errorf("failed to get all reservations: %w", err)
	}
	log.Printf("Successfully retrieved %d reservations", len(reservations))
	return reservations, nil
}
