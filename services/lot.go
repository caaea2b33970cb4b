package services

import (
	"errors"
	"fmt"
	"log"
	"mallparking/database"
	"mallparking/models"

	"gorm.io/gorm"
)

// CreateLot 新增停車場並依 total_slots 建立 S1..Sn 車位，全部為 Available
func CreateLot(req *models.CreateLotRequest) (*models.Lot, error) {
	vehicleType := req.VehicleType
	if vehicleType == "" {
		vehicleType = "4-wheeler"
	}

	lot := &models.Lot{
		Name:       req.Name,
		Location:   req.Location,
		Price:      req.Price,
		Address:    req.Address,
		Pincode:    req.Pincode,
		TotalSlots: req.TotalSlots,
	}

	// 開始事務：停車場與車位必須一起建立
	tx := database.DB.Begin()

	if err := tx.Create(lot).Error; err != nil {
		tx.Rollback()
		log.Printf("Failed to create lot: %v", err)
		return nil, fmt.Errorf("failed to create lot: %w", err)
	}

	for i := 1; i <= req.TotalSlots; i++ {
		spot := models.Spot{
			SlotNumber:  fmt.Sprintf("S%d", i),
			Status:      models.SpotStatusAvailable,
			VehicleType: vehicleType,
			LotID:       lot.LotID,
		}
		if err := tx.Create(&spot).Error; err != nil {
			tx.Rollback()
			log.Printf("Failed to create spot %d for lot %d: %v", i, lot.LotID, err)
			return nil, fmt.Errorf("failed to create spot S%d: %w", i, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	lot.AvailableSpots = req.TotalSlots
	log.Printf("Successfully created lot %d with %d spots", lot.LotID, req.TotalSlots)
	return lot, nil
}

// UpdateLot 更新停車場資料；total_slots 變更會增減車位
// 縮減時僅能移除 Available 車位（ID 由大到小），不足則整個操作失敗
func UpdateLot(id int, req *models.UpdateLotRequest) (*models.Lot, error) {
	var lot models.Lot
	if err := database.DB.First(&lot, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLotNotFound
		}
		log.Printf("Failed to find lot %d: %v", id, err)
		return nil, fmt.Errorf("failed to find lot %d: %w", id, err)
	}

	tx := database.DB.Begin()

	if req.TotalSlots != nil && *req.TotalSlots != lot.TotalSlots {
		newSlots := *req.TotalSlots
		if newSlots > lot.TotalSlots {
			// 擴增：車位編號接續現有的最大序號
			for i := lot.TotalSlots + 1; i <= newSlots; i++ {
				spot := models.Spot{
					SlotNumber:  fmt.Sprintf("S%d", i),
					Status:      models.SpotStatusAvailable,
					VehicleType: "4-wheeler",
					LotID:       lot.LotID,
				}
				if err := tx.Create(&spot).Error; err != nil {
					tx.Rollback()
					log.Printf("Failed to create spot S%d for lot %d: %v", i, lot.LotID, err)
					return nil, fmt.Errorf("failed to create spot S%d: %w", i, err)
				}
			}
		} else {
			needed := lot.TotalSlots - newSlots
			var removable []models.Spot
			if err := tx.Where("lot_id = ? AND status = ?", lot.LotID, models.SpotStatusAvailable).
				Order("spot_id DESC").
				Limit(needed).
				Find(&removable).Error; err != nil {
				tx.Rollback()
				log.Printf("Failed to query removable spots for lot %d: %v", lot.LotID, err)
				return nil, fmt.Errorf("failed to query removable spots: %w", err)
			}
			// 可移除車位不足：不做任何變更
			if len(removable) < needed {
				tx.Rollback()
				log.Printf("Cannot shrink lot %d to %d slots: only %d available spots, need %d", lot.LotID, newSlots, len(removable), needed)
				return nil, ErrCapacityConflict
			}
			for _, spot := range removable {
				if err := tx.Delete(&spot).Error; err != nil {
					tx.Rollback()
					log.Printf("Failed to delete spot %d for lot %d: %v", spot.SpotID, lot.LotID, err)
					return nil, fmt.Errorf("failed to delete spot %d: %w", spot.SpotID, err)
				}
			}
		}
		lot.TotalSlots = newSlots
	}

	if req.Name != nil {
		lot.Name = *req.Name
	}
	if req.Location != nil {
		lot.Location = *req.Location
	}
	if req.Price != nil {
		lot.Price = *req.Price
	}
	if req.Address != nil {
		lot.Address = *req.Address
	}
	if req.Pincode != nil {
		lot.Pincode = *req.Pincode
	}

	if err := tx.Save(&lot).Error; err != nil {
		tx.Rollback()
		log.Printf("Failed to update lot %d: %v", id, err)
		return nil, fmt.Errorf("failed to update lot %d: %w", id, err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("Successfully updated lot %d (total_slots=%d)", lot.LotID, lot.TotalSlots)
	return &lot, nil
}

// DeleteLot 刪除停車場與所有車位；有任何 Occupied 車位則拒絕
func DeleteLot(id int) error {
	var lot models.Lot
	if err := database.DB.First(&lot, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLotNotFound
		}
		log.Printf("Failed to find lot %d: %v", id, err)
		return fmt.Errorf("failed to find lot %d: %w", id, err)
	}

	var occupiedCount int64
	if err := database.DB.Model(&models.Spot{}).
		Where("lot_id = ? AND status = ?", id, models.SpotStatusOccupied).
		Count(&occupiedCount).Error; err != nil {
		log.Printf("Failed to count occupied spots for lot %d: %v", id, err)
		return fmt.Errorf("failed to count occupied spots: %w", err)
	}
	if occupiedCount > 0 {
		log.Printf("Cannot delete lot %d: %d spots occupied", id, occupiedCount)
		return ErrOccupancyConflict
	}

	tx := database.DB.Begin()

	if err := tx.Where("lot_id = ?", id).Delete(&models.Spot{}).Error; err != nil {
		tx.Rollback()
		log.Printf("Failed to delete spots for lot %d: %v", id, err)
		return fmt.Errorf("failed to delete spots for lot %d: %w", id, err)
	}

	// 評價跟著停車場一起刪，避免留下孤兒資料
	if err := tx.Where("lot_id = ?", id).Delete(&models.Feedback{}).Error; err != nil {
		tx.Rollback()
		log.Printf("Failed to delete feedbacks for lot %d: %v", id, err)
		return fmt.Errorf("failed to delete feedbacks for lot %d: %w", id, err)
	}

	if err := tx.Delete(&lot).Error; err != nil {
		tx.Rollback()
		log.Printf("Failed to delete lot %d: %v", id, err)
		return fmt.Errorf("failed to delete lot %d: %w", id, err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("Successfully deleted lot %d", id)
	return nil
}

// GetLots 查詢所有停車場並計算剩餘車位，可依地點關鍵字過濾
func GetLots(locationFilter string) ([]models.Lot, error) {
	var lots []models.Lot
	query := database.DB.Model(&models.Lot{})
	if locationFilter != "" {
		query = query.Where("LOWER(location) LIKE ?", "%"+locationFilter+"%")
	}
	if err := query.Find(&lots).Error; err != nil {
		log.Printf("Failed to query lots: %v", err)
		return nil, fmt.Errorf("failed to query lots: %w", err)
	}

	for i := range lots {
		var availableCount int64
		if err := database.DB.Model(&models.Spot{}).
			Where("lot_id = ? AND status = ?", lots[i].LotID, models.SpotStatusAvailable).
			Count(&availableCount).Error; err != nil {
			log.Printf("Failed to count available spots for lot %d: %v", lots[i].LotID, err)
			return nil, fmt.Errorf("failed to count available spots: %w", err)
		}
		lots[i].AvailableSpots = int(availableCount)
	}

	log.Printf("Successfully retrieved %d lots", len(lots))
	return lots, nil
}

// GetLotByID 查詢特定停車場及其車位
func GetLotByID(id int) (*models.Lot, error) {
	var lot models.Lot
	if err := database.DB.Preload("Spots").First(&lot, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLotNotFound
		}
		log.Printf("Failed to get lot by ID %d: %v", id, err)
		return nil, fmt.Errorf("failed to get lot by ID %d: %w", id, err)
	}

	for _, spot := range lot.Spots {
		if spot.Status == models.SpotStatusAvailable {
			lot.AvailableSpots++
		}
	}
	return &lot, nil
}
