package handlers

import (
	"errors"
	"log"
	"mallparking/models"
	"mallparking/services"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// CreateLot 新增停車場資料檢查
func CreateLot(c *gin.Context) {
	var req models.CreateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Invalid input data: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "無效的輸入資料", err.Error(), "ERR_INVALID_INPUT")
		return
	}

	lot, err := services.CreateLot(&req)
	if err != nil {
		log.Printf("Failed to create lot: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "新增停車場失敗", err.Error(), "ERR_INTERNAL")
		return
	}

	SuccessResponse(c, http.StatusCreated, "停車場新增成功", lot.ToResponse())
}

// GetLots 查詢所有停車場，可用 location 關鍵字過濾
func GetLots(c *gin.Context) {
	locationFilter := strings.ToLower(strings.TrimSpace(c.Query("location")))

	lots, err := services.GetLots(locationFilter)
	if err != nil {
		log.Printf("Failed to get lots: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢停車場失敗", err.Error(), "ERR_INTERNAL")
		return
	}

	responses := make([]models.LotResponse, len(lots))
	for i := range lots {
		responses[i] = lots[i].ToResponse()
	}
	SuccessResponse(c, http.StatusOK, "查詢成功", responses)
}

// GetLot 查詢特定停車場及其車位
func GetLot(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的停車場ID", err.Error(), "ERR_INVALID_ID")
		return
	}

	lot, err := services.GetLotByID(id)
	if err != nil {
		if errors.Is(err, services.ErrLotNotFound) {
			ErrorResponse(c, http.StatusNotFound, "停車場不存在", err.Error(), "ERR_NOT_FOUND")
			return
		}
		log.Printf("Failed to get lot %d: %v", id, err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢停車場失敗", err.Error(), "ERR_INTERNAL")
		return
	}

	spots := make([]models.SpotResponse, len(lot.Spots))
	for i := range lot.Spots {
		spots[i] = lot.Spots[i].ToResponse()
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", gin.H{
		"lot":   lot.ToResponse(),
		"spots": spots,
	})
}

// UpdateLot 更新停車場資料，total_slots 變更會增減車位
func UpdateLot(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的停車場ID", err.Error(), "ERR_INVALID_ID")
		return
	}

	var req models.UpdateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Invalid input data: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "無效的輸入資料", err.Error(), "ERR_INVALID_INPUT")
		return
	}

	lot, err := services.UpdateLot(id, &req)
	if err != nil {
		if errors.Is(err, services.ErrLotNotFound) {
			ErrorResponse(c, http.StatusNotFound, "停車場不存在", err.Error(), "ERR_NOT_FOUND")
			return
		}
		if errors.Is(err, services.ErrCapacityConflict) {
			ErrorResponse(c, http.StatusConflict, "無法縮減車位：可用車位不足", err.Error(), "ERR_CAPACITY_CONFLICT")
			return
		}
		log.Printf("Failed to update lot %d: %v", id, err)
		ErrorResponse(c, http.StatusInternalServerError, "更新停車場失敗", err.Error(), "ERR_INTERNAL")
		return
	}

	SuccessResponse(c, http.StatusOK, "停車場更新成功", lot.ToResponse())
}

// DeleteLot 刪除停車場，任何 Occupied 車位都會擋下
func DeleteLot(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的停車場ID", err.Error(), "ERR_INVALID_ID")
		return
	}

	if err := services.DeleteLot(id); err != nil {
		if errors.Is(err, services.ErrLotNotFound) {
			ErrorResponse(c, http.StatusNotFound, "停車場不存在", err.Error(), "ERR_NOT_FOUND")
			return
		}
		if errors.Is(err, services.ErrOccupancyConflict) {
			ErrorResponse(c, http.StatusConflict, "無法刪除：尚有車位使用中", err.Error(), "ERR_OCCUPANCY_CONFLICT")
			return
		}
		log.Printf("Failed to delete lot %d: %v", id, err)
		ErrorResponse(c, http.StatusInternalServerError, "刪除停車場失敗", err.Error(), "ERR_INTERNAL")
		return
	}

	SuccessResponse(c, http.StatusOK, "停車場刪除成功", nil)
}
