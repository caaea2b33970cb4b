package handlers

import (
	"errors"
	"log"
	"mallparking/models"
	"mallparking/services"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// BookSpot 預約車位資料檢查
func BookSpot(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Invalid input data: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "無效的輸入資料", err.Error(), "ERR_INVALID_INPUT")
		return
	}

	reservation, err := services.BookSpot(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrLotNotFound) {
			ErrorResponse(c, http.StatusNotFound, "停車場不存在", err.Error(), "ERR_NOT_FOUND")
			return
		}
		if errors.Is(err, services.ErrActiveReservationExists) {
			ErrorResponse(c, http.StatusConflict, "已有進行中的預約", err.Error(), "ERR_ACTIVE_RESERVATION")
			return
		}
		if errors.Is(err, services.ErrNoSpotAvailable) {
			ErrorResponse(c, http.StatusConflict, "此車種目前沒有可用車位", err.Error(), "ERR_NO_SPOT_AVAILABLE")
			return
		}
		log.Printf("Failed to book spot for user %d: %v", userID, err)
		ErrorResponse(c, http.StatusInternalServerError, "預約失敗", err.Error(), "ERR_INTERNAL")
		return
	}

	SuccessResponse(c, http.StatusCreated, "預約成功", reservation.ToResponse())
}

// ReleaseSpot 結算預約並釋放車位
func ReleaseSpot(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	reservationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的預約ID", err.Error(), "ERR_INVALID_ID")
		return
	}

	reservation, err := services.ReleaseSpot(reservationID, userID)
	if err != nil {
		if errors.Is(err, services.ErrReservationNotFound) {
			ErrorResponse(c, http.StatusNotFound, "預約不存在", err.Error(), "ERR_NOT_FOUND")
			return
		}
		if errors.Is(err, services.ErrForbidden) {
			ErrorResponse(c, http.StatusForbidden, "無權結算此預約", err.Error(), "ERR_FORBIDDEN")
			return
		}
		log.Printf("Failed to release reservation %d for user %d: %v", reservationID, userID, err)
		ErrorResponse(c, http.StatusInternalServerError, "結算失敗", err.Error(), "ERR_INTERNAL")
		return
	}

	SuccessResponse(c, http.StatusOK, "車位已釋放", reservation.ToResponse())
}

// GetActiveReservation 查詢目前進行中的預約
func GetActiveReservation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	reservation, err := services.GetActiveReservation(userID)
	if err != nil {
		log.Printf("Failed to get active reservation for user %d: %v", userID, err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢預約失敗", err.Error(), "ERR_INTERNAL")
		return
	}
	if reservation == nil {
		SuccessResponse(c, http.StatusOK, "目前沒有進行中的預約", nil)
		return
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", reservation.ToResponse())
}

// GetPastReservations 查詢已結束的預約記錄
func GetPastReservations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	reservations, err := services.GetPastReservations(userID)
	if err != nil {
		log.Printf("Failed to get past reservations for user %d: %v", userID, err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢預約記錄失敗", err.Error(), "ERR_INTERNAL")
		return
	}

	responses := make([]models.ReservationResponse, len(reservations))
	for i := range reservations {
		responses[i] = reservations[i].ToResponse()
	}
	SuccessResponse(c, http.StatusOK, "查詢成功", responses)
}
