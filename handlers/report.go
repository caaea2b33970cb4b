package handlers

import (
	"log"
	"mallparking/models"
	"mallparking/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetAdminChartData 管理員圖表資料：每個停車場的總車位與佔用數
func GetAdminChartData(c *gin.Context) {
	snapshot, err := services.OccupancySnapshot()
	if err != nil {
		log.Printf("Failed to get occupancy snapshot: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢圖表資料失敗", err.Error(), "ERR_INTERNAL")
		return
	}

	labels := make([]string, len(snapshot))
	totalSpots := make([]int, len(snapshot))
	occupiedSpots := make([]int, len(snapshot))
	for i, entry := range snapshot {
		labels[i] = entry.Name
		totalSpots[i] = entry.TotalSpots
		occupiedSpots[i] = entry.Occupied
	}

	c.JSON(http.StatusOK, gin.H{
		"labels":         labels,
		"total_spots":    totalSpots,
		"occupied_spots": occupiedSpots,
	})
}

// GetAllReservations 查詢所有預約記錄（管理員用）
func GetAllReservations(c *gin.Context) {
	reservations, err := services.GetAllReservations()
	if err != nil {
		log.Printf("Failed to get all reservations: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢預約記錄失敗", err.Error(), "ERR_INTERNAL")
		return
	}

	responses := make([]models.ReservationResponse, len(reservations))
	for i := range reservations {
		responses[i] = reservations[i].ToResponse()
	}
	SuccessResponse(c, http.StatusOK, "查詢成功", responses)
}

// GetAllUsers 查詢所有非管理員使用者（管理員用）
func GetAllUsers(c *gin.Context) {
	users, err := services.GetAllUsers()
	if err != nil {
		log.Printf("Failed to get all users: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢使用者失敗", err.Error(), "ERR_INTERNAL")
		return
	}

	responses := make([]models.UserResponse, len(users))
	for i := range users {
		responses[i] = users[i].ToResponse()
	}
	SuccessResponse(c, http.StatusOK, "查詢成功", responses)
}
