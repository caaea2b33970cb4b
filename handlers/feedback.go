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

// SubmitFeedback 提交評價資料檢查
func SubmitFeedback(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	lotID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的停車場ID", err.Error(), "ERR_INVALID_ID")
		return
	}

	var req models.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Invalid input data: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "無效的輸入資料", err.Error(), "ERR_INVALID_INPUT")
		return
	}

	feedback, err := services.SubmitFeedback(userID, lotID, &req)
	if err != nil {
		if errors.Is(err, services.ErrLotNotFound) {
			ErrorResponse(c, http.StatusNotFound, "停車場不存在", err.Error(), "ERR_NOT_FOUND")
			return
		}
		log.Printf("Failed to submit feedback for lot %d by user %d: %v", lotID, userID, err)
		ErrorResponse(c, http.StatusInternalServerError, "提交評價失敗", err.Error(), "ERR_INTERNAL")
		return
	}

	SuccessResponse(c, http.StatusCreated, "評價提交成功", feedback.ToResponse())
}

// GetLotFeedbacks 查詢停車場的所有評價
func GetLotFeedbacks(c *gin.Context) {
	lotID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的停車場ID", err.Error(), "ERR_INVALID_ID")
		return
	}

	feedbacks, err := services.GetLotFeedbacks(lotID)
	if err != nil {
		if errors.Is(err, services.ErrLotNotFound) {
			ErrorResponse(c, http.StatusNotFound, "停車場不存在", err.Error(), "ERR_NOT_FOUND")
			return
		}
		log.Printf("Failed to get feedbacks for lot %d: %v", lotID, err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢評價失敗", err.Error(), "ERR_INTERNAL")
		return
	}

	responses := make([]models.FeedbackResponse, len(feedbacks))
	for i := range feedbacks {
		responses[i] = feedbacks[i].ToResponse()
	}
	SuccessResponse(c, http.StatusOK, "查詢成功", responses)
}
