package services

import (
	"errors"
	"fmt"
	"log"
	"mallparking/database"
	"mallparking/models"
	"time"

	"gorm.io/gorm"
)

// SubmitFeedback 新增使用者對停車場的評價，停車場必須存在
func SubmitFeedback(userID, lotID int, req *models.FeedbackRequest) (*models.Feedback, error) {
	var lot models.Lot
	if err := database.DB.First(&lot, lotID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLotNotFound
		}
		log.Printf("Failed to find lot %d: %v", lotID, err)
		return nil, fmt.Errorf("failed to find lot %d: %w", lotID, err)
	}

	feedback := &models.Feedback{
		UserID:    userID,
		LotID:     lotID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := database.DB.Create(feedback).Error; err != nil {
		log.Printf("Failed to submit feedback for lot %d by user %d: %v", lotID, userID, err)
		return nil, fmt.Errorf("failed to submit feedback: %w", err)
	}

	log.Printf("User %d submitted feedback for lot %d (rating %d)", userID, lotID, req.Rating)
	return feedback, nil
}

// GetLotFeedbacks 查詢停車場的所有評價，由新到舊
func GetLotFeedbacks(lotID int) ([]models.Feedback, error) {
	var lot models.Lot
	if err := database.DB.First(&lot, lotID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLotNotFound
		}
		log.Printf("Failed to find lot %d: %v", lotID, err)
		return nil, fmt.Errorf("failed to find lot %d: %w", lotID, err)
	}

	var feedbacks []models.Feedback
	if err := database.DB.Preload("User").
		Where("lot_id = ?", lotID).
		Order("created_at DESC").
		Find(&feedbacks).Error; err != nil {
		log.Printf("Failed to query feedbacks for lot %d: %v", lotID, err)
		return nil, fmt.Errorf("failed to query feedbacks: %w", err)
	}

	log.Printf("Successfully retrieved %d feedbacks for lot %d", len(feedbacks), lotID)
	return feedbacks, nil
}
