package models

import "time"

// Feedback 使用者對停車場的評價，僅新增不修改
type Feedback struct {
	FeedbackID int       `json:"feedback_id" gorm:"primaryKey;autoIncrement;type:INT"`
	UserID     int       `json:"user_id" gorm:"index;not null;type:INT"`
	LotID      int       `json:"lot_id" gorm:"index;not null;type:INT"`
	Rating     int       `json:"rating" gorm:"type:INT;not null"`
	Comment    string    `json:"comment" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at" gorm:"type:datetime"`

	User User `json:"-" gorm:"foreignKey:user_id;references:UserID"`
	Lot  Lot  `json:"-" gorm:"foreignKey:lot_id;references:LotID"`
}

func (Feedback) TableName() string {
	return "feedback"
}

type FeedbackResponse struct {
	FeedbackID int       `json:"feedback_id"`
	UserID     int       `json:"user_id"`
	Username   string    `json:"username"`
	LotID      int       `json:"lot_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

func (f *Feedback) ToResponse() FeedbackResponse {
	return FeedbackResponse{
		FeedbackID: f.FeedbackID,
		UserID:     f.UserID,
		Username:   f.User.Username,
		LotID:      f.LotID,
		Rating:     f.Rating,
		Comment:    f.Comment,
		CreatedAt:  f.CreatedAt,
	}
}

// FeedbackRequest 提交評價的輸入結構
type FeedbackRequest struct {
	Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment string `json:"comment" binding:"omitempty"`
}
