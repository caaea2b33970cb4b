package models

type User struct {
	UserID       int           `json:"user_id" gorm:"primaryKey;autoIncrement;type:INT"`
	Username     string        `json:"username" gorm:"type:varchar(100);not null"`
	Email        string        `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Password     string        `json:"-" gorm:"type:varchar(100);not null"` // bcrypt 雜湊，不回傳
	IsAdmin      bool          `json:"is_admin" gorm:"type:tinyint(1);default:0"`
	Reservations []Reservation `json:"-" gorm:"foreignKey:user_id;references:UserID"`
	Feedbacks    []Feedback    `json:"-" gorm:"foreignKey:user_id;references:UserID"`
}

func (User) TableName() string {
	return "user"
}

type UserResponse struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		UserID:   u.UserID,
		Username: u.Username,
		Email:    u.Email,
		IsAdmin:  u.IsAdmin,
	}
}

// RegisterRequest 註冊用的輸入結構
type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest 登入用的輸入結構
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest 用於 PUT 更新個人資料，密碼留空表示不變更
type UpdateProfileRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"omitempty,min=8"`
}
