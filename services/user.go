package services

import (
	"errors"
	"fmt"
	"log"
	"mallparking/database"
	"mallparking/models"
	"mallparking/utils"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// RegisterUser 註冊使用者，email 不可重複
func RegisterUser(req *models.RegisterRequest) (*models.User, error) {
	var existing models.User
	if err := database.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to check for duplicate email: %v", err)
		return nil, fmt.Errorf("failed to check for duplicate email: %w", err)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashedPassword,
	}
	if err := database.DB.Create(user).Error; err != nil {
		// 唯一索引攔下並發註冊時的重複 email
		if mysqlErr, ok := err.(*mysql.MySQLError); ok && mysqlErr.Number == 1062 {
			return nil, ErrEmailTaken
		}
		log.Printf("Failed to register user: %v", err)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	log.Printf("Successfully registered user %d (%s)", user.UserID, user.Email)
	return user, nil
}

// AuthenticateUser 驗證登入憑證
func AuthenticateUser(email, password string) (*models.User, error) {
	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("User with email %s not found", email)
			return nil, ErrInvalidCredentials
		}
		log.Printf("Failed to query user by email: %v", err)
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		log.Printf("Invalid password for email %s", email)
		return nil, ErrInvalidCredentials
	}

	log.Printf("User %d logged in successfully", user.UserID)
	return &user, nil
}

// GetUserByID 根據ID查詢使用者
func GetUserByID(id int) (*models.User, error) {
	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		log.Printf("Failed to get user by ID %d: %v", id, err)
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return &user, nil
}

// UpdateProfile 更新使用者名稱，密碼留空則不變更
func UpdateProfile(id int, req *models.UpdateProfileRequest) (*models.User, error) {
	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		log.Printf("Failed to find user %d: %v", id, err)
		return nil, fmt.Errorf("failed to find user %d: %w", id, err)
	}

	updates := map[string]interface{}{"username": req.Username}
	if req.Password != "" {
		hashedPassword, err := utils.HashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		updates["password"] = hashedPassword
	}

	if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
		log.Printf("Failed to update profile for user %d: %v", id, err)
		return nil, fmt.Errorf("failed to update profile for user %d: %w", id, err)
	}

	log.Printf("Successfully updated profile for user %d", id)
	return &user, nil
}

// GetAllUsers 查詢所有非管理員使用者（管理員用）
func GetAllUsers() ([]models.User, error) {
	var users []models.User
	if err := database.DB.Where("is_admin = ?", false).Find(&users).Error; err != nil {
		log.Printf("Failed to query all users: %v", err)
		return nil, fmt.Errorf("failed to query all users: %w", err)
	}
	log.Printf("Successfully retrieved %d users", len(users))
	return users, nil
}
