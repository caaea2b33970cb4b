package handlers

import (
	"errors"
	"log"
	"mallparking/models"
	"mallparking/services"
	"mallparking/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// currentUserID 從 token 解析出的 context 取得操作者ID
func currentUserID(c *gin.Context) (int, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		ErrorResponse(c, http.StatusUnauthorized, "未授權", "user_id not found in token", "ERR_NO_USER_ID")
		return 0, false
	}
	userID, ok := value.(int)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "未授權", "invalid user_id type", "ERR_INVALID_USER_ID")
		return 0, false
	}
	return userID, true
}

// Register 註冊資料檢查
func Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Invalid input data: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "無效的輸入資料", err.Error(), "ERR_INVALID_INPUT")
		return
	}

	user, err := services.RegisterUser(&req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			ErrorResponse(c, http.StatusConflict, "該電子郵件已被註冊", err.Error(), "ERR_EMAIL_TAKEN")
			return
		}
		log.Printf("Failed to register user with email %s: %v", req.Email, err)
		ErrorResponse(c, http.StatusInternalServerError, "註冊失敗", err.Error(), "ERR_INTERNAL")
		return
	}

	SuccessResponse(c, http.StatusCreated, "註冊成功", user.ToResponse())
}

// Login 登入並簽發 token
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Invalid input data: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "無效的輸入資料", err.Error(), "ERR_INVALID_INPUT")
		return
	}

	user, err := services.AuthenticateUser(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			ErrorResponse(c, http.StatusUnauthorized, "登入失敗，檢查電子郵件或密碼", err.Error(), "ERR_INVALID_CREDENTIALS")
			return
		}
		log.Printf("Login failed for email %s: %v", req.Email, err)
		ErrorResponse(c, http.StatusInternalServerError, "登入失敗", err.Error(), "ERR_INTERNAL")
		return
	}

	token, err := utils.GenerateToken(user.UserID, user.IsAdmin)
	if err != nil {
		log.Printf("Failed to generate token for user %d: %v", user.UserID, err)
		ErrorResponse(c, http.StatusInternalServerError, "簽發 token 失敗", err.Error(), "ERR_TOKEN")
		return
	}

	SuccessResponse(c, http.StatusOK, "登入成功", gin.H{
		"token": token,
		"user":  user.ToResponse(),
	})
}

// GetProfile 查詢個人資料
func GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := services.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			ErrorResponse(c, http.StatusNotFound, "使用者不存在", err.Error(), "ERR_NOT_FOUND")
			return
		}
		log.Printf("Failed to get profile for user %d: %v", userID, err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢個人資料失敗", err.Error(), "ERR_INTERNAL")
		return
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", user.ToResponse())
}

// UpdateProfile 更新個人資料，密碼留空表示不變更
func UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Invalid input data: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "無效的輸入資料", err.Error(), "ERR_INVALID_INPUT")
		return
	}

	user, err := services.UpdateProfile(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			ErrorResponse(c, http.StatusNotFound, "使用者不存在", err.Error(), "ERR_NOT_FOUND")
			return
		}
		log.Printf("Failed to update profile for user %d: %v", userID, err)
		ErrorResponse(c, http.StatusInternalServerError, "更新個人資料失敗", err.Error(), "ERR_INTERNAL")
		return
	}

	SuccessResponse(c, http.StatusOK, "個人資料更新成功", user.ToResponse())
}

// GetSpendingHistory 查詢使用者已結束預約的消費記錄
func GetSpendingHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	history, err := services.SpendingHistory(userID)
	if err != nil {
		log.Printf("Failed to get spending history for user %d: %v", userID, err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢消費記錄失敗", err.Error(), "ERR_INTERNAL")
		return
	}

	SuccessResponse(c, http.StatusOK, "查詢成功", history)
}

// GetUserChartData 使用者消費圖表資料（labels 與 costs 序列）
func GetUserChartData(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	history, err := services.SpendingHistory(userID)
	if err != nil {
		log.Printf("Failed to get chart data for user %d: %v", userID, err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢圖表資料失敗", err.Error(), "ERR_INTERNAL")
		return
	}

	labels := make([]string, len(history))
	costs := make([]float64, len(history))
	for i, entry := range history {
		labels[i] = entry.Label
		costs[i] = entry.Cost
	}

	c.JSON(http.StatusOK, gin.H{
		"labels": labels,
		"costs":  costs,
	})
}
