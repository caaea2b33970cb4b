package routes

import (
	"errors"
	"log"
	"mallparking/handlers"
	"mallparking/utils"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware 驗證 JWT token，並提取 user_id 和 is_admin
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  false,
				"message": "缺少 Authorization 標頭",
				"error":   "Authorization header is required",
				"code":    "ERR_NO_AUTH_HEADER",
			})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  false,
				"message": "無效的 Authorization 格式",
				"error":   "Authorization header must be in the format 'Bearer <token>'",
				"code":    "ERR_INVALID_AUTH_FORMAT",
			})
			c.Abort()
			return
		}

		tokenString := parts[1]

		// 明確要求檢查 exp 字段
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return utils.JWTSecret, nil
		}, jwt.WithExpirationRequired())

		if err != nil {
			log.Printf("Token parsing error: %v", err)
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.JSON(http.StatusUnauthorized, gin.H{
					"status":  false,
					"message": "token 已過期",
					"error":   "Token has expired",
					"code":    "ERR_TOKEN_EXPIRED",
				})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{
					"status":  false,
					"message": "無效的 token",
					"error":   err.Error(),
					"code":    "ERR_INVALID_TOKEN",
				})
			}
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  false,
				"message": "無效的 token 內容",
				"error":   "Invalid token claims or token is not valid",
				"code":    "ERR_INVALID_CLAIMS",
			})
			c.Abort()
			return
		}

		// 確認 user_id 字段
		userID, ok := claims["user_id"].(float64)
		if !ok {
			log.Printf("Missing or invalid user_id in token")
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  false,
				"message": "無效的使用者 ID",
				"error":   "Invalid user_id in token",
				"code":    "ERR_INVALID_USER_ID",
			})
			c.Abort()
			return
		}

		// 確認 is_admin 字段
		isAdmin, ok := claims["is_admin"].(bool)
		if !ok {
			log.Printf("Missing or invalid is_admin in token")
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  false,
				"message": "無效的角色",
				"error":   "Invalid is_admin in token",
				"code":    "ERR_INVALID_ROLE",
			})
			c.Abort()
			return
		}

		log.Printf("Token verified for user_id: %d, is_admin: %v, time: %v", int(userID), isAdmin, time.Now().Unix())
		c.Set("user_id", int(userID))
		c.Set("is_admin", isAdmin)

		c.Next()
	}
}

// AdminMiddleware 僅允許管理員訪問
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get("is_admin")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  false,
				"message": "無法獲取角色資訊",
				"error":   "Role not found in context",
				"code":    "ERR_ROLE_NOT_FOUND",
			})
			c.Abort()
			return
		}

		isAdminBool, ok := isAdmin.(bool)
		if !ok || !isAdminBool {
			c.JSON(http.StatusForbidden, gin.H{
				"status":  false,
				"message": "權限不足",
				"error":   "Admin only",
				"code":    "ERR_INSUFFICIENT_PERMISSIONS",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func Path(router *gin.RouterGroup) {
	// 版本控制
	v1 := router.Group("/v1")
	{
		// 測試路由
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(200, gin.H{"message": "pong"})
		})

		// 認證路由：不需要 token 驗證
		auth := v1.Group("/auth")
		{
			auth.POST("/register", handlers.Register) // 註冊使用者
			auth.POST("/login", handlers.Login)       // 登入並獲取 token
		}

		// 使用者路由
		users := v1.Group("/users")
		users.Use(AuthMiddleware())
		{
			users.GET("/profile", handlers.GetProfile)         // 查看個人資料
			users.PUT("/profile", handlers.UpdateProfile)      // 更新個人資料
			users.GET("/history", handlers.GetSpendingHistory) // 消費記錄
			users.GET("/chart", handlers.GetUserChartData)     // 消費圖表資料
		}

		// 停車場路由
		lots := v1.Group("/lots")
		lots.Use(AuthMiddleware())
		{
			// 瀏覽路由：任何已認證的使用者都可以訪問
			lots.GET("", handlers.GetLots)                       // 查詢所有停車場
			lots.GET("/:id", handlers.GetLot)                    // 查詢特定停車場
			lots.GET("/:id/feedbacks", handlers.GetLotFeedbacks) // 查詢停車場評價
			lots.POST("/:id/feedbacks", handlers.SubmitFeedback) // 提交評價

			// 管理員專屬路由
			lots.POST("", AdminMiddleware(), handlers.CreateLot)       // 新增停車場
			lots.PUT("/:id", AdminMiddleware(), handlers.UpdateLot)    // 更新停車場（含車位增減）
			lots.DELETE("/:id", AdminMiddleware(), handlers.DeleteLot) // 刪除停車場
		}

		// 預約路由
		reservations := v1.Group("/reservations")
		reservations.Use(AuthMiddleware())
		{
			reservations.POST("", handlers.BookSpot)                   // 預約車位
			reservations.POST("/:id/release", handlers.ReleaseSpot)    // 結算並釋放車位
			reservations.GET("/active", handlers.GetActiveReservation) // 查詢進行中的預約
			reservations.GET("/history", handlers.GetPastReservations) // 查詢已結束的預約
		}

		// 管理員路由
		admin := v1.Group("/admin")
		admin.Use(AuthMiddleware(), AdminMiddleware())
		{
			admin.GET("/chart", handlers.GetAdminChartData)         // 佔用統計圖表資料
			admin.GET("/reservations", handlers.GetAllReservations) // 查詢所有預約記錄
			admin.GET("/users", handlers.GetAllUsers)               // 查詢所有使用者
		}
	}
}
