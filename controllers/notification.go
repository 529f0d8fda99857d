package controllers

import (
	"net/http"

	"fitflow/middleware"
	"fitflow/models/postgres"
	"fitflow/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary List notifications for the authenticated user
// @Tags notifications
// @Produce json
// @Success 200 {array} object{title=string,message=string,is_read=bool}
// @Failure 500 {object} object{error=string}
// @Router /auth/notifications [get]
// @Security ApiKeyAuth
func GetNotifications(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, err := middleware.JWT_decoder(c)
		if err != nil {
			return
		}

		var notifications []postgres.Notification
		result := db.Where("user_email = ?", utils.NormalizeEmail(email)).
			Order("created_at DESC").
			Find(&notifications)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching notifications"})
			return
		}

		response := make([]gin.H, 0, len(notifications))
		for _, n := range notifications {
			response = append(response, gin.H{
				"id":         n.ID,
				"title":      n.Title,
				"message":    n.Message,
				"is_read":    n.IsRead,
				"created_at": n.CreatedAt,
			})
		}
		c.JSON(http.StatusOK, response)
	}
}

// @Summary Mark all notifications as read
// @Tags notifications
// @Produce json
// @Success 200 {object} object{message=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/notifications/mark-read [post]
// @Security ApiKeyAuth
func MarkNotificationsRead(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, err := middleware.JWT_decoder(c)
		if err != nil {
			return
		}

		result := db.Model(&postgres.Notification{}).
			Where("user_email = ? AND is_read = ?", utils.NormalizeEmail(email), false).
			Update("is_read", true)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating notifications"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Notifications marked as read"})
	}
}

// @Summary Count unread notifications
// @Tags notifications
// @Produce json
// @Success 200 {object} object{unread=integer}
// @Failure 500 {object} object{error=string}
// @Router /auth/notifications/unread-count [get]
// @Security ApiKeyAuth
func GetUnreadNotificationCount(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, err := middleware.JWT_decoder(c)
		if err != nil {
			return
		}

		var count int64
		result := db.Model(&postgres.Notification{}).
			Where("user_email = ? AND is_read = ?", utils.NormalizeEmail(email), false).
			Count(&count)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting notifications"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"unread": count})
	}
}

// @Summary Store the browser push subscription for the authenticated user
// @Description The stored PushSubscription blob is used as the offline fallback
// @Description when a challenge invitation can't be delivered live.
// @Tags notifications
// @Accept json
// @Produce json
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Router /auth/subscribe [post]
// @Security ApiKeyAuth
func SaveSubscription(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, err := middleware.JWT_decoder(c)
		if err != nil {
			return
		}

		raw, err := c.GetRawData()
		if err != nil || len(raw) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing subscription payload"})
			return
		}

		result := db.Model(&postgres.User{}).
			Where("email = ?", utils.NormalizeEmail(email)).
			Update("push_subscription", raw)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving subscription"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Subscription saved"})
	}
}
