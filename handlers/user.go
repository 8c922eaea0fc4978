package handlers

import (
	"net/http"

	"campus-cravings-api/config"
	"campus-cravings-api/middleware"
	"campus-cravings-api/models"

	"github.com/gin-gonic/gin"
)

type UpdatePhoneRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// UpdatePhone sets a new phone number and resets its verified flag
func UpdatePhone(c *gin.Context) {
	var req UpdatePhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number is required"})
		return
	}
	err := config.DB.WithContext(c.Request.Context()).
		Model(&models.User{}).
		Where("id = ?", middleware.GetUserID(c)).
		Updates(map[string]interface{}{"phone": req.Phone, "is_phone_verified": false}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update phone"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Phone number updated"})
}

type VerifyPhoneRequest struct {
	Verified bool `json:"verified"`
}

// VerifyPhone marks the phone verified after client-side verification
func VerifyPhone(c *gin.Context) {
	var req VerifyPhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Verified {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Verification failed"})
		return
	}
	err := config.DB.WithContext(c.Request.Context()).
		Model(&models.User{}).
		Where("id = ?", middleware.GetUserID(c)).
		Update("is_phone_verified", true).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify phone"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Phone number verified successfully"})
}

// PhoneStatus reports the phone number and its verification flag
func PhoneStatus(c *gin.Context) {
	var user models.User
	if err := config.DB.WithContext(c.Request.Context()).First(&user, middleware.GetUserID(c)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"phone":             user.Phone,
		"is_phone_verified": user.IsPhoneVerified,
	})
}

// GetProfile returns the caller's profile
func GetProfile(c *gin.Context) {
	var user models.User
	if err := config.DB.WithContext(c.Request.Context()).Preload("College").First(&user, middleware.GetUserID(c)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type UpdateUsernameRequest struct {
	Username string `json:"username" binding:"required,min=3"`
}

// UpdateUsername renames the caller, enforcing uniqueness
func UpdateUsername(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req UpdateUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username must be at least 3 characters long"})
		return
	}

	var existing models.User
	if result := config.DB.Where("name = ? AND id <> ?", req.Username, userID).First(&existing); result.Error == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err := config.DB.Model(&user).Update("name", req.Username).Error; err != nil {
		if config.IsDuplicateKey(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update username"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Username updated successfully", "user": user})
}

type SaveFCMTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// SaveFCMToken registers a device token for push notifications
func SaveFCMToken(c *gin.Context) {
	var req SaveFCMTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token is required"})
		return
	}
	if notifier == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Notifications are not configured"})
		return
	}
	if err := notifier.SaveToken(c.Request.Context(), middleware.GetUserID(c), req.Token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Token saved successfully"})
}
