package handlers

import (
	"net/http"
	"strings"

	"campus-cravings-api/config"
	"campus-cravings-api/middleware"
	"campus-cravings-api/models"

	"github.com/gin-gonic/gin"
)

// ListColleges returns all active colleges (public)
func ListColleges(c *gin.Context) {
	var colleges []models.College
	config.DB.WithContext(c.Request.Context()).
		Where("is_active = ?", true).
		Order("name asc").
		Find(&colleges)
	c.JSON(http.StatusOK, gin.H{"count": len(colleges), "colleges": colleges})
}

type UpdateUserCollegeRequest struct {
	CollegeID uint `json:"college_id" binding:"required"`
}

// UpdateUserCollege assigns the caller's selected college
func UpdateUserCollege(c *gin.Context) {
	var req UpdateUserCollegeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "College ID is required"})
		return
	}

	var college models.College
	if err := config.DB.Where("id = ? AND is_active = ?", req.CollegeID, true).First(&college).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "College not found or inactive"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, middleware.GetUserID(c)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err := config.DB.Model(&user).Update("college_id", college.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update college"})
		return
	}
	user.CollegeID = &college.ID
	user.College = &college
	c.JSON(http.StatusOK, gin.H{"message": "College updated successfully", "user": user})
}

// GetUserCollege returns the caller's currently selected college
func GetUserCollege(c *gin.Context) {
	var user models.User
	if err := config.DB.WithContext(c.Request.Context()).Preload("College").First(&user, middleware.GetUserID(c)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"college": user.College})
}

type CreateCollegeRequest struct {
	Name    string `json:"name" binding:"required"`
	Code    string `json:"code" binding:"required"`
	Address string `json:"address" binding:"required"`
}

// CreateCollege adds a college (admin only)
func CreateCollege(c *gin.Context) {
	var req CreateCollegeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, code, and address are required"})
		return
	}

	code := strings.ToUpper(req.Code)
	var existing models.College
	if result := config.DB.Where("name = ? OR code = ?", req.Name, code).First(&existing); result.Error == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "College name or code already exists"})
		return
	}

	college := models.College{
		Name:     req.Name,
		Code:     code,
		Address:  req.Address,
		IsActive: true,
	}
	if err := config.DB.Create(&college).Error; err != nil {
		if config.IsDuplicateKey(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "College name or code already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create college"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "College created successfully", "college": college})
}

// UpdateCollege updates a college's fields (admin only)
func UpdateCollege(c *gin.Context) {
	var college models.College
	if err := config.DB.First(&college, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "College not found"})
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if code, ok := req["code"].(string); ok {
		req["code"] = strings.ToUpper(code)
	}

	allowed := map[string]bool{"name": true, "code": true, "address": true, "is_active": true}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	if err := config.DB.Model(&college).Updates(update).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update college"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "College updated successfully", "college": college})
}

// DeleteCollege deactivates a college. Colleges are never removed,
// only flagged inactive.
func DeleteCollege(c *gin.Context) {
	var college models.College
	if err := config.DB.First(&college, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "College not found"})
		return
	}
	if err := config.DB.Model(&college).Update("is_active", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate college"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "College deactivated"})
}
