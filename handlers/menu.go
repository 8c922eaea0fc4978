package handlers

import (
	"net/http"
	"strconv"

	"campus-cravings-api/config"
	"campus-cravings-api/middleware"
	"campus-cravings-api/models"

	"github.com/gin-gonic/gin"
)

type menuFilterRequest struct {
	CollegeID *uint  `json:"collegeId"`
	Category  string `json:"category"`
}

// ListMenu returns available menu items, optionally scoped by college.
// Filters come from query params or, for POST callers, the JSON body;
// query params win. With no explicit college filter, an authenticated
// caller gets the menu of their own selected college.
func ListMenu(c *gin.Context) {
	query := config.DB.WithContext(c.Request.Context()).Where("available = ?", true)

	var body menuFilterRequest
	if c.Request.Method == http.MethodPost {
		// an empty body is fine, the filters are all optional
		_ = c.ShouldBindJSON(&body)
	}

	collegeID := c.Query("collegeId")
	if collegeID == "" && body.CollegeID != nil {
		collegeID = strconv.FormatUint(uint64(*body.CollegeID), 10)
	}
	if collegeID != "" {
		var college models.College
		if err := config.DB.First(&college, collegeID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown college"})
			return
		}
		query = query.Where("college_id = ?", college.ID)
	} else if userID, ok := middleware.OptionalUserID(c); ok {
		var user models.User
		if err := config.DB.First(&user, userID).Error; err == nil && user.CollegeID != nil {
			query = query.Where("college_id = ?", *user.CollegeID)
		}
	}

	category := c.Query("category")
	if category == "" {
		category = body.Category
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var items []models.MenuItem
	query.Find(&items)
	c.JSON(http.StatusOK, gin.H{"count": len(items), "menu": items})
}

// ListCategories returns the closed category enumeration
func ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": models.Categories})
}

type CreateMenuItemRequest struct {
	Name            string   `json:"name" binding:"required"`
	Description     string   `json:"description"`
	Price           *float64 `json:"price" binding:"required,gte=0"`
	Category        string   `json:"category"`
	ImageURL        string   `json:"image_url"`
	PreparationTime int      `json:"preparation_time_minutes"`
	CollegeID       *uint    `json:"college_id"`
}

// CreateMenuItem adds a menu item (admin only). The item is owned by
// the given college, defaulting to the admin's own college.
func CreateMenuItem(c *gin.Context) {
	var req CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}

	collegeID := req.CollegeID
	if collegeID == nil {
		admin := currentUser(c)
		if admin == nil || admin.CollegeID == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "college_id is required"})
			return
		}
		collegeID = admin.CollegeID
	}
	var college models.College
	if err := config.DB.Where("id = ? AND is_active = ?", *collegeID, true).First(&college).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "College not found or inactive"})
		return
	}

	item := models.MenuItem{
		CollegeID:       college.ID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           *req.Price,
		Category:        req.Category,
		ImageURL:        req.ImageURL,
		PreparationTime: req.PreparationTime,
		Available:       true,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add menu item"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// UpdateMenuItem updates a menu item (admin only, same-college check)
func UpdateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("itemId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	admin := currentUser(c)
	if admin == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}
	if admin.CollegeID != nil && *admin.CollegeID != item.CollegeID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Menu item belongs to another college"})
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if cat, ok := req["category"].(string); ok && !models.ValidCategory(cat) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}
	if price, ok := req["price"].(float64); ok && price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be non-negative"})
		return
	}

	// Only allow safe fields
	allowed := map[string]bool{
		"name": true, "description": true, "price": true, "category": true,
		"image_url": true, "available": true, "preparation_time": true,
	}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	if err := config.DB.Model(&item).Updates(update).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DeleteMenuItem removes a menu item (admin only, hard delete)
func DeleteMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("itemId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	if err := config.DB.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}

// currentUser loads the authenticated user's record, nil when absent.
func currentUser(c *gin.Context) *models.User {
	var user models.User
	if err := config.DB.First(&user, middleware.GetUserID(c)).Error; err != nil {
		return nil
	}
	return &user
}
