package config

import (
	"campus-cravings-api/models"

	"golang.org/x/crypto/bcrypt"
)

// SeedDev inserts a default college, an admin account and a small
// menu so a fresh development database is usable immediately. It is
// a no-op when a college already exists.
func SeedDev() error {
	var count int64
	if err := DB.Model(&models.College{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	college := models.College{
		Name:     "Central Campus",
		Code:     "CC",
		Address:  "1 Campus Way",
		IsActive: true,
	}
	if err := DB.Create(&college).Error; err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Name:         "Canteen Admin",
		Email:        "admin@campuscravings.dev",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		CollegeID:    &college.ID,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	items := []models.MenuItem{
		{CollegeID: college.ID, Name: "Masala Dosa", Description: "Crispy dosa with potato filling", Price: 4.50, Category: "Breakfast", Available: true, PreparationTime: 10},
		{CollegeID: college.ID, Name: "Veg Thali", Description: "Rice, dal, two curries, roti", Price: 6.00, Category: "Lunch", Available: true, PreparationTime: 15},
		{CollegeID: college.ID, Name: "Cold Coffee", Price: 2.00, Category: "Beverages", Available: true, PreparationTime: 5},
	}
	return DB.Create(&items).Error
}
