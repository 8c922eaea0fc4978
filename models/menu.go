package models

import "time"

// Categories is the closed set of menu categories exposed at
// /api/menu/categories and enforced on create/update.
var Categories = []string{
	"Appetizers",
	"Breakfast",
	"Lunch",
	"Dinner",
	"Desserts",
	"Beverages",
	"Specials",
	"Vegetarian",
	"Non-Vegetarian",
	"Vegan",
	"Sides",
}

// ValidCategory reports whether c is an allowed category. The empty
// string is accepted for items predating category scoping.
func ValidCategory(c string) bool {
	if c == "" {
		return true
	}
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type MenuItem struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	CollegeID       uint      `json:"college_id" gorm:"not null;index"`
	College         College   `json:"college,omitempty" gorm:"foreignKey:CollegeID"`
	Name            string    `json:"name" gorm:"not null"`
	Description     string    `json:"description"`
	Price           float64   `json:"price" gorm:"not null"`
	Category        string    `json:"category" gorm:"index"`
	ImageURL        string    `json:"image_url"`
	Available       bool      `json:"available" gorm:"default:true"`
	PreparationTime int       `json:"preparation_time_minutes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
