package models

import (
	"time"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleClient UserRole = "client"
	RoleAdmin  UserRole = "admin"
)

type User struct {
	ID              uint          `json:"id" gorm:"primaryKey"`
	Name            string        `json:"name" gorm:"not null"`
	Email           string        `json:"email" gorm:"uniqueIndex;not null"`
	Phone           string        `json:"phone"`
	IsPhoneVerified bool          `json:"is_phone_verified" gorm:"default:false"`
	PasswordHash    string        `json:"-"` // empty for OAuth-issued accounts
	GoogleID        string        `json:"-" gorm:"index"`
	Role            UserRole      `json:"role" gorm:"not null;default:'client'"`
	CollegeID       *uint         `json:"college_id"`
	College         *College      `json:"college,omitempty" gorm:"foreignKey:CollegeID"`
	Balance         float64       `json:"balance" gorm:"default:0"`
	DeviceTokens    []DeviceToken `json:"-" gorm:"foreignKey:UserID"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// DeviceToken addresses push notifications to one installed client.
// The composite unique index gives the token set its set semantics.
type DeviceToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_token"`
	Token     string    `json:"token" gorm:"not null;uniqueIndex:idx_user_token"`
	CreatedAt time.Time `json:"created_at"`
}
