package models

import "time"

// OrderStatus represents all possible states of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID             uint                 `json:"id" gorm:"primaryKey"`
	UserID         uint                 `json:"user_id" gorm:"not null;index"`
	User           User                 `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CollegeID      uint                 `json:"college_id" gorm:"not null;index"`
	College        College              `json:"college,omitempty" gorm:"foreignKey:CollegeID"`
	Items          []OrderItem          `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	TotalAmount    float64              `json:"total_amount" gorm:"not null"`
	Status         OrderStatus          `json:"status" gorm:"not null;default:'pending';index"`
	PickupCode     string               `json:"pickup_code" gorm:"uniqueIndex;not null"`
	CompletionTime *time.Time           `json:"completion_time"`
	StatusHistory  []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// OrderStatusHistory tracks every status change, audit trail
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null;index"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  uint        `json:"changed_by"` // user ID who triggered the transition
	CreatedAt  time.Time   `json:"created_at"`
}

type OrderItem struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	OrderID    uint    `json:"order_id" gorm:"not null;index"`
	MenuItemID uint    `json:"menu_item_id" gorm:"not null"`
	Quantity   int     `json:"quantity" gorm:"not null"`
	Price      float64 `json:"price" gorm:"not null"` // snapshot price at time of order
	Name       string  `json:"name"`                  // snapshot name
}
