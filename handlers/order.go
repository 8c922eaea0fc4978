package handlers

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"campus-cravings-api/config"
	"campus-cravings-api/middleware"
	"campus-cravings-api/models"
	"campus-cravings-api/notify"
	"campus-cravings-api/statemachine"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreateOrderRequest struct {
	Items []struct {
		MenuItemID uint `json:"menu_item_id" binding:"required"`
		Quantity   int  `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1"`
}

const pickupCodeRetries = 5

// generatePickupCode returns a random 6-digit zero-padded code. It is
// a var so tests can force collisions.
var generatePickupCode = func() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// insertOrderWithPickupCode inserts the order with a fresh pickup
// code, regenerating on a unique-index collision. The insert itself
// is the uniqueness check, so a concurrent order taking the same code
// just triggers another attempt.
func insertOrderWithPickupCode(db *gorm.DB, order *models.Order, items []models.OrderItem) error {
	for i := 0; i < pickupCodeRetries; i++ {
		code, err := generatePickupCode()
		if err != nil {
			return err
		}
		order.ID = 0
		order.PickupCode = code
		// fresh copy each attempt; gorm fills in item IDs on insert
		order.Items = make([]models.OrderItem, len(items))
		copy(order.Items, items)

		err = db.Create(order).Error
		if err == nil {
			return nil
		}
		if !config.IsDuplicateKey(err) {
			return err
		}
	}
	return errors.New("exhausted pickup code attempts")
}

// CreateOrder places an order from a snapshot of the live menu.
// Prices always come from the current menu item, never the request.
func CreateOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)
	ctx := c.Request.Context()

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if user.CollegeID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Select a college before ordering"})
		return
	}

	var orderItems []models.OrderItem
	var total float64
	for _, reqItem := range req.Items {
		var menuItem models.MenuItem
		if err := config.DB.WithContext(ctx).First(&menuItem, reqItem.MenuItemID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Menu item %d not found", reqItem.MenuItemID)})
			return
		}
		if menuItem.CollegeID != *user.CollegeID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item '" + menuItem.Name + "' belongs to another college"})
			return
		}
		if !menuItem.Available {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Item '" + menuItem.Name + "' is not available"})
			return
		}
		total += menuItem.Price * float64(reqItem.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			MenuItemID: menuItem.ID,
			Quantity:   reqItem.Quantity,
			Price:      menuItem.Price,
			Name:       menuItem.Name,
		})
	}

	order := models.Order{
		UserID:      userID,
		CollegeID:   *user.CollegeID,
		TotalAmount: total,
		Status:      models.StatusPending,
	}

	// Order and items go in one insert, so no partial order survives
	// a failure.
	if err := insertOrderWithPickupCode(config.DB.WithContext(ctx), &order, orderItems); err != nil {
		log.Error("order insert failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	recordStatusChange(ctx, order.ID, "", models.StatusPending, userID)

	go sendOrderNotification(&order, notify.OrderReceivedMessage)

	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// GetMyOrders returns the caller's orders, most recent first
func GetMyOrders(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var orders []models.Order
	config.DB.WithContext(c.Request.Context()).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// AdminGetAllOrders returns every order with requester identity joined
func AdminGetAllOrders(c *gin.Context) {
	var orders []models.Order
	query := config.DB.WithContext(c.Request.Context()).
		Preload("Items").
		Preload("StatusHistory").
		Preload("User")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query.Order("created_at desc").Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateOrderStatus moves an order through its lifecycle (admin only).
// Illegal jumps are rejected; completion stamps the completion time.
func UpdateOrderStatus(c *gin.Context) {
	ctx := c.Request.Context()

	var order models.Order
	if err := config.DB.WithContext(ctx).First(&order, c.Param("orderId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !statemachine.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status: " + string(req.Status)})
		return
	}

	if err := statemachine.CanTransition(order.Status, req.Status); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":             "Invalid state transition",
			"current_status":    order.Status,
			"requested":         req.Status,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
		})
		return
	}

	prevStatus := order.Status
	update := map[string]interface{}{"status": req.Status}
	if req.Status == models.StatusCompleted {
		update["completion_time"] = time.Now()
	}
	if err := config.DB.WithContext(ctx).Model(&order).Updates(update).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	recordStatusChange(ctx, order.ID, prevStatus, req.Status, middleware.GetUserID(c))

	go sendOrderNotification(&order, notify.OrderStatusMessage)

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// GetOrderTransitions documents the order lifecycle
func GetOrderTransitions(c *gin.Context) {
	info := make([]gin.H, 0, len(statemachine.GetAllTransitions()))
	for _, t := range statemachine.GetAllTransitions() {
		info = append(info, gin.H{"from": t.From, "to": t.To})
	}
	c.JSON(http.StatusOK, gin.H{
		"transitions":     info,
		"terminal_states": []models.OrderStatus{models.StatusCompleted, models.StatusCancelled},
	})
}

// recordStatusChange appends an audit row for a status transition.
// The order itself is already persisted; a failed audit write is
// logged but does not fail the request.
func recordStatusChange(ctx context.Context, orderID uint, from, to models.OrderStatus, changedBy uint) {
	entry := models.OrderStatusHistory{
		OrderID:    orderID,
		FromStatus: from,
		ToStatus:   to,
		ChangedBy:  changedBy,
	}
	if err := config.DB.WithContext(ctx).Create(&entry).Error; err != nil {
		log.Warn("status history write failed",
			zap.Uint("order_id", orderID),
			zap.Error(err),
		)
	}
}

// sendOrderNotification dispatches a push message for an order. It is
// best-effort: failures are logged and never reach the caller.
func sendOrderNotification(order *models.Order, message func(*models.Order) (string, string, map[string]string)) {
	if notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	title, body, data := message(order)
	if _, err := notifier.Send(ctx, order.UserID, title, body, data); err != nil {
		log.Warn("order notification failed",
			zap.Uint("order_id", order.ID),
			zap.Error(err),
		)
	}
}
