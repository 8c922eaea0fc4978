package notify

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"campus-cravings-api/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service dispatches push notifications to all of a user's devices.
// Delivery is best-effort: callers must never fail their own
// operation on a notification error.
type Service struct {
	db      *gorm.DB
	gateway Gateway
	log     *zap.Logger
}

func NewService(db *gorm.DB, gateway Gateway, log *zap.Logger) *Service {
	return &Service{db: db, gateway: gateway, log: log}
}

// Send delivers one message per registered device token. It returns
// false when the user has no tokens (a no-op, not an error). Tokens
// the gateway reports as unregistered are removed from the user.
// Per-token failures are isolated and only logged.
func (s *Service) Send(ctx context.Context, userID uint, title, body string, data map[string]string) (bool, error) {
	var tokens []models.DeviceToken
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&tokens).Error; err != nil {
		return false, fmt.Errorf("failed to load device tokens: %w", err)
	}
	if len(tokens) == 0 {
		return false, nil
	}

	var wg sync.WaitGroup
	for _, t := range tokens {
		wg.Add(1)
		go func(t models.DeviceToken) {
			defer wg.Done()
			err := s.gateway.Send(ctx, t.Token, title, body, data)
			switch {
			case err == nil:
			case errors.Is(err, ErrTokenInvalid):
				s.log.Info("pruning unregistered device token", zap.Uint("user_id", userID))
				if delErr := s.RemoveToken(ctx, userID, t.Token); delErr != nil {
					s.log.Warn("failed to prune device token", zap.Error(delErr))
				}
			default:
				s.log.Warn("push delivery failed", zap.Uint("user_id", userID), zap.Error(err))
			}
		}(t)
	}
	wg.Wait()
	return true, nil
}

// SaveToken registers a device token for a user. Registration is
// idempotent: the (user, token) pair is unique.
func (s *Service) SaveToken(ctx context.Context, userID uint, token string) error {
	if token == "" {
		return errors.New("token is required")
	}
	record := models.DeviceToken{UserID: userID, Token: token}
	return s.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, token).
		FirstOrCreate(&record).Error
}

// RemoveToken deletes one device token from a user's set.
func (s *Service) RemoveToken(ctx context.Context, userID uint, token string) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, token).
		Delete(&models.DeviceToken{}).Error
}

// OrderReceivedMessage is the notification sent when an order is placed.
func OrderReceivedMessage(o *models.Order) (title, body string, data map[string]string) {
	title = "Order received"
	body = fmt.Sprintf("Your order #%d has been received. Pickup code: %s", o.ID, o.PickupCode)
	return title, body, orderData(o)
}

// OrderStatusMessage is the notification sent on a status change,
// templated by the target status.
func OrderStatusMessage(o *models.Order) (title, body string, data map[string]string) {
	switch o.Status {
	case models.StatusConfirmed:
		title = "Order confirmed"
		body = fmt.Sprintf("Your order #%d has been confirmed and will be prepared soon.", o.ID)
	case models.StatusReady:
		title = "Order ready"
		body = fmt.Sprintf("Your order #%d is ready! Show pickup code %s at the counter.", o.ID, o.PickupCode)
	case models.StatusCompleted:
		title = "Order completed"
		body = fmt.Sprintf("Your order #%d is complete. Enjoy!", o.ID)
	case models.StatusCancelled:
		title = "Order cancelled"
		body = fmt.Sprintf("Your order #%d has been cancelled.", o.ID)
	default:
		title = "Order update"
		body = fmt.Sprintf("Your order #%d is now %s.", o.ID, o.Status)
	}
	return title, body, orderData(o)
}

func orderData(o *models.Order) map[string]string {
	return map[string]string{
		"order_id":     strconv.FormatUint(uint64(o.ID), 10),
		"status":       string(o.Status),
		"pickup_code":  o.PickupCode,
		"click_action": "FLUTTER_NOTIFICATION_CLICK",
	}
}
