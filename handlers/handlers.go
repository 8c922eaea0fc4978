package handlers

import (
	"campus-cravings-api/notify"

	"go.uber.org/zap"
)

var (
	notifier *notify.Service
	log      = zap.NewNop()
)

// Setup wires the notification service and logger used by handlers.
// A nil notifier disables push dispatch (notifications are
// best-effort, so handlers simply skip them).
func Setup(n *notify.Service, l *zap.Logger) {
	notifier = n
	if l != nil {
		log = l
	}
}
