package service

import (
	"context"
	"fmt"

	"github.com/ibumus/warung-backend/internal/app/model"
	"github.com/ibumus/warung-backend/internal/realtime"
	"github.com/ibumus/warung-backend/pkg/logger"
	"github.com/ibumus/warung-backend/pkg/util"
)

// TelegramSender is the slice of the Telegram client the notifier needs.
type TelegramSender interface {
	SendMessage(ctx context.Context, text string) error
}

// OrderPusher is the slice of the websocket hub the notifier needs.
type OrderPusher interface {
	SendToAdmins(message interface{}) error
	SendToUserAndAdmins(userID uint, message interface{}) error
}

// OrderNotifier subscribes to the realtime feed and fans order events out:
// new orders go to the Telegram group and to admin websocket sessions,
// status updates go to the order's owner and to admins. Every delivery is
// best-effort; a failure is logged and the event moves on.
type OrderNotifier struct {
	telegram TelegramSender
	hub      OrderPusher
}

func NewOrderNotifier(telegram TelegramSender, hub OrderPusher) *OrderNotifier {
	return &OrderNotifier{telegram: telegram, hub: hub}
}

// Start subscribes the notifier to the feed and returns the unsubscribe
// function.
func (n *OrderNotifier) Start(feed *realtime.Feed) func() {
	return feed.Subscribe(n.Handle)
}

// Handle processes one order event. Exported so tests can drive the
// notifier without a feed.
func (n *OrderNotifier) Handle(event realtime.OrderEvent) {
	if event.Order == nil {
		return
	}

	switch event.Type {
	case realtime.EventInsert:
		n.handleNewOrder(event.Order)
	case realtime.EventUpdate:
		n.handleOrderUpdate(event.Order)
	}
}

func (n *OrderNotifier) handleNewOrder(order *model.Order) {
	if n.telegram != nil {
		text := fmt.Sprintf(
			"🍽 *Pesanan Baru!*\n\nNo: %s\nPelanggan: %s\nTotal: %s",
			order.OrderNumber,
			order.CustomerName,
			util.FormatIDR(order.TotalAmount),
		)
		if err := n.telegram.SendMessage(context.Background(), text); err != nil {
			logger.Error("Failed to send new order Telegram message", err, map[string]interface{}{
				"order_id":     order.ID,
				"order_number": order.OrderNumber,
			})
		}
	}

	if n.hub != nil {
		// New orders are back-office signal only, customers already saw
		// their confirmation.
		if err := n.hub.SendToAdmins(orderEventPayload("new_order", order)); err != nil {
			logger.Error("Failed to push new order to admin sessions", err, map[string]interface{}{
				"order_id": order.ID,
			})
		}
	}
}

func (n *OrderNotifier) handleOrderUpdate(order *model.Order) {
	if n.hub == nil {
		return
	}
	if err := n.hub.SendToUserAndAdmins(order.UserID, orderEventPayload("order_updated", order)); err != nil {
		logger.Error("Failed to push order update", err, map[string]interface{}{
			"order_id": order.ID,
		})
	}
}

func orderEventPayload(eventType string, order *model.Order) map[string]interface{} {
	return map[string]interface{}{
		"type":         eventType,
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"user_id":      order.UserID,
		"status":       order.Status,
		"total_amount": order.TotalAmount,
		"created_at":   order.CreatedAt,
	}
}
