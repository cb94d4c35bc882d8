package service

import (
	"errors"
	"strings"

	"github.com/ibumus/warung-backend/internal/app/model"
	"github.com/ibumus/warung-backend/internal/app/repository"
	"github.com/ibumus/warung-backend/internal/realtime"
	"github.com/ibumus/warung-backend/pkg/logger"
	"github.com/ibumus/warung-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrNotOrderOwner        = errors.New("order belongs to another user")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidCustomerInfo  = errors.New("customer name, phone and address are required")
	ErrInvalidPhone         = errors.New("invalid phone number")
	ErrInvalidCartLine      = errors.New("cart contains an invalid line")
	ErrInvalidTotal         = errors.New("order total must be greater than zero")
	ErrOrderVerification    = errors.New("order verification failed")
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrInvalidTransition    = errors.New("invalid order status transition")
	ErrCancelReasonRequired = errors.New("cancellation reason is required")
)

// CreateOrderInput carries the checkout form fields.
type CreateOrderInput struct {
	CustomerName    string
	CustomerPhone   string
	DeliveryAddress string
	Notes           string
}

type OrderService interface {
	CreateOrder(userID uint, input CreateOrderInput) (*model.Order, error)
	GetUserOrders(userID uint) ([]model.Order, error)
	GetOrderByID(userID uint, orderID uint, isAdmin bool) (*model.Order, error)
	GetAllOrders(status string) ([]model.Order, error)
	UpdateOrderStatus(orderID uint, status model.OrderStatus, cancellationReason string) (*model.Order, error)
	CountUnnotified() (int64, error)
	ListUnnotified() ([]model.Order, error)
	MarkNotified(orderID uint) error
	MarkAllNotified() (int64, error)
}

type orderService struct {
	orderRepo           repository.OrderRepository
	cartRepo            repository.CartRepository
	menuRepo            repository.MenuItemRepository
	notificationService NotificationService
	feed                *realtime.Feed
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	menuRepo repository.MenuItemRepository,
	notificationService NotificationService,
	feed *realtime.Feed,
) OrderService {
	return &orderService{
		orderRepo:           orderRepo,
		cartRepo:            cartRepo,
		menuRepo:            menuRepo,
		notificationService: notificationService,
		feed:                feed,
	}
}

// unnotifiedListLimit caps the admin catch-up listing.
const unnotifiedListLimit = 10

// orderNumberAttempts bounds retries when the generated order number collides.
const orderNumberAttempts = 3

// CreateOrder turns the user's cart into an order. Validation happens before
// any write; the header and items land in one transaction; the tail steps
// (cart clearing, notification, feed publish) are best-effort.
func (s *orderService) CreateOrder(userID uint, input CreateOrderInput) (*model.Order, error) {
	customerName := strings.TrimSpace(input.CustomerName)
	customerPhone := util.SanitizePhone(input.CustomerPhone)
	deliveryAddress := strings.TrimSpace(input.DeliveryAddress)

	logger.Info("Creating order from cart", map[string]interface{}{
		"user_id":       userID,
		"customer_name": customerName,
	})

	if customerName == "" || customerPhone == "" || deliveryAddress == "" {
		logger.Warn("Order rejected: missing customer info", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrInvalidCustomerInfo
	}
	if !util.ValidPhone(customerPhone) {
		logger.Warn("Order rejected: invalid phone number", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrInvalidPhone
	}

	cartItems, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch cart items", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	if len(cartItems) == 0 {
		logger.Warn("Order rejected: cart is empty", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrEmptyCart
	}

	// Guard against stale cart rows pointing at removed or broken menu items.
	var (
		totalAmount float64
		orderItems  []model.OrderItem
	)
	for _, cartItem := range cartItems {
		if cartItem.Quantity <= 0 {
			logger.Warn("Order rejected: cart line has non-positive quantity", map[string]interface{}{
				"user_id":      userID,
				"cart_item_id": cartItem.ID,
			})
			return nil, ErrInvalidCartLine
		}
		if cartItem.MenuItem.ID == 0 || cartItem.MenuItem.Name == "" || cartItem.MenuItem.Price <= 0 {
			logger.Warn("Order rejected: cart line resolves to invalid menu item", map[string]interface{}{
				"user_id":      userID,
				"cart_item_id": cartItem.ID,
				"menu_item_id": cartItem.MenuItemID,
			})
			return nil, ErrInvalidCartLine
		}

		subtotal := cartItem.MenuItem.Price * float64(cartItem.Quantity)
		totalAmount += subtotal
		orderItems = append(orderItems, model.OrderItem{
			MenuItemID: cartItem.MenuItemID,
			Quantity:   cartItem.Quantity,
			UnitPrice:  cartItem.MenuItem.Price,
			Subtotal:   subtotal,
		})
	}

	if totalAmount <= 0 {
		logger.Warn("Order rejected: total is not positive", map[string]interface{}{
			"user_id": userID,
			"total":   totalAmount,
		})
		return nil, ErrInvalidTotal
	}

	order := &model.Order{
		UserID:          userID,
		CustomerName:    customerName,
		CustomerPhone:   customerPhone,
		DeliveryAddress: deliveryAddress,
		Notes:           strings.TrimSpace(input.Notes),
		TotalAmount:     totalAmount,
		Status:          model.OrderStatusPending,
	}

	if err := s.createWithFreshNumber(order, orderItems); err != nil {
		logger.Error("Failed to create order", err, map[string]interface{}{
			"user_id": userID,
			"total":   totalAmount,
		})
		return nil, err
	}

	// Re-read the items after the transaction. A count mismatch means the
	// order did not land as written; surface it and leave the cart intact
	// so support can reconcile.
	persisted, err := s.orderRepo.FindItemsByOrderID(order.ID)
	if err != nil || len(persisted) != len(orderItems) {
		logger.Error("Order verification failed", err, map[string]interface{}{
			"order_id":       order.ID,
			"order_number":   order.OrderNumber,
			"expected_items": len(orderItems),
			"found_items":    len(persisted),
		})
		return nil, ErrOrderVerification
	}

	// Best-effort tail. Failures are logged and never bubble up: the order
	// itself is already committed.
	if err := s.cartRepo.DeleteByUserID(userID); err != nil {
		logger.Error("Failed to clear cart after order creation", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": order.ID,
		})
	}
	if err := s.notificationService.CreateOrderStatusNotification(
		userID, order.OrderNumber, model.OrderStatusPending, ""); err != nil {
		logger.Error("Failed to create order placed notification", err, map[string]interface{}{
			"order_id": order.ID,
		})
	}
	if s.feed != nil {
		s.feed.Publish(realtime.OrderEvent{Type: realtime.EventInsert, Order: order})
	}

	logger.Info("Order created", map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"user_id":      userID,
		"total_amount": totalAmount,
		"item_count":   len(orderItems),
	})
	return order, nil
}

// createWithFreshNumber retries with a new order number on a duplicate-key
// collision. Any other error aborts immediately.
func (s *orderService) createWithFreshNumber(order *model.Order, items []model.OrderItem) error {
	var err error
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		order.OrderNumber = util.GenerateOrderNumber()
		err = s.orderRepo.CreateWithItems(order, items)
		if err == nil {
			return nil
		}
		if !isDuplicateKey(err) {
			return err
		}
		logger.Warn("Order number collision, retrying", map[string]interface{}{
			"order_number": order.OrderNumber,
			"attempt":      attempt + 1,
		})
	}
	return err
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func (s *orderService) GetUserOrders(userID uint) ([]model.Order, error) {
	return s.orderRepo.FindByUserID(userID)
}

func (s *orderService) GetOrderByID(userID uint, orderID uint, isAdmin bool) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	if !isAdmin && order.UserID != userID {
		logger.Warn("User tried to read another user's order", map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
		})
		return nil, ErrNotOrderOwner
	}
	return order, nil
}

func (s *orderService) GetAllOrders(status string) ([]model.Order, error) {
	if status != "" && !model.ValidStatus(model.OrderStatus(status)) {
		return nil, ErrInvalidStatus
	}
	return s.orderRepo.FindAll(status)
}

// allowedTransitions encodes the order lifecycle. Cancellation is only
// possible while the order is still pending.
var allowedTransitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusPending:   {model.OrderStatusConfirmed, model.OrderStatusCancelled},
	model.OrderStatusConfirmed: {model.OrderStatusReady},
	model.OrderStatusReady:     {model.OrderStatusDelivered},
}

func transitionAllowed(from, to model.OrderStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// UpdateOrderStatus moves an order through its lifecycle, records the status
// notification for the owner and publishes an update event.
func (s *orderService) UpdateOrderStatus(orderID uint, status model.OrderStatus, cancellationReason string) (*model.Order, error) {
	if !model.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	if !transitionAllowed(order.Status, status) {
		logger.Warn("Rejected order status transition", map[string]interface{}{
			"order_id": orderID,
			"from":     order.Status,
			"to":       status,
		})
		return nil, ErrInvalidTransition
	}

	if status == model.OrderStatusCancelled {
		cancellationReason = strings.TrimSpace(cancellationReason)
		if cancellationReason == "" {
			return nil, ErrCancelReasonRequired
		}
		order.CancellationReason = cancellationReason
	}

	order.Status = status
	if err := s.orderRepo.Update(order); err != nil {
		logger.Error("Failed to update order status", err, map[string]interface{}{
			"order_id": orderID,
			"status":   status,
		})
		return nil, err
	}

	logger.Info("Order status updated", map[string]interface{}{
		"order_id":     orderID,
		"order_number": order.OrderNumber,
		"status":       status,
	})

	if err := s.notificationService.CreateOrderStatusNotification(
		order.UserID, order.OrderNumber, status, ""); err != nil {
		logger.Error("Failed to create status change notification", err, map[string]interface{}{
			"order_id": orderID,
		})
	}
	if s.feed != nil {
		s.feed.Publish(realtime.OrderEvent{Type: realtime.EventUpdate, Order: order})
	}

	return order, nil
}

func (s *orderService) CountUnnotified() (int64, error) {
	return s.orderRepo.CountUnnotified()
}

func (s *orderService) ListUnnotified() ([]model.Order, error) {
	return s.orderRepo.FindUnnotified(unnotifiedListLimit)
}

func (s *orderService) MarkNotified(orderID uint) error {
	if _, err := s.orderRepo.FindByID(orderID); err != nil {
		return ErrOrderNotFound
	}
	return s.orderRepo.MarkNotified(orderID)
}

func (s *orderService) MarkAllNotified() (int64, error) {
	return s.orderRepo.MarkAllNotified()
}
