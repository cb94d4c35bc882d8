package repository

import (
	"github.com/ibumus/warung-backend/internal/app/model"
	"github.com/ibumus/warung-backend/pkg/logger"
	"gorm.io/gorm"
)

type OrderRepository interface {
	CreateWithItems(order *model.Order, items []model.OrderItem) error
	FindByID(id uint) (*model.Order, error)
	FindByOrderNumber(orderNumber string) (*model.Order, error)
	FindByUserID(userID uint) ([]model.Order, error)
	FindAll(status string) ([]model.Order, error)
	FindItemsByOrderID(orderID uint) ([]model.OrderItem, error)
	Update(order *model.Order) error
	UpdateStatus(id uint, status model.OrderStatus) error
	MarkNotified(id uint) error
	MarkAllNotified() (int64, error)
	CountUnnotified() (int64, error)
	FindUnnotified(limit int) ([]model.Order, error)
	GetStats() (map[string]interface{}, error)
	GetRevenueByDay(days int) ([]DailyRevenue, error)
	GetPopularMenuItems(limit int) ([]MenuItemSales, error)
}

// DailyRevenue is one row of the revenue-by-day report.
type DailyRevenue struct {
	Day     string  `json:"day"`
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// MenuItemSales is one row of the popular-menu report.
type MenuItemSales struct {
	MenuItemID uint    `json:"menu_item_id"`
	Name       string  `json:"name"`
	Quantity   int64   `json:"quantity"`
	Revenue    float64 `json:"revenue"`
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) preloadOrder() *gorm.DB {
	return r.db.Preload("OrderItems", func(db *gorm.DB) *gorm.DB {
		return db.Preload("MenuItem")
	}).Preload("User")
}

// CreateWithItems inserts the order header and all of its items in a
// single transaction. Either everything lands or nothing does.
func (r *orderRepository) CreateWithItems(order *model.Order, items []model.OrderItem) error {
	logger.Debug("Creating order with items in database", map[string]interface{}{
		"order_number": order.OrderNumber,
		"user_id":      order.UserID,
		"total_amount": order.TotalAmount,
		"item_count":   len(items),
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to create order with items in database", err, map[string]interface{}{
			"order_number": order.OrderNumber,
			"user_id":      order.UserID,
		})
		return err
	}

	logger.Debug("Order created with items in database", map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"item_count":   len(items),
	})
	return nil
}

func (r *orderRepository) FindByID(id uint) (*model.Order, error) {
	var order model.Order
	if err := r.preloadOrder().First(&order, id).Error; err != nil {
		logger.Error("Failed to find order by ID in database", err, map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByOrderNumber(orderNumber string) (*model.Order, error) {
	var order model.Order
	if err := r.preloadOrder().Where("order_number = ?", orderNumber).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByUserID(userID uint) ([]model.Order, error) {
	logger.Debug("Finding orders by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var orders []model.Order
	if err := r.preloadOrder().Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		logger.Error("Failed to find orders by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindAll(status string) ([]model.Order, error) {
	query := r.preloadOrder()
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []model.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		logger.Error("Failed to find all orders in database", err, map[string]interface{}{
			"status": status,
		})
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindItemsByOrderID(orderID uint) ([]model.OrderItem, error) {
	var items []model.OrderItem
	if err := r.db.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
		logger.Error("Failed to find order items by order ID in database", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}
	return items, nil
}

func (r *orderRepository) Update(order *model.Order) error {
	logger.Debug("Updating order in database", map[string]interface{}{
		"order_id": order.ID,
		"status":   order.Status,
	})

	if err := r.db.Save(order).Error; err != nil {
		logger.Error("Failed to update order in database", err, map[string]interface{}{
			"order_id": order.ID,
		})
		return err
	}
	return nil
}

func (r *orderRepository) UpdateStatus(id uint, status model.OrderStatus) error {
	logger.Debug("Updating order status in database", map[string]interface{}{
		"order_id": id,
		"status":   status,
	})

	if err := r.db.Model(&model.Order{}).Where("id = ?", id).
		Update("status", status).Error; err != nil {
		logger.Error("Failed to update order status in database", err, map[string]interface{}{
			"order_id": id,
			"status":   status,
		})
		return err
	}
	return nil
}

func (r *orderRepository) MarkNotified(id uint) error {
	if err := r.db.Model(&model.Order{}).Where("id = ?", id).
		Update("admin_notified", true).Error; err != nil {
		logger.Error("Failed to mark order as notified in database", err, map[string]interface{}{
			"order_id": id,
		})
		return err
	}
	return nil
}

func (r *orderRepository) MarkAllNotified() (int64, error) {
	result := r.db.Model(&model.Order{}).Where("admin_notified = ?", false).
		Update("admin_notified", true)
	if result.Error != nil {
		logger.Error("Failed to mark all orders as notified in database", result.Error, nil)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *orderRepository) CountUnnotified() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Order{}).Where("admin_notified = ?", false).
		Count(&count).Error; err != nil {
		logger.Error("Failed to count unnotified orders in database", err, nil)
		return 0, err
	}
	return count, nil
}

func (r *orderRepository) FindUnnotified(limit int) ([]model.Order, error) {
	var orders []model.Order
	if err := r.preloadOrder().Where("admin_notified = ?", false).
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error; err != nil {
		logger.Error("Failed to find unnotified orders in database", err, map[string]interface{}{
			"limit": limit,
		})
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) GetStats() (map[string]interface{}, error) {
	logger.Debug("Getting order statistics in database", nil)

	var totalOrders int64
	if err := r.db.Model(&model.Order{}).Count(&totalOrders).Error; err != nil {
		logger.Error("Failed to count total orders", err, nil)
		return nil, err
	}

	statusCounts := []struct {
		Status model.OrderStatus
		Count  int64
	}{}
	if err := r.db.Model(&model.Order{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		logger.Error("Failed to count orders by status", err, nil)
		return nil, err
	}

	var pendingOrders, confirmedOrders, readyOrders, deliveredOrders, cancelledOrders int64
	for _, sc := range statusCounts {
		switch sc.Status {
		case model.OrderStatusPending:
			pendingOrders = sc.Count
		case model.OrderStatusConfirmed:
			confirmedOrders = sc.Count
		case model.OrderStatusReady:
			readyOrders = sc.Count
		case model.OrderStatusDelivered:
			deliveredOrders = sc.Count
		case model.OrderStatusCancelled:
			cancelledOrders = sc.Count
		}
	}

	// Revenue counts only orders that reached the customer.
	var revenueResult struct {
		TotalRevenue float64
	}
	if err := r.db.Model(&model.Order{}).
		Select("COALESCE(SUM(total_amount), 0) as total_revenue").
		Where("status = ?", model.OrderStatusDelivered).
		Scan(&revenueResult).Error; err != nil {
		logger.Error("Failed to calculate total revenue", err, nil)
		return nil, err
	}

	stats := map[string]interface{}{
		"total_orders":     totalOrders,
		"pending_orders":   pendingOrders,
		"confirmed_orders": confirmedOrders,
		"ready_orders":     readyOrders,
		"delivered_orders": deliveredOrders,
		"cancelled_orders": cancelledOrders,
		"total_revenue":    revenueResult.TotalRevenue,
	}

	logger.Debug("Order statistics retrieved in database", map[string]interface{}{
		"total_orders":  totalOrders,
		"total_revenue": revenueResult.TotalRevenue,
	})
	return stats, nil
}

func (r *orderRepository) GetRevenueByDay(days int) ([]DailyRevenue, error) {
	var rows []DailyRevenue
	if err := r.db.Model(&model.Order{}).
		Select("DATE(created_at) as day, COUNT(*) as orders, COALESCE(SUM(total_amount), 0) as revenue").
		Where("status != ?", model.OrderStatusCancelled).
		Group("DATE(created_at)").
		Order("day DESC").
		Limit(days).
		Scan(&rows).Error; err != nil {
		logger.Error("Failed to get revenue by day in database", err, map[string]interface{}{
			"days": days,
		})
		return nil, err
	}
	return rows, nil
}

func (r *orderRepository) GetPopularMenuItems(limit int) ([]MenuItemSales, error) {
	var rows []MenuItemSales
	if err := r.db.Model(&model.OrderItem{}).
		Select("order_items.menu_item_id, menu_items.name, SUM(order_items.quantity) as quantity, COALESCE(SUM(order_items.subtotal), 0) as revenue").
		Joins("JOIN menu_items ON menu_items.id = order_items.menu_item_id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status != ?", model.OrderStatusCancelled).
		Group("order_items.menu_item_id, menu_items.name").
		Order("quantity DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		logger.Error("Failed to get popular menu items in database", err, map[string]interface{}{
			"limit": limit,
		})
		return nil, err
	}
	return rows, nil
}
