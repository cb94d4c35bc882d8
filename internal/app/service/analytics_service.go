package service

import (
	"bytes"
	"fmt"

	"github.com/ibumus/warung-backend/internal/app/model"
	"github.com/ibumus/warung-backend/internal/app/repository"
	"github.com/ibumus/warung-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

type AnalyticsService interface {
	GetDashboardStats() (map[string]interface{}, error)
	GetRevenueByDay(days int) ([]repository.DailyRevenue, error)
	GetPopularMenuItems(limit int) ([]repository.MenuItemSales, error)
	ExportOrdersXLSX(status string) ([]byte, error)
}

type analyticsService struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	menuRepo  repository.MenuItemRepository
}

func NewAnalyticsService(
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	menuRepo repository.MenuItemRepository,
) AnalyticsService {
	return &analyticsService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		menuRepo:  menuRepo,
	}
}

func (s *analyticsService) GetDashboardStats() (map[string]interface{}, error) {
	stats, err := s.orderRepo.GetStats()
	if err != nil {
		return nil, err
	}

	totalUsers, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}
	totalMenuItems, err := s.menuRepo.Count()
	if err != nil {
		return nil, err
	}

	stats["total_users"] = totalUsers
	stats["total_menu_items"] = totalMenuItems
	return stats, nil
}

func (s *analyticsService) GetRevenueByDay(days int) ([]repository.DailyRevenue, error) {
	if days <= 0 {
		days = 7
	}
	return s.orderRepo.GetRevenueByDay(days)
}

func (s *analyticsService) GetPopularMenuItems(limit int) ([]repository.MenuItemSales, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.orderRepo.GetPopularMenuItems(limit)
}

// ExportOrdersXLSX renders all orders (optionally filtered by status) into
// an Excel workbook for the back office.
func (s *analyticsService) ExportOrdersXLSX(status string) ([]byte, error) {
	if status != "" && !model.ValidStatus(model.OrderStatus(status)) {
		return nil, ErrInvalidStatus
	}

	orders, err := s.orderRepo.FindAll(status)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Orders"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Order Number", "Date", "Customer", "Phone", "Address", "Status", "Items", "Total (IDR)"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, order := range orders {
		itemCount := 0
		for _, item := range order.OrderItems {
			itemCount += item.Quantity
		}
		values := []interface{}{
			order.OrderNumber,
			order.CreatedAt.Format("2006-01-02 15:04"),
			order.CustomerName,
			order.CustomerPhone,
			order.DeliveryAddress,
			string(order.Status),
			itemCount,
			order.TotalAmount,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		logger.Error("Failed to write orders workbook", err, map[string]interface{}{
			"order_count": len(orders),
		})
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	logger.Info("Orders exported to XLSX", map[string]interface{}{
		"order_count": len(orders),
		"status":      status,
	})
	return buf.Bytes(), nil
}
