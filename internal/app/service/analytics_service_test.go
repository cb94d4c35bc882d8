package service

import (
	"bytes"
	"testing"

	"github.com/ibumus/warung-backend/internal/app/model"
	"github.com/ibumus/warung-backend/internal/app/repository"
	"github.com/ibumus/warung-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func setupAnalyticsServiceTest(t *testing.T) (AnalyticsService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	analyticsService := NewAnalyticsService(
		repository.NewOrderRepository(testDB),
		repository.NewUserRepository(testDB),
		repository.NewMenuItemRepository(testDB),
	)

	return analyticsService, testDB
}

func seedAnalyticsOrders(t *testing.T, testDB *gorm.DB) *model.User {
	t.Helper()

	user := &model.User{Email: "pelanggan@example.com", PasswordHash: "hash", Role: model.RoleCustomer}
	testDB.Create(user)

	category := &model.Category{Name: "Makanan Utama"}
	testDB.Create(category)

	menuItem := &model.MenuItem{CategoryID: category.ID, Name: "Nasi Goreng Spesial", Price: 25000, IsAvailable: true}
	testDB.Create(menuItem)

	orders := []model.Order{
		{UserID: user.ID, OrderNumber: "ORD-20250830-1001", CustomerName: "Budi", CustomerPhone: "081234567890", DeliveryAddress: "Jl. Merdeka 1", TotalAmount: 50000, Status: model.OrderStatusDelivered},
		{UserID: user.ID, OrderNumber: "ORD-20250830-1002", CustomerName: "Budi", CustomerPhone: "081234567890", DeliveryAddress: "Jl. Merdeka 1", TotalAmount: 25000, Status: model.OrderStatusPending},
		{UserID: user.ID, OrderNumber: "ORD-20250830-1003", CustomerName: "Budi", CustomerPhone: "081234567890", DeliveryAddress: "Jl. Merdeka 1", TotalAmount: 75000, Status: model.OrderStatusCancelled, CancellationReason: "stok habis"},
	}
	for i := range orders {
		require.NoError(t, testDB.Create(&orders[i]).Error)
		testDB.Create(&model.OrderItem{
			OrderID:    orders[i].ID,
			MenuItemID: menuItem.ID,
			Quantity:   int(orders[i].TotalAmount / 25000),
			UnitPrice:  25000,
			Subtotal:   orders[i].TotalAmount,
		})
	}

	return user
}

func TestAnalyticsService_GetDashboardStats(t *testing.T) {
	analyticsService, testDB := setupAnalyticsServiceTest(t)
	seedAnalyticsOrders(t, testDB)

	stats, err := analyticsService.GetDashboardStats()
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats["total_orders"])
	assert.Equal(t, int64(1), stats["pending_orders"])
	assert.Equal(t, int64(1), stats["delivered_orders"])
	assert.Equal(t, int64(1), stats["cancelled_orders"])
	assert.Equal(t, int64(0), stats["confirmed_orders"])
	// Revenue counts delivered orders only
	assert.Equal(t, float64(50000), stats["total_revenue"])
	assert.Equal(t, int64(1), stats["total_users"])
	assert.Equal(t, int64(1), stats["total_menu_items"])
}

func TestAnalyticsService_GetPopularMenuItems(t *testing.T) {
	analyticsService, testDB := setupAnalyticsServiceTest(t)
	seedAnalyticsOrders(t, testDB)

	items, err := analyticsService.GetPopularMenuItems(0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Nasi Goreng Spesial", items[0].Name)
	// Cancelled orders are excluded: 2 + 1 from the surviving orders
	assert.Equal(t, int64(3), items[0].Quantity)
}

func TestAnalyticsService_ExportOrdersXLSX(t *testing.T) {
	analyticsService, testDB := setupAnalyticsServiceTest(t)
	seedAnalyticsOrders(t, testDB)

	data, err := analyticsService.ExportOrdersXLSX("")
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Orders")
	require.NoError(t, err)
	require.Len(t, rows, 4) // header + 3 orders

	assert.Equal(t, "Order Number", rows[0][0])
	assert.Equal(t, "Total (IDR)", rows[0][7])

	numbers := []string{rows[1][0], rows[2][0], rows[3][0]}
	assert.Contains(t, numbers, "ORD-20250830-1001")
	assert.Contains(t, numbers, "ORD-20250830-1003")
}

func TestAnalyticsService_ExportOrdersXLSX_StatusFilter(t *testing.T) {
	analyticsService, testDB := setupAnalyticsServiceTest(t)
	seedAnalyticsOrders(t, testDB)

	data, err := analyticsService.ExportOrdersXLSX("delivered")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Orders")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ORD-20250830-1001", rows[1][0])

	_, err = analyticsService.ExportOrdersXLSX("shipped")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
