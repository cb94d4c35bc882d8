package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/ibumus/warung-backend/internal/app/model"
	"github.com/ibumus/warung-backend/internal/app/repository"
	"github.com/ibumus/warung-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTelegramSender struct {
	messages []string
	err      error
}

func (f *fakeTelegramSender) SendMessage(_ context.Context, text string) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, text)
	return nil
}

func setupDigestTest(t *testing.T) (repository.OrderRepository, *fakeTelegramSender, *OrderDigestScheduler) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	user := &model.User{Email: "pelanggan@example.com", PasswordHash: "hash", Role: model.RoleCustomer}
	testDB.Create(user)

	orders := []model.Order{
		{UserID: user.ID, OrderNumber: "ORD-20250830-1001", CustomerName: "Budi", CustomerPhone: "081234567890", DeliveryAddress: "Jl. Merdeka 1", TotalAmount: 50000, Status: model.OrderStatusPending},
		{UserID: user.ID, OrderNumber: "ORD-20250830-1002", CustomerName: "Siti", CustomerPhone: "081234567891", DeliveryAddress: "Jl. Merdeka 2", TotalAmount: 25000, Status: model.OrderStatusPending},
	}
	for i := range orders {
		require.NoError(t, testDB.Create(&orders[i]).Error)
	}

	orderRepo := repository.NewOrderRepository(testDB)
	telegram := &fakeTelegramSender{}
	digest := NewOrderDigestScheduler("*/5 * * * *", orderRepo, telegram)

	return orderRepo, telegram, digest
}

func TestOrderDigestScheduler_RunOnce(t *testing.T) {
	orderRepo, telegram, digest := setupDigestTest(t)

	digest.RunOnce()

	require.Len(t, telegram.messages, 1)
	assert.Contains(t, telegram.messages[0], "2 pesanan menunggu perhatian")
	assert.Contains(t, telegram.messages[0], "ORD-20250830-1001")
	assert.Contains(t, telegram.messages[0], "Siti")
	assert.Contains(t, telegram.messages[0], "Rp 25.000")

	count, err := orderRepo.CountUnnotified()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestOrderDigestScheduler_RunOnce_NothingPending(t *testing.T) {
	orderRepo, telegram, digest := setupDigestTest(t)

	updated, err := orderRepo.MarkAllNotified()
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	digest.RunOnce()

	assert.Empty(t, telegram.messages)
}

func TestOrderDigestScheduler_RunOnce_DeliveryFailureKeepsOrders(t *testing.T) {
	orderRepo, telegram, digest := setupDigestTest(t)

	telegram.err = errors.New("telegram down")
	digest.RunOnce()

	// Nothing delivered, nothing marked: the next sweep retries
	count, err := orderRepo.CountUnnotified()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	telegram.err = nil
	digest.RunOnce()

	require.Len(t, telegram.messages, 1)
	count, _ = orderRepo.CountUnnotified()
	assert.Equal(t, int64(0), count)
}
