package scheduler

import (
	"context"
	"fmt"
	"strings"

	"github.com/ibumus/warung-backend/internal/app/model"
	"github.com/ibumus/warung-backend/internal/app/repository"
	"github.com/ibumus/warung-backend/internal/app/service"
	"github.com/ibumus/warung-backend/pkg/logger"
	"github.com/ibumus/warung-backend/pkg/util"
	"github.com/robfig/cron/v3"
)

// OrderDigestScheduler periodically sweeps orders the back office has not
// been told about and sends one Telegram digest. Orders are only marked
// notified after the digest was actually delivered, so a Telegram outage
// means the same orders show up in the next sweep.
type OrderDigestScheduler struct {
	cron      *cron.Cron
	spec      string
	orderRepo repository.OrderRepository
	telegram  service.TelegramSender
}

func NewOrderDigestScheduler(
	spec string,
	orderRepo repository.OrderRepository,
	telegram service.TelegramSender,
) *OrderDigestScheduler {
	return &OrderDigestScheduler{
		cron:      cron.New(),
		spec:      spec,
		orderRepo: orderRepo,
		telegram:  telegram,
	}
}

// digestBatchSize caps how many orders one digest lists.
const digestBatchSize = 10

func (s *OrderDigestScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, s.RunOnce)
	if err != nil {
		logger.Error("Failed to add cron job for order digest", err, map[string]interface{}{
			"spec": s.spec,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Order digest scheduler started", map[string]interface{}{
		"spec": s.spec,
	})
	return nil
}

func (s *OrderDigestScheduler) Stop() {
	logger.Info("Stopping order digest scheduler", nil)
	s.cron.Stop()
}

// RunOnce executes a single digest sweep. Exported for tests and for a
// manual trigger at startup.
func (s *OrderDigestScheduler) RunOnce() {
	orders, err := s.orderRepo.FindUnnotified(digestBatchSize)
	if err != nil {
		logger.Error("Order digest sweep failed to list orders", err, nil)
		return
	}
	if len(orders) == 0 {
		return
	}

	logger.Info("Sending order digest", map[string]interface{}{
		"order_count": len(orders),
	})

	if err := s.telegram.SendMessage(context.Background(), buildDigest(orders)); err != nil {
		logger.Error("Failed to send order digest, will retry next sweep", err, map[string]interface{}{
			"order_count": len(orders),
		})
		return
	}

	for _, order := range orders {
		if err := s.orderRepo.MarkNotified(order.ID); err != nil {
			logger.Error("Failed to mark digested order as notified", err, map[string]interface{}{
				"order_id": order.ID,
			})
		}
	}
}

func buildDigest(orders []model.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 *%d pesanan menunggu perhatian:*\n", len(orders))
	for _, order := range orders {
		fmt.Fprintf(&b, "\n%s | %s | %s (%s)",
			order.OrderNumber,
			order.CustomerName,
			util.FormatIDR(order.TotalAmount),
			order.Status,
		)
	}
	return b.String()
}
