package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ibumus/warung-backend/internal/app/model"
	"github.com/ibumus/warung-backend/internal/app/service"
	apperrors "github.com/ibumus/warung-backend/internal/errors"
	"github.com/ibumus/warung-backend/internal/middleware"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

type CreateOrderRequest struct {
	CustomerName    string `json:"customer_name" binding:"required"`
	CustomerPhone   string `json:"customer_phone" binding:"required"`
	DeliveryAddress string `json:"delivery_address" binding:"required"`
	Notes           string `json:"notes"`
}

type UpdateOrderStatusRequest struct {
	Status             model.OrderStatus `json:"status" binding:"required"`
	CancellationReason string            `json:"cancellation_reason"`
}

// CreateOrder creates a new order from the user's cart
// POST /api/v1/orders
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid order request body", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, "Nama, nomor telepon, dan alamat pengiriman wajib diisi")
		return
	}

	order, err := ctrl.orderService.CreateOrder(userID, service.CreateOrderInput{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.CartEmpty, "Keranjang belanja kosong")
		case errors.Is(err, service.ErrInvalidCustomerInfo):
			apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.ValidationRequired, "Nama, nomor telepon, dan alamat pengiriman wajib diisi")
		case errors.Is(err, service.ErrInvalidPhone):
			apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.ValidationInvalidFormat, "Nomor telepon tidak valid")
		case errors.Is(err, service.ErrInvalidCartLine):
			apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.CartItemInvalid, "Keranjang berisi item yang tidak valid, silakan muat ulang")
		case errors.Is(err, service.ErrInvalidTotal):
			apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.OrderInvalidTotal, "Total pesanan tidak valid")
		case errors.Is(err, service.ErrOrderVerification):
			log.Error("Order verification failed", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.OrderVerificationFailed, "Terjadi kesalahan saat memverifikasi pesanan. Silakan hubungi customer service")
		default:
			log.Error("Failed to create order", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.OrderCreateFailed, "Gagal membuat pesanan, silakan coba lagi")
		}
		return
	}

	log.Info("Order created successfully", map[string]interface{}{
		"user_id":      userID,
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
	})

	c.JSON(http.StatusCreated, gin.H{
		"order": order,
	})
}

// GetOrders returns the authenticated user's orders
// GET /api/v1/orders
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	orders, err := ctrl.orderService.GetUserOrders(userID)
	if err != nil {
		log.Error("Failed to fetch orders", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Gagal memuat pesanan")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrderByID returns one order; admins can read any order
// GET /api/v1/orders/:id
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, "ID pesanan tidak valid")
		return
	}

	order, err := ctrl.orderService.GetOrderByID(userID, id, middleware.IsAdmin(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, "Pesanan tidak ditemukan")
		case errors.Is(err, service.ErrNotOrderOwner):
			apperrors.Forbidden(c, "Anda tidak memiliki akses ke pesanan ini")
		default:
			log.Error("Failed to fetch order", err, map[string]interface{}{
				"user_id":  userID,
				"order_id": id,
			})
			apperrors.InternalError(c, "Gagal memuat pesanan")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// GetAllOrders returns every order, optionally filtered by status
// GET /api/v1/admin/orders?status=pending
func (ctrl *OrderController) GetAllOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	status := c.Query("status")
	orders, err := ctrl.orderService.GetAllOrders(status)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.OrderInvalidStatus, "Status pesanan tidak valid")
			return
		}
		log.Error("Failed to fetch all orders", err, map[string]interface{}{
			"status": status,
		})
		apperrors.InternalError(c, "Gagal memuat pesanan")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// UpdateOrderStatus moves an order through its lifecycle
// PATCH /api/v1/admin/orders/:id/status
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, "ID pesanan tidak valid")
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Status pesanan wajib diisi")
		return
	}

	order, err := ctrl.orderService.UpdateOrderStatus(id, req.Status, req.CancellationReason)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, "Pesanan tidak ditemukan")
		case errors.Is(err, service.ErrInvalidStatus):
			apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.OrderInvalidStatus, "Status pesanan tidak valid")
		case errors.Is(err, service.ErrInvalidTransition):
			apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.OrderInvalidTransition, "Perubahan status pesanan tidak diizinkan")
		case errors.Is(err, service.ErrCancelReasonRequired):
			apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.OrderCancelReasonMissing, "Alasan pembatalan wajib diisi")
		default:
			log.Error("Failed to update order status", err, map[string]interface{}{
				"order_id": id,
				"status":   req.Status,
			})
			apperrors.InternalError(c, "Gagal memperbarui status pesanan")
		}
		return
	}

	log.Info("Order status updated", map[string]interface{}{
		"order_id": id,
		"status":   req.Status,
	})

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// GetUnnotifiedCount returns the number of orders awaiting admin attention
// GET /api/v1/admin/orders/unnotified/count
func (ctrl *OrderController) GetUnnotifiedCount(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	count, err := ctrl.orderService.CountUnnotified()
	if err != nil {
		log.Error("Failed to count unnotified orders", err, nil)
		apperrors.InternalError(c, "Gagal memuat jumlah pesanan")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": count,
	})
}

// GetUnnotifiedOrders returns the most recent orders awaiting admin attention
// GET /api/v1/admin/orders/unnotified
func (ctrl *OrderController) GetUnnotifiedOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orders, err := ctrl.orderService.ListUnnotified()
	if err != nil {
		log.Error("Failed to list unnotified orders", err, nil)
		apperrors.InternalError(c, "Gagal memuat pesanan")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// MarkNotified flags one order as seen by the back office
// POST /api/v1/admin/orders/:id/notified
func (ctrl *OrderController) MarkNotified(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, "ID pesanan tidak valid")
		return
	}

	if err := ctrl.orderService.MarkNotified(id); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, "Pesanan tidak ditemukan")
			return
		}
		log.Error("Failed to mark order as notified", err, map[string]interface{}{
			"order_id": id,
		})
		apperrors.InternalError(c, "Gagal memperbarui pesanan")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Pesanan ditandai sudah dilihat",
	})
}

// MarkAllNotified flags every pending-attention order as seen
// POST /api/v1/admin/orders/notified
func (ctrl *OrderController) MarkAllNotified(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	updated, err := ctrl.orderService.MarkAllNotified()
	if err != nil {
		log.Error("Failed to mark all orders as notified", err, nil)
		apperrors.InternalError(c, "Gagal memperbarui pesanan")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"updated": updated,
	})
}

// parseIDParam parses a positive uint path parameter.
func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
