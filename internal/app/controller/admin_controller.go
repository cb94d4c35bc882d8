package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ibumus/warung-backend/internal/app/model"
	"github.com/ibumus/warung-backend/internal/app/service"
	apperrors "github.com/ibumus/warung-backend/internal/errors"
	"github.com/ibumus/warung-backend/internal/middleware"
)

type AdminController struct {
	analyticsService service.AnalyticsService
	userService      service.UserService
}

func NewAdminController(analyticsService service.AnalyticsService, userService service.UserService) *AdminController {
	return &AdminController{
		analyticsService: analyticsService,
		userService:      userService,
	}
}

type UpdateRoleRequest struct {
	Role model.UserRole `json:"role" binding:"required"`
}

// GetDashboardStats returns the back office overview numbers
// GET /api/v1/admin/stats
func (ctrl *AdminController) GetDashboardStats(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	stats, err := ctrl.analyticsService.GetDashboardStats()
	if err != nil {
		log.Error("Failed to fetch dashboard stats", err, nil)
		apperrors.InternalError(c, "Gagal memuat statistik")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": stats,
	})
}

// GetRevenueByDay returns the daily revenue series
// GET /api/v1/admin/stats/revenue?days=7
func (ctrl *AdminController) GetRevenueByDay(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	rows, err := ctrl.analyticsService.GetRevenueByDay(days)
	if err != nil {
		log.Error("Failed to fetch revenue by day", err, map[string]interface{}{
			"days": days,
		})
		apperrors.InternalError(c, "Gagal memuat statistik")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"revenue": rows,
	})
}

// GetPopularMenu returns the best-selling menu items
// GET /api/v1/admin/stats/popular?limit=5
func (ctrl *AdminController) GetPopularMenu(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	rows, err := ctrl.analyticsService.GetPopularMenuItems(limit)
	if err != nil {
		log.Error("Failed to fetch popular menu items", err, nil)
		apperrors.InternalError(c, "Gagal memuat statistik")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": rows,
	})
}

// ExportOrders streams an XLSX workbook of orders
// GET /api/v1/admin/orders/export?status=
func (ctrl *AdminController) ExportOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	status := c.Query("status")
	data, err := ctrl.analyticsService.ExportOrdersXLSX(status)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.OrderInvalidStatus, "Status pesanan tidak valid")
			return
		}
		log.Error("Failed to export orders", err, map[string]interface{}{
			"status": status,
		})
		apperrors.InternalError(c, "Gagal mengekspor pesanan")
		return
	}

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// GetUsers lists every user account
// GET /api/v1/admin/users
func (ctrl *AdminController) GetUsers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	users, err := ctrl.userService.GetAllUsers()
	if err != nil {
		log.Error("Failed to fetch users", err, nil)
		apperrors.InternalError(c, "Gagal memuat pengguna")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"count": len(users),
	})
}

// UpdateUserRole promotes or demotes a user
// PATCH /api/v1/admin/users/:id/role
func (ctrl *AdminController) UpdateUserRole(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, "ID pengguna tidak valid")
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Role wajib diisi")
		return
	}

	user, err := ctrl.userService.UpdateRole(id, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			apperrors.NotFound(c, "Pengguna tidak ditemukan")
		case errors.Is(err, service.ErrInvalidRole):
			apperrors.BadRequest(c, "Role tidak valid")
		default:
			log.Error("Failed to update user role", err, map[string]interface{}{
				"user_id": id,
				"role":    req.Role,
			})
			apperrors.InternalError(c, "Gagal memperbarui role pengguna")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": user,
	})
}
