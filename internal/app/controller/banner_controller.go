package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ibumus/warung-backend/internal/app/model"
	"github.com/ibumus/warung-backend/internal/app/service"
	apperrors "github.com/ibumus/warung-backend/internal/errors"
	"github.com/ibumus/warung-backend/internal/middleware"
)

type BannerController struct {
	bannerService service.BannerService
}

func NewBannerController(bannerService service.BannerService) *BannerController {
	return &BannerController{
		bannerService: bannerService,
	}
}

type BannerRequest struct {
	Title        string `json:"title" binding:"required"`
	ImageURL     string `json:"image_url" binding:"required"`
	IsActive     *bool  `json:"is_active"`
	DisplayOrder int    `json:"display_order"`
}

// GetBanners lists active banners for the storefront
// GET /api/v1/banners
func (ctrl *BannerController) GetBanners(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	banners, err := ctrl.bannerService.GetActiveBanners()
	if err != nil {
		log.Error("Failed to fetch banners", err, nil)
		apperrors.InternalError(c, "Gagal memuat banner")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"banners": banners,
	})
}

// GetAllBanners lists every banner for the back office
// GET /api/v1/admin/banners
func (ctrl *BannerController) GetAllBanners(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	banners, err := ctrl.bannerService.GetAllBanners()
	if err != nil {
		log.Error("Failed to fetch all banners", err, nil)
		apperrors.InternalError(c, "Gagal memuat banner")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"banners": banners,
	})
}

// CreateBanner adds a banner
// POST /api/v1/admin/banners
func (ctrl *BannerController) CreateBanner(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Judul dan gambar banner wajib diisi")
		return
	}

	banner := bannerFromRequest(&req)
	if err := ctrl.bannerService.CreateBanner(banner); err != nil {
		if errors.Is(err, service.ErrInvalidBanner) {
			apperrors.BadRequest(c, "Judul dan gambar banner wajib diisi")
			return
		}
		log.Error("Failed to create banner", err, map[string]interface{}{
			"title": req.Title,
		})
		apperrors.RespondWithParsedError(c, err, "banner")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"banner": banner,
	})
}

// UpdateBanner replaces a banner's fields
// PUT /api/v1/admin/banners/:id
func (ctrl *BannerController) UpdateBanner(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, "ID banner tidak valid")
		return
	}

	var req BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "Judul dan gambar banner wajib diisi")
		return
	}

	banner := bannerFromRequest(&req)
	banner.ID = id
	if err := ctrl.bannerService.UpdateBanner(banner); err != nil {
		switch {
		case errors.Is(err, service.ErrBannerNotFound):
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.BannerNotFound, "Banner tidak ditemukan")
		case errors.Is(err, service.ErrInvalidBanner):
			apperrors.BadRequest(c, "Judul dan gambar banner wajib diisi")
		default:
			log.Error("Failed to update banner", err, map[string]interface{}{
				"banner_id": id,
			})
			apperrors.RespondWithParsedError(c, err, "banner")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"banner": banner,
	})
}

// DeleteBanner removes a banner
// DELETE /api/v1/admin/banners/:id
func (ctrl *BannerController) DeleteBanner(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, "ID banner tidak valid")
		return
	}

	if err := ctrl.bannerService.DeleteBanner(id); err != nil {
		if errors.Is(err, service.ErrBannerNotFound) {
			apperrors.RespondWithError(c, http.StatusNotFound, apperrors.BannerNotFound, "Banner tidak ditemukan")
			return
		}
		log.Error("Failed to delete banner", err, map[string]interface{}{
			"banner_id": id,
		})
		apperrors.RespondWithParsedError(c, err, "banner")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Banner dihapus",
	})
}

func bannerFromRequest(req *BannerRequest) *model.Banner {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return &model.Banner{
		Title:        req.Title,
		ImageURL:     req.ImageURL,
		IsActive:     active,
		DisplayOrder: req.DisplayOrder,
	}
}
