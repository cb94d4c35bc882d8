package service

import (
	"errors"
	"strings"

	"github.com/ibumus/warung-backend/internal/app/model"
	"github.com/ibumus/warung-backend/internal/app/repository"
	"github.com/ibumus/warung-backend/pkg/logger"
)

var (
	ErrBannerNotFound = errors.New("banner not found")
	ErrInvalidBanner  = errors.New("banner requires a title and an image")
)

type BannerService interface {
	GetActiveBanners() ([]model.Banner, error)
	GetAllBanners() ([]model.Banner, error)
	CreateBanner(banner *model.Banner) error
	UpdateBanner(banner *model.Banner) error
	DeleteBanner(id uint) error
}

type bannerService struct {
	bannerRepo repository.BannerRepository
}

func NewBannerService(bannerRepo repository.BannerRepository) BannerService {
	return &bannerService{bannerRepo: bannerRepo}
}

func (s *bannerService) GetActiveBanners() ([]model.Banner, error) {
	return s.bannerRepo.FindActive()
}

func (s *bannerService) GetAllBanners() ([]model.Banner, error) {
	return s.bannerRepo.FindAll()
}

func (s *bannerService) CreateBanner(banner *model.Banner) error {
	banner.Title = strings.TrimSpace(banner.Title)
	if banner.Title == "" || banner.ImageURL == "" {
		return ErrInvalidBanner
	}

	if err := s.bannerRepo.Create(banner); err != nil {
		return err
	}

	logger.Info("Banner created", map[string]interface{}{
		"banner_id": banner.ID,
		"title":     banner.Title,
	})
	return nil
}

func (s *bannerService) UpdateBanner(banner *model.Banner) error {
	if _, err := s.bannerRepo.FindByID(banner.ID); err != nil {
		return ErrBannerNotFound
	}

	banner.Title = strings.TrimSpace(banner.Title)
	if banner.Title == "" || banner.ImageURL == "" {
		return ErrInvalidBanner
	}
	return s.bannerRepo.Update(banner)
}

func (s *bannerService) DeleteBanner(id uint) error {
	if _, err := s.bannerRepo.FindByID(id); err != nil {
		return ErrBannerNotFound
	}
	return s.bannerRepo.Delete(id)
}
