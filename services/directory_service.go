package services

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"guate-servicios/models"
	"guate-servicios/repositories"
)

// DirectoryService serves the public technician directory and the
// technician's own profile.
type DirectoryService struct {
	technicians TechnicianStore
	categories  CategoryStore
	services    ServiceStore
	reviews     ReviewStore
	photos      PhotoStore
	logger      *slog.Logger
}

func NewDirectoryService(technicians TechnicianStore, categories CategoryStore, services ServiceStore, reviews ReviewStore, photos PhotoStore, logger *slog.Logger) *DirectoryService {
	return &DirectoryService{
		technicians: technicians,
		categories:  categories,
		services:    services,
		reviews:     reviews,
		photos:      photos,
		logger:      logger,
	}
}

func (s *DirectoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

func (s *DirectoryService) ListTechnicians(ctx context.Context, category, query string) ([]models.TechnicianSummary, error) {
	return s.technicians.List(ctx, repositories.TechnicianFilter{Category: category, Query: query})
}

func (s *DirectoryService) GetTechnician(ctx context.Context, id int) (*models.TechnicianDetail, error) {
	summary, err := s.technicians.FindSummaryByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTechnicianNotFound
		}
		return nil, err
	}
	return s.detail(ctx, summary)
}

// GetMyProfile returns the caller's technician profile, provisioning the
// default one first when it is missing.
func (s *DirectoryService) GetMyProfile(ctx context.Context, userID int) (*models.TechnicianDetail, error) {
	summary, err := s.technicians.FindSummaryByUserID(ctx, userID)
	if err == nil {
		return s.detail(ctx, summary)
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	if _, err := s.technicians.EnsureProfile(ctx, userID); err != nil {
		s.logger.WarnContext(ctx, "could not create default technician profile", "user_id", userID, "error", err)
		return nil, ErrProfileNotFound
	}

	summary, err = s.technicians.FindSummaryByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return s.detail(ctx, summary)
}

// UpdateMyProfile changes the caller's category, description or WhatsApp
// number and returns the refreshed profile.
func (s *DirectoryService) UpdateMyProfile(ctx context.Context, userID int, req models.UpdateTechnicianRequest) (*models.TechnicianDetail, error) {
	if req.Empty() {
		return nil, ErrEmptyUpdate
	}
	if req.CategoryID != nil {
		ok, err := s.categories.Exists(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrCategoryNotFound
		}
	}

	if _, err := s.technicians.EnsureProfile(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.technicians.UpdateProfile(ctx, userID, req); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return s.GetMyProfile(ctx, userID)
}

// UploadPhoto stores the image and points the caller's profile at it.
func (s *DirectoryService) UploadPhoto(ctx context.Context, userID int, r io.Reader, ext string) (string, error) {
	if _, err := s.technicians.EnsureProfile(ctx, userID); err != nil {
		return "", err
	}

	url, err := s.photos.Save(ctx, r, ext)
	if err != nil {
		return "", err
	}

	if err := s.technicians.SetPhotoURL(ctx, userID, url); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrProfileNotFound
		}
		return "", err
	}
	return url, nil
}

func (s *DirectoryService) detail(ctx context.Context, summary *models.TechnicianSummary) (*models.TechnicianDetail, error) {
	services, err := s.services.ListByTechnician(ctx, summary.ID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ListByTechnician(ctx, summary.ID)
	if err != nil {
		return nil, err
	}
	return &models.TechnicianDetail{TechnicianSummary: *summary, Services: services, Reviews: reviews}, nil
}
