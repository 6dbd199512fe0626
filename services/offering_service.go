package services

import (
	"context"
	"errors"
	"strings"

	"guate-servicios/models"
	"guate-servicios/repositories"
)

// OfferingService manages the services a technician publishes.
type OfferingService struct {
	technicians TechnicianStore
	services    ServiceStore
}

func NewOfferingService(technicians TechnicianStore, services ServiceStore) *OfferingService {
	return &OfferingService{technicians: technicians, services: services}
}

// AddService publishes a service on technicianID. Only the user owning the
// technician profile may do so; a missing technician is reported the same
// way as someone else's.
func (s *OfferingService) AddService(ctx context.Context, userID, technicianID int, req models.CreateServiceRequest) (*models.Service, error) {
	ownerID, err := s.technicians.OwnerID(ctx, technicianID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotOwner
		}
		return nil, err
	}
	if ownerID != userID {
		return nil, ErrNotOwner
	}

	service := &models.Service{
		TechnicianID: technicianID,
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		Price:        req.Price,
	}
	if err := s.services.Create(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}
