package repositories

import (
	"context"

	"guate-servicios/models"
)

type ServiceRepository struct {
	db DB
}

func NewServiceRepository(db DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) Create(ctx context.Context, s *models.Service) error {
	query := `
		INSERT INTO services (technician_id, title, description, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, technician_id, title, description, price::float8
	`
	err := r.db.QueryRow(ctx, query, s.TechnicianID, s.Title, s.Description, s.Price).
		Scan(&s.ID, &s.TechnicianID, &s.Title, &s.Description, &s.Price)
	return wrap("create service", err)
}

func (r *ServiceRepository) ListByTechnician(ctx context.Context, technicianID int) ([]models.Service, error) {
	query := `
		SELECT id, technician_id, title, description, price::float8
		FROM services WHERE technician_id = $1
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, technicianID)
	if err != nil {
		return nil, wrap("list services", err)
	}
	defer rows.Close()

	services := []models.Service{}
	for rows.Next() {
		var s models.Service
		if err := rows.Scan(&s.ID, &s.TechnicianID, &s.Title, &s.Description, &s.Price); err != nil {
			return nil, wrap("scan service", err)
		}
		services = append(services, s)
	}
	return services, wrap("list services", rows.Err())
}
