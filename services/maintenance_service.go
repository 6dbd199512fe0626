package services

import (
	"context"
	"fmt"
	"log/slog"

	"guate-servicios/models"
)

const SeedPassword = "password123"

var seedCategories = []string{"Plomería", "Electricidad", "Carpintería", "Pintura", "Informática"}

type seedTechnician struct {
	name, email, category, description, whatsapp string
	service                                      models.Service
	review                                       models.Review
}

var seedTechnicians = []seedTechnician{
	{
		name: "Ana Técnica", email: "ana.tech@example.com", category: "Plomería",
		description: "Avanzado en instalaciones", whatsapp: "+50255500001",
		service: models.Service{Title: "Reparación de fuga", Description: "Cambio de llave y sellado", Price: floatPtr(30)},
		review:  models.Review{Rating: 5, Comment: stringPtr("Trabajo excelente")},
	},
	{
		name: "Carlos Técnico", email: "carlos.tech@example.com", category: "Electricidad",
		description: "Reparaciones y medidores", whatsapp: "+50255500002",
		service: models.Service{Title: "Instalación de enchufe", Description: "Cambio y prueba", Price: floatPtr(25)},
		review:  models.Review{Rating: 4, Comment: stringPtr("Buen servicio")},
	},
}

// SeedResult reports what Seed did. Skipped is true when technicians were
// already present and nothing was written.
type SeedResult struct {
	Skipped     bool
	Categories  int
	Users       int
	Technicians int
	Services    int
	Reviews     int
}

// BackfillResult lists the tech users that received a default profile and
// the ones that failed.
type BackfillResult struct {
	Created []int
	Failed  map[int]error
}

type CheckReport struct {
	Counts      []models.TableCount
	Technicians []models.Technician
	Users       []models.User
}

// MaintenanceService backs the operational commands.
type MaintenanceService struct {
	users       UserStore
	categories  CategoryStore
	technicians TechnicianStore
	services    ServiceStore
	reviews     ReviewStore
	store       MaintenanceStore
	hasher      PasswordHasher
	logger      *slog.Logger
}

func NewMaintenanceService(
	users UserStore,
	categories CategoryStore,
	technicians TechnicianStore,
	services ServiceStore,
	reviews ReviewStore,
	store MaintenanceStore,
	hasher PasswordHasher,
	logger *slog.Logger,
) *MaintenanceService {
	return &MaintenanceService{
		users:       users,
		categories:  categories,
		technicians: technicians,
		services:    services,
		reviews:     reviews,
		store:       store,
		hasher:      hasher,
		logger:      logger,
	}
}

func (s *MaintenanceService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// Seed loads demo data. It is a no-op once any technician exists.
func (s *MaintenanceService) Seed(ctx context.Context) (*SeedResult, error) {
	counts, err := s.store.Counts(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range counts {
		if c.Table == "technicians" && c.Count > 0 {
			return &SeedResult{Skipped: true}, nil
		}
	}

	result := &SeedResult{}
	categoryIDs := make(map[string]int, len(seedCategories))
	for _, name := range seedCategories {
		id, err := s.categories.Upsert(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("seed category %q: %w", name, err)
		}
		categoryIDs[name] = id
		result.Categories++
	}

	hash, err := s.hasher.Hash(SeedPassword)
	if err != nil {
		return nil, err
	}

	demo := &models.User{Name: "Demo User", Email: "demo@example.com", PasswordHash: hash, Role: models.RoleUser}
	if err := s.users.Create(ctx, demo); err != nil {
		return nil, fmt.Errorf("seed user %s: %w", demo.Email, err)
	}
	result.Users++

	for _, st := range seedTechnicians {
		user := &models.User{Name: st.name, Email: st.email, PasswordHash: hash, Role: models.RoleTechnician}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("seed user %s: %w", st.email, err)
		}
		result.Users++

		tech := &models.Technician{
			UserID:      user.ID,
			CategoryID:  categoryIDs[st.category],
			Description: st.description,
			WhatsApp:    st.whatsapp,
		}
		if err := s.technicians.Create(ctx, tech); err != nil {
			return nil, fmt.Errorf("seed technician %s: %w", st.email, err)
		}
		result.Technicians++

		service := st.service
		service.TechnicianID = tech.ID
		if err := s.services.Create(ctx, &service); err != nil {
			return nil, fmt.Errorf("seed service %q: %w", service.Title, err)
		}
		result.Services++

		review := st.review
		review.TechnicianID = tech.ID
		review.UserID = demo.ID
		if err := s.reviews.Create(ctx, &review); err != nil {
			return nil, fmt.Errorf("seed review: %w", err)
		}
		result.Reviews++
	}

	s.logger.InfoContext(ctx, "seed completed",
		"users", result.Users, "technicians", result.Technicians, "services", result.Services, "reviews", result.Reviews)
	return result, nil
}

// Clean truncates every user-generated table, all or nothing.
func (s *MaintenanceService) Clean(ctx context.Context) error {
	return s.store.Truncate(ctx)
}

func (s *MaintenanceService) Check(ctx context.Context, sample int) (*CheckReport, error) {
	counts, err := s.store.Counts(ctx)
	if err != nil {
		return nil, err
	}
	techs, err := s.store.SampleTechnicians(ctx, sample)
	if err != nil {
		return nil, err
	}
	users, err := s.store.SampleUsers(ctx, sample)
	if err != nil {
		return nil, err
	}
	return &CheckReport{Counts: counts, Technicians: techs, Users: users}, nil
}

// Backfill gives every tech user without a technician row the default
// profile. Per-user failures are collected and do not stop the run.
func (s *MaintenanceService) Backfill(ctx context.Context) (*BackfillResult, error) {
	ids, err := s.users.ListTechWithoutProfile(ctx)
	if err != nil {
		return nil, err
	}

	result := &BackfillResult{Created: []int{}, Failed: map[int]error{}}
	for _, id := range ids {
		created, err := s.technicians.EnsureProfile(ctx, id)
		if err != nil {
			s.logger.ErrorContext(ctx, "backfill failed", "user_id", id, "error", err)
			result.Failed[id] = err
			continue
		}
		if created {
			result.Created = append(result.Created, id)
		}
	}
	return result, nil
}

func floatPtr(f float64) *float64 { return &f }

func stringPtr(s string) *string { return &s }
