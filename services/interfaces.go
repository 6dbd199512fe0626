package services

import (
	"context"
	"io"

	"guate-servicios/models"
	"guate-servicios/repositories"
	"guate-servicios/utils"
)

// Repository ports. The pgx repositories satisfy them; tests use fakes.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ListTechWithoutProfile(ctx context.Context) ([]int, error)
}

type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	Exists(ctx context.Context, id int) (bool, error)
	Upsert(ctx context.Context, name string) (int, error)
}

type TechnicianStore interface {
	List(ctx context.Context, filter repositories.TechnicianFilter) ([]models.TechnicianSummary, error)
	FindSummaryByID(ctx context.Context, id int) (*models.TechnicianSummary, error)
	FindSummaryByUserID(ctx context.Context, userID int) (*models.TechnicianSummary, error)
	OwnerID(ctx context.Context, id int) (int, error)
	Exists(ctx context.Context, id int) (bool, error)
	EnsureProfile(ctx context.Context, userID int) (bool, error)
	UpdateProfile(ctx context.Context, userID int, req models.UpdateTechnicianRequest) error
	SetPhotoURL(ctx context.Context, userID int, photoURL string) error
	Contact(ctx context.Context, id int) (*models.TechnicianContact, error)
	Create(ctx context.Context, t *models.Technician) error
}

type ServiceStore interface {
	Create(ctx context.Context, s *models.Service) error
	ListByTechnician(ctx context.Context, technicianID int) ([]models.Service, error)
}

type ReviewStore interface {
	Create(ctx context.Context, review *models.Review) error
	ListByTechnician(ctx context.Context, technicianID int) ([]models.ReviewDetail, error)
}

type MaintenanceStore interface {
	Truncate(ctx context.Context) error
	Counts(ctx context.Context) ([]models.TableCount, error)
	SampleTechnicians(ctx context.Context, limit int) ([]models.Technician, error)
	SampleUsers(ctx context.Context, limit int) ([]models.User, error)
	Ping(ctx context.Context) error
}

// Infrastructure ports.

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(encodedHash, password string) (bool, error)
}

type TokenIssuer interface {
	Issue(userID int, name, role string) (string, error)
}

type PhotoStore interface {
	Save(ctx context.Context, r io.Reader, ext string) (string, error)
}

var (
	_ PasswordHasher = (*utils.PasswordHasher)(nil)
	_ TokenIssuer    = (*utils.TokenManager)(nil)

	_ UserStore        = (*repositories.UserRepository)(nil)
	_ CategoryStore    = (*repositories.CategoryRepository)(nil)
	_ TechnicianStore  = (*repositories.TechnicianRepository)(nil)
	_ ServiceStore     = (*repositories.ServiceRepository)(nil)
	_ ReviewStore      = (*repositories.ReviewRepository)(nil)
	_ MaintenanceStore = (*repositories.MaintenanceRepository)(nil)
)
