package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"guate-servicios/models"
	"guate-servicios/repositories"
)

type AuthService struct {
	users       UserStore
	technicians TechnicianStore
	hasher      PasswordHasher
	tokens      TokenIssuer
	logger      *slog.Logger
}

func NewAuthService(users UserStore, technicians TechnicianStore, hasher PasswordHasher, tokens TokenIssuer, logger *slog.Logger) *AuthService {
	return &AuthService{users: users, technicians: technicians, hasher: hasher, tokens: tokens, logger: logger}
}

// Register creates the account and, for technicians, their default
// profile. A failed profile insert is logged and never fails the
// registration; GetMyProfile heals it later.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.PublicUser, error) {
	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	email := strings.TrimSpace(req.Email)

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if role == models.RoleTechnician {
		if _, err := s.technicians.EnsureProfile(ctx, user.ID); err != nil {
			s.logger.WarnContext(ctx, "could not create default technician profile",
				"user_id", user.ID, "error", err)
		}
	}

	public := user.Public()
	return &public, nil
}

// Login answers ErrInvalidCredentials for both an unknown email and a wrong
// password.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	valid, err := s.hasher.Verify(user.PasswordHash, req.Password)
	if err != nil {
		s.logger.WarnContext(ctx, "stored password hash could not be verified", "user_id", user.ID, "error", err)
		return nil, ErrInvalidCredentials
	}
	if !valid {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Name, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{Token: token, User: user.Session()}, nil
}
