package services

import (
	"context"
	"errors"
	"testing"

	"guate-servicios/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth() (*AuthService, *fakeUsers, *fakeTechnicians, *fakeTokens) {
	users := newFakeUsers()
	techs := newFakeTechnicians()
	tokens := &fakeTokens{}
	return NewAuthService(users, techs, plainHasher{}, tokens, discardLogger()), users, techs, tokens
}

func TestAuthServiceRegister(t *testing.T) {
	tests := []struct {
		name        string
		role        string
		wantRole    models.Role
		wantProfile bool
	}{
		{name: "plain user", role: "user", wantRole: models.RoleUser},
		{name: "upper case user", role: "USER", wantRole: models.RoleUser},
		{name: "tech", role: "tech", wantRole: models.RoleTechnician, wantProfile: true},
		{name: "technician alias", role: "TECHNICIAN", wantRole: models.RoleTechnician, wantProfile: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users, techs, _ := newAuth()

			got, err := svc.Register(context.Background(), models.RegisterRequest{
				Name: " Ana ", Email: "ana@example.com", Password: "secreto", Role: tt.role,
			})
			require.NoError(t, err)
			assert.Equal(t, "Ana", got.Name)
			assert.Equal(t, tt.wantRole, got.Role)

			stored := users.byEmail["ana@example.com"]
			require.NotNil(t, stored)
			assert.NotEqual(t, "secreto", stored.PasswordHash)

			_, hasProfile := techs.byUser[got.ID]
			assert.Equal(t, tt.wantProfile, hasProfile)
		})
	}
}

func TestAuthServiceRegisterRejections(t *testing.T) {
	t.Run("invalid role", func(t *testing.T) {
		svc, _, _, _ := newAuth()
		_, err := svc.Register(context.Background(), models.RegisterRequest{
			Name: "A", Email: "a@example.com", Password: "secreto", Role: "admin",
		})
		assert.ErrorIs(t, err, models.ErrInvalidRole)
	})

	t.Run("email taken", func(t *testing.T) {
		svc, _, _, _ := newAuth()
		req := models.RegisterRequest{Name: "A", Email: "a@example.com", Password: "secreto", Role: "user"}
		_, err := svc.Register(context.Background(), req)
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("lookup failure is not a conflict", func(t *testing.T) {
		svc, users, _, _ := newAuth()
		users.findErr = errors.New("connection refused")
		_, err := svc.Register(context.Background(), models.RegisterRequest{
			Name: "A", Email: "a@example.com", Password: "secreto", Role: "user",
		})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrEmailTaken)
	})
}

func TestAuthServiceRegisterSurvivesProfileFailure(t *testing.T) {
	svc, users, techs, _ := newAuth()
	techs.ensureErr = errors.New("insert failed")

	got, err := svc.Register(context.Background(), models.RegisterRequest{
		Name: "Carlos", Email: "carlos@example.com", Password: "secreto", Role: "tech",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleTechnician, got.Role)
	assert.Contains(t, users.byEmail, "carlos@example.com")
	assert.Equal(t, []int{got.ID}, techs.ensured)
}

func TestAuthServiceLogin(t *testing.T) {
	svc, _, _, tokens := newAuth()
	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Name: "Ana", Email: "ana@example.com", Password: "secreto", Role: "technician",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "ana@example.com", Password: "secreto"})
	require.NoError(t, err)
	assert.Equal(t, "token-Ana-tech", resp.Token)
	assert.Equal(t, "TECHNICIAN", resp.User.Role)
	assert.Equal(t, "ana@example.com", resp.User.Email)
	assert.Len(t, tokens.issued, 1)

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "ana@example.com", Password: "otra"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "nadie@example.com", Password: "secreto"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
