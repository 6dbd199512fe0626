package services

import (
	"context"
	"errors"
	"testing"

	"guate-servicios/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type maintenanceFixture struct {
	svc      *MaintenanceService
	users    *fakeUsers
	cats     *fakeCategories
	techs    *fakeTechnicians
	services *fakeServices
	reviews  *fakeReviews
	store    *fakeMaintenance
}

func newMaintenance() maintenanceFixture {
	f := maintenanceFixture{
		users:    newFakeUsers(),
		cats:     newFakeCategories(),
		techs:    newFakeTechnicians(),
		services: &fakeServices{},
		reviews:  &fakeReviews{},
		store:    &fakeMaintenance{counts: []models.TableCount{{Table: "technicians", Count: 0}}},
	}
	f.svc = NewMaintenanceService(f.users, f.cats, f.techs, f.services, f.reviews, f.store, plainHasher{}, discardLogger())
	return f
}

func TestMaintenanceSeed(t *testing.T) {
	f := newMaintenance()

	res, err := f.svc.Seed(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Skipped)
	assert.Equal(t, 5, res.Categories)
	assert.Equal(t, 3, res.Users)
	assert.Equal(t, 2, res.Technicians)
	assert.Equal(t, 2, res.Services)
	assert.Equal(t, 2, res.Reviews)

	demo := f.users.byEmail["demo@example.com"]
	require.NotNil(t, demo)
	assert.Equal(t, "hashed:"+SeedPassword, demo.PasswordHash)
	for _, r := range f.reviews.created {
		assert.Equal(t, demo.ID, r.UserID)
	}
}

func TestMaintenanceSeedSkipsPopulatedDatabase(t *testing.T) {
	f := newMaintenance()
	f.store.counts = []models.TableCount{{Table: "users", Count: 4}, {Table: "technicians", Count: 2}}

	res, err := f.svc.Seed(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.Empty(t, f.users.byEmail)
}

func TestMaintenanceBackfill(t *testing.T) {
	f := newMaintenance()
	f.users.techMissing = []int{3, 5}
	f.techs.add(5, 1)

	res, err := f.svc.Backfill(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{3}, res.Created)
	assert.Empty(t, res.Failed)
}

func TestMaintenanceBackfillCollectsFailures(t *testing.T) {
	f := newMaintenance()
	f.users.techMissing = []int{3, 4}
	f.techs.ensureErr = errors.New("fk violation")

	res, err := f.svc.Backfill(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.Created)
	assert.Len(t, res.Failed, 2)
	assert.Equal(t, []int{3, 4}, f.techs.ensured)
}

func TestMaintenanceCleanAndCheck(t *testing.T) {
	f := newMaintenance()

	require.NoError(t, f.svc.Clean(context.Background()))
	assert.True(t, f.store.truncated)

	report, err := f.svc.Check(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, report.Counts, 1)
	assert.Len(t, report.Technicians, 1)
	assert.Len(t, report.Users, 1)

	f.store.err = errors.New("rollback")
	assert.Error(t, f.svc.Clean(context.Background()))
}
