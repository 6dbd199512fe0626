package commands

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"guate-servicios/models"
	"guate-servicios/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMaintenance struct {
	seed     *services.SeedResult
	seedErr  error
	cleaned  bool
	sample   int
	backfill *services.BackfillResult
}

func (f *fakeMaintenance) Seed(context.Context) (*services.SeedResult, error) {
	return f.seed, f.seedErr
}

func (f *fakeMaintenance) Clean(context.Context) error {
	f.cleaned = true
	return nil
}

func (f *fakeMaintenance) Check(_ context.Context, sample int) (*services.CheckReport, error) {
	f.sample = sample
	return &services.CheckReport{
		Counts:      []models.TableCount{{Table: "users", Count: 3}},
		Technicians: []models.Technician{{ID: 1, UserID: 2, CategoryID: 1}},
		Users:       []models.User{{ID: 2, Name: "Ana", Email: "ana@example.com", Role: models.RoleTechnician}},
	}, nil
}

func (f *fakeMaintenance) Backfill(context.Context) (*services.BackfillResult, error) {
	return f.backfill, nil
}

type fakeMigrations struct {
	up, down, closed bool
	version          uint
}

func (f *fakeMigrations) Up() error   { f.up = true; return nil }
func (f *fakeMigrations) Down() error { f.down = true; return nil }
func (f *fakeMigrations) Version() (uint, bool, error) {
	return f.version, false, nil
}
func (f *fakeMigrations) Close() error { f.closed = true; return nil }

func run(t *testing.T, m *fakeMaintenance, mig *fakeMigrations, args ...string) (string, string, error) {
	t.Helper()
	closed := false
	t.Cleanup(func() {
		if m != nil && len(args) > 0 && args[0] != "clean" {
			assert.True(t, closed, "maintenance resources not released")
		}
	})

	cmd := newRootCmd(runtime{
		openMaintenance: func(context.Context) (Maintenance, func(), error) {
			if m == nil {
				return nil, nil, errors.New("no database")
			}
			return m, func() { closed = true }, nil
		},
		openMigrations: func() (Migrations, error) {
			return mig, nil
		},
	})
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestSeedCmd(t *testing.T) {
	out, _, err := run(t, &fakeMaintenance{seed: &services.SeedResult{Categories: 5, Users: 3, Technicians: 2, Services: 2, Reviews: 2}}, nil, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 5 categories, 3 users, 2 technicians, 2 services, 2 reviews")

	out, _, err = run(t, &fakeMaintenance{seed: &services.SeedResult{Skipped: true}}, nil, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing seeded")

	_, _, err = run(t, &fakeMaintenance{seedErr: errors.New("boom")}, nil, "seed")
	require.Error(t, err)
}

func TestCleanCmdRequiresConfirmation(t *testing.T) {
	m := &fakeMaintenance{}
	_, _, err := run(t, m, nil, "clean")
	require.Error(t, err)
	assert.False(t, m.cleaned)

	out, _, err := run(t, m, nil, "clean", "--yes")
	require.NoError(t, err)
	assert.True(t, m.cleaned)
	assert.Contains(t, out, "Database cleaned")
}

func TestCheckCmd(t *testing.T) {
	m := &fakeMaintenance{}
	out, _, err := run(t, m, nil, "check", "--sample", "2")
	require.NoError(t, err)
	assert.Equal(t, 2, m.sample)
	assert.Contains(t, out, "users")
	assert.Contains(t, out, "ana@example.com")
}

func TestBackfillCmd(t *testing.T) {
	out, _, err := run(t, &fakeMaintenance{backfill: &services.BackfillResult{Created: []int{4, 5}}}, nil, "backfill")
	require.NoError(t, err)
	assert.Contains(t, out, "Created 2 technician profiles")

	_, errOut, err := run(t, &fakeMaintenance{backfill: &services.BackfillResult{
		Created: []int{4},
		Failed:  map[int]error{9: errors.New("fk violation")},
	}}, nil, "backfill")
	require.Error(t, err)
	assert.Contains(t, errOut, "user 9: fk violation")
}

func TestMaintenanceOpenFailure(t *testing.T) {
	_, _, err := run(t, nil, nil, "seed")
	require.EqualError(t, err, "no database")
}

func TestMigrateCmd(t *testing.T) {
	mig := &fakeMigrations{}
	out, _, err := run(t, nil, mig, "migrate", "up")
	require.NoError(t, err)
	assert.True(t, mig.up)
	assert.True(t, mig.closed)
	assert.Contains(t, out, "Migrations applied")

	mig = &fakeMigrations{}
	_, _, err = run(t, nil, mig, "migrate", "down")
	require.NoError(t, err)
	assert.True(t, mig.down)

	out, _, err = run(t, nil, &fakeMigrations{}, "migrate", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "No migrations applied")

	out, _, err = run(t, nil, &fakeMigrations{version: 1}, "migrate", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema version 1 (dirty: false)")
}
