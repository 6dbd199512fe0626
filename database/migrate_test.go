package database

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct {
	upErr      error
	downErr    error
	version    uint
	dirty      bool
	versionErr error
	closed     bool
}

func (f *fakeMigrator) Up() error   { return f.upErr }
func (f *fakeMigrator) Down() error { return f.downErr }
func (f *fakeMigrator) Version() (uint, bool, error) {
	return f.version, f.dirty, f.versionErr
}
func (f *fakeMigrator) Close() (error, error) {
	f.closed = true
	return nil, nil
}

func TestMigrateURL(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@h:5432/db":   "pgx5://u:p@h:5432/db",
		"postgresql://u:p@h:5432/db": "pgx5://u:p@h:5432/db",
		"pgx5://u:p@h:5432/db":       "pgx5://u:p@h:5432/db",
	}
	for in, want := range tests {
		assert.Equal(t, want, MigrateURL(in), in)
	}
}

func TestMigratorUpTreatsNoChangeAsSuccess(t *testing.T) {
	m := &Migrator{m: &fakeMigrator{upErr: migrate.ErrNoChange}}
	assert.NoError(t, m.Up())

	m = &Migrator{m: &fakeMigrator{upErr: errors.New("boom")}}
	assert.Error(t, m.Up())
}

func TestMigratorDown(t *testing.T) {
	m := &Migrator{m: &fakeMigrator{downErr: migrate.ErrNoChange}}
	assert.NoError(t, m.Down())
}

func TestMigratorVersion(t *testing.T) {
	m := &Migrator{m: &fakeMigrator{versionErr: migrate.ErrNilVersion}}
	v, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Zero(t, v)
	assert.False(t, dirty)

	m = &Migrator{m: &fakeMigrator{version: 1}}
	v, _, err = m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), v)
}

func TestMigratorClose(t *testing.T) {
	f := &fakeMigrator{}
	m := &Migrator{m: f}
	require.NoError(t, m.Close())
	assert.True(t, f.closed)
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	ups, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrationsFS, "migrations/*.down.sql")
	require.NoError(t, err)

	require.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))
}
