package repositories

import (
	"context"
	"errors"
	"testing"

	"guate-servicios/models"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaintenanceRepository_Truncate(t *testing.T) {
	t.Run("commits after every table", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		for _, table := range truncateOrder {
			mock.ExpectExec(`TRUNCATE TABLE ` + table + ` RESTART IDENTITY CASCADE`).
				WithArgs().
				WillReturnResult(pgxmock.NewResult("TRUNCATE", 0))
		}
		mock.ExpectCommit()

		require.NoError(t, NewMaintenanceRepository(mock).Truncate(context.Background()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`TRUNCATE TABLE reviews`).
			WithArgs().
			WillReturnResult(pgxmock.NewResult("TRUNCATE", 0))
		mock.ExpectExec(`TRUNCATE TABLE services`).
			WithArgs().
			WillReturnError(errors.New("lock timeout"))
		mock.ExpectRollback()

		err = NewMaintenanceRepository(mock).Truncate(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "lock timeout")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMaintenanceRepository_Counts(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	want := make([]models.TableCount, 0, len(Tables))
	for i, table := range Tables {
		mock.ExpectQuery(`SELECT COUNT\(\*\)::int FROM ` + table).
			WithArgs().
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(i))
		want = append(want, models.TableCount{Table: table, Count: i})
	}

	got, err := NewMaintenanceRepository(mock).Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaintenanceRepository_Ping(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT 1`).
		WithArgs().
		WillReturnError(errors.New("connection refused"))

	err = NewMaintenanceRepository(mock).Ping(context.Background())
	assert.Error(t, err)
}
