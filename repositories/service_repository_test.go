package repositories

import (
	"context"
	"testing"

	"guate-servicios/models"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceRepository_Create(t *testing.T) {
	price := 150.0
	columns := []string{"id", "technician_id", "title", "description", "price"}

	t.Run("with price", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		svc := &models.Service{TechnicianID: 4, Title: "Instalación", Description: "Lámparas", Price: &price}
		mock.ExpectQuery(`INSERT INTO services`).
			WithArgs(4, "Instalación", "Lámparas", &price).
			WillReturnRows(pgxmock.NewRows(columns).AddRow(10, 4, "Instalación", "Lámparas", &price))

		require.NoError(t, NewServiceRepository(mock).Create(context.Background(), svc))
		assert.Equal(t, 10, svc.ID)
		require.NotNil(t, svc.Price)
		assert.InDelta(t, 150.0, *svc.Price, 0.001)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("without price stays nil", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		svc := &models.Service{TechnicianID: 4, Title: "Revisión", Description: "Diagnóstico"}
		mock.ExpectQuery(`INSERT INTO services`).
			WithArgs(4, "Revisión", "Diagnóstico", (*float64)(nil)).
			WillReturnRows(pgxmock.NewRows(columns).AddRow(11, 4, "Revisión", "Diagnóstico", nil))

		require.NoError(t, NewServiceRepository(mock).Create(context.Background(), svc))
		assert.Equal(t, 11, svc.ID)
		assert.Nil(t, svc.Price)
	})

	t.Run("unknown technician", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		svc := &models.Service{TechnicianID: 99, Title: "x", Description: "y"}
		mock.ExpectQuery(`INSERT INTO services`).
			WithArgs(99, "x", "y", (*float64)(nil)).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})

		err = NewServiceRepository(mock).Create(context.Background(), svc)
		assert.ErrorIs(t, err, ErrForeignKey)
	})
}

func TestServiceRepository_ListByTechnician(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	price := 80.0
	mock.ExpectQuery(`FROM services WHERE technician_id = \$1 ORDER BY id`).
		WithArgs(4).
		WillReturnRows(pgxmock.NewRows([]string{"id", "technician_id", "title", "description", "price"}).
			AddRow(1, 4, "A", "a", &price).
			AddRow(2, 4, "B", "b", nil))

	got, err := NewServiceRepository(mock).ListByTechnician(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Title)
	assert.Nil(t, got[1].Price)
	assert.NoError(t, mock.ExpectationsWereMet())
}
