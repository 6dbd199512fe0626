package repositories

import (
	"context"
	"fmt"

	"guate-servicios/models"
)

// Tables lists the schema tables in dependency order (parents first).
var Tables = []string{"users", "categories", "technicians", "services", "reviews"}

// truncateOrder is children first so every TRUNCATE sees no live referrers.
var truncateOrder = []string{"reviews", "services", "technicians", "users"}

type MaintenanceRepository struct {
	db DB
}

func NewMaintenanceRepository(db DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

// Truncate empties the user-generated tables in one transaction; any
// failure rolls everything back. Categories are reference data and stay.
func (r *MaintenanceRepository) Truncate(ctx context.Context) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return wrap("begin truncate", err)
	}
	defer tx.Rollback(ctx)

	for _, table := range truncateOrder {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)); err != nil {
			return wrap("truncate "+table, err)
		}
	}
	return wrap("commit truncate", tx.Commit(ctx))
}

func (r *MaintenanceRepository) Counts(ctx context.Context) ([]models.TableCount, error) {
	counts := make([]models.TableCount, 0, len(Tables))
	for _, table := range Tables {
		var n int
		if err := r.db.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*)::int FROM %s", table)).Scan(&n); err != nil {
			return nil, wrap("count "+table, err)
		}
		counts = append(counts, models.TableCount{Table: table, Count: n})
	}
	return counts, nil
}

func (r *MaintenanceRepository) SampleTechnicians(ctx context.Context, limit int) ([]models.Technician, error) {
	query := `
		SELECT id, user_id, category_id, description, photo_url, whatsapp, created_at
		FROM technicians ORDER BY id LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, wrap("sample technicians", err)
	}
	defer rows.Close()

	out := []models.Technician{}
	for rows.Next() {
		var t models.Technician
		if err := rows.Scan(&t.ID, &t.UserID, &t.CategoryID, &t.Description, &t.PhotoURL, &t.WhatsApp, &t.CreatedAt); err != nil {
			return nil, wrap("scan technician", err)
		}
		out = append(out, t)
	}
	return out, wrap("sample technicians", rows.Err())
}

func (r *MaintenanceRepository) SampleUsers(ctx context.Context, limit int) ([]models.User, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, email, role, created_at FROM users ORDER BY id LIMIT $1`, limit)
	if err != nil {
		return nil, wrap("sample users", err)
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		var u models.User
		var role string
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &role, &u.CreatedAt); err != nil {
			return nil, wrap("scan user", err)
		}
		u.Role = models.Role(role)
		out = append(out, u)
	}
	return out, wrap("sample users", rows.Err())
}

// Ping runs a trivial query to prove the database answers.
func (r *MaintenanceRepository) Ping(ctx context.Context) error {
	var one int
	return wrap("ping", r.db.QueryRow(ctx, `SELECT 1`).Scan(&one))
}
