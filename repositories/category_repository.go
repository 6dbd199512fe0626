package repositories

import (
	"context"

	"guate-servicios/models"
)

type CategoryRepository struct {
	db DB
}

func NewCategoryRepository(db DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, wrap("list categories", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name); err != nil {
			return nil, wrap("scan category", err)
		}
		categories = append(categories, cat)
	}
	return categories, wrap("list categories", rows.Err())
}

func (r *CategoryRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`, id).Scan(&exists)
	return exists, wrap("category exists", err)
}

// Upsert returns the id of the named category, inserting it when missing.
func (r *CategoryRepository) Upsert(ctx context.Context, name string) (int, error) {
	query := `
		INSERT INTO categories (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`
	var id int
	err := r.db.QueryRow(ctx, query, name).Scan(&id)
	return id, wrap("upsert category", err)
}
