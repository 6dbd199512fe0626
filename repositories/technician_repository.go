package repositories

import (
	"context"
	"errors"

	"guate-servicios/models"

	"github.com/jackc/pgx/v5"
)

// summarySelect projects a technician with its owner name, category name
// and aggregated rating. Callers append WHERE and then summaryGroupBy.
const summarySelect = `
	SELECT
		t.id, t.user_id, u.name, c.name AS category,
		t.description, t.photo_url, t.whatsapp,
		ROUND(COALESCE(AVG(r.rating), 0)::numeric, 1)::float8 AS rating,
		COUNT(r.id)::int AS review_count
	FROM technicians t
	JOIN users u ON t.user_id = u.id
	JOIN categories c ON t.category_id = c.id
	LEFT JOIN reviews r ON t.id = r.technician_id`

const summaryGroupBy = ` GROUP BY t.id, u.id, c.id`

type TechnicianRepository struct {
	db DB
}

func NewTechnicianRepository(db DB) *TechnicianRepository {
	return &TechnicianRepository{db: db}
}

// List returns every technician matching filter, newest first.
func (r *TechnicianRepository) List(ctx context.Context, filter TechnicianFilter) ([]models.TechnicianSummary, error) {
	p := filter.predicates()
	query := summarySelect + p.where() + summaryGroupBy + ` ORDER BY t.created_at DESC, t.id DESC`

	rows, err := r.db.Query(ctx, query, p.args...)
	if err != nil {
		return nil, wrap("list technicians", err)
	}
	defer rows.Close()

	technicians := []models.TechnicianSummary{}
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, wrap("scan technician", err)
		}
		technicians = append(technicians, *s)
	}
	return technicians, wrap("list technicians", rows.Err())
}

func (r *TechnicianRepository) FindSummaryByID(ctx context.Context, id int) (*models.TechnicianSummary, error) {
	query := summarySelect + ` WHERE t.id = $1` + summaryGroupBy
	s, err := scanSummary(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, wrap("find technician", err)
	}
	return s, nil
}

func (r *TechnicianRepository) FindSummaryByUserID(ctx context.Context, userID int) (*models.TechnicianSummary, error) {
	query := summarySelect + ` WHERE t.user_id = $1` + summaryGroupBy
	s, err := scanSummary(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, wrap("find technician by user", err)
	}
	return s, nil
}

func (r *TechnicianRepository) FindByUserID(ctx context.Context, userID int) (*models.Technician, error) {
	query := `
		SELECT id, user_id, category_id, description, photo_url, whatsapp, created_at
		FROM technicians WHERE user_id = $1
	`
	t := &models.Technician{}
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&t.ID, &t.UserID, &t.CategoryID, &t.Description, &t.PhotoURL, &t.WhatsApp, &t.CreatedAt,
	)
	if err != nil {
		return nil, wrap("find technician row by user", err)
	}
	return t, nil
}

// OwnerID returns the user id owning technician id.
func (r *TechnicianRepository) OwnerID(ctx context.Context, id int) (int, error) {
	var userID int
	err := r.db.QueryRow(ctx, `SELECT user_id FROM technicians WHERE id = $1`, id).Scan(&userID)
	return userID, wrap("technician owner", err)
}

func (r *TechnicianRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM technicians WHERE id = $1)`, id).Scan(&exists)
	return exists, wrap("technician exists", err)
}

// EnsureProfile makes sure userID has a technician row, creating the
// default one when missing. created reports whether this call inserted
// it; an existing row is not an error.
func (r *TechnicianRepository) EnsureProfile(ctx context.Context, userID int) (created bool, err error) {
	query := `
		INSERT INTO technicians (user_id, category_id, description, photo_url, whatsapp)
		VALUES ($1, $2, '', '', '')
		ON CONFLICT (user_id) DO NOTHING
		RETURNING id
	`
	var id int
	err = r.db.QueryRow(ctx, query, userID, models.DefaultCategoryID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, wrap("ensure technician profile", err)
	}
	return true, nil
}

// UpdateProfile applies the non-nil fields of req to the technician owned
// by userID.
func (r *TechnicianRepository) UpdateProfile(ctx context.Context, userID int, req models.UpdateTechnicianRequest) error {
	query := `
		UPDATE technicians SET
			category_id = COALESCE($1, category_id),
			description = COALESCE($2, description),
			whatsapp    = COALESCE($3, whatsapp)
		WHERE user_id = $4
	`
	tag, err := r.db.Exec(ctx, query, req.CategoryID, req.Description, req.WhatsApp, userID)
	if err != nil {
		return wrap("update technician", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TechnicianRepository) SetPhotoURL(ctx context.Context, userID int, photoURL string) error {
	tag, err := r.db.Exec(ctx, `UPDATE technicians SET photo_url = $1 WHERE user_id = $2`, photoURL, userID)
	if err != nil {
		return wrap("set technician photo", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TechnicianRepository) Contact(ctx context.Context, id int) (*models.TechnicianContact, error) {
	query := `
		SELECT t.id, u.name, u.email
		FROM technicians t JOIN users u ON t.user_id = u.id
		WHERE t.id = $1
	`
	c := &models.TechnicianContact{}
	if err := r.db.QueryRow(ctx, query, id).Scan(&c.TechnicianID, &c.Name, &c.Email); err != nil {
		return nil, wrap("technician contact", err)
	}
	return c, nil
}

// Create inserts a fully specified profile (used by seeding).
func (r *TechnicianRepository) Create(ctx context.Context, t *models.Technician) error {
	query := `
		INSERT INTO technicians (user_id, category_id, description, photo_url, whatsapp)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, t.UserID, t.CategoryID, t.Description, t.PhotoURL, t.WhatsApp).
		Scan(&t.ID, &t.CreatedAt)
	return wrap("create technician", err)
}

func scanSummary(row pgx.Row) (*models.TechnicianSummary, error) {
	s := &models.TechnicianSummary{}
	err := row.Scan(
		&s.ID, &s.UserID, &s.Name, &s.Category,
		&s.Description, &s.PhotoURL, &s.WhatsApp,
		&s.Rating, &s.ReviewCount,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}
