package repositories

import (
	"context"

	"guate-servicios/models"
)

type ReviewRepository struct {
	db DB
}

func NewReviewRepository(db DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO reviews (technician_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, technician_id, user_id, rating, comment, created_at
	`
	err := r.db.QueryRow(ctx, query, review.TechnicianID, review.UserID, review.Rating, review.Comment).Scan(
		&review.ID, &review.TechnicianID, &review.UserID, &review.Rating, &review.Comment, &review.CreatedAt,
	)
	return wrap("create review", err)
}

// ListByTechnician returns the technician's reviews newest first with
// each reviewer's name.
func (r *ReviewRepository) ListByTechnician(ctx context.Context, technicianID int) ([]models.ReviewDetail, error) {
	query := `
		SELECT r.id, r.user_id, r.rating, r.comment, r.created_at, u.name AS user_name
		FROM reviews r
		JOIN users u ON r.user_id = u.id
		WHERE r.technician_id = $1
		ORDER BY r.created_at DESC, r.id DESC
	`
	rows, err := r.db.Query(ctx, query, technicianID)
	if err != nil {
		return nil, wrap("list reviews", err)
	}
	defer rows.Close()

	reviews := []models.ReviewDetail{}
	for rows.Next() {
		var rv models.ReviewDetail
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UserName); err != nil {
			return nil, wrap("scan review", err)
		}
		reviews = append(reviews, rv)
	}
	return reviews, wrap("list reviews", rows.Err())
}
