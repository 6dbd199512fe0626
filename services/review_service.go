package services

import (
	"context"
	"html"
	"log/slog"
	"strings"

	"guate-servicios/libs"
	"guate-servicios/models"
)

// ReviewNotifier tells a technician about a new review. Optional.
type ReviewNotifier interface {
	NotifyReview(ctx context.Context, n libs.ReviewNotice) error
}

type ReviewService struct {
	technicians TechnicianStore
	reviews     ReviewStore
	notifier    ReviewNotifier
	logger      *slog.Logger
}

func NewReviewService(technicians TechnicianStore, reviews ReviewStore, notifier ReviewNotifier, logger *slog.Logger) *ReviewService {
	return &ReviewService{technicians: technicians, reviews: reviews, notifier: notifier, logger: logger}
}

// AddReview stores a review by reviewer on req.TechnicianID. Any
// authenticated user may review any technician any number of times.
func (s *ReviewService) AddReview(ctx context.Context, reviewerID int, reviewerName string, req models.CreateReviewRequest) (*models.Review, error) {
	exists, err := s.technicians.Exists(ctx, req.TechnicianID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTechnicianNotFound
	}

	review := &models.Review{
		TechnicianID: req.TechnicianID,
		UserID:       reviewerID,
		Rating:       req.Rating,
		Comment:      sanitizeComment(req.Comment),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	s.notify(ctx, review, reviewerName)
	return review, nil
}

// notify is best effort: the review is already stored.
func (s *ReviewService) notify(ctx context.Context, review *models.Review, reviewerName string) {
	if s.notifier == nil {
		return
	}
	contact, err := s.technicians.Contact(ctx, review.TechnicianID)
	if err != nil {
		s.logger.WarnContext(ctx, "review notification skipped", "technician_id", review.TechnicianID, "error", err)
		return
	}

	notice := libs.ReviewNotice{
		TechnicianName:  contact.Name,
		TechnicianEmail: contact.Email,
		ReviewerName:    reviewerName,
		Rating:          review.Rating,
	}
	if review.Comment != nil {
		notice.Comment = *review.Comment
	}
	if err := s.notifier.NotifyReview(ctx, notice); err != nil {
		s.logger.WarnContext(ctx, "review notification failed", "technician_id", review.TechnicianID, "error", err)
	}
}

// sanitizeComment trims and HTML-escapes the comment. A blank comment is
// stored as NULL.
func sanitizeComment(comment *string) *string {
	if comment == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*comment)
	if trimmed == "" {
		return nil
	}
	escaped := html.EscapeString(trimmed)
	return &escaped
}
