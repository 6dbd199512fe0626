package controllers

import (
	"context"
	"log/slog"
	"net/http"

	"guate-servicios/middleware"
	"guate-servicios/models"

	"github.com/gin-gonic/gin"
)

type ReviewService interface {
	AddReview(ctx context.Context, reviewerID int, reviewerName string, req models.CreateReviewRequest) (*models.Review, error)
}

type ReviewController struct {
	reviews ReviewService
	logger  *slog.Logger
}

func NewReviewController(reviews ReviewService, logger *slog.Logger) *ReviewController {
	return &ReviewController{reviews: reviews, logger: logger}
}

// Create godoc
// @Summary Review a technician
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateReviewRequest true "Review"
// @Success 201 {object} models.Review
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /reviews [post]
func (ctrl *ReviewController) Create(c *gin.Context) {
	claims, _ := middleware.CurrentClaims(c)

	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	review, err := ctrl.reviews.AddReview(c.Request.Context(), claims.UserID, claims.Name, req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}
