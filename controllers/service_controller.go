package controllers

import (
	"context"
	"log/slog"
	"net/http"

	"guate-servicios/middleware"
	"guate-servicios/models"

	"github.com/gin-gonic/gin"
)

type OfferingService interface {
	AddService(ctx context.Context, userID, technicianID int, req models.CreateServiceRequest) (*models.Service, error)
}

type ServiceController struct {
	offerings OfferingService
	logger    *slog.Logger
}

func NewServiceController(offerings OfferingService, logger *slog.Logger) *ServiceController {
	return &ServiceController{offerings: offerings, logger: logger}
}

// Create godoc
// @Summary Add a service to my technician profile
// @Tags Services
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Technician ID"
// @Param request body models.CreateServiceRequest true "Service"
// @Success 201 {object} models.Service
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /technicians/{id}/services [post]
func (ctrl *ServiceController) Create(c *gin.Context) {
	claims, _ := middleware.CurrentClaims(c)

	technicianID, ok := technicianIDParam(c)
	if !ok {
		return
	}

	var req models.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	service, err := ctrl.offerings.AddService(c.Request.Context(), claims.UserID, technicianID, req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	c.JSON(http.StatusCreated, service)
}
