package controllers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"guate-servicios/libs"
	"guate-servicios/middleware"
	"guate-servicios/models"

	"github.com/gin-gonic/gin"
)

type DirectoryService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListTechnicians(ctx context.Context, category, query string) ([]models.TechnicianSummary, error)
	GetTechnician(ctx context.Context, id int) (*models.TechnicianDetail, error)
	GetMyProfile(ctx context.Context, userID int) (*models.TechnicianDetail, error)
	UpdateMyProfile(ctx context.Context, userID int, req models.UpdateTechnicianRequest) (*models.TechnicianDetail, error)
	UploadPhoto(ctx context.Context, userID int, r io.Reader, ext string) (string, error)
}

type TechnicianController struct {
	directory     DirectoryService
	maxUploadSize int64
	logger        *slog.Logger
}

func NewTechnicianController(directory DirectoryService, maxUploadSize int64, logger *slog.Logger) *TechnicianController {
	return &TechnicianController{directory: directory, maxUploadSize: maxUploadSize, logger: logger}
}

// List godoc
// @Summary List technicians
// @Description Lists technicians newest first with their average rating. "Todas" disables the category filter.
// @Tags Technicians
// @Produce json
// @Param category query string false "Category name (substring, case-insensitive)"
// @Param q query string false "Search in technician name or description"
// @Success 200 {array} models.TechnicianSummary
// @Router /technicians [get]
func (ctrl *TechnicianController) List(c *gin.Context) {
	technicians, err := ctrl.directory.ListTechnicians(c.Request.Context(), c.Query("category"), c.Query("q"))
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	c.JSON(http.StatusOK, technicians)
}

// Get godoc
// @Summary Technician detail
// @Description Technician with services and reviews (newest first)
// @Tags Technicians
// @Produce json
// @Param id path int true "Technician ID"
// @Success 200 {object} models.TechnicianDetail
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /technicians/{id} [get]
func (ctrl *TechnicianController) Get(c *gin.Context) {
	id, ok := technicianIDParam(c)
	if !ok {
		return
	}

	technician, err := ctrl.directory.GetTechnician(c.Request.Context(), id)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	c.JSON(http.StatusOK, technician)
}

// Me godoc
// @Summary My technician profile
// @Description Returns the caller's profile, creating the default one when missing
// @Tags Technicians
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.TechnicianDetail
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /technicians/me [get]
func (ctrl *TechnicianController) Me(c *gin.Context) {
	claims, _ := middleware.CurrentClaims(c)

	profile, err := ctrl.directory.GetMyProfile(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateMe godoc
// @Summary Update my technician profile
// @Tags Technicians
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UpdateTechnicianRequest true "Fields to change"
// @Success 200 {object} models.TechnicianDetail
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /technicians/me [patch]
func (ctrl *TechnicianController) UpdateMe(c *gin.Context) {
	claims, _ := middleware.CurrentClaims(c)

	var req models.UpdateTechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	profile, err := ctrl.directory.UpdateMyProfile(c.Request.Context(), claims.UserID, req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UploadPhoto godoc
// @Summary Upload my profile photo
// @Tags Technicians
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param photo formData file true "Image (.png, .jpg, .jpeg, .gif, .webp)"
// @Success 200 {object} models.PhotoResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /technicians/me/photo [post]
func (ctrl *TechnicianController) UploadPhoto(c *gin.Context) {
	claims, _ := middleware.CurrentClaims(c)

	header, err := c.FormFile("photo")
	if err != nil {
		respondFieldErrors(c, []models.FieldError{{Field: "photo", Message: "La imagen es requerida"}})
		return
	}

	ext, err := libs.ImageExtension(header, ctrl.maxUploadSize)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	defer file.Close()

	url, err := ctrl.directory.UploadPhoto(c.Request.Context(), claims.UserID, file, ext)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.PhotoResponse{PhotoURL: url})
}

// technicianIDParam writes the 400 itself when the id is not a positive
// integer.
func technicianIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondFieldErrors(c, []models.FieldError{{Field: "id", Message: "ID de técnico inválido"}})
		return 0, false
	}
	return id, true
}
