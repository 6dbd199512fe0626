package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"guate-servicios/libs"
	"guate-servicios/middleware"
	"guate-servicios/models"
	"guate-servicios/services"
	"guate-servicios/utils"

	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "Error interno del servidor."

type errorMapping struct {
	err     error
	status  int
	message string
}

var errorMappings = []errorMapping{
	{services.ErrEmailTaken, http.StatusConflict, "El correo electrónico ya está registrado."},
	{services.ErrInvalidCredentials, http.StatusUnauthorized, "Credenciales inválidas."},
	{services.ErrTechnicianNotFound, http.StatusNotFound, "Técnico no encontrado."},
	{services.ErrProfileNotFound, http.StatusNotFound, "Perfil de técnico no encontrado."},
	{services.ErrNotOwner, http.StatusForbidden, "Acceso denegado: no eres el propietario de este perfil de técnico."},
	{services.ErrCategoryNotFound, http.StatusNotFound, "Categoría no encontrada."},
	{services.ErrEmptyUpdate, http.StatusBadRequest, "No hay campos para actualizar."},
	{libs.ErrUnsupportedImage, http.StatusBadRequest, "Formato de imagen no soportado. Solo .png, .jpg, .jpeg, .gif, .webp."},
	{libs.ErrImageTooLarge, http.StatusBadRequest, "La imagen es demasiado grande."},
}

// respondError maps domain errors to their status; anything unknown is
// logged and answered with a generic 500.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	if errors.Is(err, models.ErrInvalidRole) {
		respondFieldErrors(c, []models.FieldError{{Field: "role", Message: "El rol debe ser válido"}})
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			c.JSON(m.status, models.ErrorResponse{Message: m.message})
			return
		}
	}

	_ = c.Error(err)
	logger.ErrorContext(c.Request.Context(), "request failed",
		"request_id", middleware.GetRequestID(c),
		"method", c.Request.Method,
		"path", c.FullPath(),
		"error", err,
	)
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: internalErrorMessage})
}

func respondValidation(c *gin.Context, err error) {
	respondFieldErrors(c, utils.ValidationErrors(err))
}

func respondFieldErrors(c *gin.Context, fields []models.FieldError) {
	c.JSON(http.StatusBadRequest, models.ValidationErrorResponse{Errors: fields})
}
