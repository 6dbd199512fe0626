package controllers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	directory DirectoryService
	logger    *slog.Logger
}

func NewCategoryController(directory DirectoryService, logger *slog.Logger) *CategoryController {
	return &CategoryController{directory: directory, logger: logger}
}

// List godoc
// @Summary List categories
// @Description Categories ordered by name
// @Tags Categories
// @Produce json
// @Success 200 {array} models.Category
// @Router /categories [get]
func (ctrl *CategoryController) List(c *gin.Context) {
	categories, err := ctrl.directory.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}
