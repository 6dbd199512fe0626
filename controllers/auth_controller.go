package controllers

import (
	"context"
	"log/slog"
	"net/http"

	"guate-servicios/models"

	"github.com/gin-gonic/gin"
)

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.PublicUser, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
}

type AuthController struct {
	auth   AuthService
	logger *slog.Logger
}

func NewAuthController(auth AuthService, logger *slog.Logger) *AuthController {
	return &AuthController{auth: auth, logger: logger}
}

// Register godoc
// @Summary Register a new account
// @Description Creates a user or technician account. Technicians also get a default profile.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Register Request"
// @Success 201 {object} models.PublicUser
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	user, err := ctrl.auth.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Login
// @Description Exchanges email and password for a bearer token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login Request"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	resp, err := ctrl.auth.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
