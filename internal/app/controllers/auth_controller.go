package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avelin/formatrack/internal/app/models/dto"
	"github.com/avelin/formatrack/internal/app/services"
	"github.com/avelin/formatrack/internal/middleware"
	"github.com/avelin/formatrack/internal/pkg/apperrors"
	"github.com/avelin/formatrack/internal/pkg/validation"
)

// AuthController handles registration, login and profile endpoints
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// RegisterStudent godoc
// @Summary Register a student account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterStudentRequest true "Registration data"
// @Success 201 {object} dto.APIResponse{data=dto.AuthResponse}
// @Router /auth/register/student [post]
func (ac *AuthController) RegisterStudent(c *gin.Context) {
	var req dto.RegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("invalid request body"))
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	resp, err := ac.authService.RegisterStudent(c.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAPIResponse(resp))
}

// RegisterTrainer godoc
// @Summary Register a trainer account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterTrainerRequest true "Registration data"
// @Success 201 {object} dto.APIResponse{data=dto.AuthResponse}
// @Router /auth/register/trainer [post]
func (ac *AuthController) RegisterTrainer(c *gin.Context) {
	var req dto.RegisterTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("invalid request body"))
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	resp, err := ac.authService.RegisterTrainer(c.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAPIResponse(resp))
}

// Login godoc
// @Summary Authenticate and receive a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse}
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("invalid request body"))
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	resp, err := ac.authService.Login(c.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// Refresh godoc
// @Summary Exchange a refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse}
// @Router /auth/refresh [post]
func (ac *AuthController) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("invalid request body"))
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	tokens, err := ac.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(tokens))
}

// Logout godoc
// @Summary Revoke a refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Router /auth/logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("invalid request body"))
		return
	}

	if err := ac.authService.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "logged out"}))
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Router /users/me [get]
func (ac *AuthController) GetProfile(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	profile, err := ac.authService.GetProfile(c.Request.Context(), actor.UserID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(profile))
}

// UpdateProfile godoc
// @Summary Update the authenticated user's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Router /users/me [put]
func (ac *AuthController) UpdateProfile(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("invalid request body"))
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	profile, err := ac.authService.UpdateProfile(c.Request.Context(), actor.UserID, req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(profile))
}
