package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperr "cinelist/internal/errors"
	"cinelist/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse represents an authentication response.
type AuthResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token,omitempty"`
	User         interface{} `json:"user,omitempty"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Failure 409 {object} Response
// @Failure 422 {object} Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}

	user, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "user registered successfully", user)
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}

	accessToken, refreshToken, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			return c.JSON(http.StatusUnauthorized, Response{
				Success: false,
				Message: err.Error(),
				Errors:  apperr.ErrorResponse{Error: err.Error(), Code: "INVALID_CREDENTIALS"},
			})
		}
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "", AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	})
}

// Refresh godoc
// @Summary Refresh access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}

	accessToken, err := h.authService.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		if err == service.ErrInvalidRefreshToken {
			return c.JSON(http.StatusUnauthorized, Response{
				Success: false,
				Message: err.Error(),
				Errors:  apperr.ErrorResponse{Error: err.Error(), Code: "INVALID_REFRESH_TOKEN"},
			})
		}
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "", AuthResponse{AccessToken: accessToken})
}

// Logout godoc
// @Summary Logout user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}

	if err := h.authService.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		if err == service.ErrInvalidRefreshToken {
			return c.JSON(http.StatusUnauthorized, Response{
				Success: false,
				Message: err.Error(),
				Errors:  apperr.ErrorResponse{Error: err.Error(), Code: "INVALID_REFRESH_TOKEN"},
			})
		}
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "logged out successfully", nil)
}

// Me godoc
// @Summary Current authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	user, err := h.authService.Me(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "", user)
}
