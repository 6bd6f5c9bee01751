package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"cinelist/internal/auth"
	"cinelist/internal/errors"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Response{Success: true, Message: message, Data: data})
}

// respondError maps a domain error to its HTTP status and envelope.
func respondError(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, Response{
		Success: false,
		Message: httpErr.Message,
		Errors:  httpErr.ToErrorResponse(),
	})
}

// respondBadRequest covers malformed request bodies and parameters.
func respondBadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Message: message,
		Errors:  errors.ErrorResponse{Error: message, Code: "BAD_REQUEST"},
	})
}

// respondValidation turns validator failures into a 422 with per-field messages.
func respondValidation(c echo.Context, err error) error {
	fields := map[string]string{}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			fields[fe.Field()] = "failed on " + fe.Tag()
		}
	}
	return c.JSON(http.StatusUnprocessableEntity, Response{
		Success: false,
		Message: "invalid data",
		Errors:  fields,
	})
}

// currentUserID extracts the authenticated user's ID from the JWT middleware.
func currentUserID(c echo.Context) (uint, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok || claims.UserID == 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return claims.UserID, nil
}
