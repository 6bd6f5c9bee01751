package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"cinelist/internal/service"
)

// ProfileHandler handles user profile endpoints.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// ChangePasswordRequest represents a password change request.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// Profile godoc
// @Summary Current user's profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Router /profile [get]
func (h *ProfileHandler) Profile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	profile, err := h.profileService.Profile(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "", profile)
}

// UpdateProfile godoc
// @Summary Update profile fields and optionally the avatar
// @Tags profile
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Display name"
// @Param bio formData string false "Bio"
// @Param birth_date formData string false "Birth date (YYYY-MM-DD)"
// @Param favorite_genre formData string false "Favorite genre"
// @Param is_public_profile formData bool false "Public profile flag"
// @Param avatar formData file false "Avatar image"
// @Success 200 {object} Response
// @Failure 422 {object} Response
// @Router /profile [put]
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	in := service.UpdateProfileInput{
		Name:            c.FormValue("name"),
		IsPublicProfile: true,
	}
	if bio := c.FormValue("bio"); bio != "" {
		in.Bio = &bio
	}
	if genre := c.FormValue("favorite_genre"); genre != "" {
		in.FavoriteGenre = &genre
	}
	if raw := c.FormValue("birth_date"); raw != "" {
		birth, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return respondBadRequest(c, "invalid birth date, expected YYYY-MM-DD")
		}
		in.BirthDate = &birth
	}
	if raw := c.FormValue("is_public_profile"); raw != "" {
		public, err := strconv.ParseBool(raw)
		if err != nil {
			return respondBadRequest(c, "invalid is_public_profile flag")
		}
		in.IsPublicProfile = public
	}

	if file, err := c.FormFile("avatar"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			return respondBadRequest(c, "unable to read avatar upload")
		}
		defer src.Close()
		in.Avatar = src
	}

	profile, err := h.profileService.UpdateProfile(c.Request().Context(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "profile updated successfully", profile)
}

// ChangePassword godoc
// @Summary Change the current user's password
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "Passwords"
// @Success 200 {object} Response
// @Failure 422 {object} Response
// @Router /profile/password [put]
func (h *ProfileHandler) ChangePassword(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}

	if err := h.profileService.ChangePassword(c.Request().Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "password changed successfully", nil)
}

// DeleteAvatar godoc
// @Summary Remove the current user's avatar
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Router /profile/avatar [delete]
func (h *ProfileHandler) DeleteAvatar(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	if err := h.profileService.DeleteAvatar(c.Request().Context(), userID); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "avatar removed successfully", nil)
}

// PublicProfile godoc
// @Summary Public profile of a user
// @Tags users
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /users/{userId} [get]
func (h *ProfileHandler) PublicProfile(c echo.Context) error {
	userID, ok := pathID(c, "userId")
	if !ok {
		return respondBadRequest(c, "invalid user ID")
	}
	profile, err := h.profileService.PublicProfile(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "", profile)
}

// UserPublicLists godoc
// @Summary Public lists of a user
// @Tags users
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /users/{userId}/lists [get]
func (h *ProfileHandler) UserPublicLists(c echo.Context) error {
	userID, ok := pathID(c, "userId")
	if !ok {
		return respondBadRequest(c, "invalid user ID")
	}
	lists, owner, err := h.profileService.UserPublicLists(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "", echo.Map{"lists": lists, "user": owner})
}
