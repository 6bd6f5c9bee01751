package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"cinelist/internal/service"
)

// ListHandler handles movie list endpoints.
type ListHandler struct {
	listService service.ListService
}

// NewListHandler creates a new list handler.
func NewListHandler(listService service.ListService) *ListHandler {
	return &ListHandler{listService: listService}
}

// ListRequest represents a create/update movie list request.
type ListRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	IsPublic    bool    `json:"is_public"`
}

// AddMovieRequest represents a request to add a movie to a list.
type AddMovieRequest struct {
	TMDBMovieID int     `json:"tmdb_movie_id" validate:"required,gt=0"`
	UserNotes   *string `json:"user_notes" validate:"omitempty,max=1000"`
}

// UpdateNotesRequest represents a request to update the notes on an item.
type UpdateNotesRequest struct {
	UserNotes *string `json:"user_notes" validate:"omitempty,max=1000"`
}

func pathID(c echo.Context, name string) (uint, bool) {
	raw, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(raw), true
}

// Index godoc
// @Summary Lists owned by the authenticated user
// @Tags movie-lists
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Router /movie-lists [get]
func (h *ListHandler) Index(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	lists, err := h.listService.ListsForOwner(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "", lists)
}

// PublicLists godoc
// @Summary All public lists, newest first
// @Tags movie-lists
// @Produce json
// @Success 200 {object} Response
// @Router /public-lists [get]
func (h *ListHandler) PublicLists(c echo.Context) error {
	lists, err := h.listService.PublicLists(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "", lists)
}

// Create godoc
// @Summary Create a movie list
// @Tags movie-lists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ListRequest true "List data"
// @Success 201 {object} Response
// @Failure 422 {object} Response
// @Router /movie-lists [post]
func (h *ListHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req ListRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}

	list, err := h.listService.CreateList(c.Request().Context(), userID, service.ListInput{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "list created successfully", list)
}

// Show godoc
// @Summary Get one list with its items
// @Tags movie-lists
// @Produce json
// @Security BearerAuth
// @Param id path int true "List ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /movie-lists/{id} [get]
func (h *ListHandler) Show(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, ok := pathID(c, "id")
	if !ok {
		return respondBadRequest(c, "invalid list ID")
	}

	detail, err := h.listService.GetList(c.Request().Context(), id, userID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "", detail)
}

// Update godoc
// @Summary Update a movie list
// @Tags movie-lists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "List ID"
// @Param request body ListRequest true "List data"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Failure 422 {object} Response
// @Router /movie-lists/{id} [put]
func (h *ListHandler) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, ok := pathID(c, "id")
	if !ok {
		return respondBadRequest(c, "invalid list ID")
	}
	var req ListRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}

	list, err := h.listService.UpdateList(c.Request().Context(), id, userID, service.ListInput{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "list updated successfully", list)
}

// Delete godoc
// @Summary Delete a movie list and all of its items
// @Tags movie-lists
// @Produce json
// @Security BearerAuth
// @Param id path int true "List ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /movie-lists/{id} [delete]
func (h *ListHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, ok := pathID(c, "id")
	if !ok {
		return respondBadRequest(c, "invalid list ID")
	}

	if err := h.listService.DeleteList(c.Request().Context(), id, userID); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "list deleted successfully", nil)
}

// AddMovie godoc
// @Summary Add a movie snapshot to a list
// @Tags movie-lists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param listId path int true "List ID"
// @Param request body AddMovieRequest true "Movie data"
// @Success 201 {object} Response
// @Failure 404 {object} Response
// @Failure 409 {object} Response
// @Failure 422 {object} Response
// @Router /movie-lists/{listId}/movies [post]
func (h *ListHandler) AddMovie(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	listID, ok := pathID(c, "listId")
	if !ok {
		return respondBadRequest(c, "invalid list ID")
	}
	var req AddMovieRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}

	item, err := h.listService.AddMovie(c.Request().Context(), userID, listID, req.TMDBMovieID, req.UserNotes)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "movie added to list successfully", item)
}

// RemoveMovie godoc
// @Summary Remove a movie from a list
// @Tags movie-lists
// @Produce json
// @Security BearerAuth
// @Param listId path int true "List ID"
// @Param itemId path int true "Item ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /movie-lists/{listId}/movies/{itemId} [delete]
func (h *ListHandler) RemoveMovie(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	listID, ok := pathID(c, "listId")
	if !ok {
		return respondBadRequest(c, "invalid list ID")
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return respondBadRequest(c, "invalid item ID")
	}

	if err := h.listService.RemoveMovie(c.Request().Context(), userID, listID, itemID); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "movie removed from list successfully", nil)
}

// UpdateNotes godoc
// @Summary Update personal notes on a list item
// @Tags movie-lists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param listId path int true "List ID"
// @Param itemId path int true "Item ID"
// @Param request body UpdateNotesRequest true "Notes"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Failure 422 {object} Response
// @Router /movie-lists/{listId}/movies/{itemId}/notes [put]
func (h *ListHandler) UpdateNotes(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	listID, ok := pathID(c, "listId")
	if !ok {
		return respondBadRequest(c, "invalid list ID")
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return respondBadRequest(c, "invalid item ID")
	}
	var req UpdateNotesRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}

	item, err := h.listService.UpdateNotes(c.Request().Context(), userID, listID, itemID, req.UserNotes)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "notes updated successfully", item)
}
