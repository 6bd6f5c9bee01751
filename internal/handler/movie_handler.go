package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"cinelist/internal/service"
	"cinelist/internal/tmdb"
)

// MovieHandler handles catalog browsing endpoints backed by TMDB.
type MovieHandler struct {
	movieService service.MovieService
}

// NewMovieHandler creates a new movie handler.
func NewMovieHandler(movieService service.MovieService) *MovieHandler {
	return &MovieHandler{movieService: movieService}
}

func queryPage(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func queryFilters(c echo.Context) tmdb.Filters {
	return tmdb.Filters{
		Year:           c.QueryParam("year"),
		Genre:          c.QueryParam("genre"),
		SortBy:         c.QueryParam("sort_by"),
		VoteAverageGTE: c.QueryParam("vote_average_gte"),
		VoteAverageLTE: c.QueryParam("vote_average_lte"),
		ReleaseDateGTE: c.QueryParam("release_date_gte"),
		ReleaseDateLTE: c.QueryParam("release_date_lte"),
	}
}

// Popular godoc
// @Summary Popular movies
// @Tags movies
// @Produce json
// @Param page query int false "Page"
// @Success 200 {object} Response
// @Failure 500 {object} Response
// @Router /movies/popular [get]
func (h *MovieHandler) Popular(c echo.Context) error {
	payload, err := h.movieService.Popular(c.Request().Context(), queryPage(c))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "", payload)
}

// Trending godoc
// @Summary Trending movies
// @Tags movies
// @Produce json
// @Param time_window query string false "day or week"
// @Param page query int false "Page"
// @Success 200 {object} Response
// @Failure 500 {object} Response
// @Router /movies/trending [get]
func (h *MovieHandler) Trending(c echo.Context) error {
	window := c.QueryParam("time_window")
	payload, err := h.movieService.Trending(c.Request().Context(), window, queryPage(c))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "", payload)
}

// TopRated godoc
// @Summary Top rated movies
// @Tags movies
// @Produce json
// @Param page query int false "Page"
// @Success 200 {object} Response
// @Failure 500 {object} Response
// @Router /movies/top-rated [get]
func (h *MovieHandler) TopRated(c echo.Context) error {
	payload, err := h.movieService.TopRated(c.Request().Context(), queryPage(c))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "", payload)
}

// Search godoc
// @Summary Search movies
// @Tags movies
// @Produce json
// @Param q query string true "Search query"
// @Param page query int false "Page"
// @Param year query string false "Release year"
// @Param genre query string false "Genre ID"
// @Param sort_by query string false "Sort order"
// @Param vote_average_gte query string false "Minimum vote average"
// @Param vote_average_lte query string false "Maximum vote average"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /movies/search [get]
func (h *MovieHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return respondBadRequest(c, "search query is required")
	}
	payload, err := h.movieService.Search(c.Request().Context(), query, queryPage(c), queryFilters(c))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "", payload)
}

// Discover godoc
// @Summary Discover movies with filters
// @Tags movies
// @Produce json
// @Param page query int false "Page"
// @Param year query string false "Release year"
// @Param genre query string false "Genre ID"
// @Param sort_by query string false "Sort order"
// @Param vote_average_gte query string false "Minimum vote average"
// @Param vote_average_lte query string false "Maximum vote average"
// @Param release_date_gte query string false "Earliest release date"
// @Param release_date_lte query string false "Latest release date"
// @Success 200 {object} Response
// @Failure 500 {object} Response
// @Router /movies/discover [get]
func (h *MovieHandler) Discover(c echo.Context) error {
	payload, err := h.movieService.Discover(c.Request().Context(), queryFilters(c), queryPage(c))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "", payload)
}

// Genres godoc
// @Summary Movie genre catalog
// @Tags movies
// @Produce json
// @Success 200 {object} Response
// @Failure 500 {object} Response
// @Router /movies/genres [get]
func (h *MovieHandler) Genres(c echo.Context) error {
	payload, err := h.movieService.Genres(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "", payload)
}

// Show godoc
// @Summary Movie details
// @Tags movies
// @Produce json
// @Param id path int true "TMDB movie ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /movies/{id} [get]
func (h *MovieHandler) Show(c echo.Context) error {
	movieID, err := strconv.Atoi(c.Param("id"))
	if err != nil || movieID <= 0 {
		return respondBadRequest(c, "invalid movie ID")
	}
	movie, err := h.movieService.Details(c.Request().Context(), movieID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "", movie)
}
