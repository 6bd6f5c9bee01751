package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrListNotFound is returned when a movie list is absent or not visible to the requester.
	ErrListNotFound = errors.New("movie list not found")
	// ErrItemNotFound is returned when a list item does not exist under the given list.
	ErrItemNotFound = errors.New("list item not found")
	// ErrUserNotFound is returned when a user or public profile is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrMovieNotFound is returned when the metadata API has no movie for the given ID.
	ErrMovieNotFound = errors.New("movie not found")
	// ErrDuplicateItem is returned when a movie is already present in a list.
	ErrDuplicateItem = errors.New("movie already exists in this list")
	// ErrEmailTaken is returned when registering with an email that is already in use.
	ErrEmailTaken = errors.New("email already in use")
	// ErrInvalidCredential is returned when the current password does not match.
	ErrInvalidCredential = errors.New("current password is incorrect")
	// ErrUpstream is returned when the metadata API fails.
	ErrUpstream = errors.New("movie metadata service unavailable")
	// ErrUpstreamTimeout is returned when the metadata API does not answer in time.
	ErrUpstreamTimeout = errors.New("movie metadata service timed out")
	// ErrValidation is returned when request data fails domain validation.
	ErrValidation = errors.New("invalid data")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Not-found deliberately covers
// "exists but belongs to someone else" so private lists do not leak their existence.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrListNotFound):
		return NewHTTPError(http.StatusNotFound, ErrListNotFound.Error(), "LIST_NOT_FOUND")
	case errors.Is(err, ErrItemNotFound):
		return NewHTTPError(http.StatusNotFound, ErrItemNotFound.Error(), "ITEM_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrMovieNotFound):
		return NewHTTPError(http.StatusNotFound, ErrMovieNotFound.Error(), "MOVIE_NOT_FOUND")
	case errors.Is(err, ErrDuplicateItem):
		return NewHTTPError(http.StatusConflict, ErrDuplicateItem.Error(), "DUPLICATE_ITEM")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, ErrEmailTaken.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrInvalidCredential):
		return NewHTTPError(http.StatusUnprocessableEntity, ErrInvalidCredential.Error(), "INVALID_CREDENTIAL")
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrUpstreamTimeout):
		return NewHTTPError(http.StatusGatewayTimeout, ErrUpstreamTimeout.Error(), "UPSTREAM_TIMEOUT")
	case errors.Is(err, ErrUpstream):
		return NewHTTPError(http.StatusInternalServerError, ErrUpstream.Error(), "UPSTREAM_ERROR")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
