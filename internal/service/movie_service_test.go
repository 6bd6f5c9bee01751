package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cinelist/internal/cache"
	apperr "cinelist/internal/errors"
	"cinelist/internal/tmdb"
)

// MockBrowseGateway is a mock implementation of BrowseGateway.
type MockBrowseGateway struct {
	mock.Mock
}

func (m *MockBrowseGateway) MovieDetails(ctx context.Context, movieID int) (*tmdb.Movie, error) {
	args := m.Called(ctx, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tmdb.Movie), args.Error(1)
}

func (m *MockBrowseGateway) Popular(ctx context.Context, page int) (json.RawMessage, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockBrowseGateway) TopRated(ctx context.Context, page int) (json.RawMessage, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockBrowseGateway) Trending(ctx context.Context, window string, page int) (json.RawMessage, error) {
	args := m.Called(ctx, window, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockBrowseGateway) Search(ctx context.Context, query string, page int, filters tmdb.Filters) (json.RawMessage, error) {
	args := m.Called(ctx, query, page, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockBrowseGateway) Discover(ctx context.Context, filters tmdb.Filters, page int) (json.RawMessage, error) {
	args := m.Called(ctx, filters, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockBrowseGateway) Genres(ctx context.Context) (json.RawMessage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

// noCache behaves like a permanent cache miss.
var noCache *cache.Client

func TestMovieService_Popular(t *testing.T) {
	payload := json.RawMessage(`{"page":1,"results":[]}`)

	mockGateway := new(MockBrowseGateway)
	mockGateway.On("Popular", mock.Anything, 1).Return(payload, nil)

	svc := NewMovieService(mockGateway, noCache)
	got, err := svc.Popular(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, payload, got)
	mockGateway.AssertExpectations(t)
}

func TestMovieService_Trending(t *testing.T) {
	payload := json.RawMessage(`{"page":1,"results":[]}`)

	t.Run("invalid window falls back to week", func(t *testing.T) {
		mockGateway := new(MockBrowseGateway)
		mockGateway.On("Trending", mock.Anything, "week", 1).Return(payload, nil)

		svc := NewMovieService(mockGateway, noCache)
		_, err := svc.Trending(context.Background(), "month", 1)

		assert.NoError(t, err)
		mockGateway.AssertExpectations(t)
	})

	t.Run("day window passes through", func(t *testing.T) {
		mockGateway := new(MockBrowseGateway)
		mockGateway.On("Trending", mock.Anything, "day", 2).Return(payload, nil)

		svc := NewMovieService(mockGateway, noCache)
		_, err := svc.Trending(context.Background(), "day", 2)

		assert.NoError(t, err)
		mockGateway.AssertExpectations(t)
	})
}

func TestMovieService_Search(t *testing.T) {
	t.Run("empty query is rejected without a gateway call", func(t *testing.T) {
		mockGateway := new(MockBrowseGateway)

		svc := NewMovieService(mockGateway, noCache)
		got, err := svc.Search(context.Background(), "", 1, tmdb.Filters{})

		assert.ErrorIs(t, err, apperr.ErrValidation)
		assert.Nil(t, got)
		mockGateway.AssertNotCalled(t, "Search")
	})

	t.Run("query and filters pass through", func(t *testing.T) {
		payload := json.RawMessage(`{"page":1,"results":[{"id":550}]}`)
		filters := tmdb.Filters{Year: "1999"}

		mockGateway := new(MockBrowseGateway)
		mockGateway.On("Search", mock.Anything, "fight club", 1, filters).Return(payload, nil)

		svc := NewMovieService(mockGateway, noCache)
		got, err := svc.Search(context.Background(), "fight club", 1, filters)

		assert.NoError(t, err)
		assert.Equal(t, payload, got)
		mockGateway.AssertExpectations(t)
	})
}

func TestMovieService_Details(t *testing.T) {
	t.Run("passes through gateway data", func(t *testing.T) {
		mockGateway := new(MockBrowseGateway)
		mockGateway.On("MovieDetails", mock.Anything, 550).Return(&tmdb.Movie{ID: 550, Title: "Fight Club"}, nil)

		svc := NewMovieService(mockGateway, noCache)
		movie, err := svc.Details(context.Background(), 550)

		assert.NoError(t, err)
		assert.Equal(t, "Fight Club", movie.Title)
	})

	t.Run("propagates a missing movie", func(t *testing.T) {
		mockGateway := new(MockBrowseGateway)
		mockGateway.On("MovieDetails", mock.Anything, 999999).Return(nil, apperr.ErrMovieNotFound)

		svc := NewMovieService(mockGateway, noCache)
		movie, err := svc.Details(context.Background(), 999999)

		assert.ErrorIs(t, err, apperr.ErrMovieNotFound)
		assert.Nil(t, movie)
	})
}
