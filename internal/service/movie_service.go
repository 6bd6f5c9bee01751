package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cinelist/internal/cache"
	apperr "cinelist/internal/errors"
	"cinelist/internal/tmdb"
)

const browseCacheTTL = 15 * time.Minute

// BrowseGateway is the slice of the TMDB client used for catalog browsing.
type BrowseGateway interface {
	MovieDetails(ctx context.Context, movieID int) (*tmdb.Movie, error)
	Popular(ctx context.Context, page int) (json.RawMessage, error)
	TopRated(ctx context.Context, page int) (json.RawMessage, error)
	Trending(ctx context.Context, window string, page int) (json.RawMessage, error)
	Search(ctx context.Context, query string, page int, filters tmdb.Filters) (json.RawMessage, error)
	Discover(ctx context.Context, filters tmdb.Filters, page int) (json.RawMessage, error)
	Genres(ctx context.Context) (json.RawMessage, error)
}

// MovieService proxies catalog browsing to the metadata gateway, caching
// stable pages in redis. Nothing here is persisted; lists snapshot their own
// copy of movie data on add.
type MovieService interface {
	Popular(ctx context.Context, page int) (json.RawMessage, error)
	TopRated(ctx context.Context, page int) (json.RawMessage, error)
	Trending(ctx context.Context, window string, page int) (json.RawMessage, error)
	Search(ctx context.Context, query string, page int, filters tmdb.Filters) (json.RawMessage, error)
	Discover(ctx context.Context, filters tmdb.Filters, page int) (json.RawMessage, error)
	Genres(ctx context.Context) (json.RawMessage, error)
	Details(ctx context.Context, movieID int) (*tmdb.Movie, error)
}

type movieService struct {
	gateway BrowseGateway
	cache   *cache.Client
}

// NewMovieService creates a new movie browsing service.
func NewMovieService(gateway BrowseGateway, cache *cache.Client) MovieService {
	return &movieService{gateway: gateway, cache: cache}
}

// cached serves a browse page from redis when present, falling back to the
// gateway and caching the result. Cache errors degrade to a gateway call.
func (s *movieService) cached(ctx context.Context, key string, fetch func() (json.RawMessage, error)) (json.RawMessage, error) {
	if data, _ := s.cache.Get(ctx, key); data != nil {
		return json.RawMessage(data), nil
	}
	payload, err := fetch()
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, payload, browseCacheTTL)
	return payload, nil
}

func (s *movieService) Popular(ctx context.Context, page int) (json.RawMessage, error) {
	return s.cached(ctx, fmt.Sprintf("tmdb:popular:p%d", page), func() (json.RawMessage, error) {
		return s.gateway.Popular(ctx, page)
	})
}

func (s *movieService) TopRated(ctx context.Context, page int) (json.RawMessage, error) {
	return s.cached(ctx, fmt.Sprintf("tmdb:top_rated:p%d", page), func() (json.RawMessage, error) {
		return s.gateway.TopRated(ctx, page)
	})
}

func (s *movieService) Trending(ctx context.Context, window string, page int) (json.RawMessage, error) {
	if window != "day" && window != "week" {
		window = "week"
	}
	return s.cached(ctx, fmt.Sprintf("tmdb:trending:%s:p%d", window, page), func() (json.RawMessage, error) {
		return s.gateway.Trending(ctx, window, page)
	})
}

// Search is not cached; query/filter combinations are too sparse to be worth it.
func (s *movieService) Search(ctx context.Context, query string, page int, filters tmdb.Filters) (json.RawMessage, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", apperr.ErrValidation)
	}
	return s.gateway.Search(ctx, query, page, filters)
}

func (s *movieService) Discover(ctx context.Context, filters tmdb.Filters, page int) (json.RawMessage, error) {
	return s.gateway.Discover(ctx, filters, page)
}

func (s *movieService) Genres(ctx context.Context) (json.RawMessage, error) {
	return s.cached(ctx, "tmdb:genres", func() (json.RawMessage, error) {
		return s.gateway.Genres(ctx)
	})
}

func (s *movieService) Details(ctx context.Context, movieID int) (*tmdb.Movie, error) {
	return s.gateway.MovieDetails(ctx, movieID)
}
