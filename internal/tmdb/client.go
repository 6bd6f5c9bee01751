package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	apperr "cinelist/internal/errors"
)

const defaultTimeout = 8 * time.Second

// Movie is the subset of a TMDB movie detail payload that gets snapshotted
// into list items.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	PosterPath  string  `json:"poster_path"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
}

// Filters narrows search and discover queries. Zero values are omitted.
type Filters struct {
	Year           string
	Genre          string
	SortBy         string
	VoteAverageGTE string
	VoteAverageLTE string
	ReleaseDateGTE string
	ReleaseDateLTE string
}

func (f Filters) apply(q url.Values) {
	if f.Year != "" {
		q.Set("year", f.Year)
	}
	if f.Genre != "" {
		q.Set("with_genres", f.Genre)
	}
	if f.SortBy != "" {
		q.Set("sort_by", f.SortBy)
	}
	if f.VoteAverageGTE != "" {
		q.Set("vote_average.gte", f.VoteAverageGTE)
	}
	if f.VoteAverageLTE != "" {
		q.Set("vote_average.lte", f.VoteAverageLTE)
	}
	if f.ReleaseDateGTE != "" {
		q.Set("release_date.gte", f.ReleaseDateGTE)
	}
	if f.ReleaseDateLTE != "" {
		q.Set("release_date.lte", f.ReleaseDateLTE)
	}
}

// Client is a read-only client for the TMDB v3 REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	imageBase  string
	apiKey     string
	language   string
}

// NewClient creates a TMDB client. A zero timeout falls back to the default.
func NewClient(baseURL, imageBase, apiKey, language string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		imageBase:  imageBase,
		apiKey:     apiKey,
		language:   language,
	}
}

// MovieDetails fetches a single movie by TMDB ID.
func (c *Client) MovieDetails(ctx context.Context, movieID int) (*Movie, error) {
	body, err := c.get(ctx, fmt.Sprintf("/movie/%d", movieID), url.Values{})
	if err != nil {
		return nil, err
	}
	var movie Movie
	if err := json.Unmarshal(body, &movie); err != nil {
		return nil, fmt.Errorf("%w: decode movie %d: %v", apperr.ErrUpstream, movieID, err)
	}
	return &movie, nil
}

// Popular fetches a page of popular movies.
func (c *Client) Popular(ctx context.Context, page int) (json.RawMessage, error) {
	return c.get(ctx, "/movie/popular", pageQuery(page))
}

// TopRated fetches a page of top rated movies.
func (c *Client) TopRated(ctx context.Context, page int) (json.RawMessage, error) {
	return c.get(ctx, "/movie/top_rated", pageQuery(page))
}

// Trending fetches a page of trending movies. Window is "day" or "week".
func (c *Client) Trending(ctx context.Context, window string, page int) (json.RawMessage, error) {
	if window != "day" && window != "week" {
		window = "week"
	}
	return c.get(ctx, "/trending/movie/"+window, pageQuery(page))
}

// Search runs a text search with optional filters.
func (c *Client) Search(ctx context.Context, query string, page int, filters Filters) (json.RawMessage, error) {
	q := pageQuery(page)
	q.Set("query", query)
	q.Set("include_adult", "false")
	filters.apply(q)
	return c.get(ctx, "/search/movie", q)
}

// Discover lists movies matching the filters, sorted by popularity by default.
func (c *Client) Discover(ctx context.Context, filters Filters, page int) (json.RawMessage, error) {
	q := pageQuery(page)
	q.Set("include_adult", "false")
	if filters.SortBy == "" {
		filters.SortBy = "popularity.desc"
	}
	filters.apply(q)
	return c.get(ctx, "/discover/movie", q)
}

// Genres fetches the movie genre catalog.
func (c *Client) Genres(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/genre/movie/list", url.Values{})
}

// ImageURL builds a full poster URL for a TMDB image path.
func (c *Client) ImageURL(path, size string) string {
	if path == "" {
		return ""
	}
	if size == "" {
		size = "w500"
	}
	return c.imageBase + "/" + size + path
}

func pageQuery(page int) url.Values {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	return q
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	query.Set("language", c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build tmdb request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return nil, fmt.Errorf("%w: GET %s: %v", apperr.ErrUpstreamTimeout, path, err)
		}
		return nil, fmt.Errorf("%w: GET %s: %v", apperr.ErrUpstream, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", apperr.ErrUpstream, path, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperr.ErrMovieNotFound
	default:
		log.WithFields(log.Fields{"path": path, "status": resp.StatusCode}).Warn("tmdb request failed")
		return nil, fmt.Errorf("%w: GET %s: status %d", apperr.ErrUpstream, path, resp.StatusCode)
	}
}
