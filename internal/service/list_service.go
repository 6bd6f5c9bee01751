package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperr "cinelist/internal/errors"
	"cinelist/internal/model"
	"cinelist/internal/repository"
	"cinelist/internal/tmdb"
)

const (
	maxListNameLen    = 255
	maxDescriptionLen = 1000
	maxNotesLen       = 1000
)

// MetadataGateway is the slice of the TMDB client the list service uses to
// snapshot movie data.
type MetadataGateway interface {
	MovieDetails(ctx context.Context, movieID int) (*tmdb.Movie, error)
	ImageURL(path, size string) string
}

// ListSummary is the owner-facing shape of a list without its items.
type ListSummary struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	IsPublic    bool      `json:"is_public"`
	ItemsCount  int       `json:"items_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PublicListSummary is the shape of a public list joined with its owner's name.
type PublicListSummary struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	User        string    `json:"user"`
	ItemsCount  int       `json:"items_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// ItemView is one snapshotted movie inside a list detail.
type ItemView struct {
	ID               uint             `json:"id"`
	TMDBMovieID      int              `json:"tmdb_movie_id"`
	MovieTitle       string           `json:"movie_title"`
	MoviePosterPath  *string          `json:"movie_poster_path,omitempty"`
	PosterURL        string           `json:"poster_url,omitempty"`
	MovieOverview    *string          `json:"movie_overview,omitempty"`
	MovieReleaseDate *time.Time       `json:"movie_release_date,omitempty"`
	ReleaseYear      string           `json:"release_year,omitempty"`
	MovieVoteAverage *decimal.Decimal `json:"movie_vote_average,omitempty"`
	UserNotes        *string          `json:"user_notes,omitempty"`
	AddedAt          time.Time        `json:"added_at"`
}

// ListDetail is a fully materialized list with its items.
type ListDetail struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	IsPublic    bool       `json:"is_public"`
	User        string     `json:"user"`
	IsOwner     bool       `json:"is_owner"`
	Items       []ItemView `json:"items"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ListInput carries validated create/update fields for a list.
type ListInput struct {
	Name        string
	Description *string
	IsPublic    bool
}

// ListService orchestrates list and item operations. It is the only component
// that talks to the metadata gateway; everything it stores is a snapshot.
type ListService interface {
	ListsForOwner(ctx context.Context, ownerID uint) ([]ListSummary, error)
	PublicLists(ctx context.Context) ([]PublicListSummary, error)
	GetList(ctx context.Context, id, requesterID uint) (*ListDetail, error)
	CreateList(ctx context.Context, ownerID uint, in ListInput) (*model.MovieList, error)
	UpdateList(ctx context.Context, id, ownerID uint, in ListInput) (*model.MovieList, error)
	DeleteList(ctx context.Context, id, ownerID uint) error
	AddMovie(ctx context.Context, ownerID, listID uint, tmdbMovieID int, notes *string) (*model.MovieListItem, error)
	RemoveMovie(ctx context.Context, ownerID, listID, itemID uint) error
	UpdateNotes(ctx context.Context, ownerID, listID, itemID uint, notes *string) (*model.MovieListItem, error)
}

type listService struct {
	lists   repository.ListRepository
	gateway MetadataGateway
}

// NewListService creates a new list service.
func NewListService(lists repository.ListRepository, gateway MetadataGateway) ListService {
	return &listService{lists: lists, gateway: gateway}
}

// ListsForOwner returns summaries of every list owned by the user.
func (s *listService) ListsForOwner(ctx context.Context, ownerID uint) ([]ListSummary, error) {
	lists, err := s.lists.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list by owner: %w", err)
	}
	summaries := make([]ListSummary, 0, len(lists))
	for _, list := range lists {
		summaries = append(summaries, ListSummary{
			ID:          list.ID,
			Name:        list.Name,
			Description: list.Description,
			IsPublic:    list.IsPublic,
			ItemsCount:  len(list.Items),
			CreatedAt:   list.CreatedAt,
			UpdatedAt:   list.UpdatedAt,
		})
	}
	return summaries, nil
}

// PublicLists returns summaries of all public lists, newest first.
func (s *listService) PublicLists(ctx context.Context) ([]PublicListSummary, error) {
	lists, err := s.lists.PublicLists(ctx)
	if err != nil {
		return nil, fmt.Errorf("public lists: %w", err)
	}
	summaries := make([]PublicListSummary, 0, len(lists))
	for _, list := range lists {
		owner := ""
		if list.User != nil {
			owner = list.User.Name
		}
		summaries = append(summaries, PublicListSummary{
			ID:          list.ID,
			Name:        list.Name,
			Description: list.Description,
			User:        owner,
			ItemsCount:  len(list.Items),
			CreatedAt:   list.CreatedAt,
		})
	}
	return summaries, nil
}

// GetList returns a list with its items if the requester may see it: the
// owner always, anyone else only when the list is public.
func (s *listService) GetList(ctx context.Context, id, requesterID uint) (*ListDetail, error) {
	list, err := s.lists.FindVisible(ctx, id, requesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrListNotFound
		}
		return nil, fmt.Errorf("find list: %w", err)
	}

	owner := ""
	if list.User != nil {
		owner = list.User.Name
	}
	detail := &ListDetail{
		ID:          list.ID,
		Name:        list.Name,
		Description: list.Description,
		IsPublic:    list.IsPublic,
		User:        owner,
		IsOwner:     list.UserID == requesterID,
		Items:       make([]ItemView, 0, len(list.Items)),
		CreatedAt:   list.CreatedAt,
		UpdatedAt:   list.UpdatedAt,
	}
	for _, item := range list.Items {
		detail.Items = append(detail.Items, s.itemView(item))
	}
	return detail, nil
}

func (s *listService) itemView(item model.MovieListItem) ItemView {
	posterURL := ""
	if item.MoviePosterPath != nil {
		posterURL = s.gateway.ImageURL(*item.MoviePosterPath, "")
	}
	return ItemView{
		ID:               item.ID,
		TMDBMovieID:      item.TMDBMovieID,
		MovieTitle:       item.MovieTitle,
		MoviePosterPath:  item.MoviePosterPath,
		PosterURL:        posterURL,
		MovieOverview:    item.MovieOverview,
		MovieReleaseDate: item.MovieReleaseDate,
		ReleaseYear:      item.ReleaseYear(),
		MovieVoteAverage: item.MovieVoteAverage,
		UserNotes:        item.UserNotes,
		AddedAt:          item.CreatedAt,
	}
}

func validateListInput(in ListInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", apperr.ErrValidation)
	}
	if len(name) > maxListNameLen {
		return fmt.Errorf("%w: name exceeds %d characters", apperr.ErrValidation, maxListNameLen)
	}
	if in.Description != nil && len(*in.Description) > maxDescriptionLen {
		return fmt.Errorf("%w: description exceeds %d characters", apperr.ErrValidation, maxDescriptionLen)
	}
	return nil
}

// CreateList validates and stores a new list for the owner.
func (s *listService) CreateList(ctx context.Context, ownerID uint, in ListInput) (*model.MovieList, error) {
	if err := validateListInput(in); err != nil {
		return nil, err
	}
	list := &model.MovieList{
		UserID:      ownerID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		IsPublic:    in.IsPublic,
	}
	if err := s.lists.Create(ctx, list); err != nil {
		return nil, fmt.Errorf("create list: %w", err)
	}
	return list, nil
}

// UpdateList validates and applies name/description/visibility changes,
// owner only.
func (s *listService) UpdateList(ctx context.Context, id, ownerID uint, in ListInput) (*model.MovieList, error) {
	if err := validateListInput(in); err != nil {
		return nil, err
	}
	list, err := s.findOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	list.Name = strings.TrimSpace(in.Name)
	list.Description = in.Description
	list.IsPublic = in.IsPublic
	if err := s.lists.Update(ctx, list); err != nil {
		return nil, fmt.Errorf("update list: %w", err)
	}
	return list, nil
}

// DeleteList removes a list and all of its items, owner only.
func (s *listService) DeleteList(ctx context.Context, id, ownerID uint) error {
	list, err := s.findOwned(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if err := s.lists.Delete(ctx, list); err != nil {
		return fmt.Errorf("delete list: %w", err)
	}
	return nil
}

// AddMovie snapshots a TMDB movie into the owner's list. A failed metadata
// fetch aborts the operation before anything is written.
func (s *listService) AddMovie(ctx context.Context, ownerID, listID uint, tmdbMovieID int, notes *string) (*model.MovieListItem, error) {
	if notes != nil && len(*notes) > maxNotesLen {
		return nil, fmt.Errorf("%w: notes exceed %d characters", apperr.ErrValidation, maxNotesLen)
	}

	list, err := s.findOwned(ctx, listID, ownerID)
	if err != nil {
		return nil, err
	}

	movie, err := s.gateway.MovieDetails(ctx, tmdbMovieID)
	if err != nil {
		return nil, err
	}

	item := &model.MovieListItem{
		MovieListID: list.ID,
		TMDBMovieID: tmdbMovieID,
		MovieTitle:  movie.Title,
		UserNotes:   notes,
	}
	if movie.PosterPath != "" {
		item.MoviePosterPath = &movie.PosterPath
	}
	if movie.Overview != "" {
		item.MovieOverview = &movie.Overview
	}
	if movie.ReleaseDate != "" {
		if released, err := time.Parse("2006-01-02", movie.ReleaseDate); err == nil {
			item.MovieReleaseDate = &released
		}
	}
	vote := decimal.NewFromFloat(movie.VoteAverage).Round(1)
	item.MovieVoteAverage = &vote

	if err := s.lists.AddItem(ctx, item); err != nil {
		if errors.Is(err, apperr.ErrDuplicateItem) {
			return nil, apperr.ErrDuplicateItem
		}
		return nil, fmt.Errorf("add item: %w", err)
	}
	return item, nil
}

// RemoveMovie deletes an item from the owner's list. The item is addressed by
// (listID, itemID) so an item ID alone can never reach another list.
func (s *listService) RemoveMovie(ctx context.Context, ownerID, listID, itemID uint) error {
	list, err := s.findOwned(ctx, listID, ownerID)
	if err != nil {
		return err
	}
	if err := s.lists.RemoveItem(ctx, list.ID, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrItemNotFound
		}
		return fmt.Errorf("remove item: %w", err)
	}
	return nil
}

// UpdateNotes replaces the personal notes on an item in the owner's list.
func (s *listService) UpdateNotes(ctx context.Context, ownerID, listID, itemID uint, notes *string) (*model.MovieListItem, error) {
	if notes != nil && len(*notes) > maxNotesLen {
		return nil, fmt.Errorf("%w: notes exceed %d characters", apperr.ErrValidation, maxNotesLen)
	}
	list, err := s.findOwned(ctx, listID, ownerID)
	if err != nil {
		return nil, err
	}
	item, err := s.lists.UpdateItemNotes(ctx, list.ID, itemID, notes)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrItemNotFound
		}
		return nil, fmt.Errorf("update notes: %w", err)
	}
	return item, nil
}

// findOwned resolves a list with a strict ownership check. A list owned by
// someone else surfaces as not found, same as an absent one.
func (s *listService) findOwned(ctx context.Context, id, ownerID uint) (*model.MovieList, error) {
	list, err := s.lists.FindOwned(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrListNotFound
		}
		return nil, fmt.Errorf("find owned list: %w", err)
	}
	return list, nil
}
