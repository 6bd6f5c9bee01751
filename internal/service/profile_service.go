package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperr "cinelist/internal/errors"
	"cinelist/internal/model"
	"cinelist/internal/repository"
)

const (
	maxProfileNameLen = 255
	maxBioLen         = 1000
	maxGenreLen       = 100
	recentMovieCount  = 5
)

// AvatarStore abstracts avatar asset storage.
type AvatarStore interface {
	Save(userID uint, r io.Reader) (string, error)
	Delete(name string) error
	URL(name string) string
}

// ProfileView is the owner-facing shape of a profile.
type ProfileView struct {
	ID              uint       `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Avatar          *string    `json:"avatar,omitempty"`
	AvatarURL       string     `json:"avatar_url,omitempty"`
	Bio             *string    `json:"bio,omitempty"`
	BirthDate       *time.Time `json:"birth_date,omitempty"`
	FavoriteGenre   *string    `json:"favorite_genre,omitempty"`
	IsPublicProfile bool       `json:"is_public_profile"`
	CreatedAt       time.Time  `json:"created_at"`
}

// RecentMovie is a thin slice of a list item shown on public profiles.
type RecentMovie struct {
	Title       string           `json:"title"`
	PosterPath  *string          `json:"poster_path,omitempty"`
	VoteAverage *decimal.Decimal `json:"vote_average,omitempty"`
}

// PublicProfileList summarizes one public list on a public profile.
type PublicProfileList struct {
	ID           uint          `json:"id"`
	Name         string        `json:"name"`
	Description  *string       `json:"description,omitempty"`
	ItemsCount   int           `json:"items_count"`
	CreatedAt    time.Time     `json:"created_at"`
	RecentMovies []RecentMovie `json:"recent_movies,omitempty"`
}

// PublicProfileView is what anyone may see of a public profile.
type PublicProfileView struct {
	ID            uint                `json:"id"`
	Name          string              `json:"name"`
	Avatar        *string             `json:"avatar,omitempty"`
	AvatarURL     string              `json:"avatar_url,omitempty"`
	Bio           *string             `json:"bio,omitempty"`
	FavoriteGenre *string             `json:"favorite_genre,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	PublicLists   []PublicProfileList `json:"public_lists"`
}

// UserRef identifies the owner alongside their public lists.
type UserRef struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// UpdateProfileInput carries user-editable profile fields. Avatar is nil when
// no new image was uploaded.
type UpdateProfileInput struct {
	Name            string
	Bio             *string
	BirthDate       *time.Time
	FavoriteGenre   *string
	IsPublicProfile bool
	Avatar          io.Reader
}

// ProfileService manages user-editable profile fields and avatar assets.
type ProfileService interface {
	Profile(ctx context.Context, userID uint) (*ProfileView, error)
	UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*ProfileView, error)
	ChangePassword(ctx context.Context, userID uint, current, newPassword string) error
	DeleteAvatar(ctx context.Context, userID uint) error
	PublicProfile(ctx context.Context, userID uint) (*PublicProfileView, error)
	UserPublicLists(ctx context.Context, userID uint) ([]PublicProfileList, *UserRef, error)
}

type profileService struct {
	users   repository.UserRepository
	lists   repository.ListRepository
	avatars AvatarStore
}

// NewProfileService creates a new profile service.
func NewProfileService(users repository.UserRepository, lists repository.ListRepository, avatars AvatarStore) ProfileService {
	return &profileService{users: users, lists: lists, avatars: avatars}
}

func (s *profileService) profileView(user *model.User) *ProfileView {
	view := &ProfileView{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		Avatar:          user.Avatar,
		Bio:             user.Bio,
		BirthDate:       user.BirthDate,
		FavoriteGenre:   user.FavoriteGenre,
		IsPublicProfile: user.IsPublicProfile,
		CreatedAt:       user.CreatedAt,
	}
	if user.Avatar != nil {
		view.AvatarURL = s.avatars.URL(*user.Avatar)
	}
	return view
}

// Profile returns the requester's own profile.
func (s *profileService) Profile(ctx context.Context, userID uint) (*ProfileView, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.profileView(user), nil
}

func validateProfileInput(in UpdateProfileInput) error {
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", apperr.ErrValidation)
	}
	if len(in.Name) > maxProfileNameLen {
		return fmt.Errorf("%w: name exceeds %d characters", apperr.ErrValidation, maxProfileNameLen)
	}
	if in.Bio != nil && len(*in.Bio) > maxBioLen {
		return fmt.Errorf("%w: bio exceeds %d characters", apperr.ErrValidation, maxBioLen)
	}
	if in.FavoriteGenre != nil && len(*in.FavoriteGenre) > maxGenreLen {
		return fmt.Errorf("%w: favorite genre exceeds %d characters", apperr.ErrValidation, maxGenreLen)
	}
	if in.BirthDate != nil && !in.BirthDate.Before(time.Now()) {
		return fmt.Errorf("%w: birth date must be in the past", apperr.ErrValidation)
	}
	return nil
}

// UpdateProfile applies profile changes and, when a new avatar is uploaded,
// replaces the stored asset. The old file is deleted before the new one is
// written, which avoids orphaned duplicates at the cost of losing the avatar
// if the new write fails.
func (s *profileService) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*ProfileView, error) {
	if err := validateProfileInput(in); err != nil {
		return nil, err
	}
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Avatar != nil {
		if user.Avatar != nil {
			if err := s.avatars.Delete(*user.Avatar); err != nil {
				return nil, err
			}
			user.Avatar = nil
		}
		name, err := s.avatars.Save(userID, in.Avatar)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperr.ErrValidation, err)
		}
		user.Avatar = &name
	}

	user.Name = in.Name
	user.Bio = in.Bio
	user.BirthDate = in.BirthDate
	user.FavoriteGenre = in.FavoriteGenre
	user.IsPublicProfile = in.IsPublicProfile

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return s.profileView(user), nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *profileService) ChangePassword(ctx context.Context, userID uint, current, newPassword string) error {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return apperr.ErrInvalidCredential
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hashed)
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// DeleteAvatar removes the stored asset and clears the reference.
func (s *profileService) DeleteAvatar(ctx context.Context, userID uint) error {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.Avatar != nil {
		if err := s.avatars.Delete(*user.Avatar); err != nil {
			return err
		}
		user.Avatar = nil
		if err := s.users.Update(ctx, user); err != nil {
			return fmt.Errorf("clear avatar: %w", err)
		}
	}
	return nil
}

// PublicProfile returns a user's public profile with their public lists and a
// preview of recently added movies. Private profiles surface as not found.
func (s *profileService) PublicProfile(ctx context.Context, userID uint) (*PublicProfileView, error) {
	user, err := s.users.FindPublicProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, fmt.Errorf("find public profile: %w", err)
	}

	lists, err := s.lists.PublicListsByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("public lists by owner: %w", err)
	}

	view := &PublicProfileView{
		ID:            user.ID,
		Name:          user.Name,
		Avatar:        user.Avatar,
		Bio:           user.Bio,
		FavoriteGenre: user.FavoriteGenre,
		CreatedAt:     user.CreatedAt,
		PublicLists:   make([]PublicProfileList, 0, len(lists)),
	}
	if user.Avatar != nil {
		view.AvatarURL = s.avatars.URL(*user.Avatar)
	}
	for _, list := range lists {
		view.PublicLists = append(view.PublicLists, publicProfileList(list, true))
	}
	return view, nil
}

// UserPublicLists returns the public lists of a user with a public profile.
func (s *profileService) UserPublicLists(ctx context.Context, userID uint) ([]PublicProfileList, *UserRef, error) {
	user, err := s.users.FindPublicProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("find public profile: %w", err)
	}

	lists, err := s.lists.PublicListsByOwner(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("public lists by owner: %w", err)
	}

	summaries := make([]PublicProfileList, 0, len(lists))
	for _, list := range lists {
		summaries = append(summaries, publicProfileList(list, false))
	}

	ref := &UserRef{ID: user.ID, Name: user.Name}
	if user.Avatar != nil {
		ref.AvatarURL = s.avatars.URL(*user.Avatar)
	}
	return summaries, ref, nil
}

func publicProfileList(list model.MovieList, withRecent bool) PublicProfileList {
	summary := PublicProfileList{
		ID:          list.ID,
		Name:        list.Name,
		Description: list.Description,
		ItemsCount:  len(list.Items),
		CreatedAt:   list.CreatedAt,
	}
	if withRecent {
		for i, item := range list.Items {
			if i >= recentMovieCount {
				break
			}
			summary.RecentMovies = append(summary.RecentMovies, RecentMovie{
				Title:       item.MovieTitle,
				PosterPath:  item.MoviePosterPath,
				VoteAverage: item.MovieVoteAverage,
			})
		}
	}
	return summary
}

func (s *profileService) findUser(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
