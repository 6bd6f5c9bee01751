package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovieListItem is a point-in-time snapshot of one TMDB movie inside a list,
// plus the owner's personal notes. The snapshot is intentionally decoupled from
// live TMDB data so list contents stay stable if the catalog entry changes.
type MovieListItem struct {
	ID               uint             `json:"id" gorm:"primaryKey"`
	MovieListID      uint             `json:"movie_list_id" gorm:"not null;uniqueIndex:idx_list_movie"`
	TMDBMovieID      int              `json:"tmdb_movie_id" gorm:"not null;uniqueIndex:idx_list_movie"`
	MovieTitle       string           `json:"movie_title" gorm:"size:255;not null"`
	MoviePosterPath  *string          `json:"movie_poster_path,omitempty" gorm:"size:255"`
	MovieOverview    *string          `json:"movie_overview,omitempty" gorm:"type:text"`
	MovieReleaseDate *time.Time       `json:"movie_release_date,omitempty" gorm:"type:date"`
	MovieVoteAverage *decimal.Decimal `json:"movie_vote_average,omitempty" gorm:"type:decimal(3,1)"`
	UserNotes        *string          `json:"user_notes,omitempty" gorm:"type:text"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`

	// Relations
	MovieList *MovieList `json:"-" gorm:"foreignKey:MovieListID"`
}

// ReleaseYear returns the four digit release year or empty string.
func (i *MovieListItem) ReleaseYear() string {
	if i.MovieReleaseDate == nil {
		return ""
	}
	return i.MovieReleaseDate.Format("2006")
}
