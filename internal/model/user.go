package model

import "time"

// User represents an authenticated user in the system.
type User struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	Name            string     `json:"name" gorm:"size:255;not null"`
	Email           string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash    string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Bio             *string    `json:"bio,omitempty" gorm:"size:1000"`
	Avatar          *string    `json:"avatar,omitempty" gorm:"size:255"` // Stored file name, not a URL
	BirthDate       *time.Time `json:"birth_date,omitempty" gorm:"type:date"`
	FavoriteGenre   *string    `json:"favorite_genre,omitempty" gorm:"size:100"`
	IsPublicProfile bool       `json:"is_public_profile" gorm:"default:true"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Relations
	Lists []MovieList `json:"lists,omitempty" gorm:"foreignKey:UserID"`
}
