package model

import "time"

// MovieList is a named collection of movie snapshots owned by exactly one user.
// UserID never changes after creation.
type MovieList struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description *string   `json:"description,omitempty" gorm:"size:1000"`
	IsPublic    bool      `json:"is_public" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	User  *User           `json:"-" gorm:"foreignKey:UserID"`
	Items []MovieListItem `json:"items,omitempty" gorm:"foreignKey:MovieListID;constraint:OnDelete:CASCADE"`
}
