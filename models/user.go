// models/user.go
package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID       string `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"uniqueIndex;not null"` // stored lower-case
	Email    string `json:"email,omitempty" gorm:"uniqueIndex;not null"`
	FullName string `json:"full_name"`

	ProfilePictureURL string `json:"profile_picture_url"`
	// Object key (or local path) backing ProfilePictureURL, kept so the old
	// object can be deleted when the avatar changes.
	ProfilePictureKey string `json:"-"`

	// Never serialized — bcrypt hash and the currently valid refresh token.
	PasswordHash string `json:"-" gorm:"not null"`
	RefreshToken string `json:"-"`

	// When true, the user's own stats include their private games.
	// Never affects what other users see.
	StatsUsingPrivate bool `json:"stats_using_private" gorm:"default:false"`

	Games []Game `json:"games,omitempty" gorm:"foreignKey:PlayerID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// PublicProfile is the shape returned to other users — no email, no tokens.
type PublicProfile struct {
	ID                string `json:"id"`
	Username          string `json:"username"`
	FullName          string `json:"full_name"`
	ProfilePictureURL string `json:"profile_picture_url"`
}

func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:                u.ID,
		Username:          u.Username,
		FullName:          u.FullName,
		ProfilePictureURL: u.ProfilePictureURL,
	}
}
