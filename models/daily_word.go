// models/daily_word.go
package models

import "time"

// DailyWord is the challenge word for one calendar day.
// Day is the UTC date formatted as 2006-01-02.
type DailyWord struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Word      string    `json:"-" gorm:"not null"` // never serialized — that would spoil the puzzle
	Day       string    `json:"day" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}
