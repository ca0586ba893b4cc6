// models/game.go
package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ResultIncomplete = "incomplete"
	ResultWon        = "won"
	ResultLost       = "lost"
)

const DefaultMaxGuesses = 5

type Game struct {
	ID         string `json:"id" gorm:"primaryKey"`
	Answer     string `json:"answer" gorm:"not null"`
	MaxGuesses int    `json:"max_guesses" gorm:"not null;default:5"`

	// Append-only move list, ordered by GameGuess.Order.
	Guesses []GameGuess `json:"guesses" gorm:"foreignKey:GameID"`

	// Nullable — anonymous games have no owner.
	PlayerID *string `json:"player_id" gorm:"index"`
	Player   *User   `json:"player,omitempty" gorm:"foreignKey:PlayerID"`

	// incomplete | won | lost — transitions at most once to a terminal value
	Result      string `json:"result" gorm:"default:'incomplete'"`
	PrivateGame bool   `json:"private_game" gorm:"default:false"`

	StartTime time.Time  `json:"start_time" gorm:"not null;index"`
	EndTime   *time.Time `json:"end_time"`                    // set only on the terminal transition
	TimeTaken int        `json:"time_taken" gorm:"default:0"` // seconds, forward-only while incomplete

	// Set when the game was started from the daily challenge word.
	DailyWordID *string `json:"daily_word_id,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// Finished reports whether the game has reached a terminal result.
func (g *Game) Finished() bool {
	return g.Result == ResultWon || g.Result == ResultLost
}

type GameGuess struct {
	ID     string `json:"id" gorm:"primaryKey"`
	GameID string `json:"game_id" gorm:"index;not null"`
	Word   string `json:"word" gorm:"not null"`

	// Per-letter verdict of this guess, JSON-encoded at insert time.
	Verdict string `json:"verdict"`

	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
}
