// scoring/stats.go
package scoring

import (
	"sort"
	"time"
)

// Result of a game as seen by the stats engine.
type Result string

const (
	ResultIncomplete Result = "incomplete"
	ResultWon        Result = "won"
	ResultLost       Result = "lost"
)

// GameRecord is the minimal view of a game the stats engine needs. Callers
// are responsible for privacy filtering before building records.
type GameRecord struct {
	Result     Result
	GuessCount int
	MaxGuesses int
	StartTime  time.Time
}

// byStartTime returns a copy of games sorted ascending by StartTime. The sort
// is stable so equal timestamps keep their input order; callers' slices are
// never mutated.
func byStartTime(games []GameRecord) []GameRecord {
	sorted := make([]GameRecord, len(games))
	copy(sorted, games)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})
	return sorted
}

// TotalWins counts games that ended in a win.
func TotalWins(games []GameRecord) int {
	wins := 0
	for _, g := range games {
		if g.Result == ResultWon {
			wins++
		}
	}
	return wins
}

// LongestWinStreak is the longest run of consecutive wins in chronological
// order. Anything other than a win — a loss or a still-incomplete game —
// breaks the streak.
func LongestWinStreak(games []GameRecord) int {
	maxStreak := 0
	streak := 0
	for _, g := range byStartTime(games) {
		if g.Result == ResultWon {
			streak++
			if streak > maxStreak {
				maxStreak = streak
			}
		} else {
			streak = 0
		}
	}
	return maxStreak
}

// CurrentRunningStreak counts consecutive wins ending at the most recent game.
func CurrentRunningStreak(games []GameRecord) int {
	sorted := byStartTime(games)
	streak := 0
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i].Result != ResultWon {
			break
		}
		streak++
	}
	return streak
}

// AverageGuessCount is the arithmetic mean of guesses per game, 0 when empty.
func AverageGuessCount(games []GameRecord) float64 {
	if len(games) == 0 {
		return 0
	}
	total := 0
	for _, g := range games {
		total += g.GuessCount
	}
	return float64(total) / float64(len(games))
}

// AccuracyRate is the percentage of games won, 0 when empty.
func AccuracyRate(games []GameRecord) float64 {
	if len(games) == 0 {
		return 0
	}
	return float64(TotalWins(games)) / float64(len(games)) * 100
}

// Points scores a player's history. Each win earns 10 base points plus an
// attempt bonus (1 guess → 10, 2 → 8, 3 → 6, 4 → 4, 5 → 2, more → 0) and a
// +5 quick-solve bonus when the win used at most half the guess budget.
// Wins extend a running streak: while the streak is at least 3 each win adds
// +5, and while it is at least 5 a further +10. A non-win scores nothing and
// resets the streak.
func Points(games []GameRecord) int {
	points := 0
	streak := 0

	for _, g := range byStartTime(games) {
		if g.Result != ResultWon {
			streak = 0
			continue
		}

		points += 10

		switch g.GuessCount {
		case 1:
			points += 10
		case 2:
			points += 8
		case 3:
			points += 6
		case 4:
			points += 4
		case 5:
			points += 2
		}

		if g.GuessCount <= g.MaxGuesses/2 {
			points += 5
		}

		streak++
		if streak >= 3 {
			points += 5
		}
		if streak >= 5 {
			points += 10
		}
	}

	return points
}
