package scoring

import (
	"testing"
	"time"
)

var statsEpoch = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// rec builds a record day days after the epoch, so chronological order is
// explicit in every test case.
func rec(day int, result Result, guesses, maxGuesses int) GameRecord {
	return GameRecord{
		Result:     result,
		GuessCount: guesses,
		MaxGuesses: maxGuesses,
		StartTime:  statsEpoch.AddDate(0, 0, day),
	}
}

func TestStats_EmptyInput(t *testing.T) {
	var games []GameRecord

	if got := TotalWins(games); got != 0 {
		t.Errorf("TotalWins(empty) = %d, want 0", got)
	}
	if got := LongestWinStreak(games); got != 0 {
		t.Errorf("LongestWinStreak(empty) = %d, want 0", got)
	}
	if got := CurrentRunningStreak(games); got != 0 {
		t.Errorf("CurrentRunningStreak(empty) = %d, want 0", got)
	}
	if got := AverageGuessCount(games); got != 0 {
		t.Errorf("AverageGuessCount(empty) = %v, want 0", got)
	}
	if got := AccuracyRate(games); got != 0 {
		t.Errorf("AccuracyRate(empty) = %v, want 0", got)
	}
	if got := Points(games); got != 0 {
		t.Errorf("Points(empty) = %d, want 0", got)
	}
}

func TestLongestWinStreak_OrderInsensitive(t *testing.T) {
	// Chronological results: W W L W W W → longest 3.
	games := []GameRecord{
		rec(3, ResultWon, 3, 5),
		rec(0, ResultWon, 3, 5),
		rec(5, ResultWon, 3, 5),
		rec(2, ResultLost, 5, 5),
		rec(4, ResultWon, 3, 5),
		rec(1, ResultWon, 3, 5),
	}

	if got := LongestWinStreak(games); got != 3 {
		t.Errorf("LongestWinStreak = %d, want 3", got)
	}
	// The input slice must come back untouched.
	if games[0].StartTime != statsEpoch.AddDate(0, 0, 3) {
		t.Error("LongestWinStreak mutated its input")
	}
}

func TestLongestWinStreak_IncompleteBreaksStreak(t *testing.T) {
	games := []GameRecord{
		rec(0, ResultWon, 3, 5),
		rec(1, ResultWon, 3, 5),
		rec(2, ResultIncomplete, 1, 5),
		rec(3, ResultWon, 3, 5),
	}

	if got := LongestWinStreak(games); got != 2 {
		t.Errorf("LongestWinStreak = %d, want 2 (incomplete breaks the streak)", got)
	}
	if got := CurrentRunningStreak(games); got != 1 {
		t.Errorf("CurrentRunningStreak = %d, want 1", got)
	}
}

func TestCurrentRunningStreak(t *testing.T) {
	tests := []struct {
		name  string
		games []GameRecord
		want  int
	}{
		{"ends on wins", []GameRecord{
			rec(0, ResultLost, 5, 5), rec(1, ResultWon, 3, 5), rec(2, ResultWon, 2, 5),
		}, 2},
		{"ends on loss", []GameRecord{
			rec(0, ResultWon, 3, 5), rec(1, ResultWon, 3, 5), rec(2, ResultLost, 5, 5),
		}, 0},
		{"all wins", []GameRecord{
			rec(0, ResultWon, 3, 5), rec(1, ResultWon, 3, 5),
		}, 2},
	}

	for _, tt := range tests {
		if got := CurrentRunningStreak(tt.games); got != tt.want {
			t.Errorf("%s: CurrentRunningStreak = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestLongestAtLeastCurrent(t *testing.T) {
	histories := [][]GameRecord{
		nil,
		{rec(0, ResultWon, 3, 5)},
		{rec(0, ResultLost, 5, 5), rec(1, ResultWon, 3, 5)},
		{rec(0, ResultWon, 1, 5), rec(1, ResultWon, 2, 5), rec(2, ResultLost, 5, 5), rec(3, ResultWon, 3, 5)},
		{rec(0, ResultIncomplete, 0, 5), rec(1, ResultWon, 2, 5), rec(2, ResultWon, 2, 5)},
	}

	for i, games := range histories {
		longest, current := LongestWinStreak(games), CurrentRunningStreak(games)
		if longest < current {
			t.Errorf("history %d: LongestWinStreak (%d) < CurrentRunningStreak (%d)", i, longest, current)
		}
	}
}

func TestAverageAndAccuracy(t *testing.T) {
	games := []GameRecord{
		rec(0, ResultWon, 2, 5),
		rec(1, ResultWon, 4, 5),
		rec(2, ResultLost, 5, 5),
		rec(3, ResultLost, 5, 5),
	}

	if got := AverageGuessCount(games); got != 4 {
		t.Errorf("AverageGuessCount = %v, want 4", got)
	}
	if got := AccuracyRate(games); got != 50 {
		t.Errorf("AccuracyRate = %v, want 50", got)
	}
	if got := TotalWins(games); got != 2 {
		t.Errorf("TotalWins = %d, want 2", got)
	}
}

func TestPoints_Vectors(t *testing.T) {
	tests := []struct {
		name  string
		games []GameRecord
		want  int
	}{
		{"no games", nil, 0},
		{"loss scores nothing", []GameRecord{rec(0, ResultLost, 5, 5)}, 0},
		// 10 base + 6 attempt bonus; 3 > 5/2 so no quick-solve bonus.
		{"single win, three guesses", []GameRecord{rec(0, ResultWon, 3, 5)}, 16},
		// 10 base + 10 attempt bonus + 5 quick-solve (1 <= 2).
		{"single win, one guess", []GameRecord{rec(0, ResultWon, 1, 5)}, 25},
		// Five wins at five guesses each: 12 per game, +5 from the third win,
		// another +10 from the fifth. 12+12+17+17+27.
		{"streak bonuses", []GameRecord{
			rec(0, ResultWon, 5, 5),
			rec(1, ResultWon, 5, 5),
			rec(2, ResultWon, 5, 5),
			rec(3, ResultWon, 5, 5),
			rec(4, ResultWon, 5, 5),
		}, 85},
		// Loss resets the streak: 14+14 (streak 1,2) + 0 + 14 (streak back to 1).
		{"loss resets streak", []GameRecord{
			rec(0, ResultWon, 4, 5),
			rec(1, ResultWon, 4, 5),
			rec(2, ResultLost, 5, 5),
			rec(3, ResultWon, 4, 5),
		}, 42},
		// Incomplete behaves like a loss for scoring.
		{"incomplete resets streak", []GameRecord{
			rec(0, ResultWon, 4, 5),
			rec(1, ResultWon, 4, 5),
			rec(2, ResultIncomplete, 2, 5),
			rec(3, ResultWon, 4, 5),
		}, 42},
		// Ten-guess budget: 5 guesses earns +2 attempt bonus and the +5
		// quick-solve bonus since 5 <= 10/2.
		{"quick solve with large budget", []GameRecord{rec(0, ResultWon, 5, 10)}, 17},
		// Six or more guesses wins the game but earns no attempt bonus.
		{"win with six guesses", []GameRecord{rec(0, ResultWon, 6, 10)}, 10},
	}

	for _, tt := range tests {
		if got := Points(tt.games); got != tt.want {
			t.Errorf("%s: Points = %d, want %d", tt.name, got, tt.want)
		}
	}
}

// Appending more streak-eligible wins never lowers the score.
func TestPoints_MonotonicUnderAppendedWins(t *testing.T) {
	games := []GameRecord{
		rec(0, ResultWon, 2, 5),
		rec(1, ResultLost, 5, 5),
	}
	prev := Points(games)

	for day := 2; day < 12; day++ {
		games = append(games, rec(day, ResultWon, 3, 5))
		got := Points(games)
		if got < prev {
			t.Fatalf("Points dropped from %d to %d after appending a win on day %d", prev, got, day)
		}
		prev = got
	}
}
