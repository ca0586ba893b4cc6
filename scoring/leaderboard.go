// scoring/leaderboard.go
package scoring

import (
	"sort"
	"time"
)

// PageSize is the fixed leaderboard page size.
const PageSize = 10

// PlayerHistory is one player's identity plus their visible game records.
// The caller applies privacy filtering before building histories.
type PlayerHistory struct {
	PlayerID          string
	Username          string
	ProfilePictureURL string
	Games             []GameRecord
}

// Entry is one ranked row.
type Entry struct {
	PlayerID          string  `json:"player_id"`
	Username          string  `json:"username"`
	ProfilePictureURL string  `json:"profile_picture_url,omitempty"`
	Value             float64 `json:"value"`
}

// Page is one page of a ranked leaderboard.
type Page struct {
	Items        []Entry `json:"items"`
	Page         int     `json:"page"`
	TotalPages   int     `json:"total_pages"`
	TotalPlayers int     `json:"total_players"`
}

// Rank filters each player's games to the time frame resolved at now,
// computes the metric per player, sorts descending by value and returns the
// requested 1-indexed page. Equal values are ordered by ascending player ID
// so rankings are deterministic. A page past the end yields empty Items, not
// an error. Input data is never mutated.
func Rank(population []PlayerHistory, tf TimeFrame, metric Metric, page int, now time.Time) (Page, error) {
	if _, err := ParseTimeFrame(string(tf)); err != nil {
		return Page{}, err
	}
	if _, err := ParseMetric(string(metric)); err != nil {
		return Page{}, err
	}
	if page < 1 {
		page = 1
	}

	entries := make([]Entry, 0, len(population))
	for _, p := range population {
		var windowed []GameRecord
		for _, g := range p.Games {
			if tf.Contains(g.StartTime, now) {
				windowed = append(windowed, g)
			}
		}
		entries = append(entries, Entry{
			PlayerID:          p.PlayerID,
			Username:          p.Username,
			ProfilePictureURL: p.ProfilePictureURL,
			Value:             metric.Compute(windowed),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})

	totalPages := (len(entries) + PageSize - 1) / PageSize

	start := (page - 1) * PageSize
	if start > len(entries) {
		start = len(entries)
	}
	end := start + PageSize
	if end > len(entries) {
		end = len(entries)
	}

	return Page{
		Items:        entries[start:end],
		Page:         page,
		TotalPages:   totalPages,
		TotalPlayers: len(entries),
	}, nil
}
