package workers

import (
	"context"
	"log"
	"time"

	"wordle-arena/models"

	"gorm.io/gorm"
)

// PollAbandonedGames periodically closes games that were started but never
// finished: anything still incomplete maxAge after StartTime is marked lost.
// The UPDATE is guarded on result = 'incomplete', so a game that finishes
// between the scan and the write is left alone.
func PollAbandonedGames(ctx context.Context, db *gorm.DB, pollInterval, maxAge time.Duration) {
	log.Println("Starting abandoned game reaper...")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Abandoned game reaper stopped.")
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-maxAge)
			now := time.Now()

			res := db.Model(&models.Game{}).
				Where("result = ? AND start_time < ?", models.ResultIncomplete, cutoff).
				Updates(map[string]interface{}{
					"result":   models.ResultLost,
					"end_time": now,
				})
			if res.Error != nil {
				log.Printf("❌ Reaper failed to close abandoned games: %v", res.Error)
				continue
			}
			if res.RowsAffected > 0 {
				log.Printf("🧹 Closed %d abandoned game(s) as lost", res.RowsAffected)
			}
		}
	}
}
