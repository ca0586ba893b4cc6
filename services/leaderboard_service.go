package services

import (
	"strconv"
	"time"

	"wordle-arena/apperrors"
	"wordle-arena/middleware"
	"wordle-arena/models"
	"wordle-arena/scoring"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type LeaderboardService struct {
	DB    *gorm.DB
	Cache *LeaderboardCache
}

func NewLeaderboardService(db *gorm.DB, cache *LeaderboardCache) *LeaderboardService {
	return &LeaderboardService{DB: db, Cache: cache}
}

// GetLeaderboard ranks all players by one metric over one time frame.
// GET /leaderboard/:timeFrame/:metric?page=N
//
// Inputs are validated before any data access. Only public games count
// toward the ranking, except that an authenticated caller's own private
// games count toward their own row. Anonymous requests — identical for
// every caller — are served through the Redis cache.
func (s *LeaderboardService) GetLeaderboard(c *fiber.Ctx) error {
	tf, err := scoring.ParseTimeFrame(c.Params("timeFrame"))
	if err != nil {
		return apperrors.Respond(c, err)
	}
	metric, err := scoring.ParseMetric(c.Params("metric"))
	if err != nil {
		return apperrors.Respond(c, err)
	}
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		return apperrors.Respond(c, apperrors.Validation("page must be a positive integer"))
	}

	callerID := middleware.CallerID(c)
	now := time.Now()

	if callerID == "" {
		if cached := s.Cache.Get(c.Context(), tf, metric, page); cached != nil {
			return c.JSON(cached)
		}
	}

	population, err := s.loadPopulation(callerID, tf, now)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load players"})
	}

	result, err := scoring.Rank(population, tf, metric, page, now)
	if err != nil {
		return apperrors.Respond(c, err)
	}

	if callerID == "" {
		s.Cache.Set(c.Context(), tf, metric, page, &result)
	}

	return c.JSON(result)
}

// loadPopulation builds every player's visible history, with games already
// narrowed to the requested window at the database so a year of history isn't
// dragged in to rank a single day. Population order is ascending user ID —
// the same order scoring.Rank uses to break ties.
func (s *LeaderboardService) loadPopulation(callerID string, tf scoring.TimeFrame, now time.Time) ([]scoring.PlayerHistory, error) {
	var users []models.User
	q := s.DB.Order("id ASC").Preload("Games", func(db *gorm.DB) *gorm.DB {
		db = db.Where("result <> ?", models.ResultIncomplete)
		if callerID == "" {
			db = db.Where("private_game = false")
		} else {
			db = db.Where("private_game = false OR player_id = ?", callerID)
		}
		if start, end, bounded := tf.Window(now); bounded {
			db = db.Where("start_time >= ? AND start_time < ?", start, end)
		}
		return db.Preload("Guesses")
	})
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}

	population := make([]scoring.PlayerHistory, len(users))
	for i, u := range users {
		population[i] = scoring.PlayerHistory{
			PlayerID:          u.ID,
			Username:          u.Username,
			ProfilePictureURL: u.ProfilePictureURL,
			Games:             GameRecords(u.Games),
		}
	}
	return population, nil
}
