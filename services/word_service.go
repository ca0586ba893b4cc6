// services/word_service.go
package services

import (
	"errors"
	"log"
	"time"

	"wordle-arena/models"
	"wordle-arena/words"

	"github.com/go-co-op/gocron/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const dayFormat = "2006-01-02"

type WordService struct {
	DB *gorm.DB
}

func NewWordService(db *gorm.DB) *WordService {
	return &WordService{DB: db}
}

// EnsureToday returns the daily word for now's UTC date, picking one if the
// rotation job hasn't run yet. The insert is upsert-on-conflict so two
// concurrent callers on a fresh day agree on a single word.
func EnsureToday(db *gorm.DB, now time.Time) (*models.DailyWord, error) {
	day := now.UTC().Format(dayFormat)

	var daily models.DailyWord
	err := db.First(&daily, "day = ?", day).Error
	if err == nil {
		return &daily, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	previous := ""
	var yesterday models.DailyWord
	if err := db.First(&yesterday, "day = ?", now.UTC().AddDate(0, 0, -1).Format(dayFormat)).Error; err == nil {
		previous = yesterday.Word
	}

	daily = models.DailyWord{
		ID:   uuid.NewString(),
		Word: words.RandomExcept(previous),
		Day:  day,
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "day"}},
		DoNothing: true,
	}).Create(&daily).Error; err != nil {
		return nil, err
	}

	// Re-read in case a concurrent insert won the conflict.
	if err := db.First(&daily, "day = ?", day).Error; err != nil {
		return nil, err
	}
	return &daily, nil
}

// GetDailyChallenge returns today's challenge metadata — the day and the word
// length, never the word itself.
func (s *WordService) GetDailyChallenge(c *fiber.Ctx) error {
	daily, err := EnsureToday(s.DB, time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to resolve daily word"})
	}
	return c.JSON(fiber.Map{
		"day":         daily.Day,
		"word_length": len(daily.Word),
		"max_guesses": models.DefaultMaxGuesses,
	})
}

// StartDailyWordScheduler rotates the challenge word shortly after each UTC
// midnight.
func (s *WordService) StartDailyWordScheduler() {
	sched, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		log.Printf("[Scheduler] Failed to create scheduler: %v", err)
		return
	}
	sched.Start()

	if _, err := sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 0, 30))),
		gocron.NewTask(func() {
			daily, err := EnsureToday(s.DB, time.Now())
			if err != nil {
				log.Printf("[Scheduler] Failed to rotate daily word: %v", err)
				return
			}
			log.Printf("✅ Daily word rotated for %s", daily.Day)
		}),
	); err != nil {
		log.Printf("[Scheduler] Failed to schedule daily word rotation: %v", err)
	}
}
