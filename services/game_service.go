package services

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"wordle-arena/apperrors"
	"wordle-arena/middleware"
	"wordle-arena/models"
	"wordle-arena/scoring"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GameService struct {
	DB *gorm.DB
}

func NewGameService(db *gorm.DB) *GameService {
	return &GameService{DB: db}
}

type createGameRequest struct {
	Answer     string `json:"answer"`
	MaxGuesses int    `json:"maxGuesses"`
	Daily      bool   `json:"daily"`
}

// CreateGame starts a new game. Logged-in callers own the game; anonymous
// callers get an unowned one. With daily=true the answer is today's challenge
// word instead of a client-supplied one.
func (s *GameService) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Respond(c, apperrors.Validation("invalid request body"))
	}

	game := &models.Game{
		ID:          uuid.NewString(),
		MaxGuesses:  req.MaxGuesses,
		Result:      models.ResultIncomplete,
		PrivateGame: false,
		StartTime:   time.Now(),
	}
	if game.MaxGuesses <= 0 {
		game.MaxGuesses = models.DefaultMaxGuesses
	}

	if req.Daily {
		daily, err := EnsureToday(s.DB, time.Now())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to resolve daily word"})
		}
		game.Answer = daily.Word
		game.DailyWordID = &daily.ID
	} else {
		if req.Answer == "" {
			return apperrors.Respond(c, apperrors.Validation("answer is required"))
		}
		game.Answer = strings.ToLower(req.Answer)
	}

	if callerID := middleware.CallerID(c); callerID != "" {
		game.PlayerID = &callerID
	}

	if err := s.DB.Create(game).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create game"})
	}

	return c.Status(fiber.StatusCreated).JSON(game)
}

type addMoveRequest struct {
	Guess string `json:"guess"`
}

type addMoveResponse struct {
	Game    *models.Game    `json:"game"`
	Verdict scoring.Verdict `json:"verdict"`
}

// AddMove evaluates a guess and appends it to the game's move list. The whole
// update runs in one transaction against a locked row whose predicate carries
// both identity and ownership, so concurrent moves against the same game
// serialize and a non-owner's move is rejected rather than ignored.
func (s *GameService) AddMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	callerID := middleware.CallerID(c)

	var req addMoveRequest
	if err := c.BodyParser(&req); err != nil || req.Guess == "" {
		return apperrors.Respond(c, apperrors.Validation("guess is required"))
	}

	var game models.Game
	var verdict scoring.Verdict

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		q := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", gameID)
		if callerID == "" {
			q = q.Where("player_id IS NULL")
		} else {
			q = q.Where("player_id IS NULL OR player_id = ?", callerID)
		}
		if err := q.First(&game).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Ownership failures fold into not-found so game IDs can't be probed.
				return apperrors.NotFound("game not found or you are not authorized to update this game")
			}
			return err
		}

		if game.Result != models.ResultIncomplete {
			return apperrors.Validation("game is already finished")
		}

		var guessCount int64
		if err := tx.Model(&models.GameGuess{}).Where("game_id = ?", game.ID).Count(&guessCount).Error; err != nil {
			return err
		}
		if int(guessCount) >= game.MaxGuesses {
			return apperrors.Validation("guess budget exhausted")
		}

		v, err := scoring.Evaluate(req.Guess, game.Answer)
		if err != nil {
			return err
		}
		verdict = v

		verdictJSON, err := json.Marshal(v)
		if err != nil {
			return err
		}
		move := models.GameGuess{
			ID:      uuid.NewString(),
			GameID:  game.ID,
			Word:    strings.ToLower(req.Guess),
			Verdict: string(verdictJSON),
			Order:   int(guessCount),
		}
		if err := tx.Create(&move).Error; err != nil {
			return err
		}

		// Terminal transition: a winning guess or an exhausted budget closes
		// the game and stamps EndTime exactly once.
		if v.AllCorrect() {
			now := time.Now()
			game.Result = models.ResultWon
			game.EndTime = &now
		} else if int(guessCount)+1 >= game.MaxGuesses {
			now := time.Now()
			game.Result = models.ResultLost
			game.EndTime = &now
		}
		if game.Finished() {
			if err := tx.Model(&models.Game{}).Where("id = ? AND result = ?", game.ID, models.ResultIncomplete).
				Updates(map[string]interface{}{"result": game.Result, "end_time": game.EndTime}).Error; err != nil {
				return err
			}
		}

		return tx.Preload("Guesses", func(db *gorm.DB) *gorm.DB {
			return db.Order("\"order\" ASC")
		}).First(&game, "id = ?", game.ID).Error
	})
	if err != nil {
		return apperrors.Respond(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(addMoveResponse{Game: &game, Verdict: verdict})
}

type claimGamesRequest struct {
	GameIDs []string `json:"gameIds"`
}

// ClaimGames associates anonymous games with the calling user, so games
// finished before logging in are kept. The predicate only matches ownerless
// games: an already-owned game can never be taken over, and two concurrent
// claims of the same game resolve to a single owner.
func (s *GameService) ClaimGames(c *fiber.Ctx) error {
	callerID := middleware.CallerID(c)

	var req claimGamesRequest
	if err := c.BodyParser(&req); err != nil || len(req.GameIDs) == 0 {
		return apperrors.Respond(c, apperrors.Validation("gameIds is required"))
	}

	res := s.DB.Model(&models.Game{}).
		Where("id IN ? AND player_id IS NULL", req.GameIDs).
		Update("player_id", callerID)
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to claim games"})
	}

	return c.JSON(fiber.Map{"claimed": res.RowsAffected})
}

// TogglePrivate flips a game's privacy flag. Single atomic UPDATE keyed on
// both the game ID and the owner, so the flip can't race with itself and a
// non-owner never succeeds.
func (s *GameService) TogglePrivate(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	callerID := middleware.CallerID(c)

	res := s.DB.Model(&models.Game{}).
		Where("id = ? AND player_id = ?", gameID, callerID).
		Update("private_game", gorm.Expr("NOT private_game"))
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to toggle privacy"})
	}
	if res.RowsAffected == 0 {
		return apperrors.Respond(c, apperrors.NotFound("game not found or you are not authorized to update this game"))
	}

	var game models.Game
	if err := s.DB.First(&game, "id = ?", gameID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load game"})
	}
	return c.JSON(game)
}

type updateTimeTakenRequest struct {
	LatestTimeTaken int `json:"latestTimeTaken"`
}

// UpdateTimeTaken records elapsed play time. Only while the game is still
// incomplete, and only forward — a stale client can't rewind the clock.
func (s *GameService) UpdateTimeTaken(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	callerID := middleware.CallerID(c)

	var req updateTimeTakenRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Respond(c, apperrors.Validation("invalid request body"))
	}
	if req.LatestTimeTaken < 0 {
		return apperrors.Respond(c, apperrors.Validation("latestTimeTaken must be non-negative"))
	}

	q := s.DB.Model(&models.Game{}).
		Where("id = ? AND result = ? AND time_taken <= ?", gameID, models.ResultIncomplete, req.LatestTimeTaken)
	if callerID == "" {
		q = q.Where("player_id IS NULL")
	} else {
		q = q.Where("player_id IS NULL OR player_id = ?", callerID)
	}

	res := q.Update("time_taken", req.LatestTimeTaken)
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update time taken"})
	}
	if res.RowsAffected == 0 {
		return apperrors.Respond(c, apperrors.NotFound("game not found, finished, or the update would move time backwards"))
	}

	return c.JSON(fiber.Map{"time_taken": req.LatestTimeTaken})
}

// gameResponse serializes a game with its owner reduced to the public
// profile. Anyone may view a public game, so the owner's email and account
// settings must not ride along.
type gameResponse struct {
	models.Game
	Player *models.PublicProfile `json:"player,omitempty"`
}

func newGameResponse(game models.Game) gameResponse {
	resp := gameResponse{Game: game}
	if game.Player != nil {
		p := game.Player.Public()
		resp.Player = &p
		resp.Game.Player = nil
	}
	return resp
}

// GetGame returns a single game. Private games are visible only to their
// owner; everything else looks like not-found.
func (s *GameService) GetGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	callerID := middleware.CallerID(c)

	q := s.DB.Preload("Guesses", func(db *gorm.DB) *gorm.DB {
		return db.Order("\"order\" ASC")
	}).Preload("Player").Where("id = ?", gameID)
	if callerID == "" {
		q = q.Where("private_game = false")
	} else {
		q = q.Where("private_game = false OR player_id = ?", callerID)
	}

	var game models.Game
	if err := q.First(&game).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Respond(c, apperrors.NotFound("game not found or you are not authorized to view this game"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch game"})
	}

	return c.JSON(newGameResponse(game))
}

// GetGames lists a player's games. The caller sees the player's private games
// only when the caller is that player.
func (s *GameService) GetGames(c *fiber.Ctx) error {
	username := strings.ToLower(c.Params("username"))
	callerID := middleware.CallerID(c)

	var user models.User
	if err := s.DB.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Respond(c, apperrors.NotFound("user not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch user"})
	}

	q := s.DB.Preload("Guesses", func(db *gorm.DB) *gorm.DB {
		return db.Order("\"order\" ASC")
	}).Where("player_id = ?", user.ID).Order("start_time DESC")
	if callerID != user.ID {
		q = q.Where("private_game = false")
	}

	var games []models.Game
	if err := q.Find(&games).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch games"})
	}

	return c.JSON(games)
}

// GetStats computes the six metrics over a player's completed games. Private
// games count only when that player has opted in via stats_using_private.
func (s *GameService) GetStats(c *fiber.Ctx) error {
	username := strings.ToLower(c.Params("username"))

	var user models.User
	if err := s.DB.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Respond(c, apperrors.NotFound("user not found"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch user"})
	}

	q := s.DB.Where("player_id = ? AND result <> ?", user.ID, models.ResultIncomplete)
	if !user.StatsUsingPrivate {
		q = q.Where("private_game = false")
	}

	var games []models.Game
	if err := q.Preload("Guesses").Find(&games).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch games"})
	}

	records := GameRecords(games)
	return c.JSON(fiber.Map{
		"totalWins":     scoring.TotalWins(records),
		"maxWinStreak":  scoring.LongestWinStreak(records),
		"runningStreak": scoring.CurrentRunningStreak(records),
		"average":       scoring.AverageGuessCount(records),
		"accuracy":      scoring.AccuracyRate(records),
		"points":        scoring.Points(records),
	})
}

// GameRecords maps stored games to the view the scoring package works on.
func GameRecords(games []models.Game) []scoring.GameRecord {
	records := make([]scoring.GameRecord, len(games))
	for i, g := range games {
		records[i] = scoring.GameRecord{
			Result:     scoring.Result(g.Result),
			GuessCount: len(g.Guesses),
			MaxGuesses: g.MaxGuesses,
			StartTime:  g.StartTime,
		}
	}
	return records
}
