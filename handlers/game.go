// handlers/game.go
package handlers

import (
	"wordle-arena/middleware"
	"wordle-arena/services"

	"github.com/gofiber/fiber/v2"
)

func SetupGameRoutes(app *fiber.App, gameService *services.GameService, wordService *services.WordService) {
	// Anonymous play is allowed — OptionalAuth attaches identity when present
	// so owned games stay ownership-checked.
	games := app.Group("/games", middleware.OptionalAuth())

	games.Get("/daily", wordService.GetDailyChallenge)
	games.Post("/", gameService.CreateGame)
	games.Get("/:gameId", gameService.GetGame)
	games.Patch("/:gameId/moves", gameService.AddMove)
	games.Patch("/:gameId/time", gameService.UpdateTimeTaken)

	// Privacy is an owner-only mutation.
	games.Patch("/:gameId/privacy", middleware.RequireAuth(), gameService.TogglePrivate)

	players := app.Group("/players")
	// Claiming adopts anonymous games, so it needs a logged-in caller.
	players.Patch("/me/games", middleware.RequireAuth(), gameService.ClaimGames)
	players.Get("/:username/games", middleware.OptionalAuth(), gameService.GetGames)
	players.Get("/:username/stats", gameService.GetStats)
}
