// handlers/leaderboard.go
package handlers

import (
	"wordle-arena/middleware"
	"wordle-arena/services"

	"github.com/gofiber/fiber/v2"
)

func SetupLeaderboardRoutes(app *fiber.App, leaderboardService *services.LeaderboardService) {
	app.Get("/leaderboard/:timeFrame/:metric", middleware.OptionalAuth(), leaderboardService.GetLeaderboard)
}
