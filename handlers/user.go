// handlers/user.go
package handlers

import (
	"wordle-arena/middleware"
	"wordle-arena/services"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App, userService *services.UserService) {
	users := app.Group("/users")

	users.Post("/register", userService.Register)
	users.Post("/login", userService.Login)
	users.Post("/refresh-token", userService.RefreshToken)
	users.Get("/find/:username", userService.FindUser)

	secured := users.Group("/", middleware.RequireAuth())
	secured.Post("/logout", userService.Logout)
	secured.Post("/change-password", userService.ChangePassword)
	secured.Get("/me", userService.CurrentUser)
	secured.Patch("/me", userService.UpdateAccount)
	secured.Patch("/me/profile-picture", userService.UpdateProfilePicture)
	secured.Delete("/me/profile-picture", userService.RemoveProfilePicture)
}
