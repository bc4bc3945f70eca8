package routes

import (
	"github.com/gofiber/fiber/v2"

	userController "github.com/chandrashekar-chandu/nature-market/controllers/user"
	"github.com/chandrashekar-chandu/nature-market/middlewares"
	"github.com/chandrashekar-chandu/nature-market/services"
)

func UserRoute(app *fiber.App, uc *userController.UserController, auth *services.AuthService) {
	app.Post("/api/auth/register", uc.Register)
	app.Post("/api/auth/login", uc.Login)
	app.Get("/api/auth/profile", middlewares.Protected(auth), uc.Profile)
}
