package routes

import (
	"github.com/gofiber/fiber/v2"

	cartController "github.com/chandrashekar-chandu/nature-market/controllers/cart"
	"github.com/chandrashekar-chandu/nature-market/middlewares"
	"github.com/chandrashekar-chandu/nature-market/services"
)

func CartRoutes(app *fiber.App, cc *cartController.CartController, auth *services.AuthService) {
	protected := middlewares.Protected(auth)

	app.Get("/api/cart", protected, cc.Get)
	app.Post("/api/cart", protected, cc.Add)
	app.Put("/api/cart/:productId", protected, cc.UpdateItem)
	app.Delete("/api/cart/:productId", protected, cc.RemoveItem)
	app.Delete("/api/cart", protected, cc.Clear)
}
