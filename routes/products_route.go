package routes

import (
	"github.com/gofiber/fiber/v2"

	productsController "github.com/chandrashekar-chandu/nature-market/controllers/products"
	"github.com/chandrashekar-chandu/nature-market/middlewares"
	"github.com/chandrashekar-chandu/nature-market/services"
)

func ProductsRoute(app *fiber.App, pc *productsController.ProductsController, auth *services.AuthService) {
	app.Get("/api/products", pc.GetAll)
	app.Get("/api/products/search", pc.Search)
	app.Get("/api/products/category/:category", pc.GetByCategory)
	app.Get("/api/products/:id", pc.Get)

	// Admin catalogue management
	app.Post("/api/products", middlewares.Protected(auth), middlewares.AdminOnly, pc.Create)
	app.Put("/api/products/:id", middlewares.Protected(auth), middlewares.AdminOnly, pc.Update)
	app.Delete("/api/products/:id", middlewares.Protected(auth), middlewares.AdminOnly, pc.Delete)
}
