package routes

import (
	"github.com/gofiber/fiber/v2"

	orderController "github.com/chandrashekar-chandu/nature-market/controllers/orders"
	"github.com/chandrashekar-chandu/nature-market/middlewares"
	"github.com/chandrashekar-chandu/nature-market/services"
)

func OrderRoutes(app *fiber.App, oc *orderController.OrderController, auth *services.AuthService) {
	protected := middlewares.Protected(auth)

	app.Get("/api/orders", protected, oc.List)
	// Registered before /api/orders/:id so "admin" is not taken for an order id.
	app.Get("/api/orders/admin/all", protected, middlewares.AdminOnly, oc.ListAll)
	app.Get("/api/orders/:id", protected, oc.Get)
	app.Post("/api/orders", protected, oc.Create)
	app.Put("/api/orders/:id/status", protected, middlewares.AdminOnly, oc.UpdateStatus)
}
