package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chandrashekar-chandu/nature-market/middlewares"
	"github.com/chandrashekar-chandu/nature-market/models"
	"github.com/chandrashekar-chandu/nature-market/responses"
	"github.com/chandrashekar-chandu/nature-market/services"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

type createOrderRequest struct {
	ShippingAddress string `json:"shippingAddress"`
}

// Create places an order from the caller's cart.
func (oc *OrderController) Create(c *fiber.Ctx) error {
	subject, ok := middlewares.GetSubject(c)
	if !ok {
		return responses.Error(c, services.ErrUnauthenticated)
	}

	var req createOrderRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return responses.BadRequest(c, "Invalid request format")
		}
	}

	order, err := oc.orders.PlaceOrder(c.Context(), subject.UserID, req.ShippingAddress)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.Created(c, "Order placed", &fiber.Map{"order": order})
}

func (oc *OrderController) List(c *fiber.Ctx) error {
	subject, ok := middlewares.GetSubject(c)
	if !ok {
		return responses.Error(c, services.ErrUnauthenticated)
	}

	orders, err := oc.orders.ListForUser(c.Context(), subject.UserID)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Orders fetched", &fiber.Map{"orders": orders})
}

func (oc *OrderController) Get(c *fiber.Ctx) error {
	subject, ok := middlewares.GetSubject(c)
	if !ok {
		return responses.Error(c, services.ErrUnauthenticated)
	}

	orderID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return responses.BadRequest(c, "Invalid order Id")
	}

	order, err := oc.orders.Get(c.Context(), orderID, subject)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Order fetched", &fiber.Map{"order": order})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (oc *OrderController) UpdateStatus(c *fiber.Ctx) error {
	subject, ok := middlewares.GetSubject(c)
	if !ok {
		return responses.Error(c, services.ErrUnauthenticated)
	}

	orderID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return responses.BadRequest(c, "Invalid order Id")
	}

	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.BadRequest(c, "Invalid request format")
	}

	order, err := oc.orders.SetStatus(c.Context(), orderID, models.OrderStatus(req.Status), subject)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Order status updated", &fiber.Map{"order": order})
}

func (oc *OrderController) ListAll(c *fiber.Ctx) error {
	subject, ok := middlewares.GetSubject(c)
	if !ok {
		return responses.Error(c, services.ErrUnauthenticated)
	}

	orders, err := oc.orders.ListAll(c.Context(), subject)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Orders fetched", &fiber.Map{"orders": orders})
}
