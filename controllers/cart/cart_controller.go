package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chandrashekar-chandu/nature-market/middlewares"
	"github.com/chandrashekar-chandu/nature-market/responses"
	"github.com/chandrashekar-chandu/nature-market/services"
)

type CartController struct {
	cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{cart: cart}
}

func (cc *CartController) Get(c *fiber.Ctx) error {
	subject, ok := middlewares.GetSubject(c)
	if !ok {
		return responses.Error(c, services.ErrUnauthenticated)
	}

	items, err := cc.cart.Get(c.Context(), subject.UserID)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Cart fetched", &fiber.Map{"cart": items})
}

type addToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (cc *CartController) Add(c *fiber.Ctx) error {
	subject, ok := middlewares.GetSubject(c)
	if !ok {
		return responses.Error(c, services.ErrUnauthenticated)
	}

	var req addToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.BadRequest(c, "Invalid request format")
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return responses.BadRequest(c, "Invalid product Id")
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	items, err := cc.cart.Add(c.Context(), subject.UserID, productID, req.Quantity)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Added to cart", &fiber.Map{"cart": items})
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func (cc *CartController) UpdateItem(c *fiber.Ctx) error {
	subject, ok := middlewares.GetSubject(c)
	if !ok {
		return responses.Error(c, services.ErrUnauthenticated)
	}

	productID, err := primitive.ObjectIDFromHex(c.Params("productId"))
	if err != nil {
		return responses.BadRequest(c, "Invalid product Id")
	}

	var req updateCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.BadRequest(c, "Invalid request format")
	}

	items, err := cc.cart.SetQuantity(c.Context(), subject.UserID, productID, req.Quantity)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Cart updated", &fiber.Map{"cart": items})
}

func (cc *CartController) RemoveItem(c *fiber.Ctx) error {
	subject, ok := middlewares.GetSubject(c)
	if !ok {
		return responses.Error(c, services.ErrUnauthenticated)
	}

	productID, err := primitive.ObjectIDFromHex(c.Params("productId"))
	if err != nil {
		return responses.BadRequest(c, "Invalid product Id")
	}

	items, err := cc.cart.Remove(c.Context(), subject.UserID, productID)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Removed from cart", &fiber.Map{"cart": items})
}

func (cc *CartController) Clear(c *fiber.Ctx) error {
	subject, ok := middlewares.GetSubject(c)
	if !ok {
		return responses.Error(c, services.ErrUnauthenticated)
	}

	if err := cc.cart.Clear(c.Context(), subject.UserID); err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Cart cleared", &fiber.Map{"cart": []interface{}{}})
}
