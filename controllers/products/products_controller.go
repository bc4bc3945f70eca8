package controllers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chandrashekar-chandu/nature-market/models"
	"github.com/chandrashekar-chandu/nature-market/responses"
	"github.com/chandrashekar-chandu/nature-market/services"
)

var validate = validator.New()

type ProductsController struct {
	catalog *services.CatalogService
}

func NewProductsController(catalog *services.CatalogService) *ProductsController {
	return &ProductsController{catalog: catalog}
}

func (pc *ProductsController) GetAll(c *fiber.Ctx) error {
	products, err := pc.catalog.List(c.Context())
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Products fetched", &fiber.Map{"products": products})
}

func (pc *ProductsController) GetByCategory(c *fiber.Ctx) error {
	category := models.Category(c.Params("category"))
	products, err := pc.catalog.ListByCategory(c.Context(), category)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Products fetched", &fiber.Map{"products": products})
}

func (pc *ProductsController) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return responses.BadRequest(c, "Search query is required")
	}
	products, err := pc.catalog.Search(c.Context(), query)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Products fetched", &fiber.Map{"products": products})
}

func (pc *ProductsController) Get(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return responses.BadRequest(c, "Invalid product Id")
	}
	product, err := pc.catalog.Get(c.Context(), id)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Product fetched", &fiber.Map{"product": product})
}

type productRequest struct {
	Name        string `json:"name" validate:"required"`
	Price       int64  `json:"price" validate:"gte=0"`
	Image       string `json:"image"`
	Category    string `json:"category" validate:"required"`
	Description string `json:"description" validate:"required"`
	Stock       int    `json:"stock" validate:"gte=0"`
}

func (pc *ProductsController) Create(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.BadRequest(c, "Invalid request format")
	}
	if err := validate.Struct(&req); err != nil {
		return responses.BadRequest(c, err.Error())
	}

	product := &models.Product{
		Name:        req.Name,
		Price:       req.Price,
		Image:       req.Image,
		Category:    models.Category(req.Category),
		Description: req.Description,
		Stock:       req.Stock,
	}
	product, err := pc.catalog.Create(c.Context(), product)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.Created(c, "Product created", &fiber.Map{"product": product})
}

func (pc *ProductsController) Update(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return responses.BadRequest(c, "Invalid product Id")
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.BadRequest(c, "Invalid request format")
	}
	if err := validate.Struct(&req); err != nil {
		return responses.BadRequest(c, err.Error())
	}

	product := &models.Product{
		ID:          id,
		Name:        req.Name,
		Price:       req.Price,
		Image:       req.Image,
		Category:    models.Category(req.Category),
		Description: req.Description,
		Stock:       req.Stock,
	}
	product, err = pc.catalog.Update(c.Context(), product)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Product updated", &fiber.Map{"product": product})
}

func (pc *ProductsController) Delete(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return responses.BadRequest(c, "Invalid product Id")
	}
	if err := pc.catalog.Delete(c.Context(), id); err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, "Product deleted", nil)
}
