package controllers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/chandrashekar-chandu/nature-market/middlewares"
	"github.com/chandrashekar-chandu/nature-market/responses"
	"github.com/chandrashekar-chandu/nature-market/services"
)

var validate = validator.New()

type UserController struct {
	auth *services.AuthService
}

func NewUserController(auth *services.AuthService) *UserController {
	return &UserController{auth: auth}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (uc *UserController) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.BadRequest(c, "Invalid request format")
	}
	if err := validate.Struct(&req); err != nil {
		return responses.BadRequest(c, err.Error())
	}

	user, err := uc.auth.Register(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return responses.Error(c, err)
	}

	return responses.Created(c, "User registered", &fiber.Map{"user": user})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (uc *UserController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.BadRequest(c, "Invalid request format")
	}
	if err := validate.Struct(&req); err != nil {
		return responses.BadRequest(c, err.Error())
	}

	token, user, err := uc.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return responses.Error(c, err)
	}

	return responses.OK(c, "Signed in", &fiber.Map{"token": token, "user": user})
}

func (uc *UserController) Profile(c *fiber.Ctx) error {
	subject, ok := middlewares.GetSubject(c)
	if !ok {
		return responses.Error(c, services.ErrUnauthenticated)
	}

	user, err := uc.auth.Profile(c.Context(), subject.UserID)
	if err != nil {
		return responses.Error(c, err)
	}

	return responses.OK(c, "Profile fetched", &fiber.Map{"user": user})
}
