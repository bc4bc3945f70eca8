package responses

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/chandrashekar-chandu/nature-market/services"
)

// UserResponse is the envelope every endpoint replies with.
type UserResponse struct {
	Status  int        `json:"status"`
	Message string     `json:"message"`
	Result  *fiber.Map `json:"result"`
}

func OK(c *fiber.Ctx, message string, result *fiber.Map) error {
	return c.Status(fiber.StatusOK).JSON(UserResponse{
		Status:  fiber.StatusOK,
		Message: message,
		Result:  result,
	})
}

func Created(c *fiber.Ctx, message string, result *fiber.Map) error {
	return c.Status(fiber.StatusCreated).JSON(UserResponse{
		Status:  fiber.StatusCreated,
		Message: message,
		Result:  result,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(UserResponse{
		Status:  fiber.StatusBadRequest,
		Message: message,
	})
}

// Error maps a service failure to its HTTP status. Anything outside the
// service taxonomy is a storage or programming fault and is reported as a
// bare server error without internal detail.
func Error(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Server error"

	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		status = fiber.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, services.ErrForbidden):
		status = fiber.StatusForbidden
		message = err.Error()
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
		message = err.Error()
	case errors.Is(err, services.ErrInvalidState):
		status = fiber.StatusBadRequest
		message = err.Error()
	case errors.Is(err, services.ErrConflict):
		status = fiber.StatusConflict
		message = err.Error()
	default:
		slog.Error("request failed", "path", c.Path(), "error", err)
	}

	return c.Status(status).JSON(UserResponse{Status: status, Message: message})
}
