package apperr

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

const internalMessage = "unknown internal server error, please contact support"

// StatusCode maps a domain error kind to its HTTP status.
// NotFound -> 404; AlreadyExists/InvalidObject/CreationFailed/UpdateFailed/
// DeleteFailed -> 400; ExecutionFailed and anything unclassified -> 500.
func StatusCode(err error) int {
	switch Kind(err) {
	case ErrNotFound:
		return fiber.StatusNotFound
	case ErrAlreadyExists, ErrInvalidObject, ErrCreationFailed, ErrUpdateFailed, ErrDeleteFailed:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler is the Fiber app error handler. Every response carries a
// single message field; internal details are logged server-side only.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
	}

	code := StatusCode(err)
	if code == fiber.StatusInternalServerError {
		log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(code).JSON(fiber.Map{"message": internalMessage})
	}
	log.Printf("[WARN] %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(code).JSON(fiber.Map{"message": err.Error()})
}
