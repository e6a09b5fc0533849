package utils

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RespondWithError sends a JSON error response.
func RespondWithError(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  "error",
		"message": message,
	})
}

// RespondWithJSON sends a JSON success response.
func RespondWithJSON(c *fiber.Ctx, statusCode int, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status": "success",
		"data":   data,
	})
}

// FormatValidationErrors formats validation errors from validator/v10.
func FormatValidationErrors(err error) []string {
	var errors []string
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, ve := range verrs {
			element := fmt.Sprintf("Field '%s' failed on the '%s' tag", ve.Field(), ve.Tag())
			if ve.Param() != "" {
				element = fmt.Sprintf("%s (value: %s)", element, ve.Param())
			}
			errors = append(errors, element)
		}
		return errors
	}
	return []string{err.Error()}
}
