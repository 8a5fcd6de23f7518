package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// AppError is a caller-visible error with an HTTP status attached.
type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewBadRequestError(message string) *AppError {
	return &AppError{Code: fiber.StatusBadRequest, Message: message}
}

func NewInternalError(message string) *AppError {
	return &AppError{Code: fiber.StatusInternalServerError, Message: message}
}

// ErrorHandlerMiddleware converts errors bubbling out of handlers into the
// response envelope. Anything that is not an AppError or fiber.Error is
// reported as a generic internal failure with the error detail as message.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *AppError
		if errors.As(err, &appErr) {
			return ctx.Status(appErr.Code).JSON(ErrorResponse(appErr.Code, appErr.Message))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
}
