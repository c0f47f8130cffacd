package domainerr

import "github.com/gofiber/fiber/v2"

// Error is a recoverable, caller-facing domain error. The code identifies the
// failure class; the message carries enough detail to correct and retry.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

const (
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeValidationFailed  = "VALIDATION_FAILED"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeInvalidStatus     = "INVALID_STATUS"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeDuplicateRating   = "DUPLICATE_RATING"
	CodeImmutable         = "IMMUTABLE"
	CodeAlreadyExists     = "ALREADY_EXISTS"
	CodeOrderNotDelivered = "ORDER_NOT_DELIVERED"
	CodeNotOwner          = "NOT_OWNER"
)

func Forbidden(msg string) *Error         { return New(CodeForbidden, msg) }
func NotFound(msg string) *Error          { return New(CodeNotFound, msg) }
func ValidationFailed(msg string) *Error  { return New(CodeValidationFailed, msg) }
func InvalidTransition(msg string) *Error { return New(CodeInvalidTransition, msg) }
func InvalidStatus(msg string) *Error     { return New(CodeInvalidStatus, msg) }
func InsufficientStock(msg string) *Error { return New(CodeInsufficientStock, msg) }
func DuplicateRating(msg string) *Error   { return New(CodeDuplicateRating, msg) }
func Immutable(msg string) *Error         { return New(CodeImmutable, msg) }
func AlreadyExists(msg string) *Error     { return New(CodeAlreadyExists, msg) }
func OrderNotDelivered(msg string) *Error { return New(CodeOrderNotDelivered, msg) }
func NotOwner(msg string) *Error          { return New(CodeNotOwner, msg) }

// HTTPStatus maps an error code to the HTTP status used at the boundary.
func HTTPStatus(code string) int {
	switch code {
	case CodeValidationFailed, CodeInvalidStatus:
		return fiber.StatusBadRequest
	case CodeForbidden, CodeNotOwner, CodeImmutable:
		return fiber.StatusForbidden
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeInvalidTransition, CodeInsufficientStock, CodeDuplicateRating,
		CodeAlreadyExists, CodeOrderNotDelivered:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
