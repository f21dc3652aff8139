// Package common holds the HTTP helpers shared by every route group: RFC 9457
// problem responses, domain error mapping and request binding.
package common

import (
	"errors"

	"github.com/amirasaad/bankaccount/pkg/domain/account"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Error codes carried in the "code" member of problem responses.
const (
	CodeAccountNotFound            = "ACCOUNT_NOT_FOUND"
	CodeAccountAlreadyExists       = "ACCOUNT_ALREADY_EXISTS"
	CodeInsufficientBalance        = "INSUFFICIENT_BALANCE"
	CodeInvalidOverdraftLimit      = "INVALID_OVERDRAFT_LIMIT"
	CodeSavingsOverdraftNotAllowed = "SAVINGS_OVERDRAFT_NOT_ALLOWED"
	CodeSavingsAtCapacity          = "SAVINGS_AT_CAPACITY"
	CodeInvalidAmount              = "INVALID_AMOUNT"
	CodeValidationFailed           = "VALIDATION_FAILED"
	CodeNotFound                   = "NOT_FOUND"
	CodeTooManyRequests            = "TOO_MANY_REQUESTS"
	CodeInternalError              = "INTERNAL_ERROR"
)

const problemContentType = "application/problem+json"

// internalErrorDetail is shown instead of the raw error for 500 responses.
const internalErrorDetail = "Une erreur inattendue s'est produite"

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`     // A URI reference that identifies the problem type
	Title    string `json:"title"`              // Short, human-readable summary
	Status   int    `json:"status"`             // HTTP status code
	Code     string `json:"code"`               // Machine-readable error code
	Detail   string `json:"detail,omitempty"`   // Human-readable explanation
	Instance string `json:"instance,omitempty"` // URI reference that identifies the specific occurrence
	Errors   any    `json:"errors,omitempty"`   // Optional: additional error details
}

type errorMapping struct {
	target error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{account.ErrAccountNotFound, fiber.StatusNotFound, CodeAccountNotFound},
	{account.ErrAccountAlreadyExists, fiber.StatusConflict, CodeAccountAlreadyExists},
	{account.ErrInsufficientBalance, fiber.StatusBadRequest, CodeInsufficientBalance},
	{account.ErrInvalidOverdraftLimit, fiber.StatusBadRequest, CodeInvalidOverdraftLimit},
	{account.ErrSavingsOverdraftNotAllowed, fiber.StatusBadRequest, CodeSavingsOverdraftNotAllowed},
	{account.ErrSavingsAtCapacity, fiber.StatusBadRequest, CodeSavingsAtCapacity},
	{account.ErrAmountMustBePositive, fiber.StatusBadRequest, CodeInvalidAmount},
	{account.ErrAmountPrecision, fiber.StatusBadRequest, CodeInvalidAmount},
	{account.ErrAccountNumberRequired, fiber.StatusBadRequest, CodeValidationFailed},
}

// ErrorToStatusCode maps domain errors to appropriate HTTP status codes.
func ErrorToStatusCode(err error) int {
	status, _ := classify(err)
	return status
}

// ErrorCode maps domain errors to the codes exposed to API clients.
func ErrorCode(err error) string {
	_, code := classify(err)
	return code
}

func classify(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch {
		case fe.Code == fiber.StatusTooManyRequests:
			return fe.Code, CodeTooManyRequests
		case fe.Code == fiber.StatusNotFound:
			return fe.Code, CodeNotFound
		case fe.Code < fiber.StatusInternalServerError:
			return fe.Code, CodeValidationFailed
		}
		return fe.Code, CodeInternalError
	}
	return fiber.StatusInternalServerError, CodeInternalError
}

// ProblemDetailsJSON writes err as an application/problem+json response.
// The status comes from ErrorToStatusCode unless one is given.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, status ...int) error {
	code, errCode := classify(err)
	if len(status) > 0 {
		code = status[0]
	}
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   code,
		Code:     errCode,
		Instance: c.OriginalURL(),
	}
	switch {
	case code >= fiber.StatusInternalServerError:
		pd.Detail = internalErrorDetail
	case err != nil:
		pd.Detail = err.Error()
	}
	return c.Status(code).JSON(pd, problemContentType)
}

// FieldError describes one failed validation rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationProblemJSON writes a 400 VALIDATION_FAILED problem listing the failed fields.
func ValidationProblemJSON(c *fiber.Ctx, detail string, fields []FieldError) error {
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    "Validation failed",
		Status:   fiber.StatusBadRequest,
		Code:     CodeValidationFailed,
		Detail:   detail,
		Instance: c.OriginalURL(),
	}
	if len(fields) > 0 {
		pd.Errors = fields
	}
	return c.Status(fiber.StatusBadRequest).JSON(pd, problemContentType)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// BindAndValidate parses the request body and validates it using go-playground/validator.
// Returns the populated struct, or writes an error response and returns nil
// together with the error produced by writing it.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ValidationProblemJSON(c, "Invalid request body", nil)
	}
	if err := validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, ValidationProblemJSON(c, err.Error(), nil)
		}
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
		}
		return nil, ValidationProblemJSON(c, "Request validation failed", fields)
	}
	return &input, nil
}
