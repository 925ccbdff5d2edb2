package server

import (
	"errors"
	"net/http"
	"strings"

	catalogdomain "github.com/facturio/facturio/internal/catalog/domain"
	currencydomain "github.com/facturio/facturio/internal/currency/domain"
	docdomain "github.com/facturio/facturio/internal/document/domain"
	"github.com/facturio/facturio/internal/money"
	numberingdomain "github.com/facturio/facturio/internal/numbering/domain"
	settingsdomain "github.com/facturio/facturio/internal/settings/domain"
	taxdomain "github.com/facturio/facturio/internal/tax/domain"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: "invalid value",
				},
			},
		}
	}

	switch {
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case errors.Is(err, numberingdomain.ErrUnavailable):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "numbering unavailable",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, docdomain.ErrInvalidOrganization),
		errors.Is(err, docdomain.ErrInvalidID),
		errors.Is(err, docdomain.ErrInvalidType),
		errors.Is(err, docdomain.ErrInvalidStatus),
		errors.Is(err, docdomain.ErrInvalidPosition),
		errors.Is(err, docdomain.ErrEmptyDocument),
		errors.Is(err, money.ErrInvalidQuantity),
		errors.Is(err, money.ErrInvalidPrice),
		errors.Is(err, money.ErrInvalidDiscount),
		errors.Is(err, money.ErrInvalidTaxRate),
		errors.Is(err, money.ErrInvalidTaxFixed),
		errors.Is(err, taxdomain.ErrInvalidOrganization),
		errors.Is(err, taxdomain.ErrInvalidID),
		errors.Is(err, taxdomain.ErrInvalidName),
		errors.Is(err, taxdomain.ErrInvalidTaxRate),
		errors.Is(err, taxdomain.ErrInvalidTaxAmount),
		errors.Is(err, currencydomain.ErrInvalidOrganization),
		errors.Is(err, currencydomain.ErrInvalidID),
		errors.Is(err, currencydomain.ErrInvalidCode),
		errors.Is(err, currencydomain.ErrInvalidExchangeRate),
		errors.Is(err, currencydomain.ErrInvalidDecimalPlaces),
		errors.Is(err, catalogdomain.ErrInvalidOrganization),
		errors.Is(err, catalogdomain.ErrInvalidID),
		errors.Is(err, catalogdomain.ErrInvalidName),
		errors.Is(err, catalogdomain.ErrInvalidPrice),
		errors.Is(err, settingsdomain.ErrInvalidOrganization),
		errors.Is(err, settingsdomain.ErrInvalidStampDuty),
		errors.Is(err, numberingdomain.ErrInvalidConfig):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, docdomain.ErrNotFound),
		errors.Is(err, docdomain.ErrClientNotFound),
		errors.Is(err, docdomain.ErrProductNotFound),
		errors.Is(err, docdomain.ErrTaxNotFound),
		errors.Is(err, docdomain.ErrCurrencyNotFound),
		errors.Is(err, taxdomain.ErrNotFound),
		errors.Is(err, currencydomain.ErrNotFound),
		errors.Is(err, catalogdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, docdomain.ErrInvalidTransition),
		errors.Is(err, docdomain.ErrImmutableDocument),
		errors.Is(err, docdomain.ErrSubmissionInFlight):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid_request"
	}
	return err.Error()
}

func validationErrorField(code string) string {
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	if code == "empty_document" {
		return "lines"
	}
	return ""
}
