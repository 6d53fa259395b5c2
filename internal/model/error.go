package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeInvalidBarcode    = "INVALID_BARCODE"
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"
	ErrCodeAdditiveNotFound  = "ADDITIVE_NOT_FOUND"
	ErrCodeUnknownPreference = "UNKNOWN_PREFERENCE"
	ErrCodeMethodNotAllowed  = "METHOD_NOT_ALLOWED"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeUnauthorised      = "UNAUTHORIZED"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrInvalidFormat     = NewDomainError(ErrCodeInvalidBarcode, "Invalid barcode format. Must be 8-13 digits.")
	ErrProductNotFound   = NewDomainError(ErrCodeProductNotFound, "Product not found in database")
	ErrAdditiveNotFound  = NewDomainError(ErrCodeAdditiveNotFound, "Unidentified additive")
	ErrUnknownPreference = NewDomainError(ErrCodeUnknownPreference, "Unknown dietary preference")
)
