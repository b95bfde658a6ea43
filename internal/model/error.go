package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is the {success, message} shape used by mutation endpoints.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON  = "INVALID_JSON"
	ErrCodeInvalidID    = "INVALID_ID"
	ErrCodeMissingField = "MISSING_FIELD"
	ErrCodeFoodNotFound = "FOOD_NOT_FOUND"
	ErrCodeNotDeleted   = "NOT_DELETED"
	ErrCodeNotModified  = "NOT_MODIFIED"
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
	ErrInvalidBody   = NewDomainError(ErrCodeInvalidJSON, "Invalid request body")
	ErrInvalidID     = NewDomainError(ErrCodeInvalidID, "Invalid ID format")
	ErrMissingOwner  = NewDomainError(ErrCodeMissingField, "Missing user email (addedBy)")
	ErrTokenRequired = NewDomainError(ErrCodeMissingField, "Token required")
	ErrFoodNotFound  = NewDomainError(ErrCodeFoodNotFound, "Food not found")

	// ErrNotDeleted and ErrNotModified cover both "absent" and "owned by
	// someone else".
	ErrNotDeleted  = NewDomainError(ErrCodeNotDeleted, "Food not found or unauthorized")
	ErrNotModified = NewDomainError(ErrCodeNotModified, "Food not found, unauthorized, or already up-to-date")
)
