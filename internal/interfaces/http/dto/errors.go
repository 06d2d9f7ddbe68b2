package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	ErrCodeValidation    = "ERR_VALIDATION"
	ErrCodeMissingReason = "ERR_MISSING_REASON"
	ErrCodeInvalidInput  = "ERR_INVALID_INPUT"
	ErrCodeBadRequest    = "ERR_BAD_REQUEST"
	ErrCodeInvalidJSON   = "ERR_INVALID_JSON"
)

// Authentication error codes
const (
	ErrCodeUnauthorized       = "ERR_UNAUTHORIZED"
	ErrCodeForbidden          = "ERR_FORBIDDEN"
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrCodeAccountLocked      = "ERR_ACCOUNT_LOCKED"
	ErrCodeAccountInactive    = "ERR_ACCOUNT_INACTIVE"
	ErrCodeTokenExpired       = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "ERR_TOKEN_INVALID"
)

// Resource error codes
const (
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	ErrCodeInvalidState   = "ERR_INVALID_STATE"
	ErrCodeNoOpTransition = "ERR_NO_OP_TRANSITION"
	ErrCodeBusinessRule   = "ERR_BUSINESS_RULE"
)

// Rate limiting error codes
const (
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:    http.StatusBadRequest,
	ErrCodeMissingReason: http.StatusBadRequest,
	ErrCodeInvalidInput:  http.StatusBadRequest,
	ErrCodeBadRequest:    http.StatusBadRequest,
	ErrCodeInvalidJSON:   http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeAccountLocked:      http.StatusLocked,
	ErrCodeAccountInactive:    http.StatusForbidden,
	ErrCodeForbidden:          http.StatusForbidden,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState:   http.StatusUnprocessableEntity,
	ErrCodeNoOpTransition: http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:   http.StatusUnprocessableEntity,

	// Rate limiting -> 429 Too Many Requests
	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to the standardized
// HTTP error codes. Input validation codes collapse to ERR_VALIDATION;
// a rejected status change keeps its distinct code so clients can tell
// a malformed request from a business rule refusal.
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"ALREADY_ASSIGNED":     ErrCodeConflict,
	"CREDIT_LINE_EXISTS":   ErrCodeConflict,
	"USERNAME_EXISTS":      ErrCodeAlreadyExists,
	"EMAIL_EXISTS":         ErrCodeAlreadyExists,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,

	// The acting user is authenticated; lacking portfolio rights is an
	// authorization failure, so 403 rather than 401.
	"UNAUTHORIZED": ErrCodeForbidden,
	"FORBIDDEN":    ErrCodeForbidden,

	"INVALID_CREDENTIALS": ErrCodeInvalidCredentials,
	"ACCOUNT_LOCKED":      ErrCodeAccountLocked,
	"ACCOUNT_DEACTIVATED": ErrCodeAccountInactive,
	"ACCOUNT_INACTIVE":    ErrCodeAccountInactive,
	"TOKEN_EXPIRED":       ErrCodeTokenExpired,
	"TOKEN_INVALID":       ErrCodeTokenInvalid,
	"TOKEN_MAX_REFRESH":   ErrCodeTokenExpired,
	"TOKEN_ERROR":         ErrCodeTokenInvalid,
	"USER_NOT_FOUND":      ErrCodeNotFound,

	"INVALID_STATE":              ErrCodeInvalidState,
	"NO_OP_TRANSITION":           ErrCodeNoOpTransition,
	"MISSING_REASON":             ErrCodeMissingReason,
	"MISSING_COMMENT":            ErrCodeValidation,
	"AMOUNT_BELOW_MINIMUM":       ErrCodeValidation,
	"EVALUATION_ALREADY_PENDING": ErrCodeConflict,
	"LAST_ADMINISTRATOR":         ErrCodeBusinessRule,
	"ADVISOR_INACTIVE":           ErrCodeBusinessRule,
	"NOT_AN_ADVISOR":             ErrCodeBusinessRule,
	"ADVISOR_NOT_FOUND":          ErrCodeNotFound,

	"INVALID_INPUT":      ErrCodeInvalidInput,
	"INVALID_DOCUMENT":   ErrCodeValidation,
	"INVALID_NAME":       ErrCodeValidation,
	"INVALID_EMAIL":      ErrCodeValidation,
	"INVALID_PHONE":      ErrCodeValidation,
	"INVALID_INCOME":     ErrCodeValidation,
	"INVALID_AMOUNT":     ErrCodeValidation,
	"INVALID_DATE":       ErrCodeValidation,
	"INVALID_DUE_DATE":   ErrCodeValidation,
	"INVALID_CLIENT":     ErrCodeValidation,
	"INVALID_ADVISOR":    ErrCodeValidation,
	"INVALID_USER":       ErrCodeValidation,
	"INVALID_USERNAME":   ErrCodeValidation,
	"INVALID_PASSWORD":   ErrCodeValidation,
	"INVALID_ROLE":       ErrCodeValidation,
	"INVALID_RECIPIENT":  ErrCodeValidation,
	"INVALID_TITLE":      ErrCodeValidation,
	"INVALID_TYPE":       ErrCodeValidation,

	"INTERNAL_ERROR": ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the standardized
// format. Unknown codes pass through as-is.
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
