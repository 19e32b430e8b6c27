package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Student / trainer errors
var (
	ErrStudentNotFound            = errors.New("student not found")
	ErrStudentNumberAlreadyExists = errors.New("student number already exists")
	ErrTrainerNotFound            = errors.New("trainer not found")
	ErrBadgeNumberAlreadyExists   = errors.New("badge number already exists")
)

// Catalog errors
var (
	ErrDomainNotFound      = errors.New("domain not found")
	ErrDomainAlreadyExists = errors.New("domain with this name already exists")
	ErrDomainHasFormations = errors.New("domain has associated formations and cannot be deleted")

	ErrFormationNotFound      = errors.New("formation not found")
	ErrFormationAlreadyExists = errors.New("formation with this reference already exists")

	ErrModuleNotFound      = errors.New("module not found")
	ErrModuleAlreadyExists = errors.New("module with this order or title already exists in the formation")
)

// Scheduling errors
var (
	ErrRoomNotFound         = errors.New("room not found")
	ErrCourseNotFound       = errors.New("course not found")
	ErrRoomSlotTaken        = errors.New("room is already booked for this slot")
	ErrTrainerSlotTaken     = errors.New("trainer is already booked for this slot")
	ErrInvalidTimeRange     = errors.New("end time must be after start time")
	ErrAvailabilityNotFound = errors.New("availability not found")
)

// Enrollment / attendance errors
var (
	ErrEnrollmentNotFound      = errors.New("enrollment not found")
	ErrEnrollmentAlreadyExists = errors.New("student is already enrolled in this formation")
	ErrAttendanceNotFound      = errors.New("attendance record not found")
)

// Document errors
var (
	ErrDocumentNotFound         = errors.New("document not found")
	ErrPersonalDocumentNotFound = errors.New("personal document not found")
	ErrBothFileAndURL           = errors.New("provide either a file or a URL, not both")
	ErrNoFileOrURL              = errors.New("provide a file or a URL")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewValidationError creates a new custom error for failed input validation
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// Is returns whether target matches err or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Message   string
	StatusMsg string
	Code      string
	Details   map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
