package services

import (
	"errors"

	apperrors "github.com/campus-hq/portal-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrConflict         = errors.New("resource conflict")

	// Account errors
	ErrStudentNotFound    = errors.New("student not found")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrMatricTaken        = errors.New("matric number already registered")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid matric number or password")

	// OTP errors
	ErrOTPNotFound = errors.New("no verification code for this email")
	ErrOTPExpired  = errors.New("verification code has expired")
	ErrOTPUsed     = errors.New("verification code already used")
	ErrOTPMismatch = errors.New("verification code does not match")

	// Academic structure errors
	ErrFacultyNotFound    = errors.New("faculty not found")
	ErrDepartmentNotFound = errors.New("department not found")
	ErrLevelNotFound      = errors.New("level not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrNoteNotFound       = errors.New("note not found")
	ErrCourseCodeTaken    = errors.New("course code already exists")

	// Exam / question errors
	ErrExamNotFound     = errors.New("exam not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrEmptyBatch       = errors.New("question batch is empty")

	// Result errors
	ErrResultNotFound = errors.New("result not found")
	ErrResultExists   = errors.New("result already recorded for this exam attempt")

	// Push errors
	ErrSubscriptionNotFound = errors.New("push subscription not found")
	ErrNotificationNotFound = errors.New("notification not found")
)

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// ===== ERROR CLASSIFICATION =====

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrStudentNotFound) ||
		errors.Is(err, ErrAdminNotFound) ||
		errors.Is(err, ErrOTPNotFound) ||
		errors.Is(err, ErrFacultyNotFound) ||
		errors.Is(err, ErrDepartmentNotFound) ||
		errors.Is(err, ErrLevelNotFound) ||
		errors.Is(err, ErrCourseNotFound) ||
		errors.Is(err, ErrNoteNotFound) ||
		errors.Is(err, ErrExamNotFound) ||
		errors.Is(err, ErrQuestionNotFound) ||
		errors.Is(err, ErrResultNotFound) ||
		errors.Is(err, ErrSubscriptionNotFound) ||
		errors.Is(err, ErrNotificationNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrEmptyBatch) ||
		errors.Is(err, ErrOTPExpired) ||
		errors.Is(err, ErrOTPUsed) ||
		errors.Is(err, ErrOTPMismatch) {
		return true
	}
	var ve apperrors.ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *apperrors.ValidationError
	return errors.As(err, &single)
}

// IsConflict checks if error represents a resource conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrMatricTaken) ||
		errors.Is(err, ErrEmailTaken) ||
		errors.Is(err, ErrCourseCodeTaken) ||
		errors.Is(err, ErrResultExists)
}

// IsUnauthorized checks if error represents an "unauthorized" condition
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrInvalidCredentials)
}
