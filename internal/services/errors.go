package services

import (
	"errors"
	"fmt"

	apperrors "github.com/mente-leve/wellbeing-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrBadRequest       = errors.New("bad request")
	ErrConflict         = errors.New("resource conflict")

	// Auth specific errors
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrConsentRequired    = errors.New("consent acceptance is required")

	// User specific errors
	ErrUserNotFound         = errors.New("user not found")
	ErrPsychologistNotFound = errors.New("psychologist not found")
	ErrNotAStudent          = errors.New("operation restricted to students")
	ErrNotAPsychologist     = errors.New("operation restricted to psychologists")

	// Assessment specific errors
	ErrAssessmentNotFound      = errors.New("assessment not found")
	ErrAssessmentAccessDenied  = errors.New("access denied to assessment")
	ErrIncompleteAnswers       = errors.New("all assessment questions must be answered")
	ErrAnswerOutOfRange        = errors.New("assessment answers must be between 1 and 5")
	ErrUnknownAssessmentAnswer = errors.New("unknown assessment question")

	// Share specific errors
	ErrShareNotFound      = errors.New("share not found")
	ErrShareAlreadyExists = errors.New("assessment already shared with this psychologist")
	ErrShareAccessDenied  = errors.New("access denied to share")

	// Appointment specific errors
	ErrAppointmentNotFound    = errors.New("appointment not found")
	ErrAppointmentAccess      = errors.New("access denied to appointment")
	ErrAppointmentInPast      = errors.New("appointment date must be in the future")
	ErrSlotNotAvailable       = errors.New("requested slot is outside the psychologist's availability")
	ErrSlotTaken              = errors.New("requested slot is already booked")
	ErrStudentDoubleBooked    = errors.New("student already has an appointment at this time")
	ErrModalityNotOffered     = errors.New("psychologist does not offer this modality")
	ErrInvalidStatusChange    = errors.New("invalid appointment status transition")
	ErrAttendanceRequired     = errors.New("attendance must be reported to finish an appointment")
	ErrAssessmentsNotGranted  = errors.New("student has not granted assessment access for this appointment")
	ErrAppointmentNotFinished = errors.New("appointment is not in a reviewable state")

	// Mood journal specific errors
	ErrMoodEntryNotFound = errors.New("mood entry not found")
	ErrNoMoodData        = errors.New("no mood entries recorded yet")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

type BusinessRuleError struct {
	Rule    string                 `json:"rule"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (bre *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule violation (%s): %s", bre.Rule, bre.Message)
}

type PermissionError struct {
	UserID     uint   `json:"user_id"`
	ResourceID uint   `json:"resource_id"`
	Resource   string `json:"resource"`
	Action     string `json:"action"`
	Reason     string `json:"reason"`
}

func (pe *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %d cannot %s %s %d - %s",
		pe.UserID, pe.Action, pe.Resource, pe.ResourceID, pe.Reason)
}

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

func NewBusinessRuleError(rule, message string, context map[string]interface{}) *BusinessRuleError {
	return &BusinessRuleError{
		Rule:    rule,
		Message: message,
		Context: context,
	}
}

func NewPermissionError(userID, resourceID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrPsychologistNotFound) ||
		errors.Is(err, ErrAssessmentNotFound) ||
		errors.Is(err, ErrShareNotFound) ||
		errors.Is(err, ErrAppointmentNotFound) ||
		errors.Is(err, ErrMoodEntryNotFound)
}

// IsUnauthorized checks if error represents an "unauthorized" condition
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrInvalidToken)
}

// IsForbidden checks if error represents a "forbidden" condition
func IsForbidden(err error) bool {
	if errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrNotAStudent) ||
		errors.Is(err, ErrNotAPsychologist) ||
		errors.Is(err, ErrAssessmentAccessDenied) ||
		errors.Is(err, ErrShareAccessDenied) ||
		errors.Is(err, ErrAppointmentAccess) ||
		errors.Is(err, ErrAssessmentsNotGranted) {
		return true
	}
	var pe *PermissionError
	return errors.As(err, &pe)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrBadRequest) ||
		errors.Is(err, ErrConsentRequired) ||
		errors.Is(err, ErrIncompleteAnswers) ||
		errors.Is(err, ErrAnswerOutOfRange) ||
		errors.Is(err, ErrUnknownAssessmentAnswer) ||
		errors.Is(err, ErrAppointmentInPast) ||
		errors.Is(err, ErrSlotNotAvailable) ||
		errors.Is(err, ErrModalityNotOffered) ||
		errors.Is(err, ErrInvalidStatusChange) ||
		errors.Is(err, ErrAttendanceRequired) {
		return true
	}
	var ve apperrors.ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var bre *BusinessRuleError
	return errors.As(err, &bre)
}

// IsConflict checks if error represents a resource conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrEmailTaken) ||
		errors.Is(err, ErrShareAlreadyExists) ||
		errors.Is(err, ErrSlotTaken) ||
		errors.Is(err, ErrStudentDoubleBooked)
}
