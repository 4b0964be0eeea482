package errors

import (
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("email", "must be a valid email address", "not-an-email")

	if err.Field != "email" {
		t.Errorf("Expected field to be 'email', got '%s'", err.Field)
	}

	if err.Message != "must be a valid email address" {
		t.Errorf("Expected message to be 'must be a valid email address', got '%s'", err.Message)
	}

	if err.Value != "not-an-email" {
		t.Errorf("Expected value to be 'not-an-email', got '%v'", err.Value)
	}

	expected := "validation error on field 'email': must be a valid email address"
	if err.Error() != expected {
		t.Errorf("Expected error message to be '%s', got '%s'", expected, err.Error())
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	if errs.Error() != "validation failed" {
		t.Errorf("Expected 'validation failed' for empty errors, got '%s'", errs.Error())
	}

	errs = append(errs, *NewValidationError("mood_level", "must be at least 1", nil))
	expected := "validation failed: mood_level must be at least 1"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for single error, got '%s'", expected, errs.Error())
	}

	errs = append(errs, *NewValidationError("entry_date", "is required", nil))
	expected = "validation failed: 2 field errors"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for multiple errors, got '%s'", expected, errs.Error())
	}
}

func TestNewValidationErrorWithRule(t *testing.T) {
	err := NewValidationErrorWithRule("modality", "must be online or in_person", "modality", "phone")

	if err.Rule != "modality" {
		t.Errorf("Expected rule to be 'modality', got '%s'", err.Rule)
	}

	if err.Field != "modality" {
		t.Errorf("Expected field to be 'modality', got '%s'", err.Field)
	}
}
