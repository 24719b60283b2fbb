package validation

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	apperrors "task-board/internal/errors"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name        string
		errors      []FieldError
		expectError string
	}{
		{"No errors", []FieldError{}, "validation error"},
		{"Single error", []FieldError{{Field: "problem", Message: "is required"}}, "validation error for field 'problem': is required"},
		{"Multiple errors", []FieldError{
			{Field: "problem", Message: "is required"},
			{Field: "expected_result", Message: "is required"},
		}, "multiple validation errors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := &ValidationError{Errors: tt.errors}
			result := ve.Error()

			if tt.name == "Multiple errors" {
				if !strings.Contains(result, tt.expectError) {
					t.Errorf("ValidationError.Error() = %v, expected to contain %v", result, tt.expectError)
				}
			} else {
				if result != tt.expectError {
					t.Errorf("ValidationError.Error() = %v, expected %v", result, tt.expectError)
				}
			}
		})
	}
}

func TestValidationError_HasErrors(t *testing.T) {
	ve := NewValidationError()
	if ve.HasErrors() {
		t.Errorf("NewValidationError().HasErrors() = true, expected false")
	}

	ve.AddRequiredError(FieldTaskTitle)
	if !ve.HasErrors() {
		t.Errorf("HasErrors() = false after AddRequiredError, expected true")
	}
}

func TestValidationError_AddRequiredError(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError(FieldExpectedResult)

	if len(ve.Errors) != 1 {
		t.Fatalf("Expected 1 error, got %d", len(ve.Errors))
	}
	if ve.Errors[0].Type != ErrorTypeRequired {
		t.Errorf("Expected error type %v, got %v", ErrorTypeRequired, ve.Errors[0].Type)
	}
	if ve.Errors[0].Message != "expected result is required" {
		t.Errorf("Unexpected message %q", ve.Errors[0].Message)
	}
}

func TestValidationError_AddInvalidFormatError(t *testing.T) {
	ve := NewValidationError()
	ve.AddInvalidFormatError(FieldTaskID, "abc", "decimal digits")

	if ve.Errors[0].Type != ErrorTypeInvalidFormat {
		t.Errorf("Expected error type %v, got %v", ErrorTypeInvalidFormat, ve.Errors[0].Type)
	}
	if !strings.Contains(ve.Errors[0].Message, "task id has invalid format") {
		t.Errorf("Expected message to name the field, got %s", ve.Errors[0].Message)
	}
	if ve.Errors[0].Value != "abc" {
		t.Errorf("Expected value abc, got %v", ve.Errors[0].Value)
	}
}

func TestValidationError_AddInvalidLengthError(t *testing.T) {
	tests := []struct {
		min, max int
		contains string
	}{
		{2, 50, "between 2 and 50"},
		{3, 0, "at least 3"},
		{0, 10, "at most 10"},
		{0, 0, "invalid length"},
	}

	for _, tt := range tests {
		t.Run(tt.contains, func(t *testing.T) {
			ve := NewValidationError()
			ve.AddInvalidLengthError(FieldProblem, "x", tt.min, tt.max)
			if !strings.Contains(ve.Errors[0].Message, tt.contains) {
				t.Errorf("Expected message to contain %q, got %s", tt.contains, ve.Errors[0].Message)
			}
		})
	}
}

func TestValidationError_AddInvalidValueError(t *testing.T) {
	ve := NewValidationError()
	ve.AddInvalidValueError(FieldColumn, "Archived", "must be a board column")

	if ve.Errors[0].Type != ErrorTypeInvalidValue {
		t.Errorf("Expected error type %v, got %v", ErrorTypeInvalidValue, ve.Errors[0].Type)
	}
	if !strings.Contains(ve.Errors[0].Message, "must be a board column") {
		t.Errorf("Expected message to contain reason, got %s", ve.Errors[0].Message)
	}
}

func TestValidationError_AddInvalidCharacterError(t *testing.T) {
	ve := NewValidationError()
	ve.AddInvalidCharacterError(FieldTaskTitle, "a\x00b")

	if ve.Errors[0].Type != ErrorTypeInvalidCharacter {
		t.Errorf("Expected error type %v, got %v", ErrorTypeInvalidCharacter, ve.Errors[0].Type)
	}
	if !strings.Contains(ve.Errors[0].Message, "task title contains invalid characters") {
		t.Errorf("Unexpected message %s", ve.Errors[0].Message)
	}
}

func TestValidationError_GetFieldErrors(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError(FieldProblem)
	ve.AddRequiredError(FieldExpectedResult)
	ve.AddInvalidCharacterError(FieldProblem, "\x01")

	if got := len(ve.GetFieldErrors(FieldProblem)); got != 2 {
		t.Errorf("Expected 2 errors for problem, got %d", got)
	}
	if got := len(ve.GetFieldErrors(FieldColumn)); got != 0 {
		t.Errorf("Expected 0 errors for column, got %d", got)
	}
}

func TestValidationError_GetUserFriendlyMessage(t *testing.T) {
	tests := []struct {
		name     string
		errors   []FieldError
		expected string
	}{
		{"No errors", []FieldError{}, "Input validation failed"},
		{"Single error", []FieldError{{Field: "problem", Message: "problem is required"}}, "problem is required"},
		{"Multiple errors", []FieldError{
			{Field: "problem", Message: "problem is required"},
			{Field: "expected_result", Message: "expected result is required"},
		}, "- expected result is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := &ValidationError{Errors: tt.errors}
			result := ve.GetUserFriendlyMessage()

			if tt.name == "Multiple errors" {
				if !strings.Contains(result, tt.expected) {
					t.Errorf("GetUserFriendlyMessage() = %v, expected to contain %v", result, tt.expected)
				}
			} else {
				if result != tt.expected {
					t.Errorf("GetUserFriendlyMessage() = %v, expected %v", result, tt.expected)
				}
			}
		})
	}
}

func TestValidationError_ToAppError(t *testing.T) {
	ve := NewValidationError()
	if ve.ToAppError() != nil {
		t.Errorf("ToAppError() on empty ValidationError should be nil")
	}

	ve.AddRequiredError(FieldTaskTitle)
	err := ve.ToAppError()
	if !apperrors.IsErrorType(err, apperrors.ErrorTypeValidation) {
		t.Errorf("ToAppError() should return a validation AppError, got %T", err)
	}
	if apperrors.GetUserMessage(err) != "task title is required" {
		t.Errorf("Unexpected user message %q", apperrors.GetUserMessage(err))
	}
	if !IsValidationError(err) {
		t.Errorf("IsValidationError() should see through the AppError wrapper")
	}
}

func TestIsValidationError(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError(FieldProblem)

	if !IsValidationError(ve) {
		t.Errorf("IsValidationError() = false, expected true for ValidationError")
	}
	if !IsValidationError(fmt.Errorf("wrapped: %w", ve)) {
		t.Errorf("IsValidationError() = false, expected true for wrapped ValidationError")
	}
	if IsValidationError(errors.New("regular error")) {
		t.Errorf("IsValidationError() = true, expected false for regular error")
	}
}
