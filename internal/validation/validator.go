package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"task-board/internal/config"
	"task-board/internal/domain"
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		config: nil, // Use defaults
	}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		config: cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a string length in characters is within the specified range.
// A max of zero or less means no upper bound.
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	return length >= min && (max <= 0 || length <= max)
}

// IsValidTaskID checks if a task id is a non-empty string of decimal digits
func (v *Validator) IsValidTaskID(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsValidColumn checks if s names one of the board columns
func (v *Validator) IsValidColumn(s string) bool {
	_, ok := domain.ParseColumn(s)
	return ok
}

// HasControlCharacters reports whether s contains control characters other
// than tab and newline
func (v *Validator) HasControlCharacters(s string) bool {
	for _, r := range s {
		if r == '\t' || r == '\n' {
			continue
		}
		if unicode.IsControl(r) {
			return true
		}
	}
	return false
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// getProblemMaxLength returns configured maximum problem name length or default
func (v *Validator) getProblemMaxLength() int {
	if v.config != nil {
		return v.config.Validation.ProblemMaxLength
	}
	return 200 // Default maximum
}

// getResultMaxLength returns configured maximum expected result length or default
func (v *Validator) getResultMaxLength() int {
	if v.config != nil {
		return v.config.Validation.ResultMaxLength
	}
	return 500 // Default maximum
}

// getTitleMaxLength returns configured maximum task title length or default
func (v *Validator) getTitleMaxLength() int {
	if v.config != nil {
		return v.config.Validation.TitleMaxLength
	}
	return 255 // Default maximum
}
