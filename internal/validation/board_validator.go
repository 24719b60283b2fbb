package validation

import (
	"task-board/internal/config"
	"task-board/internal/domain"
)

// BoardValidator validates the user-supplied fields of board operations.
// Each Validate method returns the trimmed values together with a
// *ValidationError when any field is unacceptable.
type BoardValidator struct {
	validator *Validator
}

// NewBoardValidator creates a new board validator
func NewBoardValidator() *BoardValidator {
	return &BoardValidator{
		validator: NewValidator(),
	}
}

// NewBoardValidatorWithConfig creates a board validator using configured length limits
func NewBoardValidatorWithConfig(cfg *config.Config) *BoardValidator {
	return &BoardValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// ValidateProblem validates a problem registration. Both the name and the
// expected result are required.
func (bv *BoardValidator) ValidateProblem(name, expectedResult string) (domain.Problem, error) {
	validationError := NewValidationError()

	name = bv.validator.TrimAndValidateString(name)
	expectedResult = bv.validator.TrimAndValidateString(expectedResult)

	bv.checkText(validationError, FieldProblem, name, bv.validator.getProblemMaxLength())
	bv.checkText(validationError, FieldExpectedResult, expectedResult, bv.validator.getResultMaxLength())

	if validationError.HasErrors() {
		return domain.Problem{}, validationError
	}
	return domain.NewProblem(name, expectedResult), nil
}

// ValidateTaskCreation validates a new task's title and the problem selected for it
func (bv *BoardValidator) ValidateTaskCreation(title, problem string) (string, string, error) {
	validationError := NewValidationError()

	title = bv.validator.TrimAndValidateString(title)

	bv.checkText(validationError, FieldTaskTitle, title, bv.validator.getTitleMaxLength())
	if problem == "" {
		validationError.AddRequiredError(FieldProblemSelected)
	}

	if validationError.HasErrors() {
		return "", "", validationError
	}
	return title, problem, nil
}

// ValidateMove validates a move request's task id and target column
func (bv *BoardValidator) ValidateMove(id, column string) (domain.Column, error) {
	validationError := NewValidationError()

	if !bv.validator.IsNonEmptyString(id) {
		validationError.AddRequiredError(FieldTaskID)
	} else if !bv.validator.IsValidTaskID(id) {
		validationError.AddInvalidFormatError(FieldTaskID, id, "decimal digits")
	}

	if !bv.validator.IsNonEmptyString(column) {
		validationError.AddRequiredError(FieldColumn)
	} else if !bv.validator.IsValidColumn(column) {
		validationError.AddInvalidValueError(FieldColumn, column, "must be one of To Do, In Progress, Done")
	}

	if validationError.HasErrors() {
		return "", validationError
	}
	return domain.Column(column), nil
}

func (bv *BoardValidator) checkText(ve *ValidationError, field, value string, max int) {
	if !bv.validator.IsNonEmptyString(value) {
		ve.AddRequiredError(field)
		return
	}
	if !bv.validator.IsValidStringLength(value, 1, max) {
		ve.AddInvalidLengthError(field, value, 0, max)
	}
	if bv.validator.HasControlCharacters(value) {
		ve.AddInvalidCharacterError(field, value)
	}
}
