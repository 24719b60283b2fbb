package cli

import (
	"fmt"

	"task-board/internal/errors"
	"task-board/internal/logging"
	"task-board/internal/validation"
)

// ErrorHandler turns errors returned by the board into messages for the terminal
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle prefixes the user-facing message with the failed operation
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to %s: %s", operation, eh.message(err))
}

// HandleSimple returns the user-facing message without operation context.
// Errors that are not board errors (cobra usage errors, for example) are
// returned unchanged.
func (eh *ErrorHandler) HandleSimple(err error) error {
	if err == nil {
		return nil
	}
	if !errors.IsAppError(err) && !validation.IsValidationError(err) {
		return err
	}
	return fmt.Errorf("%s", eh.message(err))
}

func (eh *ErrorHandler) message(err error) string {
	if errors.ShouldLogError(err) {
		logging.Debugf("%s: %v\n", eh.GetErrorCode(err), err)
	}
	if ve, ok := validation.AsValidationError(err); ok && !errors.IsAppError(err) {
		return ve.GetUserFriendlyMessage()
	}
	return errors.GetUserMessage(err)
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// IsPersistenceError checks if the store could not be read or written
func (eh *ErrorHandler) IsPersistenceError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypePersistence)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}
