package customerror

import (
	"errors"
	"fmt"
)

// ValidationError — некорректный пользовательский ввод, обрабатывается повторным запросом
type ValidationError struct {
	message string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{message: msg}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s", e.message)
}

// NotFoundError — заказ или связанная сущность не найдены, состояние не меняется
type NotFoundError struct {
	message string
}

func NewNotFoundError(msg string) *NotFoundError {
	return &NotFoundError{message: msg}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.message)
}

// StorageError — сбой базы или транспорта, логируется и показывается общим сообщением
type StorageError struct {
	message string
	cause   error
}

func NewStorageError(msg string, cause error) *StorageError {
	return &StorageError{message: msg, cause: cause}
}

func (e *StorageError) Error() string {
	if e.cause == nil {
		return e.message
	}
	return fmt.Sprintf("%s: %s", e.message, e.cause.Error())
}

func (e *StorageError) Unwrap() error {
	return e.cause
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsStorage(err error) bool {
	var target *StorageError
	return errors.As(err, &target)
}
