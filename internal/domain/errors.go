package domain

import (
	"errors"
	"fmt"

	"git.appkode.ru/pub/go/failure"
)

// AppError доменная ошибка со стабильным кодом, по которому reply выбирает HTTP-статус.
type AppError struct {
	Code    failure.ErrorCode
	Message string
	cause   error
}

// Error возвращает сообщение вместе с причиной, если она есть.
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap отдаёт причину для errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.cause
}

// NewError создаёт ошибку без причины.
func NewError(code failure.ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// WrapError навешивает код и сообщение на исходную ошибку.
func WrapError(err error, code failure.ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		cause:   err,
	}
}

// IsAppError сообщает, есть ли в цепочке доменная ошибка.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetCode возвращает код внешней AppError в цепочке.
func GetCode(err error) (failure.ErrorCode, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code, true
	}
	return "", false
}

// HasCode проверяет код внешней AppError.
func HasCode(err error, code failure.ErrorCode) bool {
	got, ok := GetCode(err)
	return ok && got == code
}

// Message возвращает сообщение внешней AppError без причины. Для прочих
// ошибок это err.Error().
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
