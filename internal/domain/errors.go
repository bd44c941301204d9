package domain

import (
	"errors"
	"fmt"
)

// Application errors
var (
	// ErrNotFound запись не найдена
	ErrNotFound = errors.New("record not found")

	// ErrInvalidInput неверные входные данные
	ErrInvalidInput = errors.New("invalid input data")

	// ErrUnauthenticated пользователь не аутентифицирован
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("internal error")

	// ErrPaymentNotConfirmed шлюз не подтвердил платеж (используется
	// синхронным путем подтверждения перед активацией подписки)
	ErrPaymentNotConfirmed = errors.New("payment not confirmed by gateway")
)

// ValidationError представляет ошибку валидации входных данных
type ValidationError struct {
	Message string
}

// Error реализует интерфейс error
func (e *ValidationError) Error() string {
	return e.Message
}

// Is проверяет, является ли ошибка ошибкой валидации
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError создает новую ошибку валидации
func NewValidationError(format string, v ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, v...)}
}

// PriceMismatchError клиентская цена разошлась с ценой, пересчитанной
// сервером по опубликованным таблицам
type PriceMismatchError struct {
	Expected float64
	Got      float64
	Currency string
}

// Error реализует интерфейс error
func (e *PriceMismatchError) Error() string {
	return fmt.Sprintf("price mismatch: expected %.2f %s, got %.2f", e.Expected, e.Currency, e.Got)
}

// Is проверяет, является ли ошибка ошибкой валидации
func (e *PriceMismatchError) Is(target error) bool {
	return target == ErrInvalidInput
}

// GatewayError представляет ошибку платежного шлюза
type GatewayError struct {
	StatusCode  int
	Message     string
	OriginalErr error
}

// Error реализует интерфейс error
func (e *GatewayError) Error() string {
	if e.OriginalErr != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.OriginalErr)
	}
	return e.Message
}

// Unwrap возвращает оригинальную ошибку
func (e *GatewayError) Unwrap() error {
	return e.OriginalErr
}

// NewGatewayError создает новую ошибку платежного шлюза
func NewGatewayError(message string, statusCode int, err error) *GatewayError {
	return &GatewayError{
		StatusCode:  statusCode,
		Message:     message,
		OriginalErr: err,
	}
}

// NotFoundError представляет ошибку "не найдено"
type NotFoundError struct {
	Entity string
	ID     string
}

// Error реализует интерфейс error
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Entity, e.ID)
}

// Is проверяет, является ли ошибка ошибкой типа "не найдено"
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError создает новую ошибку "не найдено"
func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{
		Entity: entity,
		ID:     id,
	}
}
