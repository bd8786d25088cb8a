package capacityapi

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound возвращается, когда backend не нашел запрошенный ресурс
	ErrNotFound = errors.New("capacity api: not found")

	// ErrValidation возвращается, когда backend отклонил тело запроса (400/422)
	ErrValidation = errors.New("capacity api: validation failed")

	// ErrConflict возвращается, когда backend сообщил о конфликте (409)
	ErrConflict = errors.New("capacity api: conflict")

	// ErrUnavailable возвращается при 5xx ответах backend
	ErrUnavailable = errors.New("capacity api: unavailable")

	// ErrInternal возвращается при внутренних ошибках клиента (сеть, сериализация)
	ErrInternal = errors.New("capacity api client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("capacity api client: invalid response")
)

// APIError ошибка, которую вернул backend. Message передается пользователю дословно.
type APIError struct {
	StatusCode int
	Message    string
	kind       error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%v: status %d: %s", e.kind, e.StatusCode, e.Message)
}

// NewAPIError создает ошибку backend; вид ошибки определяется статус-кодом
func NewAPIError(status int, message string) *APIError {
	return &APIError{
		StatusCode: status,
		Message:    message,
		kind:       kindOf(status),
	}
}

func kindOf(status int) error {
	switch {
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return ErrValidation
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusConflict:
		return ErrConflict
	case status >= 500:
		return ErrUnavailable
	default:
		return ErrInvalidResponse
	}
}

// Unwrap позволяет проверять вид ошибки через errors.Is
func (e *APIError) Unwrap() error {
	return e.kind
}

// ServerMessage возвращает сообщение backend, если err содержит *APIError
func ServerMessage(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}
