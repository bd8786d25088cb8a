package select_slot

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия бронирования не найдена
	ErrSessionNotFound = errors.New("select_slot: booking session not found")

	// ErrSessionClosed возвращается, когда сессия уже подтверждена или отменена
	ErrSessionClosed = errors.New("select_slot: booking session is closed")

	// ErrInvalidSelection возвращается, когда ячейку нельзя выбрать; сессия не меняется
	ErrInvalidSelection = errors.New("select_slot: invalid selection")

	// ErrCapacityUnavailable возвращается, когда backend вместимости недоступен
	ErrCapacityUnavailable = errors.New("select_slot: capacity backend unavailable")

	// ErrCancelled возвращается, когда клиент ушел до завершения запроса
	ErrCancelled = errors.New("select_slot: request cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("select_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("select_slot: internal error")
)
