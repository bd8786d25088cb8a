package get_week_grid

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия бронирования не найдена
	ErrSessionNotFound = errors.New("get_week_grid: booking session not found")

	// ErrLocationNotFound возвращается, когда backend не знает локацию
	ErrLocationNotFound = errors.New("get_week_grid: location not found")

	// ErrStaleFetch возвращается, когда после этого запроса уже был начат более новый
	ErrStaleFetch = errors.New("get_week_grid: superseded by a newer fetch")

	// ErrCancelled возвращается, когда клиент ушел до получения данных
	ErrCancelled = errors.New("get_week_grid: request cancelled")

	// ErrCapacityUnavailable возвращается, когда backend вместимости недоступен
	ErrCapacityUnavailable = errors.New("get_week_grid: capacity backend unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_week_grid: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_week_grid: internal error")
)
