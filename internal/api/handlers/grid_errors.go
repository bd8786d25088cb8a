package handlers

import (
	"errors"
	"net/http"

	getWeekGrid "github.com/m04kA/SMC-CapacityService/internal/usecase/get_week_grid"
)

const (
	msgSessionNotFound     = "сессия бронирования не найдена"
	msgLocationNotFound    = "локация не найдена"
	msgCapacityUnavailable = "сервис вместимости недоступен"
	msgInvalidGridRequest  = "некорректный запрос сетки"
)

// GridLogger логгер обработчиков сетки
type GridLogger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RespondGridError отвечает на ошибку построения сетки.
// Устаревший запрос получает 204: его результат заменит более новый.
func RespondGridError(w http.ResponseWriter, r *http.Request, logger GridLogger, err error) {
	route := r.Method + " " + r.URL.Path

	switch {
	case errors.Is(err, getWeekGrid.ErrCancelled):
		// Клиент уже ушел, отвечать некому
		logger.Info("%s - Request cancelled", route)

	case errors.Is(err, getWeekGrid.ErrStaleFetch):
		logger.Info("%s - Superseded by a newer request", route)
		RespondNoContent(w)

	case errors.Is(err, getWeekGrid.ErrSessionNotFound):
		logger.Warn("%s - Session not found", route)
		RespondNotFound(w, msgSessionNotFound)

	case errors.Is(err, getWeekGrid.ErrLocationNotFound):
		logger.Warn("%s - Location not found", route)
		RespondNotFound(w, msgLocationNotFound)

	case errors.Is(err, getWeekGrid.ErrCapacityUnavailable):
		logger.Error("%s - Capacity backend unavailable: %v", route, err)
		RespondError(w, http.StatusBadGateway, msgCapacityUnavailable)

	case errors.Is(err, getWeekGrid.ErrInvalidInput):
		logger.Warn("%s - Invalid input: %v", route, err)
		RespondBadRequest(w, msgInvalidGridRequest)

	default:
		logger.Error("%s - Failed to build grid: %v", route, err)
		RespondInternalError(w)
	}
}

// SessionGridResponse сессия вместе с сеткой ее текущей недели
type SessionGridResponse struct {
	Session SessionResponse `json:"session"`
	Grid    GridResponse    `json:"grid"`
}
