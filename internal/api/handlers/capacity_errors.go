package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CapacityService/internal/integrations/capacityapi"
	"github.com/m04kA/SMC-CapacityService/internal/service/capacities"
	"github.com/m04kA/SMC-CapacityService/internal/service/capacities/models"
)

const (
	msgCapacityNotFound   = "слот вместимости не найден"
	msgUnknownHourBucket  = "часы слота не входят в каталог выбранного периода"
	msgInvalidDateRange   = "дата окончания раньше даты начала"
	msgCommandRejected    = "команда отклонена сервисом вместимости"
	msgInvalidCommandData = "некорректные данные слота"
)

// CapacityCommandResponse результат команды персонала
type CapacityCommandResponse struct {
	Capacities []CapacityResponse `json:"capacities"`
	Refreshed  int                `json:"refreshed"` // записей локации после перезагрузки
}

// NewCapacityCommandResponse собирает ответ команды
func NewCapacityCommandResponse(result *models.CommandResponse) CapacityCommandResponse {
	return CapacityCommandResponse{
		Capacities: NewCapacityResponses(result.Capacities),
		Refreshed:  result.Refreshed,
	}
}

// RespondCapacityError отвечает на ошибку команды персонала.
// Отказ backend передается клиенту с сообщением backend.
func RespondCapacityError(w http.ResponseWriter, r *http.Request, logger GridLogger, err error) {
	route := r.Method + " " + r.URL.Path

	switch {
	case errors.Is(err, capacities.ErrInvalidInput):
		logger.Warn("%s - Invalid input: %v", route, err)
		RespondBadRequest(w, msgInvalidCommandData)

	case errors.Is(err, capacities.ErrUnknownHourBucket):
		logger.Warn("%s - Unknown hour bucket: %v", route, err)
		RespondBadRequest(w, msgUnknownHourBucket)

	case errors.Is(err, capacities.ErrInvalidDateRange):
		logger.Warn("%s - Invalid date range: %v", route, err)
		RespondBadRequest(w, msgInvalidDateRange)

	case errors.Is(err, capacities.ErrCapacityNotFound):
		logger.Warn("%s - Capacity not found: %v", route, err)
		RespondNotFound(w, msgCapacityNotFound)

	case errors.Is(err, capacities.ErrRejected):
		msg, ok := capacityapi.ServerMessage(err)
		if !ok {
			msg = msgCommandRejected
		}
		logger.Warn("%s - Command rejected: %s", route, msg)
		RespondError(w, http.StatusUnprocessableEntity, msg)

	default:
		logger.Error("%s - Command failed: %v", route, err)
		RespondInternalError(w)
	}
}
