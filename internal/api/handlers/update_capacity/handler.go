package update_capacity

import (
	"net/http"

	"github.com/m04kA/SMC-CapacityService/internal/api/handlers"
	"github.com/m04kA/SMC-CapacityService/internal/service/capacities/models"
)

const (
	msgInvalidCapacityID  = "некорректный ID слота"
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	service CapacityService
	logger  Logger
}

func NewHandler(service CapacityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/staff/capacities/{capacityId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	capacityID, err := handlers.PathString(r, "capacityId")
	if err != nil {
		h.logger.Warn("PUT /staff/capacities/{id} - Invalid capacity ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCapacityID)
		return
	}

	var req UpdateCapacityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /staff/capacities/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), &models.UpdateCapacityRequest{
		CapacityID:    capacityID,
		LocationID:    req.LocationID,
		TotalCapacity: req.TotalCapacity,
		Notes:         req.Notes,
		IsActive:      req.IsActive,
	})
	if err != nil {
		handlers.RespondCapacityError(w, r, h.logger, err)
		return
	}

	h.logger.Info("PUT /staff/capacities/{id} - Capacity updated: capacity_id=%s, location_id=%s", capacityID, req.LocationID)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewCapacityCommandResponse(result))
}
