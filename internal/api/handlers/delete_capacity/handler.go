package delete_capacity

import (
	"net/http"
	"strings"

	"github.com/m04kA/SMC-CapacityService/internal/api/handlers"
	"github.com/m04kA/SMC-CapacityService/internal/service/capacities/models"
)

const (
	msgInvalidCapacityID = "некорректный ID слота"
	msgMissingLocationID = "не указан locationId"
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

// Handle DELETE /api/v1/staff/capacities/{capacityId}?locationId=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	capacityID, err := handlers.PathString(r, "capacityId")
	if err != nil {
		h.logger.Warn("DELETE /staff/capacities/{id} - Invalid capacity ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCapacityID)
		return
	}

	locationID := strings.TrimSpace(r.URL.Query().Get("locationId"))
	if locationID == "" {
		h.logger.Warn("DELETE /staff/capacities/{id} - Missing location ID: capacity_id=%s", capacityID)
		handlers.RespondBadRequest(w, msgMissingLocationID)
		return
	}

	result, err := h.service.Delete(r.Context(), &models.DeleteCapacityRequest{
		CapacityID: capacityID,
		LocationID: locationID,
	})
	if err != nil {
		handlers.RespondCapacityError(w, r, h.logger, err)
		return
	}

	h.logger.Info("DELETE /staff/capacities/{id} - Capacity deleted: capacity_id=%s, location_id=%s", capacityID, locationID)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewCapacityCommandResponse(result))
}
