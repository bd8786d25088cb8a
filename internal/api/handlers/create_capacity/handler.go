package create_capacity

import (
	"net/http"

	"github.com/m04kA/SMC-CapacityService/internal/api/handlers"
	"github.com/m04kA/SMC-CapacityService/internal/service/capacities/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service CapacityService
	parser  DateParser
	logger  Logger
}

func NewHandler(service CapacityService, parser DateParser, logger Logger) *Handler {
	return &Handler{
		service: service,
		parser:  parser,
		logger:  logger,
	}
}

// Handle POST /api/v1/staff/capacities
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateCapacityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /staff/capacities - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	effective, err := h.parser.ParseDate(req.EffectiveDate)
	if err != nil {
		h.logger.Warn("POST /staff/capacities - Invalid effective date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	expiry, err := h.parser.ParseDate(req.ExpiryDate)
	if err != nil {
		h.logger.Warn("POST /staff/capacities - Invalid expiry date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	result, err := h.service.Create(r.Context(), &models.CreateCapacityRequest{
		LocationID:    req.LocationID,
		DayOfWeek:     req.DayOfWeek,
		TimeSlot:      req.TimeSlot,
		StartHour:     req.StartHour,
		EndHour:       req.EndHour,
		EffectiveDate: effective,
		ExpiryDate:    expiry,
		TotalCapacity: req.TotalCapacity,
		Notes:         req.Notes,
		IsActive:      isActive,
	})
	if err != nil {
		handlers.RespondCapacityError(w, r, h.logger, err)
		return
	}

	h.logger.Info("POST /staff/capacities - Capacity created: location_id=%s, day=%d, hours=%d-%d",
		req.LocationID, req.DayOfWeek, req.StartHour, req.EndHour)
	handlers.RespondJSON(w, http.StatusCreated, handlers.NewCapacityCommandResponse(result))
}
