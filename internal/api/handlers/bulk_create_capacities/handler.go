package bulk_create_capacities

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

// Handle POST /api/v1/staff/capacities/bulk
// Создает слоты на все часы каталога для дней StartDayOfWeek..EndDayOfWeek.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BulkCreateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /staff/capacities/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	effective, err := h.parser.ParseDate(req.EffectiveDate)
	if err != nil {
		h.logger.Warn("POST /staff/capacities/bulk - Invalid effective date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	expiry, err := h.parser.ParseDate(req.ExpiryDate)
	if err != nil {
		h.logger.Warn("POST /staff/capacities/bulk - Invalid expiry date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	result, err := h.service.BulkCreate(r.Context(), &models.BulkCreateCapacityRequest{
		LocationID:     req.LocationID,
		StartDayOfWeek: req.StartDayOfWeek,
		EndDayOfWeek:   req.EndDayOfWeek,
		EffectiveDate:  effective,
		ExpiryDate:     expiry,
		TotalCapacity:  req.TotalCapacity,
		Notes:          req.Notes,
		IsActive:       isActive,
	})
	if err != nil {
		handlers.RespondCapacityError(w, r, h.logger, err)
		return
	}

	h.logger.Info("POST /staff/capacities/bulk - Capacities created: location_id=%s, days=%d-%d, count=%d",
		req.LocationID, req.StartDayOfWeek, req.EndDayOfWeek, len(result.Capacities))
	handlers.RespondJSON(w, http.StatusCreated, handlers.NewCapacityCommandResponse(result))
}
