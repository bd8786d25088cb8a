package get_location_week

import (
	"net/http"

	"github.com/m04kA/SMC-CapacityService/internal/api/handlers"
	"github.com/m04kA/SMC-CapacityService/internal/domain"
	getWeekGrid "github.com/m04kA/SMC-CapacityService/internal/usecase/get_week_grid"
)

const (
	msgInvalidLocationID = "некорректный ID локации"
	msgInvalidAnchor     = "некорректный формат даты anchor, ожидается YYYY-MM-DD"
)

// Handler отдает сетку недели локации для донора или для персонала
type Handler struct {
	useCase GetWeekGridUseCase
	parser  DateParser
	mode    domain.ViewMode
	logger  Logger
}

func NewHandler(useCase GetWeekGridUseCase, parser DateParser, mode domain.ViewMode, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		parser:  parser,
		mode:    mode,
		logger:  logger,
	}
}

// Handle GET /api/v1/locations/{locationId}/weeks?anchor=YYYY-MM-DD
// и GET /api/v1/staff/locations/{locationId}/capacity-grid?anchor=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID, err := handlers.PathString(r, "locationId")
	if err != nil {
		h.logger.Warn("GET %s - Invalid location ID: %v", r.URL.Path, err)
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	anchor, err := handlers.QueryDate(r, "anchor", h.parser)
	if err != nil {
		h.logger.Warn("GET %s - Invalid anchor: %v", r.URL.Path, err)
		handlers.RespondBadRequest(w, msgInvalidAnchor)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getWeekGrid.Request{
		LocationID: locationID,
		Anchor:     anchor,
		Mode:       h.mode,
	})
	if err != nil {
		handlers.RespondGridError(w, r, h.logger, err)
		return
	}

	h.logger.Info("GET %s - Grid returned: location_id=%s, week=%s, anomalies=%d",
		r.URL.Path, locationID, result.View.Week.Start.Format(domain.DateFormat), len(result.View.Anomalies))
	handlers.RespondJSON(w, http.StatusOK, handlers.NewGridResponse(result.View))
}
