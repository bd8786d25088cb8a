package get_catalog

import (
	"net/http"

	"github.com/m04kA/SMC-CapacityService/internal/api/handlers"
)

type Handler struct {
	provider CatalogProvider
	logger   Logger
}

func NewHandler(provider CatalogProvider, logger Logger) *Handler {
	return &Handler{
		provider: provider,
		logger:   logger,
	}
}

// Handle GET /api/v1/catalog
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	catalog := h.provider.Catalog()

	h.logger.Info("GET /catalog - Catalog version=%s returned", catalog.Version())
	handlers.RespondJSON(w, http.StatusOK, FromCatalog(catalog))
}
