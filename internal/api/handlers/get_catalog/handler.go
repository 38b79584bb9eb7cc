package get_catalog

import (
	"net/http"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
)

type Handler struct {
	service CatalogService
}

func NewHandler(service CatalogService) *Handler {
	return &Handler{service: service}
}

// Handle GET /api/v1/extra-services/catalog
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.service.Catalog())
}
