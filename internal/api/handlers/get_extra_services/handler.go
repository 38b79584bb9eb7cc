package get_extra_services

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/service/extraservices"
)

const (
	msgInvalidKind     = "tipo de registro inválido"
	msgInvalidRecordID = "ID de registro inválido"
	msgRecordNotFound  = "registro não encontrado"
)

type Handler struct {
	service ExtraServicesService
	logger  Logger
}

func NewHandler(service ExtraServicesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/records/{kind}/{recordId}/extra-services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	kind, recordID, err := handlers.ParseRecordPath(r)
	if err != nil {
		h.logger.Warn("GET /extra-services - Invalid path: %v", err)
		if errors.Is(err, handlers.ErrInvalidKind) {
			handlers.RespondBadRequest(w, msgInvalidKind)
		} else {
			handlers.RespondBadRequest(w, msgInvalidRecordID)
		}
		return
	}

	draft, err := h.service.Get(r.Context(), kind, recordID)
	if err != nil {
		switch {
		case errors.Is(err, extraservices.ErrRecordNotFound):
			h.logger.Warn("GET /extra-services - Record not found: kind=%s, id=%s", kind, recordID)
			handlers.RespondNotFound(w, msgRecordNotFound)

		case errors.Is(err, extraservices.ErrUnrecognizedKind):
			h.logger.Warn("GET /extra-services - Unrecognized kind: kind=%s", kind)
			handlers.RespondBadRequest(w, msgInvalidKind)

		default:
			h.logger.Error("GET /extra-services - Failed to get extra services: kind=%s, id=%s, error=%v", kind, recordID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /extra-services - Draft opened: kind=%s, id=%s, total=%s", kind, recordID, draft.Total)
	handlers.RespondJSON(w, http.StatusOK, draft)
}
