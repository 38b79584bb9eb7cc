package quote_extra_services

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/service/extraservices"
)

const (
	msgInvalidKind        = "tipo de registro inválido"
	msgInvalidRecordID    = "ID de registro inválido"
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgInvalidOperation   = "operação inválida"
	msgRecordNotFound     = "registro não encontrado"
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

// Handle POST /api/v1/records/{kind}/{recordId}/extra-services/quote
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	kind, recordID, err := handlers.ParseRecordPath(r)
	if err != nil {
		h.logger.Warn("POST /extra-services/quote - Invalid path: %v", err)
		if errors.Is(err, handlers.ErrInvalidKind) {
			handlers.RespondBadRequest(w, msgInvalidKind)
		} else {
			handlers.RespondBadRequest(w, msgInvalidRecordID)
		}
		return
	}

	var req QuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("POST /extra-services/quote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	draft, err := h.service.Quote(r.Context(), req.ToServiceRequest(kind, recordID))
	if err != nil {
		switch {
		case errors.Is(err, extraservices.ErrInvalidInput):
			h.logger.Warn("POST /extra-services/quote - Invalid operation: kind=%s, id=%s, error=%v", kind, recordID, err)
			handlers.RespondBadRequest(w, msgInvalidOperation+": "+err.Error())

		case errors.Is(err, extraservices.ErrRecordNotFound):
			h.logger.Warn("POST /extra-services/quote - Record not found: kind=%s, id=%s", kind, recordID)
			handlers.RespondNotFound(w, msgRecordNotFound)

		case errors.Is(err, extraservices.ErrUnrecognizedKind):
			handlers.RespondBadRequest(w, msgInvalidKind)

		default:
			h.logger.Error("POST /extra-services/quote - Failed to quote: kind=%s, id=%s, error=%v", kind, recordID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, draft)
}
