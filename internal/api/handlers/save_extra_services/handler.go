package save_extra_services

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
	msgSaveInProgress     = "salvamento já em andamento"
	msgRemoteWrite        = "Erro ao salvar serviços extras. Detalhes: "
	msgDependentWrite     = "Serviços extras salvos, mas o preço do mensalista não foi atualizado. Detalhes: "
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

// Handle PUT /api/v1/records/{kind}/{recordId}/extra-services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	kind, recordID, err := handlers.ParseRecordPath(r)
	if err != nil {
		h.logger.Warn("PUT /extra-services - Invalid path: %v", err)
		if errors.Is(err, handlers.ErrInvalidKind) {
			handlers.RespondBadRequest(w, msgInvalidKind)
		} else {
			handlers.RespondBadRequest(w, msgInvalidRecordID)
		}
		return
	}

	var req SaveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /extra-services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	// пустая правка повторно прибавила бы сумму доп. услуг к цене месячного клиента
	if req.ExtraServices == nil && len(req.Operations) == 0 {
		h.logger.Warn("PUT /extra-services - Empty edit: kind=%s, id=%s", kind, recordID)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Save(r.Context(), req.ToServiceRequest(kind, recordID))
	if err != nil {
		var writeErr *extraservices.WriteError

		switch {
		case errors.Is(err, extraservices.ErrInvalidInput):
			h.logger.Warn("PUT /extra-services - Invalid operation: kind=%s, id=%s, error=%v", kind, recordID, err)
			handlers.RespondBadRequest(w, msgInvalidOperation+": "+err.Error())

		case errors.Is(err, extraservices.ErrRecordNotFound):
			h.logger.Warn("PUT /extra-services - Record not found: kind=%s, id=%s", kind, recordID)
			handlers.RespondNotFound(w, msgRecordNotFound)

		case errors.Is(err, extraservices.ErrUnrecognizedKind):
			h.logger.Warn("PUT /extra-services - Unrecognized kind: kind=%s", kind)
			handlers.RespondBadRequest(w, msgInvalidKind)

		case errors.Is(err, extraservices.ErrSaveInProgress):
			h.logger.Warn("PUT /extra-services - Save in progress: kind=%s, id=%s", kind, recordID)
			handlers.RespondConflict(w, msgSaveInProgress)

		case errors.Is(err, extraservices.ErrDependentWrite) && errors.As(err, &writeErr):
			h.logger.Error("PUT /extra-services - Price not updated after extras were saved: kind=%s, id=%s, error=%v", kind, recordID, err)
			handlers.RespondBadGateway(w, msgDependentWrite+writeErr.Details)

		case errors.Is(err, extraservices.ErrRemoteWrite) && errors.As(err, &writeErr):
			h.logger.Error("PUT /extra-services - Failed to save: kind=%s, id=%s, error=%v", kind, recordID, err)
			handlers.RespondBadGateway(w, msgRemoteWrite+writeErr.Details)

		default:
			h.logger.Error("PUT /extra-services - Failed to save: kind=%s, id=%s, error=%v", kind, recordID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /extra-services - Saved: kind=%s, id=%s, total=%s", kind, recordID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
