package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

const msgInternalError = "erro interno do servidor"

// Переменные пути для маршрутов записи
const (
	VarKind     = "kind"
	VarRecordID = "recordId"
)

var (
	ErrInvalidKind     = errors.New("handlers: invalid record kind")
	ErrInvalidRecordID = errors.New("handlers: invalid record id")
	ErrEmptyBody       = errors.New("handlers: empty request body")
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// DecodeJSON декодирует тело запроса; неизвестные поля запрещены
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return ErrEmptyBody
	}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

// RespondBadGateway ошибка хранилища записей
func RespondBadGateway(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadGateway, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// ParseRecordPath извлекает тип записи и её UUID из пути
func ParseRecordPath(r *http.Request) (domain.RecordKind, string, error) {
	vars := mux.Vars(r)

	kind, err := domain.ParseRecordKind(vars[VarKind])
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidKind, err)
	}

	id, err := uuid.Parse(vars[VarRecordID])
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidRecordID, err)
	}

	return kind, id.String(), nil
}
