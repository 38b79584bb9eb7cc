package quote_extra_services

import (
	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/extraservices/models"
)

// QuoteRequest HTTP request model. Пустое тело - расчёт сохранённого набора.
type QuoteRequest struct {
	ExtraServices *domain.ExtraServices     `json:"extraServices,omitempty"`
	Operations    []models.OperationRequest `json:"operations,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *QuoteRequest) ToServiceRequest(kind domain.RecordKind, recordID string) *models.EditRequest {
	return &models.EditRequest{
		Kind:          kind,
		RecordID:      recordID,
		ExtraServices: r.ExtraServices,
		Operations:    r.Operations,
	}
}
