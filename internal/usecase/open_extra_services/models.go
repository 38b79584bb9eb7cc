package open_extra_services

import "github.com/m04kA/SMC-PetCareService/internal/domain"

// Request модель запроса на открытие редактора
type Request struct {
	Kind     domain.RecordKind
	RecordID string
}
