package get_extra_services

import (
	"context"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/extraservices/models"
)

type ExtraServicesService interface {
	Get(ctx context.Context, kind domain.RecordKind, recordID string) (*models.DraftResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
