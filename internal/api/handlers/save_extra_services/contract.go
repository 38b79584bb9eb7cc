package save_extra_services

import (
	"context"

	"github.com/m04kA/SMC-PetCareService/internal/service/extraservices/models"
)

type ExtraServicesService interface {
	Save(ctx context.Context, req *models.EditRequest) (*models.SaveResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
