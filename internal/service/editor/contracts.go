package editor

import (
	"context"

	saveExtraServices "github.com/m04kA/SMC-PetCareService/internal/usecase/save_extra_services"
)

// Saver интерфейс use case сохранения доп. услуг
type Saver interface {
	Execute(ctx context.Context, req *saveExtraServices.Request) (*saveExtraServices.Response, error)
}
