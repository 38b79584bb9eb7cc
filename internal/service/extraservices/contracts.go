package extraservices

import (
	"context"

	"github.com/m04kA/SMC-PetCareService/internal/service/editor"
	openExtraServices "github.com/m04kA/SMC-PetCareService/internal/usecase/open_extra_services"
)

// EditorOpener интерфейс use case открытия редактора
type EditorOpener interface {
	Execute(ctx context.Context, req *openExtraServices.Request) (*editor.Editor, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
