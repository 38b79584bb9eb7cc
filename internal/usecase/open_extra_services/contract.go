package open_extra_services

import (
	"context"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/editor"
)

// RecordStore интерфейс хранилища записей
type RecordStore interface {
	Get(ctx context.Context, collection string, id string) (domain.HostRecord, error)
}

// Saver use case сохранения, передаётся в открытый редактор
type Saver = editor.Saver

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
