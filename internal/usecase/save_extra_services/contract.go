package save_extra_services

import (
	"context"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// RecordStore интерфейс хранилища записей
type RecordStore interface {
	Update(ctx context.Context, collection string, id string, fields map[string]interface{}) (domain.HostRecord, error)
}

// MetricsRecorder интерфейс для учёта результатов сохранения
type MetricsRecorder interface {
	RecordSave(kind, result string)
	RecordInconsistency(kind string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
