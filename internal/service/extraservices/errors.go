package extraservices

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном запросе или операции
	ErrInvalidInput = errors.New("invalid input data")

	// ErrUnrecognizedKind возвращается для неизвестного типа записи
	ErrUnrecognizedKind = errors.New("unrecognized record kind")

	// ErrRecordNotFound возвращается, когда запись не найдена
	ErrRecordNotFound = errors.New("record not found")

	// ErrSaveInProgress возвращается, когда сохранение уже выполняется
	ErrSaveInProgress = errors.New("save already in progress")

	// ErrRemoteWrite возвращается, когда сохранение доп. услуг не удалось
	ErrRemoteWrite = errors.New("failed to save extra services")

	// ErrDependentWrite возвращается, когда доп. услуги сохранены, а цена месячного клиента - нет
	ErrDependentWrite = errors.New("extra services saved but monthly price was not updated")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

// WriteError ошибка записи в хранилище. Details - исходное сообщение хранилища.
type WriteError struct {
	Kind    error
	Details string
}

func (e *WriteError) Error() string {
	return e.Kind.Error() + ": " + e.Details
}

func (e *WriteError) Unwrap() error {
	return e.Kind
}
