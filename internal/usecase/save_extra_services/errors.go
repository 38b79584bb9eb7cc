package save_extra_services

import "errors"

var (
	// ErrInvalidInput возвращается при отсутствии записи в запросе
	ErrInvalidInput = errors.New("save_extra_services: invalid input data")

	// ErrUnrecognizedKind возвращается для типа записи вне четырёх известных.
	// Возникает до любого обращения к хранилищу.
	ErrUnrecognizedKind = errors.New("save_extra_services: unrecognized record kind")

	// ErrRemoteWrite возвращается, когда основная запись (extra_services) не удалась.
	// Ничего не сохранено, черновик можно отправить повторно.
	ErrRemoteWrite = errors.New("save_extra_services: failed to save extra services")

	// ErrDependentWrite возвращается, когда extra_services уже сохранены,
	// но обновление цены месячного клиента не удалось. Компенсации нет.
	ErrDependentWrite = errors.New("save_extra_services: extra services saved but monthly price update failed")
)
