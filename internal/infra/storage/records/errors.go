package records

import "errors"

var (
	// ErrRecordNotFound возвращается, когда запись с указанным id не найдена
	ErrRecordNotFound = errors.New("records.repository: record not found")

	// ErrUnknownCollection возвращается для коллекции, которой нет в реестре таблиц
	ErrUnknownCollection = errors.New("records.repository: unknown collection")

	// ErrEmptyUpdate возвращается при попытке обновления без полей
	ErrEmptyUpdate = errors.New("records.repository: no fields to update")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("records.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("records.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("records.repository: failed to scan row")
)
