package save_extra_services

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// Значения метки result для метрики сохранений
const (
	resultSuccess          = "success"
	resultUnrecognizedKind = "unrecognized_kind"
	resultRemoteWrite      = "remote_write_failure"
	resultDependentWrite   = "dependent_write_failure"
)

// UseCase use case сохранения доп. услуг записи
type UseCase struct {
	store   RecordStore
	metrics MetricsRecorder
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(store RecordStore, metrics MetricsRecorder, logger Logger) *UseCase {
	return &UseCase{
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

// Execute сохраняет черновик доп. услуг.
//
// 1. Определяет коллекцию по типу записи (неизвестный тип - ошибка до записи)
// 2. Обновляет extra_services записи по id
// 3. Для месячного клиента вторым независимым запросом пишет
//    price = цена до редактирования + сумма доп. услуг
// 4. Возвращает запись, слитую с ответом хранилища; для месячного клиента
//    цена выставляется явно, без повторного чтения
//
// Повторов нет. Если упала вторая запись, первая уже сохранена.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.Record == nil {
		return nil, ErrInvalidInput
	}

	kind := req.Record.Kind()
	id := req.Record.RecordID()

	collection, err := kind.Collection()
	if err != nil {
		uc.logger.Error("SaveExtraServices: %v", err)
		uc.metrics.RecordSave(string(kind), resultUnrecognizedKind)
		return nil, fmt.Errorf("%w: %v", ErrUnrecognizedKind, err)
	}

	total := req.Draft.Total()
	uc.logger.Info("SaveExtraServices: collection=%s, id=%s, total=%s", collection, id, total)

	updated, err := uc.store.Update(ctx, collection, id, map[string]interface{}{
		domain.FieldExtraServices: req.Draft,
	})
	if err != nil {
		uc.logger.Error("SaveExtraServices: failed to update extra_services collection=%s, id=%s: %v", collection, id, err)
		uc.metrics.RecordSave(string(kind), resultRemoteWrite)
		return nil, fmt.Errorf("%w: %v", ErrRemoteWrite, err)
	}

	resp := &Response{
		Record: domain.MergeRecord(req.Record, updated),
		Total:  total,
	}

	if monthly, ok := req.Record.(*domain.MonthlyClient); ok {
		newPrice := monthly.Price.Add(total)

		_, err := uc.store.Update(ctx, collection, id, map[string]interface{}{
			domain.FieldPrice: newPrice,
		})
		if err != nil {
			uc.logger.Error("SaveExtraServices: extra_services saved but price update failed, record is inconsistent: id=%s, expected price=%s: %v",
				id, newPrice, err)
			uc.metrics.RecordSave(string(kind), resultDependentWrite)
			uc.metrics.RecordInconsistency(string(kind))
			return nil, fmt.Errorf("%w: %v", ErrDependentWrite, err)
		}

		resp.Record = domain.WithMonthlyPrice(resp.Record, newPrice)
		resp.NewPrice = &newPrice
		uc.logger.Info("SaveExtraServices: monthly client id=%s price %s -> %s", id, monthly.Price, newPrice)
	}

	uc.metrics.RecordSave(string(kind), resultSuccess)
	uc.logger.Info("SaveExtraServices: successfully saved collection=%s, id=%s", collection, id)
	return resp, nil
}
