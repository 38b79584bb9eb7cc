package open_extra_services

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/infra/storage/records"
	"github.com/m04kA/SMC-PetCareService/internal/service/editor"
)

// UseCase use case открытия редактора доп. услуг
type UseCase struct {
	store  RecordStore
	saver  Saver
	logger Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(store RecordStore, saver Saver, logger Logger) *UseCase {
	return &UseCase{
		store:  store,
		saver:  saver,
		logger: logger,
	}
}

// Execute читает запись и открывает редактор с черновиком из её сохранённого набора
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*editor.Editor, error) {
	if req == nil || req.RecordID == "" {
		return nil, ErrInvalidInput
	}

	collection, err := req.Kind.Collection()
	if err != nil {
		uc.logger.Warn("OpenExtraServices: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUnrecognizedKind, err)
	}

	record, err := uc.store.Get(ctx, collection, req.RecordID)
	if err != nil {
		if errors.Is(err, records.ErrRecordNotFound) {
			uc.logger.Warn("OpenExtraServices: record %s/%s not found", collection, req.RecordID)
			return nil, ErrRecordNotFound
		}
		uc.logger.Error("OpenExtraServices: failed to get record %s/%s: %v", collection, req.RecordID, err)
		return nil, fmt.Errorf("%w: failed to get record: %v", ErrInternal, err)
	}

	e := editor.Open(record, uc.saver)
	uc.logger.Info("OpenExtraServices: opened %s/%s, total=%s", collection, req.RecordID, e.Total())
	return e, nil
}
