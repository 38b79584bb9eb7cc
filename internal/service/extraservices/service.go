package extraservices

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/im7mortal/kmutex"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/editor"
	"github.com/m04kA/SMC-PetCareService/internal/service/extraservices/models"
	openExtraServices "github.com/m04kA/SMC-PetCareService/internal/usecase/open_extra_services"
	saveExtraServices "github.com/m04kA/SMC-PetCareService/internal/usecase/save_extra_services"
)

// Service сервис редактирования доп. услуг записей
type Service struct {
	opener  EditorOpener
	locks   *kmutex.Kmutex
	catalog []domain.CatalogItem
	logger  Logger
}

// NewService создает новый экземпляр сервиса
func NewService(opener EditorOpener, catalog []domain.CatalogItem, logger Logger) *Service {
	return &Service{
		opener:  opener,
		locks:   kmutex.New(),
		catalog: catalog,
		logger:  logger,
	}
}

// Get открывает редактор и возвращает сохранённый набор как черновик
func (s *Service) Get(ctx context.Context, kind domain.RecordKind, recordID string) (*models.DraftResponse, error) {
	e, err := s.open(ctx, kind, recordID)
	if err != nil {
		return nil, err
	}
	defer e.Cancel()

	return models.NewDraftResponse(e.Record(), e.Draft()), nil
}

// Quote применяет правки к черновику и возвращает сумму. Ничего не пишет.
func (s *Service) Quote(ctx context.Context, req *models.EditRequest) (*models.DraftResponse, error) {
	if req == nil {
		return nil, ErrInvalidInput
	}

	e, err := s.open(ctx, req.Kind, req.RecordID)
	if err != nil {
		return nil, err
	}
	defer e.Cancel()

	if err := s.edit(e, req); err != nil {
		return nil, err
	}

	s.logger.Info("Quote: %s/%s total=%s", req.Kind, req.RecordID, e.Total())
	return models.NewDraftResponse(e.Record(), e.Draft()), nil
}

// Save применяет правки и сохраняет черновик.
// Чтение, правка и запись одной записи выполняются под блокировкой по ключу записи,
// иначе два параллельных сохранения месячного клиента посчитают цену от одной базы.
func (s *Service) Save(ctx context.Context, req *models.EditRequest) (*models.SaveResponse, error) {
	if req == nil {
		return nil, ErrInvalidInput
	}

	key := lockKey(req.Kind, req.RecordID)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	e, err := s.open(ctx, req.Kind, req.RecordID)
	if err != nil {
		return nil, err
	}

	if err := s.edit(e, req); err != nil {
		e.Cancel()
		return nil, err
	}

	resp, err := e.Save(ctx)
	if err != nil {
		return nil, s.mapSaveError(req, err)
	}

	s.logger.Info("Save: %s/%s saved, total=%s", req.Kind, req.RecordID, resp.Total)
	return models.NewSaveResponse(resp.Record, resp.Total, resp.NewPrice), nil
}

// Catalog возвращает каталог доп. услуг из конфигурации
func (s *Service) Catalog() *models.CatalogResponse {
	return models.FromDomainCatalog(s.catalog)
}

func (s *Service) open(ctx context.Context, kind domain.RecordKind, recordID string) (*editor.Editor, error) {
	e, err := s.opener.Execute(ctx, &openExtraServices.Request{Kind: kind, RecordID: recordID})
	if err == nil {
		return e, nil
	}

	switch {
	case errors.Is(err, openExtraServices.ErrInvalidInput):
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, openExtraServices.ErrUnrecognizedKind):
		return nil, fmt.Errorf("%w: %s", ErrUnrecognizedKind, kind)
	case errors.Is(err, openExtraServices.ErrRecordNotFound):
		return nil, ErrRecordNotFound
	default:
		s.logger.Error("open: failed to open %s/%s: %v", kind, recordID, err)
		return nil, fmt.Errorf("%w: open - %v", ErrInternal, err)
	}
}

// edit заменяет черновик (если передан) и применяет операции
func (s *Service) edit(e *editor.Editor, req *models.EditRequest) error {
	if req.ExtraServices != nil {
		if err := e.Replace(*req.ExtraServices); err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	if err := e.Apply(req.ToEditorOperations()...); err != nil {
		s.logger.Warn("edit: invalid operations for %s/%s: %v", req.Kind, req.RecordID, err)
		if errors.Is(err, editor.ErrSaveInProgress) || errors.Is(err, editor.ErrEditorClosed) {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func (s *Service) mapSaveError(req *models.EditRequest, err error) error {
	switch {
	case errors.Is(err, editor.ErrSaveInProgress):
		return ErrSaveInProgress
	case errors.Is(err, saveExtraServices.ErrUnrecognizedKind):
		return fmt.Errorf("%w: %s", ErrUnrecognizedKind, req.Kind)
	case errors.Is(err, saveExtraServices.ErrDependentWrite):
		return &WriteError{Kind: ErrDependentWrite, Details: details(err, saveExtraServices.ErrDependentWrite)}
	case errors.Is(err, saveExtraServices.ErrRemoteWrite):
		return &WriteError{Kind: ErrRemoteWrite, Details: details(err, saveExtraServices.ErrRemoteWrite)}
	default:
		s.logger.Error("Save: unexpected error for %s/%s: %v", req.Kind, req.RecordID, err)
		return fmt.Errorf("%w: Save - %v", ErrInternal, err)
	}
}

// details отрезает префикс sentinel-ошибки, оставляя сообщение хранилища
func details(err, sentinel error) string {
	return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
}

func lockKey(kind domain.RecordKind, recordID string) string {
	return string(kind) + "/" + recordID
}
