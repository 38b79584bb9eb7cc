package editor

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	saveExtraServices "github.com/m04kA/SMC-PetCareService/internal/usecase/save_extra_services"
)

// State состояние редактора
type State string

const (
	StateIdle   State = "idle"
	StateSaving State = "saving"
	StateClosed State = "closed"
)

// Editor редактор доп. услуг одной записи.
//
// Черновик создаётся заново при каждом открытии из сохранённого набора записи.
// Переходы: idle -> saving -> closed (успех) или idle (ошибка, черновик не тронут).
// Сохранение нельзя отменить после старта. Пока идёт Save, правки и повторный Save
// отклоняются с ErrSaveInProgress. Запись и черновик защищены mu, сам вызов
// хранилища выполняется без блокировки.
type Editor struct {
	saver Saver

	mu     sync.Mutex
	record domain.HostRecord
	draft  domain.ExtraServices

	saving atomic.Bool
	closed atomic.Bool
}

// Open открывает редактор для записи; отсутствующие поля - выключены и нулевые
func Open(record domain.HostRecord, saver Saver) *Editor {
	return &Editor{
		record: record,
		draft:  domain.SelectionOf(record),
		saver:  saver,
	}
}

// Record запись, с которой работает редактор (после сохранения - слитая запись)
func (e *Editor) Record() domain.HostRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.record
}

// Draft копия текущего черновика
func (e *Editor) Draft() domain.ExtraServices {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft
}

// Total сумма доп. услуг черновика
func (e *Editor) Total() decimal.Decimal {
	return e.Draft().Total()
}

func (e *Editor) State() State {
	switch {
	case e.closed.Load():
		return StateClosed
	case e.saving.Load():
		return StateSaving
	default:
		return StateIdle
	}
}

func (e *Editor) Toggle(service domain.ServiceKey) error {
	return e.edit(func(draft *domain.ExtraServices) error {
		return draft.Toggle(service)
	})
}

func (e *Editor) SetPrice(service domain.ServiceKey, value decimal.Decimal) error {
	return e.edit(func(draft *domain.ExtraServices) error {
		return draft.SetPrice(service, value)
	})
}

func (e *Editor) SetQuantity(quantity int) error {
	return e.edit(func(draft *domain.ExtraServices) error {
		draft.SetQuantity(quantity)
		return nil
	})
}

// Replace заменяет черновик целиком
func (e *Editor) Replace(replacement domain.ExtraServices) error {
	return e.edit(func(draft *domain.ExtraServices) error {
		*draft = replacement
		return nil
	})
}

// Apply применяет операции по порядку. Либо все, либо ни одной.
func (e *Editor) Apply(ops ...Operation) error {
	return e.edit(func(draft *domain.ExtraServices) error {
		next := *draft
		for i, op := range ops {
			if err := op.apply(&next); err != nil {
				return wrapOperationError(i, err)
			}
		}
		*draft = next
		return nil
	})
}

// Cancel закрывает редактор, черновик отбрасывается
func (e *Editor) Cancel() {
	e.closed.Store(true)
}

// Save отправляет черновик в хранилище.
// При ошибке редактор остаётся открытым, черновик не меняется.
// При успехе редактор закрывается, черновик заменяется тем, что вернуло хранилище.
func (e *Editor) Save(ctx context.Context) (*saveExtraServices.Response, error) {
	if e.closed.Load() {
		return nil, ErrEditorClosed
	}
	if !e.saving.CompareAndSwap(false, true) {
		return nil, ErrSaveInProgress
	}
	defer e.saving.Store(false)

	e.mu.Lock()
	req := &saveExtraServices.Request{
		Record: e.record,
		Draft:  e.draft,
	}
	e.mu.Unlock()

	resp, err := e.saver.Execute(ctx, req)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.record = resp.Record
	e.draft = domain.SelectionOf(resp.Record)
	e.closed.Store(true)
	e.mu.Unlock()

	return resp, nil
}

// edit меняет черновик под mu, если редактор открыт и не сохраняется
func (e *Editor) edit(fn func(draft *domain.ExtraServices) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed.Load() {
		return ErrEditorClosed
	}
	if e.saving.Load() {
		return ErrSaveInProgress
	}
	return fn(&e.draft)
}
