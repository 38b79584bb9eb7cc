package editor

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	saveExtraServices "github.com/m04kA/SMC-PetCareService/internal/usecase/save_extra_services"
)

// fakeSaver отвечает заранее заданным результатом и запоминает запросы
type fakeSaver struct {
	requests []*saveExtraServices.Request
	resp     *saveExtraServices.Response
	err      error
}

func (s *fakeSaver) Execute(_ context.Context, req *saveExtraServices.Request) (*saveExtraServices.Response, error) {
	s.requests = append(s.requests, req)
	return s.resp, s.err
}

// blockingSaver держит Execute до закрытия release
type blockingSaver struct {
	started chan struct{}
	release chan struct{}
	resp    *saveExtraServices.Response
}

func (s *blockingSaver) Execute(_ context.Context, _ *saveExtraServices.Request) (*saveExtraServices.Response, error) {
	close(s.started)
	<-s.release
	return s.resp, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestOpen_MissingSelectionDefaultsToZero(t *testing.T) {
	e := Open(&domain.DaycareRegistration{ID: "d1"}, &fakeSaver{})

	assert.Equal(t, domain.ExtraServices{}, e.Draft())
	assert.True(t, e.Total().IsZero())
	assert.Equal(t, StateIdle, e.State())
}

func TestOpen_DraftIsACopy(t *testing.T) {
	persisted := domain.ExtraServices{Trainer: domain.FlagService{Enabled: true, Value: dec("60")}}
	record := &domain.HotelRegistration{ID: "h1", ExtraServices: &persisted}

	e := Open(record, &fakeSaver{})
	require.NoError(t, e.Toggle(domain.ServiceTrainer))

	assert.False(t, e.Draft().Trainer.Enabled)
	assert.True(t, persisted.Trainer.Enabled, "persisted selection must not change before save")
}

func TestApply_Operations(t *testing.T) {
	e := Open(&domain.Appointment{ID: "a1"}, &fakeSaver{})

	err := e.Apply(
		Operation{Type: OpToggle, Service: domain.ServiceOvernight},
		Operation{Type: OpSetPrice, Service: domain.ServiceOvernight, Value: "50"},
		Operation{Type: OpToggle, Service: domain.ServiceBathOnly},
		Operation{Type: OpSetPrice, Service: domain.ServiceBathOnly, Value: "R$ 40,00"},
		Operation{Type: OpToggle, Service: domain.ServiceExtraDays},
		Operation{Type: OpSetQuantity, Value: "3"},
		Operation{Type: OpSetPrice, Service: domain.ServiceExtraDays, Value: "20"},
	)
	require.NoError(t, err)

	draft := e.Draft()
	assert.True(t, draft.Overnight.Enabled)
	assert.True(t, draft.BathOnly.Value.Equal(dec("40")))
	assert.Equal(t, 3, draft.ExtraDays.Quantity)
	assert.True(t, e.Total().Equal(dec("150")), "got %s", e.Total())
}

func TestApply_GarbageInputFallsBack(t *testing.T) {
	e := Open(&domain.Appointment{ID: "a1"}, &fakeSaver{})

	require.NoError(t, e.Apply(
		Operation{Type: OpSetPrice, Service: domain.ServiceMedical, Value: "abc"},
		Operation{Type: OpSetQuantity, Service: domain.ServiceExtraDays, Value: "x"},
	))

	assert.True(t, e.Draft().Medical.Value.IsZero())
	assert.Equal(t, 1, e.Draft().ExtraDays.Quantity)
}

func TestApply_AllOrNothing(t *testing.T) {
	e := Open(&domain.Appointment{ID: "a1"}, &fakeSaver{})

	err := e.Apply(
		Operation{Type: OpToggle, Service: domain.ServiceTrainer},
		Operation{Type: OpToggle, Service: "unknown"},
	)
	assert.ErrorIs(t, err, domain.ErrUnknownService)
	assert.Contains(t, err.Error(), "operation #2")
	assert.False(t, e.Draft().Trainer.Enabled)

	err = e.Apply(Operation{Type: "delete"})
	assert.ErrorIs(t, err, ErrUnknownOperation)

	err = e.Apply(Operation{Type: OpSetQuantity, Service: domain.ServiceOvernight, Value: "2"})
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestSave_SuccessClosesAndAdoptsStoredSelection(t *testing.T) {
	stored := domain.ExtraServices{Overnight: domain.FlagService{Enabled: true, Value: dec("55")}}
	saved := &domain.DaycareRegistration{ID: "d1", PetName: "Bob", ExtraServices: &stored}
	saver := &fakeSaver{resp: &saveExtraServices.Response{Record: saved, Total: dec("55")}}

	e := Open(&domain.DaycareRegistration{ID: "d1", PetName: "Bob"}, saver)
	require.NoError(t, e.Toggle(domain.ServiceOvernight))
	require.NoError(t, e.SetPrice(domain.ServiceOvernight, dec("50")))

	resp, err := e.Save(context.Background())
	require.NoError(t, err)
	assert.Same(t, saved, resp.Record)

	require.Len(t, saver.requests, 1)
	assert.True(t, saver.requests[0].Draft.Overnight.Value.Equal(dec("50")))

	assert.Equal(t, StateClosed, e.State())
	assert.Same(t, saved, e.Record())
	assert.True(t, e.Draft().Overnight.Value.Equal(dec("55")))

	assert.ErrorIs(t, e.Toggle(domain.ServiceTrainer), ErrEditorClosed)
	_, err = e.Save(context.Background())
	assert.ErrorIs(t, err, ErrEditorClosed)
	assert.Len(t, saver.requests, 1)
}

func TestSave_FailureKeepsDraft(t *testing.T) {
	saver := &fakeSaver{err: saveExtraServices.ErrRemoteWrite}

	e := Open(&domain.Appointment{ID: "a1"}, saver)
	require.NoError(t, e.Toggle(domain.ServiceMedical))
	require.NoError(t, e.SetPrice(domain.ServiceMedical, dec("100")))
	before := e.Draft()

	_, err := e.Save(context.Background())
	assert.True(t, errors.Is(err, saveExtraServices.ErrRemoteWrite))

	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, before, e.Draft())

	// повторная попытка после ошибки разрешена
	saver.err = nil
	saver.resp = &saveExtraServices.Response{Record: &domain.Appointment{ID: "a1"}}
	_, err = e.Save(context.Background())
	require.NoError(t, err)
	assert.Len(t, saver.requests, 2)
}

func TestSave_ReentrantSaveRefused(t *testing.T) {
	saver := &blockingSaver{
		started: make(chan struct{}),
		release: make(chan struct{}),
		resp:    &saveExtraServices.Response{Record: &domain.Appointment{ID: "a1"}},
	}
	e := Open(&domain.Appointment{ID: "a1"}, saver)

	done := make(chan error, 1)
	go func() {
		_, err := e.Save(context.Background())
		done <- err
	}()

	<-saver.started
	assert.Equal(t, StateSaving, e.State())

	_, err := e.Save(context.Background())
	assert.ErrorIs(t, err, ErrSaveInProgress)
	assert.ErrorIs(t, e.Toggle(domain.ServiceOvernight), ErrSaveInProgress)

	close(saver.release)
	require.NoError(t, <-done)
	assert.Equal(t, StateClosed, e.State())
}

func TestCancel(t *testing.T) {
	saver := &fakeSaver{}
	e := Open(&domain.Appointment{ID: "a1"}, saver)
	e.Cancel()

	assert.Equal(t, StateClosed, e.State())
	assert.ErrorIs(t, e.SetQuantity(2), ErrEditorClosed)
	assert.ErrorIs(t, e.Replace(domain.ExtraServices{}), ErrEditorClosed)
	_, err := e.Save(context.Background())
	assert.ErrorIs(t, err, ErrEditorClosed)
	assert.Empty(t, saver.requests)
}

func TestEdits_ConcurrentWithSave(t *testing.T) {
	saver := &fakeSaver{resp: &saveExtraServices.Response{Record: &domain.Appointment{ID: "a1"}}}
	e := Open(&domain.Appointment{ID: "a1"}, saver)

	const editors = 8
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < editors; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for j := 0; j < 50; j++ {
				err := e.Toggle(domain.ServiceOvernight)
				if err != nil && !errors.Is(err, ErrSaveInProgress) && !errors.Is(err, ErrEditorClosed) {
					t.Errorf("unexpected toggle error: %v", err)
				}
				_ = e.Draft()
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-start
		_, err := e.Save(context.Background())
		assert.NoError(t, err)
	}()

	close(start)
	wg.Wait()

	assert.Equal(t, StateClosed, e.State())
	require.Len(t, saver.requests, 1)
	assert.ErrorIs(t, e.Toggle(domain.ServiceOvernight), ErrEditorClosed)
}
