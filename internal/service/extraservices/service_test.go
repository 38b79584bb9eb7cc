package extraservices

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/infra/storage/records"
	"github.com/m04kA/SMC-PetCareService/internal/service/extraservices/models"
	openExtraServices "github.com/m04kA/SMC-PetCareService/internal/usecase/open_extra_services"
	saveExtraServices "github.com/m04kA/SMC-PetCareService/internal/usecase/save_extra_services"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
	"github.com/m04kA/SMC-PetCareService/pkg/metrics"
)

// memStore хранилище в памяти для месячных клиентов и записей на приём
type memStore struct {
	mu        sync.Mutex
	monthly   map[string]domain.MonthlyClient
	appts     map[string]domain.Appointment
	updateErr error
	updates   int
}

func newMemStore() *memStore {
	return &memStore{
		monthly: map[string]domain.MonthlyClient{},
		appts:   map[string]domain.Appointment{},
	}
}

func (s *memStore) Get(_ context.Context, collection string, id string) (domain.HostRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch collection {
	case domain.CollectionMonthlyClients:
		if r, ok := s.monthly[id]; ok {
			return &r, nil
		}
	case domain.CollectionAppointments:
		if r, ok := s.appts[id]; ok {
			return &r, nil
		}
	}
	return nil, records.ErrRecordNotFound
}

func (s *memStore) Update(_ context.Context, collection string, id string, fields map[string]interface{}) (domain.HostRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.updates++
	if s.updateErr != nil {
		return nil, s.updateErr
	}

	switch collection {
	case domain.CollectionMonthlyClients:
		r, ok := s.monthly[id]
		if !ok {
			return nil, records.ErrRecordNotFound
		}
		if es, ok := fields[domain.FieldExtraServices].(domain.ExtraServices); ok {
			r.ExtraServices = &es
		}
		if price, ok := fields[domain.FieldPrice].(decimal.Decimal); ok {
			r.Price = price
		}
		s.monthly[id] = r
		return &r, nil
	case domain.CollectionAppointments:
		r, ok := s.appts[id]
		if !ok {
			return nil, records.ErrRecordNotFound
		}
		if es, ok := fields[domain.FieldExtraServices].(domain.ExtraServices); ok {
			r.ExtraServices = &es
		}
		s.appts[id] = r
		return &r, nil
	}
	return nil, records.ErrUnknownCollection
}

func newTestService(t *testing.T, store *memStore) *Service {
	t.Helper()
	log := logger.NewWithWriter(io.Discard, logger.LevelError)
	var m *metrics.Metrics

	saver := saveExtraServices.NewUseCase(store, m, log)
	opener := openExtraServices.NewUseCase(store, saver, log)
	return NewService(opener, testCatalog(), log)
}

func testCatalog() []domain.CatalogItem {
	return []domain.CatalogItem{
		{Service: domain.ServiceOvernight, Label: "Pernoite", SuggestedPrice: dec("50")},
		{Service: domain.ServiceExtraDays, Label: "Dias Extras", SuggestedPrice: dec("30")},
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ops150() []models.OperationRequest {
	return []models.OperationRequest{
		{Op: "toggle", Service: "pernoite"},
		{Op: "set_price", Service: "pernoite", Value: "50"},
		{Op: "toggle", Service: "so_banho"},
		{Op: "set_price", Service: "so_banho", Value: "40,00"},
		{Op: "toggle", Service: "dias_extras"},
		{Op: "set_quantity", Value: "3"},
		{Op: "set_price", Service: "dias_extras", Value: "20"},
	}
}

func TestGet_EmptySelection(t *testing.T) {
	store := newMemStore()
	store.appts["a1"] = domain.Appointment{ID: "a1", Price: dec("65")}
	svc := newTestService(t, store)

	resp, err := svc.Get(context.Background(), domain.KindAppointment, "a1")
	require.NoError(t, err)

	assert.Equal(t, domain.KindAppointment, resp.Kind)
	assert.Equal(t, "a1", resp.RecordID)
	assert.Equal(t, "0.00", resp.Total.String())
	assert.Equal(t, "R$ 0,00", resp.TotalFormatted)
}

func TestQuote_DoesNotWrite(t *testing.T) {
	store := newMemStore()
	store.appts["a1"] = domain.Appointment{ID: "a1"}
	svc := newTestService(t, store)

	resp, err := svc.Quote(context.Background(), &models.EditRequest{
		Kind:       domain.KindAppointment,
		RecordID:   "a1",
		Operations: ops150(),
	})
	require.NoError(t, err)

	assert.Equal(t, "150.00", resp.Total.String())
	assert.Equal(t, "R$ 150,00", resp.TotalFormatted)
	assert.Zero(t, store.updates)
	assert.Nil(t, store.appts["a1"].ExtraServices)
}

func TestQuote_ReplaceThenOperations(t *testing.T) {
	store := newMemStore()
	store.appts["a1"] = domain.Appointment{ID: "a1"}
	svc := newTestService(t, store)

	full := domain.ExtraServices{Medical: domain.FlagService{Enabled: true, Value: dec("100")}}
	resp, err := svc.Quote(context.Background(), &models.EditRequest{
		Kind:          domain.KindAppointment,
		RecordID:      "a1",
		ExtraServices: &full,
		Operations:    []models.OperationRequest{{Op: "toggle", Service: "adestrador"}, {Op: "set_price", Service: "adestrador", Value: "60"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "160.00", resp.Total.String())
}

func TestSave_MonthlyUpdatesPrice(t *testing.T) {
	store := newMemStore()
	store.monthly["m1"] = domain.MonthlyClient{ID: "m1", PetName: "Luna", Price: dec("200"), IsActive: true}
	svc := newTestService(t, store)

	resp, err := svc.Save(context.Background(), &models.EditRequest{
		Kind:       domain.KindMonthly,
		RecordID:   "m1",
		Operations: ops150(),
	})
	require.NoError(t, err)

	require.NotNil(t, resp.NewPrice)
	assert.Equal(t, "350.00", resp.NewPrice.String())
	assert.Equal(t, "R$ 350,00", *resp.NewPriceFormatted)
	require.NotNil(t, resp.Record.Price)
	assert.Equal(t, "350.00", resp.Record.Price.String())
	assert.Equal(t, "150.00", resp.Total.String())
	assert.True(t, resp.ExtraServices.Overnight.Enabled)

	assert.True(t, store.monthly["m1"].Price.Equal(dec("350")))
	assert.Equal(t, 2, store.updates)
}

func TestSave_ConcurrentSavesAreSerialized(t *testing.T) {
	store := newMemStore()
	store.monthly["m1"] = domain.MonthlyClient{ID: "m1", Price: dec("200")}
	svc := newTestService(t, store)

	const n = 4
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Save(context.Background(), &models.EditRequest{
				Kind:       domain.KindMonthly,
				RecordID:   "m1",
				Operations: []models.OperationRequest{{Op: "toggle", Service: "pernoite"}, {Op: "set_price", Service: "pernoite", Value: "10"}},
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	// каждое сохранение видит цену, записанную предыдущим; переключатель pernoite
	// чередуется, поэтому прибавляется только при каждом втором сохранении
	assert.True(t, store.monthly["m1"].Price.Equal(dec("220")), "got %s", store.monthly["m1"].Price)
}

func TestSave_Errors(t *testing.T) {
	tests := []struct {
		name      string
		req       *models.EditRequest
		updateErr error
		want      error
	}{
		{
			name: "nil request",
			want: ErrInvalidInput,
		},
		{
			name: "unknown kind",
			req:  &models.EditRequest{Kind: "grooming", RecordID: "a1"},
			want: ErrUnrecognizedKind,
		},
		{
			name: "not found",
			req:  &models.EditRequest{Kind: domain.KindAppointment, RecordID: "missing"},
			want: ErrRecordNotFound,
		},
		{
			name: "bad operation",
			req: &models.EditRequest{Kind: domain.KindAppointment, RecordID: "a1",
				Operations: []models.OperationRequest{{Op: "toggle", Service: "massagem"}}},
			want: ErrInvalidInput,
		},
		{
			name:      "store rejects write",
			req:       &models.EditRequest{Kind: domain.KindAppointment, RecordID: "a1"},
			updateErr: errors.New("JWT expired"),
			want:      ErrRemoteWrite,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			store.appts["a1"] = domain.Appointment{ID: "a1"}
			store.updateErr = tt.updateErr
			svc := newTestService(t, store)

			resp, err := svc.Save(context.Background(), tt.req)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSave_RemoteWriteKeepsStoreMessage(t *testing.T) {
	store := newMemStore()
	store.appts["a1"] = domain.Appointment{ID: "a1"}
	store.updateErr = errors.New("JWT expired")
	svc := newTestService(t, store)

	_, err := svc.Save(context.Background(), &models.EditRequest{Kind: domain.KindAppointment, RecordID: "a1"})
	require.Error(t, err)

	var writeErr *WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, "JWT expired", writeErr.Details)
	assert.ErrorIs(t, err, ErrRemoteWrite)
}

func TestCatalog(t *testing.T) {
	svc := newTestService(t, newMemStore())

	resp := svc.Catalog()
	require.Len(t, resp.Items, 2)
	assert.Equal(t, domain.ServiceOvernight, resp.Items[0].Service)
	assert.Equal(t, "Pernoite", resp.Items[0].Label)
	assert.Equal(t, "50.00", resp.Items[0].SuggestedPrice.String())
	assert.Equal(t, "R$ 30,00", resp.Items[1].SuggestedPriceFormatted)
}
