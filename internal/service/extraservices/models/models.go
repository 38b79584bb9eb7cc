package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/editor"
)

// Request модели

// InputValue сырой ввод из поля формы. Принимает JSON строку или число.
type InputValue string

func (v *InputValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*v = ""
	case len(trimmed) > 0 && trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = InputValue(s)
	default:
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return fmt.Errorf("value must be a string or a number: %w", err)
		}
		*v = InputValue(n.String())
	}
	return nil
}

// OperationRequest одна операция над черновиком
type OperationRequest struct {
	Op      string     `json:"op"`
	Service string     `json:"service,omitempty"`
	Value   InputValue `json:"value,omitempty"`
}

// EditRequest запрос на расчёт или сохранение черновика.
// ExtraServices (если задан) заменяет черновик целиком, затем применяются Operations.
type EditRequest struct {
	Kind          domain.RecordKind     `json:"-"`
	RecordID      string                `json:"-"`
	ExtraServices *domain.ExtraServices `json:"extraServices,omitempty"`
	Operations    []OperationRequest    `json:"operations,omitempty"`
}

// ToEditorOperations конвертирует операции запроса в операции редактора
func (r *EditRequest) ToEditorOperations() []editor.Operation {
	ops := make([]editor.Operation, 0, len(r.Operations))
	for _, op := range r.Operations {
		ops = append(ops, editor.Operation{
			Type:    editor.OperationType(op.Op),
			Service: domain.ServiceKey(op.Service),
			Value:   string(op.Value),
		})
	}
	return ops
}

// Response модели

// DraftResponse черновик доп. услуг и его сумма
type DraftResponse struct {
	Kind           domain.RecordKind    `json:"kind"`
	RecordID       string               `json:"recordId"`
	ExtraServices  domain.ExtraServices `json:"extraServices"`
	Total          json.Number          `json:"total"`
	TotalFormatted string               `json:"totalFormatted"`
}

// SaveResponse результат сохранения
type SaveResponse struct {
	Record            RecordResponse       `json:"record"`
	ExtraServices     domain.ExtraServices `json:"extraServices"`
	Total             json.Number          `json:"total"`
	TotalFormatted    string               `json:"totalFormatted"`
	NewPrice          *json.Number         `json:"newPrice,omitempty"`          // Только для месячных клиентов
	NewPriceFormatted *string              `json:"newPriceFormatted,omitempty"` // Только для месячных клиентов
}

// RecordResponse запись после сохранения; поля зависят от типа записи
type RecordResponse struct {
	Kind            domain.RecordKind `json:"kind"`
	ID              string            `json:"id"`
	PetName         string            `json:"petName"`
	OwnerName       string            `json:"ownerName,omitempty"`
	TutorName       string            `json:"tutorName,omitempty"`
	Service         string            `json:"service,omitempty"`
	Status          string            `json:"status,omitempty"`
	Price           *json.Number      `json:"price,omitempty"`
	AppointmentTime *time.Time        `json:"appointmentTime,omitempty"`
	IsActive        *bool             `json:"isActive,omitempty"`
	PaymentStatus   string            `json:"paymentStatus,omitempty"`
	CreatedAt       *time.Time        `json:"createdAt,omitempty"`
	CheckInDate     *time.Time        `json:"checkInDate,omitempty"`
	CheckOutDate    *time.Time        `json:"checkOutDate,omitempty"`
}

// CatalogItemResponse услуга каталога
type CatalogItemResponse struct {
	Service                 domain.ServiceKey `json:"service"`
	Label                   string            `json:"label"`
	SuggestedPrice          json.Number       `json:"suggestedPrice"`
	SuggestedPriceFormatted string            `json:"suggestedPriceFormatted"`
}

// CatalogResponse каталог доп. услуг
type CatalogResponse struct {
	Items []CatalogItemResponse `json:"items"`
}

// Конвертеры

// Amount денежная сумма как JSON число
func Amount(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

// NewDraftResponse собирает ответ из черновика записи
func NewDraftResponse(record domain.HostRecord, draft domain.ExtraServices) *DraftResponse {
	total := draft.Total()
	return &DraftResponse{
		Kind:           record.Kind(),
		RecordID:       record.RecordID(),
		ExtraServices:  draft,
		Total:          Amount(total),
		TotalFormatted: domain.FormatBRL(total),
	}
}

// NewSaveResponse собирает ответ из слитой записи
func NewSaveResponse(record domain.HostRecord, total decimal.Decimal, newPrice *decimal.Decimal) *SaveResponse {
	resp := &SaveResponse{
		Record:         FromDomainRecord(record),
		ExtraServices:  domain.SelectionOf(record),
		Total:          Amount(total),
		TotalFormatted: domain.FormatBRL(total),
	}
	if newPrice != nil {
		price := Amount(*newPrice)
		formatted := domain.FormatBRL(*newPrice)
		resp.NewPrice = &price
		resp.NewPriceFormatted = &formatted
	}
	return resp
}

// FromDomainRecord конвертирует запись в ответ
func FromDomainRecord(record domain.HostRecord) RecordResponse {
	switch r := record.(type) {
	case *domain.Appointment:
		price := Amount(r.Price)
		appointmentTime := r.AppointmentTime
		return RecordResponse{
			Kind:            r.Kind(),
			ID:              r.ID,
			PetName:         r.PetName,
			OwnerName:       r.OwnerName,
			Service:         r.Service,
			Status:          r.Status,
			Price:           &price,
			AppointmentTime: nonZeroTime(appointmentTime),
		}
	case *domain.MonthlyClient:
		price := Amount(r.Price)
		isActive := r.IsActive
		return RecordResponse{
			Kind:          r.Kind(),
			ID:            r.ID,
			PetName:       r.PetName,
			OwnerName:     r.OwnerName,
			Service:       r.Service,
			Price:         &price,
			IsActive:      &isActive,
			PaymentStatus: r.PaymentStatus,
		}
	case *domain.DaycareRegistration:
		return RecordResponse{
			Kind:      r.Kind(),
			ID:        r.ID,
			PetName:   r.PetName,
			TutorName: r.TutorName,
			CreatedAt: nonZeroTime(r.CreatedAt),
		}
	case *domain.HotelRegistration:
		return RecordResponse{
			Kind:         r.Kind(),
			ID:           r.ID,
			PetName:      r.PetName,
			TutorName:    r.TutorName,
			Status:       r.Status,
			CheckInDate:  r.CheckInDate,
			CheckOutDate: r.CheckOutDate,
		}
	default:
		return RecordResponse{}
	}
}

// FromDomainCatalog конвертирует каталог в ответ
func FromDomainCatalog(items []domain.CatalogItem) *CatalogResponse {
	resp := &CatalogResponse{Items: make([]CatalogItemResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, CatalogItemResponse{
			Service:                 item.Service,
			Label:                   item.Label,
			SuggestedPrice:          Amount(item.SuggestedPrice),
			SuggestedPriceFormatted: domain.FormatBRL(item.SuggestedPrice),
		})
	}
	return resp
}

func nonZeroTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
