package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrUnrecognizedKind is returned for a record kind outside the fixed four.
// It must surface before any store call so nothing is written to an empty target.
var ErrUnrecognizedKind = errors.New("domain: unrecognized record kind")

// RecordKind the kind of host record that owns an extra services selection
type RecordKind string

const (
	KindAppointment RecordKind = "appointment"
	KindMonthly     RecordKind = "monthly"
	KindDaycare     RecordKind = "daycare"
	KindHotel       RecordKind = "hotel"
)

// Collections (tables) holding each record kind
const (
	CollectionAppointments   = "appointments"
	CollectionMonthlyClients = "monthly_clients"
	CollectionDaycare        = "daycare_registrations"
	CollectionHotel          = "hotel_registrations"
)

// Persisted field names written by the editor
const (
	FieldID            = "id"
	FieldExtraServices = "extra_services"
	FieldPrice         = "price"
)

// Collection resolves the collection name for the kind
func (k RecordKind) Collection() (string, error) {
	switch k {
	case KindAppointment:
		return CollectionAppointments, nil
	case KindMonthly:
		return CollectionMonthlyClients, nil
	case KindDaycare:
		return CollectionDaycare, nil
	case KindHotel:
		return CollectionHotel, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnrecognizedKind, string(k))
	}
}

// ParseRecordKind validates a raw kind
func ParseRecordKind(s string) (RecordKind, error) {
	kind := RecordKind(s)
	if _, err := kind.Collection(); err != nil {
		return "", err
	}
	return kind, nil
}

// HostRecord is one of *Appointment, *MonthlyClient, *DaycareRegistration,
// *HotelRegistration. The set is closed.
type HostRecord interface {
	Kind() RecordKind
	RecordID() string
	// PersistedExtraServices is nil when the record has no stored selection
	PersistedExtraServices() *ExtraServices
	isHostRecord()
}

// Appointment a grooming appointment
type Appointment struct {
	ID              string
	PetName         string
	OwnerName       string
	Service         string
	AppointmentTime time.Time
	Status          string
	Price           decimal.Decimal
	ExtraServices   *ExtraServices
}

func (a *Appointment) Kind() RecordKind                       { return KindAppointment }
func (a *Appointment) RecordID() string                       { return a.ID }
func (a *Appointment) PersistedExtraServices() *ExtraServices { return a.ExtraServices }
func (a *Appointment) isHostRecord()                          {}

// MonthlyClient a recurring client; Price is the monthly base price
type MonthlyClient struct {
	ID            string
	PetName       string
	OwnerName     string
	Service       string
	Price         decimal.Decimal
	IsActive      bool
	PaymentStatus string
	ExtraServices *ExtraServices
}

func (m *MonthlyClient) Kind() RecordKind                       { return KindMonthly }
func (m *MonthlyClient) RecordID() string                       { return m.ID }
func (m *MonthlyClient) PersistedExtraServices() *ExtraServices { return m.ExtraServices }
func (m *MonthlyClient) isHostRecord()                          {}

// DaycareRegistration a daycare enrollment
type DaycareRegistration struct {
	ID            string
	PetName       string
	TutorName     string
	CreatedAt     time.Time
	ExtraServices *ExtraServices
}

func (d *DaycareRegistration) Kind() RecordKind                       { return KindDaycare }
func (d *DaycareRegistration) RecordID() string                       { return d.ID }
func (d *DaycareRegistration) PersistedExtraServices() *ExtraServices { return d.ExtraServices }
func (d *DaycareRegistration) isHostRecord()                          {}

// HotelRegistration a hotel stay
type HotelRegistration struct {
	ID            string
	PetName       string
	TutorName     string
	CheckInDate   *time.Time
	CheckOutDate  *time.Time
	Status        string
	ExtraServices *ExtraServices
}

func (h *HotelRegistration) Kind() RecordKind                       { return KindHotel }
func (h *HotelRegistration) RecordID() string                       { return h.ID }
func (h *HotelRegistration) PersistedExtraServices() *ExtraServices { return h.ExtraServices }
func (h *HotelRegistration) isHostRecord()                          {}

// SelectionOf returns the record's stored selection, or the all-disabled
// selection when none is stored
func SelectionOf(record HostRecord) ExtraServices {
	if record == nil {
		return ExtraServices{}
	}
	if es := record.PersistedExtraServices(); es != nil {
		return *es
	}
	return ExtraServices{}
}

// MergeRecord overlays the row returned by the store on the original record.
// The store returns full rows, so the returned row wins on every field; the
// original is kept only when nothing came back.
func MergeRecord(original, returned HostRecord) HostRecord {
	if returned == nil {
		return original
	}
	return returned
}

// WithMonthlyPrice returns a copy of a monthly client record with Price replaced.
// Other kinds are returned unchanged.
func WithMonthlyPrice(record HostRecord, price decimal.Decimal) HostRecord {
	monthly, ok := record.(*MonthlyClient)
	if !ok || monthly == nil {
		return record
	}
	updated := *monthly
	updated.Price = price
	return &updated
}
