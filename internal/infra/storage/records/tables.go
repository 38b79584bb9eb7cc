package records

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// table описание коллекции: возвращаемые колонки и сканер строки в domain-запись
type table struct {
	columns []string
	scan    func(row rowScanner) (domain.HostRecord, error)
}

// tables реестр коллекций, доступных редактору доп. услуг
var tables = map[string]table{
	domain.CollectionAppointments: {
		columns: []string{
			"id",
			"pet_name",
			"owner_name",
			"service",
			"appointment_time",
			"status",
			"price",
			"extra_services",
		},
		scan: scanAppointment,
	},
	domain.CollectionMonthlyClients: {
		columns: []string{
			"id",
			"pet_name",
			"owner_name",
			"service",
			"price",
			"is_active",
			"payment_status",
			"extra_services",
		},
		scan: scanMonthlyClient,
	},
	domain.CollectionDaycare: {
		columns: []string{
			"id",
			"pet_name",
			"tutor_name",
			"created_at",
			"extra_services",
		},
		scan: scanDaycareRegistration,
	},
	domain.CollectionHotel: {
		columns: []string{
			"id",
			"pet_name",
			"tutor_name",
			"check_in_date",
			"check_out_date",
			"status",
			"extra_services",
		},
		scan: scanHotelRegistration,
	},
}

func lookupTable(collection string) (table, error) {
	t, ok := tables[collection]
	if !ok {
		return table{}, fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}
	return t, nil
}

func scanAppointment(row rowScanner) (domain.HostRecord, error) {
	var (
		a             domain.Appointment
		ownerName     sql.NullString
		service       sql.NullString
		appointmentAt sql.NullTime
		status        sql.NullString
		price         decimal.NullDecimal
		extraServices []byte
	)

	err := row.Scan(
		&a.ID,
		&a.PetName,
		&ownerName,
		&service,
		&appointmentAt,
		&status,
		&price,
		&extraServices,
	)
	if err != nil {
		return nil, err
	}

	a.OwnerName = ownerName.String
	a.Service = service.String
	a.AppointmentTime = appointmentAt.Time
	a.Status = status.String
	a.Price = nullDecimal(price)

	if a.ExtraServices, err = decodeSelection(extraServices); err != nil {
		return nil, err
	}
	return &a, nil
}

func scanMonthlyClient(row rowScanner) (domain.HostRecord, error) {
	var (
		m             domain.MonthlyClient
		ownerName     sql.NullString
		service       sql.NullString
		price         decimal.NullDecimal
		isActive      sql.NullBool
		paymentStatus sql.NullString
		extraServices []byte
	)

	err := row.Scan(
		&m.ID,
		&m.PetName,
		&ownerName,
		&service,
		&price,
		&isActive,
		&paymentStatus,
		&extraServices,
	)
	if err != nil {
		return nil, err
	}

	m.OwnerName = ownerName.String
	m.Service = service.String
	m.Price = nullDecimal(price)
	m.IsActive = isActive.Bool
	m.PaymentStatus = paymentStatus.String

	if m.ExtraServices, err = decodeSelection(extraServices); err != nil {
		return nil, err
	}
	return &m, nil
}

func scanDaycareRegistration(row rowScanner) (domain.HostRecord, error) {
	var (
		d             domain.DaycareRegistration
		tutorName     sql.NullString
		createdAt     sql.NullTime
		extraServices []byte
	)

	err := row.Scan(
		&d.ID,
		&d.PetName,
		&tutorName,
		&createdAt,
		&extraServices,
	)
	if err != nil {
		return nil, err
	}

	d.TutorName = tutorName.String
	d.CreatedAt = createdAt.Time

	if d.ExtraServices, err = decodeSelection(extraServices); err != nil {
		return nil, err
	}
	return &d, nil
}

func scanHotelRegistration(row rowScanner) (domain.HostRecord, error) {
	var (
		h             domain.HotelRegistration
		tutorName     sql.NullString
		checkIn       sql.NullTime
		checkOut      sql.NullTime
		status        sql.NullString
		extraServices []byte
	)

	err := row.Scan(
		&h.ID,
		&h.PetName,
		&tutorName,
		&checkIn,
		&checkOut,
		&status,
		&extraServices,
	)
	if err != nil {
		return nil, err
	}

	h.TutorName = tutorName.String
	h.CheckInDate = nullTime(checkIn)
	h.CheckOutDate = nullTime(checkOut)
	h.Status = status.String

	if h.ExtraServices, err = decodeSelection(extraServices); err != nil {
		return nil, err
	}
	return &h, nil
}

// nullDecimal NULL в цене трактуется как 0
func nullDecimal(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func decodeSelection(raw []byte) (*domain.ExtraServices, error) {
	es, err := domain.DecodeExtraServices(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: decode extra_services: %v", ErrScanRow, err)
	}
	return es, nil
}
