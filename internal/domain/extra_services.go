package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrUnknownService is returned for a service key outside the fixed six
var ErrUnknownService = errors.New("domain: unknown extra service")

// ServiceKey identifies an extra service; values match the persisted JSON keys
type ServiceKey string

const (
	ServiceOvernight    ServiceKey = "pernoite"
	ServiceBathGrooming ServiceKey = "banho_tosa"
	ServiceBathOnly     ServiceKey = "so_banho"
	ServiceTrainer      ServiceKey = "adestrador"
	ServiceMedical      ServiceKey = "despesa_medica"
	ServiceExtraDays    ServiceKey = "dias_extras"
)

// FlagServices flat-fee services, in display order
var FlagServices = []ServiceKey{
	ServiceOvernight,
	ServiceBathGrooming,
	ServiceBathOnly,
	ServiceTrainer,
	ServiceMedical,
}

// AllServices every service key, in display order
var AllServices = append(append([]ServiceKey{}, FlagServices...), ServiceExtraDays)

// ParseServiceKey validates a raw service key
func ParseServiceKey(s string) (ServiceKey, error) {
	key := ServiceKey(s)
	for _, known := range AllServices {
		if key == known {
			return key, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownService, s)
}

// IsFlag reports whether the service is a flat-fee on/off service
func (k ServiceKey) IsFlag() bool {
	return k != ServiceExtraDays
}

// FlagService a flat-fee service. Value is kept while disabled but never counted.
type FlagService struct {
	Enabled bool
	Value   decimal.Decimal
}

// Amount returns the contribution of the service to the total
func (f FlagService) Amount() decimal.Decimal {
	if !f.Enabled {
		return decimal.Zero
	}
	return f.Value
}

// ExtraDays the quantity-priced service. Quantity > 0 means enabled.
type ExtraDays struct {
	Quantity int
	Value    decimal.Decimal
}

// Enabled reports whether extra days are charged
func (d ExtraDays) Enabled() bool {
	return d.Quantity > 0
}

// Amount returns Quantity * Value, or zero when disabled
func (d ExtraDays) Amount() decimal.Decimal {
	if !d.Enabled() {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(d.Quantity)).Mul(d.Value)
}

// ExtraServices the extra services selection attached to a host record.
// The zero value is the all-disabled selection.
type ExtraServices struct {
	Overnight    FlagService
	BathGrooming FlagService
	BathOnly     FlagService
	Trainer      FlagService
	Medical      FlagService
	ExtraDays    ExtraDays
}

// Total sums enabled flat fees plus quantity * unit price for extra days.
// No rounding is applied.
func (e ExtraServices) Total() decimal.Decimal {
	total := decimal.Zero
	for _, key := range FlagServices {
		total = total.Add(e.flag(key).Amount())
	}
	return total.Add(e.ExtraDays.Amount())
}

// Flag returns a copy of a flat-fee service
func (e ExtraServices) Flag(key ServiceKey) (FlagService, error) {
	f := e.flag(key)
	if f == nil {
		return FlagService{}, fmt.Errorf("%w: %q is not a flag service", ErrUnknownService, key)
	}
	return *f, nil
}

// Toggle flips a flag service, leaving its price untouched.
// For extra days it switches quantity 0 -> 1 and >0 -> 0; the previous
// quantity is not remembered.
func (e *ExtraServices) Toggle(key ServiceKey) error {
	if key == ServiceExtraDays {
		if e.ExtraDays.Quantity > 0 {
			e.ExtraDays.Quantity = 0
		} else {
			e.ExtraDays.Quantity = 1
		}
		return nil
	}

	f := e.flag(key)
	if f == nil {
		return fmt.Errorf("%w: %q", ErrUnknownService, key)
	}
	f.Enabled = !f.Enabled
	return nil
}

// SetPrice overwrites the unit price of a service unconditionally
func (e *ExtraServices) SetPrice(key ServiceKey, value decimal.Decimal) error {
	if key == ServiceExtraDays {
		e.ExtraDays.Value = value
		return nil
	}

	f := e.flag(key)
	if f == nil {
		return fmt.Errorf("%w: %q", ErrUnknownService, key)
	}
	f.Value = value
	return nil
}

// SetQuantity overwrites the extra days quantity
func (e *ExtraServices) SetQuantity(quantity int) {
	e.ExtraDays.Quantity = quantity
}

func (e *ExtraServices) flag(key ServiceKey) *FlagService {
	switch key {
	case ServiceOvernight:
		return &e.Overnight
	case ServiceBathGrooming:
		return &e.BathGrooming
	case ServiceBathOnly:
		return &e.BathOnly
	case ServiceTrainer:
		return &e.Trainer
	case ServiceMedical:
		return &e.Medical
	default:
		return nil
	}
}
