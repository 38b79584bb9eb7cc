package domain

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

type flagServiceJSON struct {
	Enabled bool        `json:"enabled"`
	Value   json.Number `json:"value"`
}

type extraDaysJSON struct {
	Quantity int         `json:"quantity"`
	Value    json.Number `json:"value"`
}

type extraServicesJSON struct {
	Overnight    flagServiceJSON `json:"pernoite"`
	BathGrooming flagServiceJSON `json:"banho_tosa"`
	BathOnly     flagServiceJSON `json:"so_banho"`
	Trainer      flagServiceJSON `json:"adestrador"`
	Medical      flagServiceJSON `json:"despesa_medica"`
	ExtraDays    extraDaysJSON   `json:"dias_extras"`
}

// MarshalJSON writes the persisted shape with prices as JSON numbers
func (e ExtraServices) MarshalJSON() ([]byte, error) {
	flag := func(f FlagService) flagServiceJSON {
		return flagServiceJSON{Enabled: f.Enabled, Value: json.Number(f.Value.String())}
	}

	return json.Marshal(extraServicesJSON{
		Overnight:    flag(e.Overnight),
		BathGrooming: flag(e.BathGrooming),
		BathOnly:     flag(e.BathOnly),
		Trainer:      flag(e.Trainer),
		Medical:      flag(e.Medical),
		ExtraDays: extraDaysJSON{
			Quantity: e.ExtraDays.Quantity,
			Value:    json.Number(e.ExtraDays.Value.String()),
		},
	})
}

// UnmarshalJSON is lenient: a missing key, null, or a value that is not an
// object (older rows stored `"pernoite": true` or `"dias_extras": 2`)
// decodes as disabled with zero price. Negative quantities decode as 0.
func (e *ExtraServices) UnmarshalJSON(data []byte) error {
	*e = ExtraServices{}
	if isJSONNull(data) {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("domain: decode extra services: %w", err)
	}

	for _, key := range FlagServices {
		raw, ok := fields[string(key)]
		if !ok {
			continue
		}
		decoded, err := decodeFlagService(raw)
		if err != nil {
			return fmt.Errorf("domain: decode extra services %s: %w", key, err)
		}
		*e.flag(key) = decoded
	}

	if raw, ok := fields[string(ServiceExtraDays)]; ok {
		decoded, err := decodeExtraDays(raw)
		if err != nil {
			return fmt.Errorf("domain: decode extra services %s: %w", ServiceExtraDays, err)
		}
		e.ExtraDays = decoded
	}

	return nil
}

// DecodeExtraServices decodes a nullable jsonb column; NULL gives nil
func DecodeExtraServices(raw []byte) (*ExtraServices, error) {
	if len(raw) == 0 || isJSONNull(raw) {
		return nil, nil
	}
	var es ExtraServices
	if err := json.Unmarshal(raw, &es); err != nil {
		return nil, err
	}
	return &es, nil
}

// Value stores the selection in a jsonb column.
// lib/pq sends []byte as bytea, so the JSON goes out as a string.
func (e ExtraServices) Value() (driver.Value, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

type rawFields struct {
	Enabled  json.RawMessage `json:"enabled"`
	Quantity json.RawMessage `json:"quantity"`
	Value    json.RawMessage `json:"value"`
}

func decodeFlagService(raw json.RawMessage) (FlagService, error) {
	fields, ok, err := decodeObject(raw)
	if err != nil || !ok {
		return FlagService{}, err
	}

	value, err := decodeNumber(fields.Value)
	if err != nil {
		return FlagService{}, err
	}

	return FlagService{
		Enabled: isTruthy(fields.Enabled),
		Value:   value,
	}, nil
}

func decodeExtraDays(raw json.RawMessage) (ExtraDays, error) {
	fields, ok, err := decodeObject(raw)
	if err != nil || !ok {
		return ExtraDays{}, err
	}

	quantity, err := decodeNumber(fields.Quantity)
	if err != nil {
		return ExtraDays{}, err
	}
	value, err := decodeNumber(fields.Value)
	if err != nil {
		return ExtraDays{}, err
	}

	q := quantity.IntPart()
	if q < 0 {
		q = 0
	}
	if q > math.MaxInt32 {
		q = math.MaxInt32
	}

	return ExtraDays{Quantity: int(q), Value: value}, nil
}

// decodeObject returns ok=false for anything that is not a JSON object
func decodeObject(raw json.RawMessage) (rawFields, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return rawFields{}, false, nil
	}
	var fields rawFields
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return rawFields{}, false, err
	}
	return fields, true, nil
}

// decodeNumber accepts a JSON number or numeric string; null, absent,
// or non-numeric values give zero
func decodeNumber(raw json.RawMessage) (decimal.Decimal, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || isJSONNull(trimmed) {
		return decimal.Zero, nil
	}

	var s string
	if trimmed[0] == '"' {
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return decimal.Zero, err
		}
	} else {
		s = string(trimmed)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, nil
	}
	return d, nil
}

// isTruthy follows the loose check the console applied to stored rows:
// false, null, 0, "" and an absent key are off; any other value is on,
// including 1, "true" and even "false".
func isTruthy(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || isJSONNull(trimmed) {
		return false
	}

	switch trimmed[0] {
	case 't':
		return true
	case 'f':
		return false
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return false
		}
		return s != ""
	case '{', '[':
		return true
	default:
		d, err := decimal.NewFromString(string(trimmed))
		return err == nil && !d.IsZero()
	}
}

func isJSONNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}
