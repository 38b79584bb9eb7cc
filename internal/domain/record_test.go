package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordKind_Collection(t *testing.T) {
	tests := map[RecordKind]string{
		KindAppointment: "appointments",
		KindMonthly:     "monthly_clients",
		KindDaycare:     "daycare_registrations",
		KindHotel:       "hotel_registrations",
	}

	for kind, want := range tests {
		got, err := kind.Collection()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestRecordKind_UnrecognizedFailsLoudly(t *testing.T) {
	collection, err := RecordKind("grooming").Collection()
	assert.ErrorIs(t, err, ErrUnrecognizedKind)
	assert.Empty(t, collection)

	_, err = ParseRecordKind("")
	assert.ErrorIs(t, err, ErrUnrecognizedKind)

	kind, err := ParseRecordKind("hotel")
	require.NoError(t, err)
	assert.Equal(t, KindHotel, kind)
}

func TestSelectionOf_AbsentSelectionDefaults(t *testing.T) {
	record := &Appointment{ID: "a1"}

	es := SelectionOf(record)

	assert.Equal(t, ExtraServices{}, es)
	for _, key := range FlagServices {
		f, err := es.Flag(key)
		require.NoError(t, err)
		assert.False(t, f.Enabled)
		assert.True(t, f.Value.IsZero())
	}
	assert.Equal(t, 0, es.ExtraDays.Quantity)
	assert.True(t, es.ExtraDays.Value.IsZero())
}

func TestSelectionOf_CopiesStoredSelection(t *testing.T) {
	stored := &ExtraServices{Trainer: FlagService{Enabled: true, Value: dec("60")}}
	record := &HotelRegistration{ID: "h1", ExtraServices: stored}

	es := SelectionOf(record)
	require.NoError(t, es.Toggle(ServiceTrainer))

	assert.True(t, stored.Trainer.Enabled, "stored selection must not be mutated through the copy")
}

func TestMergeRecord(t *testing.T) {
	original := &DaycareRegistration{ID: "d1", PetName: "Rex"}
	returned := &DaycareRegistration{ID: "d1", PetName: "Rex II"}

	assert.Same(t, returned, MergeRecord(original, returned))
	assert.Same(t, original, MergeRecord(original, nil))
}

func TestWithMonthlyPrice(t *testing.T) {
	monthly := &MonthlyClient{ID: "m1", Price: dec("200")}

	updated := WithMonthlyPrice(monthly, dec("350"))

	got, ok := updated.(*MonthlyClient)
	require.True(t, ok)
	assert.True(t, got.Price.Equal(dec("350")))
	assert.True(t, monthly.Price.Equal(dec("200")), "original must stay untouched")

	appointment := &Appointment{ID: "a1", Price: dec("80")}
	assert.Same(t, appointment, WithMonthlyPrice(appointment, dec("1")))
}
