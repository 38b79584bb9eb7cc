package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "50", want: "50"},
		{in: "40.5", want: "40.5"},
		{in: "40,50", want: "40.5"},
		{in: "R$ 1.234,56", want: "1234.56"},
		{in: "", want: "0"},
		{in: "abc", want: "0"},
		{in: "50abc", want: "50"},
		{in: "12.5.3", want: "12.5"},
		{in: "R$ 80,00 reais", want: "80"},
		{in: ".5", want: "0.5"},
		{in: "-10", want: "-10"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParsePrice(tt.in)
			assert.True(t, got.Equal(dec(tt.want)), "got %s", got)
		})
	}
}

func TestParseQuantity(t *testing.T) {
	assert.Equal(t, 3, ParseQuantity("3"))
	assert.Equal(t, 7, ParseQuantity(" 7 "))
	assert.Equal(t, 1, ParseQuantity(""))
	assert.Equal(t, 1, ParseQuantity("two"))
	assert.Equal(t, 1, ParseQuantity("0"))
	assert.Equal(t, 1, ParseQuantity("-4"))
	assert.Equal(t, 3, ParseQuantity("3.5"))
	assert.Equal(t, 2, ParseQuantity("2 dias"))
	assert.Equal(t, 1, ParseQuantity("dias 2"))
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 150,00", FormatBRL(dec("150")))
	assert.Equal(t, "R$ 99,99", FormatBRL(dec("99.99")))
	assert.Equal(t, "R$ 0,00", FormatBRL(dec("0")))
}
