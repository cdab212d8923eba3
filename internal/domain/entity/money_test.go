package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundMoney(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"Half rounds up", "10.005", "10.01"},
		{"Below half rounds down", "10.004", "10.00"},
		{"Above half rounds up", "10.006", "10.01"},
		{"Exact two places unchanged", "10.01", "10.01"},
		{"Integer unchanged", "10", "10.00"},
		{"Long fraction", "123.456789", "123.46"},
		{"Zero", "0", "0.00"},
		{"Negative half rounds away from zero", "-10.005", "-10.01"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			value, err := decimal.NewFromString(tc.input)
			assert.NoError(t, err)

			rounded := RoundMoney(value)
			assert.Equal(t, tc.expected, rounded.StringFixed(MoneyDecimalPlaces))
		})
	}
}
