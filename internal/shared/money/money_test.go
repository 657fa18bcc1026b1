package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"paymaster/internal/shared/money"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestPercentOf(t *testing.T) {
	assert.True(t, d("120").Equal(money.PercentOf(d("1000"), d("12"))))
	assert.True(t, d("0.08").Equal(money.PercentOf(d("1000"), d("0.0075")).Round(2)))
	assert.True(t, decimal.Zero.Equal(money.PercentOf(decimal.Zero, d("12"))))
	assert.True(t, decimal.Zero.Equal(money.PercentOf(d("-100"), d("12"))))
	assert.True(t, decimal.Zero.Equal(money.PercentOf(d("1000"), decimal.Zero)))
}

func TestPercentOfRoundsHalfUp(t *testing.T) {
	// 333.335 rounds up to 333.34 at two decimal places.
	got := money.PercentOf(d("66667"), d("0.5"))
	assert.True(t, d("333.34").Equal(got), "got %s", got)
}

func TestNullHelpers(t *testing.T) {
	assert.True(t, decimal.Zero.Equal(money.NullSafe(decimal.NullDecimal{})))
	assert.True(t, d("5").Equal(money.NullSafe(decimal.NullDecimal{Decimal: d("5"), Valid: true})))

	fallback := d("3.25")
	assert.True(t, fallback.Equal(money.NullOr(decimal.NullDecimal{}, fallback)))
	assert.True(t, d("1.75").Equal(money.NullOr(decimal.NullDecimal{Decimal: d("1.75"), Valid: true}, fallback)))
}

func TestAnnualizeAndMonthly(t *testing.T) {
	assert.True(t, d("180000").Equal(money.Annualize(d("15000"))))
	assert.True(t, d("458.33").Equal(money.Monthly(d("5500"))))
}

func TestFormatINR(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "Rs. 0.00"},
		{"999", "Rs. 999.00"},
		{"1000", "Rs. 1,000.00"},
		{"123456", "Rs. 1,23,456.00"},
		{"1234567.89", "Rs. 12,34,567.89"},
		{"10000000", "Rs. 1,00,00,000.00"},
		{"-54321.5", "-Rs. 54,321.50"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, money.FormatINR(d(tc.in)))
	}
}
