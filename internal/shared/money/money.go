// Package money holds the fixed-point arithmetic used by every salary
// computation: percentage-of-base, null-safe defaults and the half-up
// rounding rule. All monetary values are shopspring decimals scaled to
// two places.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// PercentOf returns base × percent / 100, rounded half-up to two decimal
// places. A non-positive base yields zero.
func PercentOf(base, percent decimal.Decimal) decimal.Decimal {
	if base.Sign() <= 0 || percent.Sign() <= 0 {
		return decimal.Zero
	}
	return base.Mul(percent).Div(hundred).Round(2)
}

// PercentOfNull is PercentOf with a nullable rate; a null rate means the
// component does not apply.
func PercentOfNull(base decimal.Decimal, percent decimal.NullDecimal) decimal.Decimal {
	if !percent.Valid {
		return decimal.Zero
	}
	return PercentOf(base, percent.Decimal)
}

// NullSafe treats a null decimal as zero.
func NullSafe(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

// NullOr returns the decimal when set, otherwise the fallback. Used for
// statutory rates that have a default (e.g. ESI contribution rates).
func NullOr(d decimal.NullDecimal, fallback decimal.Decimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero.Add(fallback)
	}
	return d.Decimal
}

// Annualize multiplies a monthly amount by twelve.
func Annualize(monthly decimal.Decimal) decimal.Decimal {
	return monthly.Mul(twelve)
}

// Monthly divides an annual amount by twelve, rounded half-up to two places.
func Monthly(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(twelve).Round(2)
}

// FormatINR renders an amount with Indian digit grouping: the last three
// integer digits form one group, every group before that has two digits
// (12,34,567.89).
func FormatINR(d decimal.Decimal) string {
	fixed := d.Round(2).StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	if neg {
		fixed = fixed[1:]
	}

	dot := strings.IndexByte(fixed, '.')
	intPart, fracPart := fixed[:dot], fixed[dot:]

	var grouped string
	if len(intPart) <= 3 {
		grouped = intPart
	} else {
		head, tail := intPart[:len(intPart)-3], intPart[len(intPart)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		if head != "" {
			parts = append([]string{head}, parts...)
		}
		grouped = strings.Join(parts, ",") + "," + tail
	}

	out := "Rs. " + grouped + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
