// Package compensation implements the statutory salary arithmetic shared by
// the salary structure and payroll features. It is pure computation with no
// storage or transport dependencies.
package compensation

import (
	"time"

	"github.com/shopspring/decimal"

	"paymaster/internal/shared/money"
)

const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
)

// Maharashtra professional tax brackets.
var (
	ptMaleZeroLimit    = decimal.NewFromInt(7500)
	ptMaleMidLimit     = decimal.NewFromInt(10000)
	ptFemaleZeroLimit  = decimal.NewFromInt(25000)
	ptMidAmount        = decimal.NewFromInt(175)
	ptTopAmount        = decimal.NewFromInt(200)
	ptFebruaryTop      = decimal.NewFromInt(300)
	esiWageCeiling     = decimal.NewFromInt(21000)
	defaultESIEmployee = decimal.NewFromFloat(0.75)
	defaultESIEmployer = decimal.NewFromFloat(3.25)
)

// ProfessionalTax returns the monthly professional tax for a gross salary.
// The February surcharge replaces only the top bracket, the 175 bracket is
// collected unchanged year round.
func ProfessionalTax(gross decimal.Decimal, gender string, month time.Month) decimal.Decimal {
	if gross.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	var tax decimal.Decimal
	if gender == GenderFemale {
		if gross.GreaterThan(ptFemaleZeroLimit) {
			tax = ptTopAmount
		} else {
			tax = decimal.Zero
		}
	} else {
		switch {
		case gross.LessThanOrEqual(ptMaleZeroLimit):
			tax = decimal.Zero
		case gross.LessThanOrEqual(ptMaleMidLimit):
			tax = ptMidAmount
		default:
			tax = ptTopAmount
		}
	}

	if month == time.February && tax.GreaterThan(ptMidAmount) {
		return ptFebruaryTop
	}

	return tax
}

// ProgressiveIncomeTax applies three slabs to an annual income. The top slab
// has no upper limit. Each slab amount is rounded to two decimal places
// before summing.
func ProgressiveIncomeTax(annualIncome, slab1Limit, slab1Rate, slab2Limit, slab2Rate, slab3Rate decimal.Decimal) decimal.Decimal {
	if annualIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	if annualIncome.LessThanOrEqual(slab1Limit) {
		return money.PercentOf(annualIncome, slab1Rate)
	}

	tax := money.PercentOf(slab1Limit, slab1Rate)

	remaining := annualIncome.Sub(slab1Limit)
	slab2Width := slab2Limit.Sub(slab1Limit)

	if remaining.LessThanOrEqual(slab2Width) {
		return tax.Add(money.PercentOf(remaining, slab2Rate))
	}

	tax = tax.Add(money.PercentOf(slab2Width, slab2Rate))
	tax = tax.Add(money.PercentOf(remaining.Sub(slab2Width), slab3Rate))

	return tax
}

// MonthlyIncomeTax annualizes the gross, taxes it through the slabs and
// brings the result back to a monthly figure.
func MonthlyIncomeTax(monthlyGross, slab1Limit, slab1Rate, slab2Limit, slab2Rate, slab3Rate decimal.Decimal) decimal.Decimal {
	annualTax := ProgressiveIncomeTax(
		money.Annualize(monthlyGross),
		slab1Limit, slab1Rate,
		slab2Limit, slab2Rate,
		slab3Rate,
	)
	return money.Monthly(annualTax)
}
