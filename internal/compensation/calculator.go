package compensation

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"paymaster/internal/shared/money"
)

var ErrInvalidBasicSalary = errors.New("basic salary must be greater than zero")

// Config carries the rates and applicability flags from a company's active
// payroll configuration. Null rates are treated as zero, except the ESI
// rates which fall back to the statutory defaults.
type Config struct {
	HRAApplicable bool
	HRAPercent    decimal.NullDecimal

	ConveyanceApplicable bool
	ConveyanceAmount     decimal.NullDecimal

	MedicalApplicable bool
	MedicalAmount     decimal.NullDecimal

	PFApplicable      bool
	PFEmployeePercent decimal.NullDecimal
	PFEmployerPercent decimal.NullDecimal

	ESIApplicable      bool
	ESIEmployeePercent decimal.NullDecimal
	ESIEmployerPercent decimal.NullDecimal

	Slab1Limit decimal.NullDecimal
	Slab1Rate  decimal.NullDecimal
	Slab2Limit decimal.NullDecimal
	Slab2Rate  decimal.NullDecimal
	Slab3Rate  decimal.NullDecimal
}

type Inputs struct {
	BasicSalary      decimal.Decimal
	SpecialAllowance decimal.Decimal
	BonusAmount      decimal.Decimal
	Gender           string
	Month            time.Month
}

// Breakdown is the full monthly component set derived from one Inputs and
// Config pair. Both the salary structure and the payroll snapshot persist
// exactly these fields.
type Breakdown struct {
	BasicSalary      decimal.Decimal
	HRA              decimal.Decimal
	Conveyance       decimal.Decimal
	Medical          decimal.Decimal
	SpecialAllowance decimal.Decimal
	Bonus            decimal.Decimal
	GrossSalary      decimal.Decimal
	PFEmployee       decimal.Decimal
	PFEmployer       decimal.Decimal
	ESIEmployee      decimal.Decimal
	ESIEmployer      decimal.Decimal
	ProfessionalTax  decimal.Decimal
	IncomeTax        decimal.Decimal
	TotalDeductions  decimal.Decimal
	NetSalary        decimal.Decimal
	AnnualCTC        decimal.Decimal
}

// Compute derives the full monthly breakdown. Allowances gated by their
// applicability flags, PF on basic, ESI on gross under the wage ceiling,
// professional tax by gender and month, income tax on annualized gross.
func Compute(in Inputs, cfg Config) (Breakdown, error) {
	if in.BasicSalary.LessThanOrEqual(decimal.Zero) {
		return Breakdown{}, ErrInvalidBasicSalary
	}

	b := Breakdown{
		BasicSalary:      in.BasicSalary,
		SpecialAllowance: in.SpecialAllowance,
		Bonus:            in.BonusAmount,
	}

	if cfg.HRAApplicable {
		b.HRA = money.PercentOfNull(in.BasicSalary, cfg.HRAPercent)
	}
	if cfg.ConveyanceApplicable {
		b.Conveyance = money.NullSafe(cfg.ConveyanceAmount)
	}
	if cfg.MedicalApplicable {
		b.Medical = money.NullSafe(cfg.MedicalAmount)
	}

	b.GrossSalary = in.BasicSalary.
		Add(b.HRA).
		Add(b.Conveyance).
		Add(b.Medical).
		Add(in.SpecialAllowance).
		Add(in.BonusAmount)

	if cfg.PFApplicable {
		b.PFEmployee = money.PercentOfNull(in.BasicSalary, cfg.PFEmployeePercent)
		b.PFEmployer = money.PercentOfNull(in.BasicSalary, cfg.PFEmployerPercent)
	}

	if cfg.ESIApplicable && b.GrossSalary.LessThanOrEqual(esiWageCeiling) {
		b.ESIEmployee = money.PercentOf(b.GrossSalary, money.NullOr(cfg.ESIEmployeePercent, defaultESIEmployee))
		b.ESIEmployer = money.PercentOf(b.GrossSalary, money.NullOr(cfg.ESIEmployerPercent, defaultESIEmployer))
	}

	b.ProfessionalTax = ProfessionalTax(b.GrossSalary, in.Gender, in.Month)

	b.IncomeTax = MonthlyIncomeTax(
		b.GrossSalary,
		money.NullSafe(cfg.Slab1Limit),
		money.NullSafe(cfg.Slab1Rate),
		money.NullSafe(cfg.Slab2Limit),
		money.NullSafe(cfg.Slab2Rate),
		money.NullSafe(cfg.Slab3Rate),
	)

	b.TotalDeductions = b.PFEmployee.
		Add(b.ESIEmployee).
		Add(b.ProfessionalTax).
		Add(b.IncomeTax)

	b.NetSalary = b.GrossSalary.Sub(b.TotalDeductions)

	b.AnnualCTC = money.Annualize(b.GrossSalary.Add(b.PFEmployer).Add(b.ESIEmployer)).Round(0)

	return b, nil
}
