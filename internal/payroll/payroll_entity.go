package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payroll is an immutable snapshot of one employee's pay for one period.
// Corrections are new periods, never edits.
type Payroll struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_employee_period"`
	Month      int       `gorm:"not null;uniqueIndex:uq_payroll_employee_period"`
	Year       int       `gorm:"not null;uniqueIndex:uq_payroll_employee_period"`

	BasicSalary      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	HRA              decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Conveyance       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Medical          decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	SpecialAllowance decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	BonusAmount      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	GrossSalary      decimal.Decimal `gorm:"type:numeric(14,2);not null"`

	PFEmployee      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	PFEmployer      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	ESIEmployee     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	ESIEmployer     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	ProfessionalTax decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	IncomeTax       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	TotalDeductions decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	NetSalary       decimal.Decimal `gorm:"type:numeric(14,2);not null"`

	GeneratedAt time.Time `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Payroll) TableName() string {
	return "payrolls"
}
