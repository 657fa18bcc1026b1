package salarystructure

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalaryStructure holds the standing monthly breakdown for one employee.
// Derived fields are overwritten in full on every create and update.
type SalaryStructure struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_structure_employee"`

	BasicSalary      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	SpecialAllowance decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	BonusAmount      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	HRA             decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Conveyance      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Medical         decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	GrossSalary     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	PFEmployee      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	PFEmployer      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	ESIEmployee     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	ESIEmployer     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	ProfessionalTax decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	IncomeTax       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	NetSalary       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	AnnualCTC       decimal.Decimal `gorm:"type:numeric(16,2);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SalaryStructure) TableName() string {
	return "salary_structures"
}
