package payrollconfig

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayrollConfiguration is versioned by insertion. Replacing a company's
// configuration deactivates the prior active row and inserts a new one, so
// historical payroll rows always trace back to the rules they were computed
// under. The partial unique index keeps at most one active row per company.
type PayrollConfiguration struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index;index:uq_active_config_per_company,unique,where:is_active"`

	HRAApplicable bool                `gorm:"not null;default:false"`
	HRAPercent    decimal.NullDecimal `gorm:"type:numeric(8,4)"`

	ConveyanceApplicable bool                `gorm:"not null;default:false"`
	ConveyanceAmount     decimal.NullDecimal `gorm:"type:numeric(12,2)"`

	MedicalApplicable bool                `gorm:"not null;default:false"`
	MedicalAmount     decimal.NullDecimal `gorm:"type:numeric(12,2)"`

	PFApplicable      bool                `gorm:"not null;default:false"`
	PFEmployeePercent decimal.NullDecimal `gorm:"type:numeric(8,4)"`
	PFEmployerPercent decimal.NullDecimal `gorm:"type:numeric(8,4)"`

	ESIApplicable      bool                `gorm:"not null;default:false"`
	ESIEmployeePercent decimal.NullDecimal `gorm:"type:numeric(8,4)"`
	ESIEmployerPercent decimal.NullDecimal `gorm:"type:numeric(8,4)"`

	Slab1Limit decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	Slab1Rate  decimal.NullDecimal `gorm:"type:numeric(8,4)"`
	Slab2Limit decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	Slab2Rate  decimal.NullDecimal `gorm:"type:numeric(8,4)"`
	Slab3Rate  decimal.NullDecimal `gorm:"type:numeric(8,4)"`

	IsActive  bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PayrollConfiguration) TableName() string {
	return "payroll_configurations"
}
