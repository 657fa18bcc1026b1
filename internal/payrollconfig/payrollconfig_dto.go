package payrollconfig

import "github.com/shopspring/decimal"

type UpsertConfigRequest struct {
	HRAApplicable bool                `json:"hra_applicable"`
	HRAPercent    decimal.NullDecimal `json:"hra_percent"`

	ConveyanceApplicable bool                `json:"conveyance_applicable"`
	ConveyanceAmount     decimal.NullDecimal `json:"conveyance_amount"`

	MedicalApplicable bool                `json:"medical_applicable"`
	MedicalAmount     decimal.NullDecimal `json:"medical_amount"`

	PFApplicable      bool                `json:"pf_applicable"`
	PFEmployeePercent decimal.NullDecimal `json:"pf_employee_percent"`
	PFEmployerPercent decimal.NullDecimal `json:"pf_employer_percent"`

	ESIApplicable      bool                `json:"esi_applicable"`
	ESIEmployeePercent decimal.NullDecimal `json:"esi_employee_percent"`
	ESIEmployerPercent decimal.NullDecimal `json:"esi_employer_percent"`

	Slab1Limit decimal.NullDecimal `json:"slab1_limit"`
	Slab1Rate  decimal.NullDecimal `json:"slab1_rate"`
	Slab2Limit decimal.NullDecimal `json:"slab2_limit"`
	Slab2Rate  decimal.NullDecimal `json:"slab2_rate"`
	Slab3Rate  decimal.NullDecimal `json:"slab3_rate"`
}

type ConfigResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`

	HRAApplicable bool                `json:"hra_applicable"`
	HRAPercent    decimal.NullDecimal `json:"hra_percent"`

	ConveyanceApplicable bool                `json:"conveyance_applicable"`
	ConveyanceAmount     decimal.NullDecimal `json:"conveyance_amount"`

	MedicalApplicable bool                `json:"medical_applicable"`
	MedicalAmount     decimal.NullDecimal `json:"medical_amount"`

	PFApplicable      bool                `json:"pf_applicable"`
	PFEmployeePercent decimal.NullDecimal `json:"pf_employee_percent"`
	PFEmployerPercent decimal.NullDecimal `json:"pf_employer_percent"`

	ESIApplicable      bool                `json:"esi_applicable"`
	ESIEmployeePercent decimal.NullDecimal `json:"esi_employee_percent"`
	ESIEmployerPercent decimal.NullDecimal `json:"esi_employer_percent"`

	Slab1Limit decimal.NullDecimal `json:"slab1_limit"`
	Slab1Rate  decimal.NullDecimal `json:"slab1_rate"`
	Slab2Limit decimal.NullDecimal `json:"slab2_limit"`
	Slab2Rate  decimal.NullDecimal `json:"slab2_rate"`
	Slab3Rate  decimal.NullDecimal `json:"slab3_rate"`

	IsActive bool `json:"is_active"`
}
