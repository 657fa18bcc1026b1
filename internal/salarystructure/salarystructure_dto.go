package salarystructure

import "github.com/shopspring/decimal"

type UpsertStructureRequest struct {
	EmployeeID       string          `json:"employee_id" binding:"required,uuid"`
	BasicSalary      decimal.Decimal `json:"basic_salary" binding:"required"`
	SpecialAllowance decimal.Decimal `json:"special_allowance"`
	BonusAmount      decimal.Decimal `json:"bonus_amount"`
}

type StructureResponse struct {
	ID         string `json:"id"`
	CompanyID  string `json:"company_id"`
	EmployeeID string `json:"employee_id"`

	BasicSalary      decimal.Decimal `json:"basic_salary"`
	SpecialAllowance decimal.Decimal `json:"special_allowance"`
	BonusAmount      decimal.Decimal `json:"bonus_amount"`

	HRA             decimal.Decimal `json:"hra"`
	Conveyance      decimal.Decimal `json:"conveyance"`
	Medical         decimal.Decimal `json:"medical"`
	GrossSalary     decimal.Decimal `json:"gross_salary"`
	PFEmployee      decimal.Decimal `json:"pf_employee"`
	PFEmployer      decimal.Decimal `json:"pf_employer"`
	ESIEmployee     decimal.Decimal `json:"esi_employee"`
	ESIEmployer     decimal.Decimal `json:"esi_employer"`
	ProfessionalTax decimal.Decimal `json:"professional_tax"`
	IncomeTax       decimal.Decimal `json:"income_tax"`
	NetSalary       decimal.Decimal `json:"net_salary"`
	AnnualCTC       decimal.Decimal `json:"annual_ctc"`
}
