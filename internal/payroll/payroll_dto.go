package payroll

import "github.com/shopspring/decimal"

type PayrollResponse struct {
	ID         string `json:"id"`
	CompanyID  string `json:"company_id"`
	EmployeeID string `json:"employee_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`

	BasicSalary      decimal.Decimal `json:"basic_salary"`
	HRA              decimal.Decimal `json:"hra"`
	Conveyance       decimal.Decimal `json:"conveyance"`
	Medical          decimal.Decimal `json:"medical"`
	SpecialAllowance decimal.Decimal `json:"special_allowance"`
	BonusAmount      decimal.Decimal `json:"bonus_amount"`
	GrossSalary      decimal.Decimal `json:"gross_salary"`

	PFEmployee      decimal.Decimal `json:"pf_employee"`
	PFEmployer      decimal.Decimal `json:"pf_employer"`
	ESIEmployee     decimal.Decimal `json:"esi_employee"`
	ESIEmployer     decimal.Decimal `json:"esi_employer"`
	ProfessionalTax decimal.Decimal `json:"professional_tax"`
	IncomeTax       decimal.Decimal `json:"income_tax"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetSalary       decimal.Decimal `json:"net_salary"`

	GeneratedAt string `json:"generated_at"`
}

type GenerateRunResponse struct {
	Month     int `json:"month"`
	Year      int `json:"year"`
	Generated int `json:"generated"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}
