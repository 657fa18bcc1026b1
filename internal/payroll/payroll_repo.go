package payroll

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"paymaster/internal/tenant"
)

// CompanyRow and EmployeeRow are the slices of neighbouring tables the
// generator and the payslip renderer need.
type CompanyRow struct {
	ID   uuid.UUID
	Name string
}

type EmployeeRow struct {
	ID      uuid.UUID
	Name    string
	Email   string
	EmpCode string
	Gender  string
	Status  string
}

// StructureInputs carries only the inputs of a salary structure. The
// generator recomputes the full breakdown against the active configuration.
type StructureInputs struct {
	EmployeeID       uuid.UUID
	BasicSalary      decimal.Decimal
	SpecialAllowance decimal.Decimal
	BonusAmount      decimal.Decimal
}

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	// Create inserts the payroll unless one already exists for the same
	// (employee, month, year). Returns false when the row was skipped.
	Create(ctx context.Context, payroll *Payroll) (bool, error)
	ExistsForPeriod(ctx context.Context, employeeID uuid.UUID, month, year int) (bool, error)
	FindAllByCompany(ctx context.Context, companyID uuid.UUID) ([]Payroll, error)
	FindByEmployee(ctx context.Context, companyID, employeeID uuid.UUID) ([]Payroll, error)
	FindByIDAndCompany(ctx context.Context, companyID, id uuid.UUID) (*Payroll, error)

	ListCompanies(ctx context.Context) ([]CompanyRow, error)
	ListActiveEmployees(ctx context.Context, companyID uuid.UUID) ([]EmployeeRow, error)
	GetEmployeeRow(ctx context.Context, companyID, employeeID uuid.UUID) (*EmployeeRow, error)
	GetCompanyRow(ctx context.Context, companyID uuid.UUID) (*CompanyRow, error)
	FindStructureInputs(ctx context.Context, companyID, employeeID uuid.UUID) (*StructureInputs, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, payroll *Payroll) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "month"}, {Name: "year"}},
			DoNothing: true,
		}).
		Create(payroll)
	return res.RowsAffected > 0, res.Error
}

func (r *repository) ExistsForPeriod(ctx context.Context, employeeID uuid.UUID, month, year int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Payroll{}).
		Where("employee_id = ?", employeeID).
		Where("month = ?", month).
		Where("year = ?", year).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID uuid.UUID) ([]Payroll, error) {
	var payrolls []Payroll
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("year DESC, month DESC, created_at DESC").
		Find(&payrolls).Error
	return payrolls, err
}

func (r *repository) FindByEmployee(ctx context.Context, companyID, employeeID uuid.UUID) ([]Payroll, error) {
	var payrolls []Payroll
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Order("year DESC, month DESC").
		Find(&payrolls).Error
	return payrolls, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id uuid.UUID) (*Payroll, error) {
	var payroll Payroll
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&payroll, "id = ?", id).Error
	return &payroll, err
}

func (r *repository) ListCompanies(ctx context.Context) ([]CompanyRow, error) {
	var rows []CompanyRow
	err := r.db.WithContext(ctx).
		Table("companies").
		Select("id", "name").
		Where("deleted_at IS NULL").
		Order("created_at").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListActiveEmployees(ctx context.Context, companyID uuid.UUID) ([]EmployeeRow, error) {
	var rows []EmployeeRow
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("id", "name", "email", "emp_code", "gender", "status").
		Scopes(tenant.Scope(companyID)).
		Where("status = ?", "ACTIVE").
		Where("deleted_at IS NULL").
		Order("emp_code").
		Find(&rows).Error
	return rows, err
}

func (r *repository) GetEmployeeRow(ctx context.Context, companyID, employeeID uuid.UUID) (*EmployeeRow, error) {
	var row EmployeeRow
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("id", "name", "email", "emp_code", "gender", "status").
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", employeeID).
		Where("deleted_at IS NULL").
		Take(&row).Error
	return &row, err
}

func (r *repository) GetCompanyRow(ctx context.Context, companyID uuid.UUID) (*CompanyRow, error) {
	var row CompanyRow
	err := r.db.WithContext(ctx).
		Table("companies").
		Select("id", "name").
		Where("id = ?", companyID).
		Where("deleted_at IS NULL").
		Take(&row).Error
	return &row, err
}

func (r *repository) FindStructureInputs(ctx context.Context, companyID, employeeID uuid.UUID) (*StructureInputs, error) {
	var inputs StructureInputs
	err := r.db.WithContext(ctx).
		Table("salary_structures").
		Select("employee_id", "basic_salary", "special_allowance", "bonus_amount").
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Take(&inputs).Error
	return &inputs, err
}
