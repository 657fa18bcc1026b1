package salarystructure

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"paymaster/internal/tenant"
)

// EmployeeInfo is the slice of the employees table the deriver needs.
type EmployeeInfo struct {
	ID     uuid.UUID
	Name   string
	Gender string
	Status string
}

//go:generate mockgen -source=salarystructure_repo.go -destination=mock/salarystructure_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, structure *SalaryStructure) error
	FindByEmployee(ctx context.Context, companyID, employeeID uuid.UUID) (*SalaryStructure, error)
	Update(ctx context.Context, structure *SalaryStructure) error
	GetEmployeeInfo(ctx context.Context, companyID, employeeID uuid.UUID) (*EmployeeInfo, error)
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

func (r *repository) Create(ctx context.Context, structure *SalaryStructure) error {
	return r.db.WithContext(ctx).Create(structure).Error
}

func (r *repository) FindByEmployee(ctx context.Context, companyID, employeeID uuid.UUID) (*SalaryStructure, error) {
	var structure SalaryStructure
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&structure, "employee_id = ?", employeeID).Error
	return &structure, err
}

func (r *repository) Update(ctx context.Context, structure *SalaryStructure) error {
	return r.db.WithContext(ctx).Save(structure).Error
}

func (r *repository) GetEmployeeInfo(ctx context.Context, companyID, employeeID uuid.UUID) (*EmployeeInfo, error) {
	var info EmployeeInfo
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("id", "name", "gender", "status").
		Where("company_id = ?", companyID).
		Where("id = ?", employeeID).
		Where("deleted_at IS NULL").
		Take(&info).Error
	return &info, err
}
