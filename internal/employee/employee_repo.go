package employee

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"paymaster/internal/tenant"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAllByCompany(ctx context.Context, companyID uuid.UUID) ([]Employee, error)
	FindActiveByCompany(ctx context.Context, companyID uuid.UUID) ([]Employee, error)
	FindOptionsByCompany(ctx context.Context, companyID uuid.UUID) ([]Employee, error)
	FindByIDAndCompany(ctx context.Context, companyID, id uuid.UUID) (*Employee, error)
	FindByToken(ctx context.Context, token string) (*Employee, error)
	GetCompanyName(ctx context.Context, companyID uuid.UUID) (string, error)
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, companyID, id uuid.UUID) error
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID uuid.UUID) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("created_at ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindActiveByCompany(ctx context.Context, companyID uuid.UUID) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("status = ?", StatusActive).
		Order("created_at ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindOptionsByCompany(ctx context.Context, companyID uuid.UUID) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Select("id", "company_id", "emp_code", "name", "email", "gender", "role", "status").
		Where("status = ?", StatusActive).
		Order("name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id uuid.UUID) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) FindByToken(ctx context.Context, token string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Where("password_token = ?", token).
		First(&empl).Error
	return &empl, err
}

// GetCompanyName reads the owning company's name for code generation without
// importing the company package.
func (r *repository) GetCompanyName(ctx context.Context, companyID uuid.UUID) (string, error) {
	var name string
	err := r.db.WithContext(ctx).
		Table("companies").
		Select("name").
		Where("id = ?", companyID).
		Scan(&name).Error
	return name, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Employee{}, "id = ?", id).Error
}
