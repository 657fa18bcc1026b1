package company

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=company_repo.go -destination=mock/company_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, company *Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*Company, error)
	GetByEmail(ctx context.Context, email string) (*Company, error)
	FindAll(ctx context.Context) ([]Company, error)
	Update(ctx context.Context, company *Company) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteDependents(ctx context.Context, companyID uuid.UUID) error
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

func (r *repository) Create(ctx context.Context, company *Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	var company Company
	err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error
	return &company, err
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Company, error) {
	var company Company
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&company).Error
	return &company, err
}

func (r *repository) FindAll(ctx context.Context) ([]Company, error) {
	var companies []Company
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&companies).Error
	return companies, err
}

func (r *repository) Update(ctx context.Context, company *Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Company{}, "id = ?", id).Error
}

// DeleteDependents removes everything a company owns. Employees are
// soft-deleted so their rows stay auditable; payroll history, structures
// and configurations are dropped outright, matching the cascade the data
// model promises.
func (r *repository) DeleteDependents(ctx context.Context, companyID uuid.UUID) error {
	db := r.db.WithContext(ctx)

	if err := db.Exec(
		"UPDATE employees SET deleted_at = NOW() WHERE company_id = ? AND deleted_at IS NULL",
		companyID,
	).Error; err != nil {
		return err
	}

	for _, table := range []string{"payrolls", "salary_structures", "payroll_configurations"} {
		if err := db.Exec(
			"DELETE FROM "+table+" WHERE company_id = ?",
			companyID,
		).Error; err != nil {
			return err
		}
	}

	return nil
}
