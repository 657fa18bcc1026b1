package payrollconfig

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"paymaster/internal/tenant"
)

//go:generate mockgen -source=payrollconfig_repo.go -destination=mock/payrollconfig_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, cfg *PayrollConfiguration) error
	DeactivateActive(ctx context.Context, companyID uuid.UUID) (int64, error)
	FindActiveByCompany(ctx context.Context, companyID uuid.UUID) (*PayrollConfiguration, error)
	FindAllByCompany(ctx context.Context, companyID uuid.UUID) ([]PayrollConfiguration, error)
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

func (r *repository) Create(ctx context.Context, cfg *PayrollConfiguration) error {
	return r.db.WithContext(ctx).Create(cfg).Error
}

func (r *repository) DeactivateActive(ctx context.Context, companyID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&PayrollConfiguration{}).
		Scopes(tenant.Scope(companyID)).
		Where("is_active = ?", true).
		Update("is_active", false)
	return res.RowsAffected, res.Error
}

func (r *repository) FindActiveByCompany(ctx context.Context, companyID uuid.UUID) (*PayrollConfiguration, error) {
	var cfg PayrollConfiguration
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("is_active = ?", true).
		First(&cfg).Error
	return &cfg, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID uuid.UUID) ([]PayrollConfiguration, error) {
	var cfgs []PayrollConfiguration
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("created_at DESC").
		Find(&cfgs).Error
	return cfgs, err
}
