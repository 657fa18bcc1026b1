package payrollconfig

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"paymaster/internal/compensation"
	payrollconfigerrors "paymaster/internal/payrollconfig/errors"
	"paymaster/internal/shared/contextutil"
)

//go:generate mockgen -source=payrollconfig_service.go -destination=mock/payrollconfig_service_mock.go -package=mock
type Service interface {
	Upsert(ctx context.Context, companyID string, req UpsertConfigRequest) (ConfigResponse, error)
	GetActive(ctx context.Context, companyID string) (ConfigResponse, error)
	GetHistory(ctx context.Context, companyID string) ([]ConfigResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("payrollconfig.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payrollconfig.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// Upsert deactivates the company's current active configuration and inserts
// the replacement as a new row, atomically. Prior versions stay readable for
// payroll traceability.
func (s *service) Upsert(ctx context.Context, companyID string, req UpsertConfigRequest) (ConfigResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return ConfigResponse{}, payrollconfigerrors.ErrInvalidCompanyID
	}

	if req.Slab1Limit.Valid && req.Slab2Limit.Valid &&
		!req.Slab2Limit.Decimal.GreaterThan(req.Slab1Limit.Decimal) {
		return ConfigResponse{}, payrollconfigerrors.ErrInvalidSlabOrder
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return ConfigResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	deactivated, err := qtx.DeactivateActive(ctx, companyUUID)
	if err != nil {
		s.logger.Error("deactivate prior config failed", zap.String("request_id", rid), zap.Error(err))
		return ConfigResponse{}, err
	}

	cfg := &PayrollConfiguration{
		ID:        uuid.New(),
		CompanyID: companyUUID,

		HRAApplicable: req.HRAApplicable,
		HRAPercent:    req.HRAPercent,

		ConveyanceApplicable: req.ConveyanceApplicable,
		ConveyanceAmount:     req.ConveyanceAmount,

		MedicalApplicable: req.MedicalApplicable,
		MedicalAmount:     req.MedicalAmount,

		PFApplicable:      req.PFApplicable,
		PFEmployeePercent: req.PFEmployeePercent,
		PFEmployerPercent: req.PFEmployerPercent,

		ESIApplicable:      req.ESIApplicable,
		ESIEmployeePercent: req.ESIEmployeePercent,
		ESIEmployerPercent: req.ESIEmployerPercent,

		Slab1Limit: req.Slab1Limit,
		Slab1Rate:  req.Slab1Rate,
		Slab2Limit: req.Slab2Limit,
		Slab2Rate:  req.Slab2Rate,
		Slab3Rate:  req.Slab3Rate,

		IsActive: true,
	}

	if err := qtx.Create(ctx, cfg); err != nil {
		s.logger.Error("create config failed", zap.String("request_id", rid), zap.Error(err))
		return ConfigResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return ConfigResponse{}, err
	}

	s.logger.Info("payroll configuration activated",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("config_id", cfg.ID.String()),
		zap.Int64("deactivated", deactivated),
	)

	return mapToResponse(cfg), nil
}

func (s *service) GetActive(ctx context.Context, companyID string) (ConfigResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return ConfigResponse{}, payrollconfigerrors.ErrInvalidCompanyID
	}

	cfg, err := s.repo.FindActiveByCompany(ctx, companyUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ConfigResponse{}, payrollconfigerrors.ErrActiveConfigNotFound
		}
		return ConfigResponse{}, err
	}

	return mapToResponse(cfg), nil
}

func (s *service) GetHistory(ctx context.Context, companyID string) ([]ConfigResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return nil, payrollconfigerrors.ErrInvalidCompanyID
	}

	cfgs, err := s.repo.FindAllByCompany(ctx, companyUUID)
	if err != nil {
		return nil, err
	}

	result := make([]ConfigResponse, 0, len(cfgs))
	for i := range cfgs {
		result = append(result, mapToResponse(&cfgs[i]))
	}
	return result, nil
}

// ToCalculatorConfig bridges a stored configuration to the pure calculator.
func ToCalculatorConfig(cfg *PayrollConfiguration) compensation.Config {
	return compensation.Config{
		HRAApplicable: cfg.HRAApplicable,
		HRAPercent:    cfg.HRAPercent,

		ConveyanceApplicable: cfg.ConveyanceApplicable,
		ConveyanceAmount:     cfg.ConveyanceAmount,

		MedicalApplicable: cfg.MedicalApplicable,
		MedicalAmount:     cfg.MedicalAmount,

		PFApplicable:      cfg.PFApplicable,
		PFEmployeePercent: cfg.PFEmployeePercent,
		PFEmployerPercent: cfg.PFEmployerPercent,

		ESIApplicable:      cfg.ESIApplicable,
		ESIEmployeePercent: cfg.ESIEmployeePercent,
		ESIEmployerPercent: cfg.ESIEmployerPercent,

		Slab1Limit: cfg.Slab1Limit,
		Slab1Rate:  cfg.Slab1Rate,
		Slab2Limit: cfg.Slab2Limit,
		Slab2Rate:  cfg.Slab2Rate,
		Slab3Rate:  cfg.Slab3Rate,
	}
}

func mapToResponse(cfg *PayrollConfiguration) ConfigResponse {
	return ConfigResponse{
		ID:        cfg.ID.String(),
		CompanyID: cfg.CompanyID.String(),

		HRAApplicable: cfg.HRAApplicable,
		HRAPercent:    cfg.HRAPercent,

		ConveyanceApplicable: cfg.ConveyanceApplicable,
		ConveyanceAmount:     cfg.ConveyanceAmount,

		MedicalApplicable: cfg.MedicalApplicable,
		MedicalAmount:     cfg.MedicalAmount,

		PFApplicable:      cfg.PFApplicable,
		PFEmployeePercent: cfg.PFEmployeePercent,
		PFEmployerPercent: cfg.PFEmployerPercent,

		ESIApplicable:      cfg.ESIApplicable,
		ESIEmployeePercent: cfg.ESIEmployeePercent,
		ESIEmployerPercent: cfg.ESIEmployerPercent,

		Slab1Limit: cfg.Slab1Limit,
		Slab1Rate:  cfg.Slab1Rate,
		Slab2Limit: cfg.Slab2Limit,
		Slab2Rate:  cfg.Slab2Rate,
		Slab3Rate:  cfg.Slab3Rate,

		IsActive: cfg.IsActive,
	}
}
