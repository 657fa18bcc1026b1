package salarystructure

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"paymaster/internal/compensation"
	employeeerrors "paymaster/internal/employee/errors"
	"paymaster/internal/payrollconfig"
	payrollconfigerrors "paymaster/internal/payrollconfig/errors"
	salarystructureerrors "paymaster/internal/salarystructure/errors"
)

//go:generate mockgen -source=salarystructure_service.go -destination=mock/salarystructure_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req UpsertStructureRequest) (StructureResponse, error)
	Update(ctx context.Context, companyID string, req UpsertStructureRequest) (StructureResponse, error)
	GetByEmployee(ctx context.Context, companyID, employeeID string) (StructureResponse, error)
}

type service struct {
	repo       Repository
	configRepo payrollconfig.Repository
	logger     *zap.Logger
}

func NewService(repo Repository, configRepo payrollconfig.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("salarystructure.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salarystructure.service")
	}
	return &service{repo: repo, configRepo: configRepo, logger: l}
}

func (s *service) Create(ctx context.Context, companyID string, req UpsertStructureRequest) (StructureResponse, error) {
	companyUUID, employeeUUID, err := parseIDs(companyID, req.EmployeeID)
	if err != nil {
		return StructureResponse{}, err
	}

	breakdown, err := s.derive(ctx, companyUUID, employeeUUID, req)
	if err != nil {
		return StructureResponse{}, err
	}

	structure := &SalaryStructure{
		ID:         uuid.New(),
		CompanyID:  companyUUID,
		EmployeeID: employeeUUID,
	}
	applyBreakdown(structure, req, breakdown)

	if err := s.repo.Create(ctx, structure); err != nil {
		if isStructureConflict(err) {
			return StructureResponse{}, salarystructureerrors.ErrStructureAlreadyExists
		}
		s.logger.Error("create salary structure failed", zap.Error(err))
		return StructureResponse{}, err
	}

	s.logger.Info("salary structure created",
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
	)

	return mapToResponse(structure), nil
}

// Update recomputes every derived field from the new inputs and the current
// active configuration. Partial updates are not supported.
func (s *service) Update(ctx context.Context, companyID string, req UpsertStructureRequest) (StructureResponse, error) {
	companyUUID, employeeUUID, err := parseIDs(companyID, req.EmployeeID)
	if err != nil {
		return StructureResponse{}, err
	}

	structure, err := s.repo.FindByEmployee(ctx, companyUUID, employeeUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StructureResponse{}, salarystructureerrors.ErrStructureNotFound
		}
		return StructureResponse{}, err
	}

	breakdown, err := s.derive(ctx, companyUUID, employeeUUID, req)
	if err != nil {
		return StructureResponse{}, err
	}

	applyBreakdown(structure, req, breakdown)

	if err := s.repo.Update(ctx, structure); err != nil {
		s.logger.Error("update salary structure failed", zap.Error(err))
		return StructureResponse{}, err
	}

	s.logger.Info("salary structure recomputed",
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
	)

	return mapToResponse(structure), nil
}

func (s *service) GetByEmployee(ctx context.Context, companyID, employeeID string) (StructureResponse, error) {
	companyUUID, employeeUUID, err := parseIDs(companyID, employeeID)
	if err != nil {
		return StructureResponse{}, err
	}

	structure, err := s.repo.FindByEmployee(ctx, companyUUID, employeeUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StructureResponse{}, salarystructureerrors.ErrStructureNotFound
		}
		return StructureResponse{}, err
	}

	return mapToResponse(structure), nil
}

func (s *service) derive(
	ctx context.Context,
	companyUUID, employeeUUID uuid.UUID,
	req UpsertStructureRequest,
) (compensation.Breakdown, error) {
	info, err := s.repo.GetEmployeeInfo(ctx, companyUUID, employeeUUID)
	if err != nil || info.ID == uuid.Nil {
		return compensation.Breakdown{}, employeeerrors.ErrEmployeeNotFound
	}

	cfg, err := s.configRepo.FindActiveByCompany(ctx, companyUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return compensation.Breakdown{}, payrollconfigerrors.ErrActiveConfigNotFound
		}
		return compensation.Breakdown{}, err
	}

	breakdown, err := compensation.Compute(compensation.Inputs{
		BasicSalary:      req.BasicSalary,
		SpecialAllowance: req.SpecialAllowance,
		BonusAmount:      req.BonusAmount,
		Gender:           info.Gender,
		Month:            time.Now().Month(),
	}, payrollconfig.ToCalculatorConfig(cfg))
	if err != nil {
		if errors.Is(err, compensation.ErrInvalidBasicSalary) {
			return compensation.Breakdown{}, salarystructureerrors.ErrInvalidBasicSalary
		}
		return compensation.Breakdown{}, err
	}

	return breakdown, nil
}

func applyBreakdown(structure *SalaryStructure, req UpsertStructureRequest, b compensation.Breakdown) {
	structure.BasicSalary = req.BasicSalary
	structure.SpecialAllowance = req.SpecialAllowance
	structure.BonusAmount = req.BonusAmount

	structure.HRA = b.HRA
	structure.Conveyance = b.Conveyance
	structure.Medical = b.Medical
	structure.GrossSalary = b.GrossSalary
	structure.PFEmployee = b.PFEmployee
	structure.PFEmployer = b.PFEmployer
	structure.ESIEmployee = b.ESIEmployee
	structure.ESIEmployer = b.ESIEmployer
	structure.ProfessionalTax = b.ProfessionalTax
	structure.IncomeTax = b.IncomeTax
	structure.NetSalary = b.NetSalary
	structure.AnnualCTC = b.AnnualCTC
}

func isStructureConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_structure_employee"
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_structure_employee")
}

func parseIDs(companyID, employeeID string) (uuid.UUID, uuid.UUID, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return uuid.Nil, uuid.Nil, salarystructureerrors.ErrInvalidID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, salarystructureerrors.ErrInvalidID
	}
	return companyUUID, employeeUUID, nil
}

func mapToResponse(s *SalaryStructure) StructureResponse {
	return StructureResponse{
		ID:         s.ID.String(),
		CompanyID:  s.CompanyID.String(),
		EmployeeID: s.EmployeeID.String(),

		BasicSalary:      s.BasicSalary,
		SpecialAllowance: s.SpecialAllowance,
		BonusAmount:      s.BonusAmount,

		HRA:             s.HRA,
		Conveyance:      s.Conveyance,
		Medical:         s.Medical,
		GrossSalary:     s.GrossSalary,
		PFEmployee:      s.PFEmployee,
		PFEmployer:      s.PFEmployer,
		ESIEmployee:     s.ESIEmployee,
		ESIEmployer:     s.ESIEmployer,
		ProfessionalTax: s.ProfessionalTax,
		IncomeTax:       s.IncomeTax,
		NetSalary:       s.NetSalary,
		AnnualCTC:       s.AnnualCTC,
	}
}
