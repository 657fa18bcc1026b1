package payroll

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	payrollerrors "paymaster/internal/payroll/errors"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	GetAllByCompany(ctx context.Context, companyID string) ([]PayrollResponse, error)
	GetByEmployee(ctx context.Context, companyID, employeeID string) ([]PayrollResponse, error)
	GetSlipPDF(ctx context.Context, companyID, payrollID string) (string, []byte, error)
	Generate(ctx context.Context, companyID string) (GenerateRunResponse, error)
}

type service struct {
	repo      Repository
	generator *Generator
	renderer  SlipRenderer
	logger    *zap.Logger
}

func NewService(repo Repository, generator *Generator, renderer SlipRenderer, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{repo: repo, generator: generator, renderer: renderer, logger: l}
}

func (s *service) GetAllByCompany(ctx context.Context, companyID string) ([]PayrollResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return nil, payrollerrors.ErrInvalidCompanyID
	}

	payrolls, err := s.repo.FindAllByCompany(ctx, companyUUID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(payrolls), nil
}

func (s *service) GetByEmployee(ctx context.Context, companyID, employeeID string) ([]PayrollResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return nil, payrollerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, payrollerrors.ErrInvalidEmployeeID
	}

	payrolls, err := s.repo.FindByEmployee(ctx, companyUUID, employeeUUID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(payrolls), nil
}

// GetSlipPDF re-renders the slip from the stored snapshot, so a slip stays
// reproducible after structures and configurations change.
func (s *service) GetSlipPDF(ctx context.Context, companyID, payrollID string) (string, []byte, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return "", nil, payrollerrors.ErrInvalidCompanyID
	}
	payrollUUID, err := uuid.Parse(payrollID)
	if err != nil {
		return "", nil, payrollerrors.ErrInvalidPayrollID
	}

	payroll, err := s.repo.FindByIDAndCompany(ctx, companyUUID, payrollUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, payrollerrors.ErrPayrollNotFound
		}
		return "", nil, err
	}

	company, err := s.repo.GetCompanyRow(ctx, companyUUID)
	if err != nil {
		return "", nil, err
	}
	empl, err := s.repo.GetEmployeeRow(ctx, companyUUID, payroll.EmployeeID)
	if err != nil {
		return "", nil, err
	}

	pdf, err := s.renderer.Render(slipDataFrom(company.Name, *empl, payroll))
	if err != nil {
		s.logger.Error("payslip render failed",
			zap.String("payroll_id", payrollID),
			zap.Error(err),
		)
		return "", nil, err
	}

	return slipFileName(empl.EmpCode, payroll.Month, payroll.Year), pdf, nil
}

func (s *service) Generate(ctx context.Context, companyID string) (GenerateRunResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return GenerateRunResponse{}, payrollerrors.ErrInvalidCompanyID
	}

	summary, err := s.generator.GenerateForCompany(ctx, companyUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GenerateRunResponse{}, payrollerrors.ErrInvalidCompanyID
		}
		return GenerateRunResponse{}, err
	}

	return GenerateRunResponse{
		Month:     int(summary.Month),
		Year:      summary.Year,
		Generated: summary.Generated,
		Skipped:   summary.Skipped,
		Failed:    summary.Failed,
	}, nil
}

func mapToResponse(payroll Payroll) PayrollResponse {
	return PayrollResponse{
		ID:         payroll.ID.String(),
		CompanyID:  payroll.CompanyID.String(),
		EmployeeID: payroll.EmployeeID.String(),
		Month:      payroll.Month,
		Year:       payroll.Year,

		BasicSalary:      payroll.BasicSalary,
		HRA:              payroll.HRA,
		Conveyance:       payroll.Conveyance,
		Medical:          payroll.Medical,
		SpecialAllowance: payroll.SpecialAllowance,
		BonusAmount:      payroll.BonusAmount,
		GrossSalary:      payroll.GrossSalary,

		PFEmployee:      payroll.PFEmployee,
		PFEmployer:      payroll.PFEmployer,
		ESIEmployee:     payroll.ESIEmployee,
		ESIEmployer:     payroll.ESIEmployer,
		ProfessionalTax: payroll.ProfessionalTax,
		IncomeTax:       payroll.IncomeTax,
		TotalDeductions: payroll.TotalDeductions,
		NetSalary:       payroll.NetSalary,

		GeneratedAt: payroll.GeneratedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(payrolls []Payroll) []PayrollResponse {
	resp := make([]PayrollResponse, len(payrolls))
	for i, payroll := range payrolls {
		resp[i] = mapToResponse(payroll)
	}
	return resp
}
