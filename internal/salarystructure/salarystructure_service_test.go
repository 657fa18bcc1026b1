package salarystructure_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"paymaster/internal/employee"
	employeeerrors "paymaster/internal/employee/errors"
	"paymaster/internal/payrollconfig"
	payrollconfigerrors "paymaster/internal/payrollconfig/errors"
	"paymaster/internal/salarystructure"
	salarystructureerrors "paymaster/internal/salarystructure/errors"
)

type fakeStructureRepository struct {
	createFn          func(ctx context.Context, s *salarystructure.SalaryStructure) error
	findByEmployeeFn  func(ctx context.Context, companyID, employeeID uuid.UUID) (*salarystructure.SalaryStructure, error)
	updateFn          func(ctx context.Context, s *salarystructure.SalaryStructure) error
	getEmployeeInfoFn func(ctx context.Context, companyID, employeeID uuid.UUID) (*salarystructure.EmployeeInfo, error)
}

func (f *fakeStructureRepository) WithTx(tx *gorm.DB) salarystructure.Repository { return f }

func (f *fakeStructureRepository) Create(ctx context.Context, s *salarystructure.SalaryStructure) error {
	if f.createFn != nil {
		return f.createFn(ctx, s)
	}
	return nil
}

func (f *fakeStructureRepository) FindByEmployee(ctx context.Context, companyID, employeeID uuid.UUID) (*salarystructure.SalaryStructure, error) {
	if f.findByEmployeeFn != nil {
		return f.findByEmployeeFn(ctx, companyID, employeeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStructureRepository) Update(ctx context.Context, s *salarystructure.SalaryStructure) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, s)
	}
	return nil
}

func (f *fakeStructureRepository) GetEmployeeInfo(ctx context.Context, companyID, employeeID uuid.UUID) (*salarystructure.EmployeeInfo, error) {
	if f.getEmployeeInfoFn != nil {
		return f.getEmployeeInfoFn(ctx, companyID, employeeID)
	}
	return &salarystructure.EmployeeInfo{}, gorm.ErrRecordNotFound
}

type fakeConfigRepository struct {
	findActiveFn func(ctx context.Context, companyID uuid.UUID) (*payrollconfig.PayrollConfiguration, error)
}

func (f *fakeConfigRepository) WithTx(tx *gorm.DB) payrollconfig.Repository { return f }

func (f *fakeConfigRepository) Create(ctx context.Context, cfg *payrollconfig.PayrollConfiguration) error {
	return nil
}

func (f *fakeConfigRepository) DeactivateActive(ctx context.Context, companyID uuid.UUID) (int64, error) {
	return 0, nil
}

func (f *fakeConfigRepository) FindActiveByCompany(ctx context.Context, companyID uuid.UUID) (*payrollconfig.PayrollConfiguration, error) {
	if f.findActiveFn != nil {
		return f.findActiveFn(ctx, companyID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeConfigRepository) FindAllByCompany(ctx context.Context, companyID uuid.UUID) ([]payrollconfig.PayrollConfiguration, error) {
	return nil, nil
}

func nd(v string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(v), Valid: true}
}

func fullConfig(companyID uuid.UUID) *payrollconfig.PayrollConfiguration {
	return &payrollconfig.PayrollConfiguration{
		ID:        uuid.New(),
		CompanyID: companyID,

		HRAApplicable: true,
		HRAPercent:    nd("40"),

		PFApplicable:      true,
		PFEmployeePercent: nd("12"),
		PFEmployerPercent: nd("12"),

		Slab1Limit: nd("250000"),
		Slab1Rate:  nd("0"),
		Slab2Limit: nd("500000"),
		Slab2Rate:  nd("5"),
		Slab3Rate:  nd("20"),

		IsActive: true,
	}
}

func TestStructureService_CreateDerivesBreakdown(t *testing.T) {
	companyID := uuid.New()
	employeeID := uuid.New()

	var created *salarystructure.SalaryStructure
	repo := &fakeStructureRepository{
		getEmployeeInfoFn: func(ctx context.Context, cID, eID uuid.UUID) (*salarystructure.EmployeeInfo, error) {
			assert.Equal(t, companyID, cID)
			assert.Equal(t, employeeID, eID)
			return &salarystructure.EmployeeInfo{
				ID:     employeeID,
				Name:   "Meera Kulkarni",
				Gender: employee.GenderFemale,
				Status: employee.StatusActive,
			}, nil
		},
		createFn: func(ctx context.Context, s *salarystructure.SalaryStructure) error {
			created = s
			return nil
		},
	}
	configRepo := &fakeConfigRepository{
		findActiveFn: func(ctx context.Context, cID uuid.UUID) (*payrollconfig.PayrollConfiguration, error) {
			return fullConfig(cID), nil
		},
	}

	svc := salarystructure.NewService(repo, configRepo)

	resp, err := svc.Create(context.Background(), companyID.String(), salarystructure.UpsertStructureRequest{
		EmployeeID:  employeeID.String(),
		BasicSalary: decimal.NewFromInt(15000),
	})
	assert.NoError(t, err)
	assert.NotNil(t, created)

	// 15000 basic + 40% HRA, PF at 12% of basic.
	assert.True(t, resp.HRA.Equal(decimal.NewFromInt(6000)), "hra = %s", resp.HRA)
	assert.True(t, resp.GrossSalary.Equal(decimal.NewFromInt(21000)), "gross = %s", resp.GrossSalary)
	assert.True(t, resp.PFEmployee.Equal(decimal.NewFromInt(1800)), "pf = %s", resp.PFEmployee)
	assert.Equal(t, companyID.String(), resp.CompanyID)
	assert.Equal(t, employeeID.String(), resp.EmployeeID)
}

func TestStructureService_CreateFailsWithoutActiveConfig(t *testing.T) {
	companyID := uuid.New()
	employeeID := uuid.New()

	repo := &fakeStructureRepository{
		getEmployeeInfoFn: func(ctx context.Context, cID, eID uuid.UUID) (*salarystructure.EmployeeInfo, error) {
			return &salarystructure.EmployeeInfo{ID: employeeID, Gender: employee.GenderMale}, nil
		},
	}
	configRepo := &fakeConfigRepository{}

	svc := salarystructure.NewService(repo, configRepo)

	_, err := svc.Create(context.Background(), companyID.String(), salarystructure.UpsertStructureRequest{
		EmployeeID:  employeeID.String(),
		BasicSalary: decimal.NewFromInt(15000),
	})
	assert.ErrorIs(t, err, payrollconfigerrors.ErrActiveConfigNotFound)
}

func TestStructureService_CreateRejectsUnknownEmployee(t *testing.T) {
	companyID := uuid.New()

	svc := salarystructure.NewService(&fakeStructureRepository{}, &fakeConfigRepository{})

	_, err := svc.Create(context.Background(), companyID.String(), salarystructure.UpsertStructureRequest{
		EmployeeID:  uuid.NewString(),
		BasicSalary: decimal.NewFromInt(15000),
	})
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}

func TestStructureService_CreateRejectsNonPositiveBasic(t *testing.T) {
	companyID := uuid.New()
	employeeID := uuid.New()

	repo := &fakeStructureRepository{
		getEmployeeInfoFn: func(ctx context.Context, cID, eID uuid.UUID) (*salarystructure.EmployeeInfo, error) {
			return &salarystructure.EmployeeInfo{ID: employeeID, Gender: employee.GenderMale}, nil
		},
	}
	configRepo := &fakeConfigRepository{
		findActiveFn: func(ctx context.Context, cID uuid.UUID) (*payrollconfig.PayrollConfiguration, error) {
			return fullConfig(cID), nil
		},
	}

	svc := salarystructure.NewService(repo, configRepo)

	_, err := svc.Create(context.Background(), companyID.String(), salarystructure.UpsertStructureRequest{
		EmployeeID:  employeeID.String(),
		BasicSalary: decimal.Zero,
	})
	assert.ErrorIs(t, err, salarystructureerrors.ErrInvalidBasicSalary)
}

func TestStructureService_UpdateOverwritesDerivedFields(t *testing.T) {
	companyID := uuid.New()
	employeeID := uuid.New()

	existing := &salarystructure.SalaryStructure{
		ID:          uuid.New(),
		CompanyID:   companyID,
		EmployeeID:  employeeID,
		BasicSalary: decimal.NewFromInt(15000),
		HRA:         decimal.NewFromInt(6000),
		GrossSalary: decimal.NewFromInt(21000),
		PFEmployee:  decimal.NewFromInt(1800),
	}

	var updated *salarystructure.SalaryStructure
	repo := &fakeStructureRepository{
		getEmployeeInfoFn: func(ctx context.Context, cID, eID uuid.UUID) (*salarystructure.EmployeeInfo, error) {
			return &salarystructure.EmployeeInfo{ID: employeeID, Gender: employee.GenderMale}, nil
		},
		findByEmployeeFn: func(ctx context.Context, cID, eID uuid.UUID) (*salarystructure.SalaryStructure, error) {
			return existing, nil
		},
		updateFn: func(ctx context.Context, s *salarystructure.SalaryStructure) error {
			updated = s
			return nil
		},
	}
	configRepo := &fakeConfigRepository{
		findActiveFn: func(ctx context.Context, cID uuid.UUID) (*payrollconfig.PayrollConfiguration, error) {
			return fullConfig(cID), nil
		},
	}

	svc := salarystructure.NewService(repo, configRepo)

	resp, err := svc.Update(context.Background(), companyID.String(), salarystructure.UpsertStructureRequest{
		EmployeeID:  employeeID.String(),
		BasicSalary: decimal.NewFromInt(20000),
	})
	assert.NoError(t, err)
	assert.NotNil(t, updated)
	assert.Equal(t, existing.ID, updated.ID)

	// Every derived field reflects the new basic, nothing stale survives.
	assert.True(t, updated.BasicSalary.Equal(decimal.NewFromInt(20000)))
	assert.True(t, updated.HRA.Equal(decimal.NewFromInt(8000)), "hra = %s", updated.HRA)
	assert.True(t, updated.GrossSalary.Equal(decimal.NewFromInt(28000)), "gross = %s", updated.GrossSalary)
	assert.True(t, updated.PFEmployee.Equal(decimal.NewFromInt(2400)), "pf = %s", updated.PFEmployee)
	assert.True(t, resp.GrossSalary.Equal(decimal.NewFromInt(28000)))
}

func TestStructureService_UpdateMissingStructure(t *testing.T) {
	companyID := uuid.New()
	employeeID := uuid.New()

	svc := salarystructure.NewService(&fakeStructureRepository{}, &fakeConfigRepository{})

	_, err := svc.Update(context.Background(), companyID.String(), salarystructure.UpsertStructureRequest{
		EmployeeID:  employeeID.String(),
		BasicSalary: decimal.NewFromInt(20000),
	})
	assert.ErrorIs(t, err, salarystructureerrors.ErrStructureNotFound)
}

func TestStructureService_GetByEmployeeInvalidID(t *testing.T) {
	svc := salarystructure.NewService(&fakeStructureRepository{}, &fakeConfigRepository{})

	_, err := svc.GetByEmployee(context.Background(), "not-a-uuid", uuid.NewString())
	assert.ErrorIs(t, err, salarystructureerrors.ErrInvalidID)
}
