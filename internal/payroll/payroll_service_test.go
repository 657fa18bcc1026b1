package payroll

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	payrollerrors "paymaster/internal/payroll/errors"
)

func seededPayroll(repo *fakeGenRepository, companyID, employeeID uuid.UUID, month, year int) *Payroll {
	p := &Payroll{
		ID:              uuid.New(),
		CompanyID:       companyID,
		EmployeeID:      employeeID,
		Month:           month,
		Year:            year,
		BasicSalary:     decimal.NewFromInt(15000),
		GrossSalary:     decimal.NewFromInt(16500),
		ProfessionalTax: decimal.NewFromInt(200),
		TotalDeductions: decimal.NewFromInt(2000),
		NetSalary:       decimal.NewFromInt(14500),
		GeneratedAt:     time.Date(year, time.Month(month), 1, 6, 0, 0, 0, time.UTC),
	}
	repo.created = append(repo.created, p)
	repo.stored[periodKey(employeeID, month, year)] = true
	return p
}

func TestService_GetSlipPDF(t *testing.T) {
	companyID := uuid.New()
	employeeID := uuid.New()

	repo := newFakeGenRepository()
	repo.companies = []CompanyRow{{ID: companyID, Name: "Acme Tech"}}
	repo.employees[companyID] = []EmployeeRow{
		{ID: employeeID, Name: "Meera Kulkarni", Email: "meera@acme.test", EmpCode: "EMP-AT100004", Gender: "FEMALE", Status: "ACTIVE"},
	}
	p := seededPayroll(repo, companyID, employeeID, 3, 2026)

	svc := NewService(repo, nil, NewSlipRenderer())

	name, pdf, err := svc.GetSlipPDF(context.Background(), companyID.String(), p.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, "payslip-EMP-AT100004-2026-03.pdf", name)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
}

func TestService_GetSlipPDFNotFound(t *testing.T) {
	svc := NewService(newFakeGenRepository(), nil, NewSlipRenderer())

	_, _, err := svc.GetSlipPDF(context.Background(), uuid.NewString(), uuid.NewString())
	assert.ErrorIs(t, err, payrollerrors.ErrPayrollNotFound)
}

func TestService_GetSlipPDFRejectsBadIDs(t *testing.T) {
	svc := NewService(newFakeGenRepository(), nil, NewSlipRenderer())

	_, _, err := svc.GetSlipPDF(context.Background(), "nope", uuid.NewString())
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidCompanyID)

	_, _, err = svc.GetSlipPDF(context.Background(), uuid.NewString(), "nope")
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidPayrollID)
}

func TestService_ListsAreScoped(t *testing.T) {
	companyID := uuid.New()
	otherCompany := uuid.New()
	employeeID := uuid.New()

	repo := newFakeGenRepository()
	seededPayroll(repo, companyID, employeeID, 2, 2026)
	seededPayroll(repo, companyID, employeeID, 3, 2026)
	seededPayroll(repo, otherCompany, uuid.New(), 3, 2026)

	svc := NewService(repo, nil, NewSlipRenderer())

	all, err := svc.GetAllByCompany(context.Background(), companyID.String())
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.GetByEmployee(context.Background(), companyID.String(), employeeID.String())
	assert.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, p := range mine {
		assert.Equal(t, employeeID.String(), p.EmployeeID)
	}
}
