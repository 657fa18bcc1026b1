package company_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"paymaster/internal/company"
	companyerrors "paymaster/internal/company/errors"
	"paymaster/internal/employee"
)

type fakeCompanyRepository struct {
	createFn     func(ctx context.Context, comp *company.Company) error
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*company.Company, error)
	getByEmailFn func(ctx context.Context, email string) (*company.Company, error)
	findAllFn    func(ctx context.Context) ([]company.Company, error)
	updateFn     func(ctx context.Context, comp *company.Company) error
	deleteFn     func(ctx context.Context, id uuid.UUID) error
	deleteDepsFn func(ctx context.Context, companyID uuid.UUID) error
}

func (f *fakeCompanyRepository) WithTx(tx *gorm.DB) company.Repository { return f }

func (f *fakeCompanyRepository) Create(ctx context.Context, comp *company.Company) error {
	if f.createFn != nil {
		return f.createFn(ctx, comp)
	}
	return nil
}

func (f *fakeCompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCompanyRepository) GetByEmail(ctx context.Context, email string) (*company.Company, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCompanyRepository) FindAll(ctx context.Context) ([]company.Company, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeCompanyRepository) Update(ctx context.Context, comp *company.Company) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, comp)
	}
	return nil
}

func (f *fakeCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeCompanyRepository) DeleteDependents(ctx context.Context, companyID uuid.UUID) error {
	if f.deleteDepsFn != nil {
		return f.deleteDepsFn(ctx, companyID)
	}
	return nil
}

type fakeEmployeeRepo struct {
	employee.Repository
	createFn func(ctx context.Context, empl *employee.Employee) error
}

func (f *fakeEmployeeRepo) WithTx(tx *gorm.DB) employee.Repository { return f }

func (f *fakeEmployeeRepo) Create(ctx context.Context, empl *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, empl)
	}
	return nil
}

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing: true,
	})
	assert.NoError(t, err)
	return gdb, mock
}

func TestService_Register(t *testing.T) {
	gdb, mock := newTestDB(t)

	var createdCompany *company.Company
	var createdAdmin *employee.Employee

	repo := &fakeCompanyRepository{
		createFn: func(ctx context.Context, comp *company.Company) error {
			createdCompany = comp
			return nil
		},
	}
	emplRepo := &fakeEmployeeRepo{
		createFn: func(ctx context.Context, empl *employee.Employee) error {
			createdAdmin = empl
			return nil
		},
	}

	svc := company.NewService(gdb, repo, emplRepo, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Register(context.Background(), company.RegisterCompanyRequest{
		Name:        "Acme Tools",
		Email:       "ops@acme.test",
		AdminName:   "Sam Rivera",
		AdminEmail:  "sam@acme.test",
		AdminGender: employee.GenderMale,
	})

	assert.NoError(t, err)
	assert.NotNil(t, createdCompany)
	assert.NotNil(t, createdAdmin)
	assert.Equal(t, createdCompany.ID, createdAdmin.CompanyID)
	assert.Equal(t, employee.RoleAdmin, createdAdmin.Role)
	assert.NotNil(t, createdAdmin.PasswordToken)
	assert.Equal(t, createdAdmin.ID.String(), resp.AdminID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_RegisterRollsBackOnAdminFailure(t *testing.T) {
	gdb, mock := newTestDB(t)

	repo := &fakeCompanyRepository{}
	emplRepo := &fakeEmployeeRepo{
		createFn: func(ctx context.Context, empl *employee.Employee) error {
			return gorm.ErrInvalidData
		},
	}

	svc := company.NewService(gdb, repo, emplRepo, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Register(context.Background(), company.RegisterCompanyRequest{
		Name:        "Acme Tools",
		Email:       "ops@acme.test",
		AdminName:   "Sam Rivera",
		AdminEmail:  "sam@acme.test",
		AdminGender: employee.GenderMale,
	})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetByID(t *testing.T) {
	gdb, _ := newTestDB(t)
	id := uuid.New()

	repo := &fakeCompanyRepository{
		getByIDFn: func(ctx context.Context, gotID uuid.UUID) (*company.Company, error) {
			assert.Equal(t, id, gotID)
			return &company.Company{ID: id, Name: "Acme Tools", Email: "ops@acme.test"}, nil
		},
	}

	svc := company.NewService(gdb, repo, &fakeEmployeeRepo{}, nil)

	resp, err := svc.GetByID(context.Background(), id.String())
	assert.NoError(t, err)
	assert.Equal(t, "Acme Tools", resp.Name)

	_, err = svc.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, companyerrors.ErrInvalidCompanyID)
}

func TestService_GetByIDNotFound(t *testing.T) {
	gdb, _ := newTestDB(t)

	svc := company.NewService(gdb, &fakeCompanyRepository{}, &fakeEmployeeRepo{}, nil)

	_, err := svc.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, companyerrors.ErrCompanyNotFound)
}

func TestService_DeleteCascadesToDependents(t *testing.T) {
	gdb, mock := newTestDB(t)
	id := uuid.New()

	var dependentsDeleted, companyDeleted bool
	repo := &fakeCompanyRepository{
		getByIDFn: func(ctx context.Context, gotID uuid.UUID) (*company.Company, error) {
			return &company.Company{ID: gotID, Name: "Acme Tools"}, nil
		},
		deleteDepsFn: func(ctx context.Context, companyID uuid.UUID) error {
			assert.Equal(t, id, companyID)
			assert.False(t, companyDeleted, "dependents go before the company row")
			dependentsDeleted = true
			return nil
		},
		deleteFn: func(ctx context.Context, gotID uuid.UUID) error {
			companyDeleted = true
			return nil
		},
	}

	svc := company.NewService(gdb, repo, &fakeEmployeeRepo{}, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	assert.NoError(t, svc.Delete(context.Background(), id.String()))
	assert.True(t, dependentsDeleted)
	assert.True(t, companyDeleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_DeleteRollsBackWhenCascadeFails(t *testing.T) {
	gdb, mock := newTestDB(t)
	id := uuid.New()

	var companyDeleted bool
	repo := &fakeCompanyRepository{
		getByIDFn: func(ctx context.Context, gotID uuid.UUID) (*company.Company, error) {
			return &company.Company{ID: gotID, Name: "Acme Tools"}, nil
		},
		deleteDepsFn: func(ctx context.Context, companyID uuid.UUID) error {
			return gorm.ErrInvalidData
		},
		deleteFn: func(ctx context.Context, gotID uuid.UUID) error {
			companyDeleted = true
			return nil
		},
	}

	svc := company.NewService(gdb, repo, &fakeEmployeeRepo{}, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Error(t, svc.Delete(context.Background(), id.String()))
	assert.False(t, companyDeleted, "company row survives a failed cascade")
	assert.NoError(t, mock.ExpectationsWereMet())
}
