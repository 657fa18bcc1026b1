package employee_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	autherrors "paymaster/internal/auth/errors"
	"paymaster/internal/employee"
)

type fakeEmployeeRepository struct {
	withTxFn               func(tx *gorm.DB) employee.Repository
	createFn               func(ctx context.Context, empl *employee.Employee) error
	findAllByCompanyFn     func(ctx context.Context, companyID uuid.UUID) ([]employee.Employee, error)
	findActiveByCompanyFn  func(ctx context.Context, companyID uuid.UUID) ([]employee.Employee, error)
	findOptionsByCompanyFn func(ctx context.Context, companyID uuid.UUID) ([]employee.Employee, error)
	findByIDAndCompanyFn   func(ctx context.Context, companyID, id uuid.UUID) (*employee.Employee, error)
	findByTokenFn          func(ctx context.Context, token string) (*employee.Employee, error)
	getCompanyNameFn       func(ctx context.Context, companyID uuid.UUID) (string, error)
	updateFn               func(ctx context.Context, empl *employee.Employee) error
	deleteFn               func(ctx context.Context, companyID, id uuid.UUID) error
}

func (f *fakeEmployeeRepository) WithTx(tx *gorm.DB) employee.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, empl *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, empl)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindAllByCompany(ctx context.Context, companyID uuid.UUID) ([]employee.Employee, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindActiveByCompany(ctx context.Context, companyID uuid.UUID) ([]employee.Employee, error) {
	if f.findActiveByCompanyFn != nil {
		return f.findActiveByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindOptionsByCompany(ctx context.Context, companyID uuid.UUID) ([]employee.Employee, error) {
	if f.findOptionsByCompanyFn != nil {
		return f.findOptionsByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByIDAndCompany(ctx context.Context, companyID, id uuid.UUID) (*employee.Employee, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindByToken(ctx context.Context, token string) (*employee.Employee, error) {
	if f.findByTokenFn != nil {
		return f.findByTokenFn(ctx, token)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) GetCompanyName(ctx context.Context, companyID uuid.UUID) (string, error) {
	if f.getCompanyNameFn != nil {
		return f.getCompanyNameFn(ctx, companyID)
	}
	return "Acme Tools", nil
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, empl *employee.Employee) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, empl)
	}
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, companyID, id)
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

func TestService_Create(t *testing.T) {
	gdb, mock := newTestDB(t)
	companyID := uuid.New()

	var created *employee.Employee
	repo := &fakeEmployeeRepository{
		createFn: func(ctx context.Context, empl *employee.Employee) error {
			created = empl
			return nil
		},
	}

	svc := employee.NewService(gdb, repo, nil, nil, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Create(context.Background(), companyID.String(), employee.CreateEmployeeRequest{
		Name:   "Jordan Lee",
		Email:  "jordan@acme.test",
		Gender: employee.GenderFemale,
	})

	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Regexp(t, regexp.MustCompile(`^EMP-AT\d{6}$`), resp.EmpCode)
	assert.Equal(t, employee.StatusActive, resp.Status)
	assert.Equal(t, employee.RoleEmployee, resp.Role)
	assert.NotNil(t, created.PasswordToken)
	assert.NotNil(t, created.TokenExpiry)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_DeactivateIsNoOpWhenInactive(t *testing.T) {
	gdb, _ := newTestDB(t)
	companyID := uuid.New()
	emplID := uuid.New()

	updates := 0
	repo := &fakeEmployeeRepository{
		findByIDAndCompanyFn: func(ctx context.Context, cID, id uuid.UUID) (*employee.Employee, error) {
			return &employee.Employee{
				ID:        emplID,
				CompanyID: companyID,
				Status:    employee.StatusInactive,
			}, nil
		},
		updateFn: func(ctx context.Context, empl *employee.Employee) error {
			updates++
			return nil
		},
	}

	svc := employee.NewService(gdb, repo, nil, nil, nil)

	resp, err := svc.Deactivate(context.Background(), companyID.String(), emplID.String())

	assert.NoError(t, err)
	assert.Equal(t, employee.StatusInactive, resp.Status)
	assert.Equal(t, 0, updates, "inactive employee must not be written again")
}

func TestService_DeactivateActiveEmployee(t *testing.T) {
	gdb, _ := newTestDB(t)
	companyID := uuid.New()
	emplID := uuid.New()

	var saved *employee.Employee
	repo := &fakeEmployeeRepository{
		findByIDAndCompanyFn: func(ctx context.Context, cID, id uuid.UUID) (*employee.Employee, error) {
			return &employee.Employee{
				ID:        emplID,
				CompanyID: companyID,
				Status:    employee.StatusActive,
			}, nil
		},
		updateFn: func(ctx context.Context, empl *employee.Employee) error {
			saved = empl
			return nil
		},
	}

	svc := employee.NewService(gdb, repo, nil, nil, nil)

	resp, err := svc.Deactivate(context.Background(), companyID.String(), emplID.String())

	assert.NoError(t, err)
	assert.Equal(t, employee.StatusInactive, resp.Status)
	assert.NotNil(t, saved)
	assert.Equal(t, employee.StatusInactive, saved.Status)
}

func TestService_SetPassword(t *testing.T) {
	gdb, _ := newTestDB(t)
	token := uuid.NewString()
	expiry := time.Now().Add(time.Hour)

	t.Run("Success consumes token", func(t *testing.T) {
		var saved *employee.Employee
		repo := &fakeEmployeeRepository{
			findByTokenFn: func(ctx context.Context, tok string) (*employee.Employee, error) {
				tk := token
				exp := expiry
				return &employee.Employee{
					ID:            uuid.New(),
					PasswordToken: &tk,
					TokenExpiry:   &exp,
				}, nil
			},
			updateFn: func(ctx context.Context, empl *employee.Employee) error {
				saved = empl
				return nil
			},
		}

		svc := employee.NewService(gdb, repo, nil, nil, nil)

		err := svc.SetPassword(context.Background(), employee.SetPasswordRequest{
			Token:    token,
			Password: "s3cret-pass",
		})

		assert.NoError(t, err)
		assert.Nil(t, saved.PasswordToken)
		assert.Nil(t, saved.TokenExpiry)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("s3cret-pass")))
	})

	t.Run("Expired token rejected", func(t *testing.T) {
		past := time.Now().Add(-time.Minute)
		repo := &fakeEmployeeRepository{
			findByTokenFn: func(ctx context.Context, tok string) (*employee.Employee, error) {
				tk := token
				return &employee.Employee{
					ID:            uuid.New(),
					PasswordToken: &tk,
					TokenExpiry:   &past,
				}, nil
			},
		}

		svc := employee.NewService(gdb, repo, nil, nil, nil)

		err := svc.SetPassword(context.Background(), employee.SetPasswordRequest{
			Token:    token,
			Password: "s3cret-pass",
		})

		assert.ErrorIs(t, err, autherrors.ErrSetPasswordTokenExpired)
	})

	t.Run("Unknown token rejected", func(t *testing.T) {
		repo := &fakeEmployeeRepository{}
		svc := employee.NewService(gdb, repo, nil, nil, nil)

		err := svc.SetPassword(context.Background(), employee.SetPasswordRequest{
			Token:    "nope",
			Password: "s3cret-pass",
		})

		assert.ErrorIs(t, err, autherrors.ErrSetPasswordTokenInvalid)
	})
}

func TestNewEmpCodeFormat(t *testing.T) {
	code := employee.NewEmpCode("Blue Ridge Motors")
	assert.Regexp(t, regexp.MustCompile(`^EMP-BRM\d{6}$`), code)

	code = employee.NewEmpCode("solo")
	assert.Regexp(t, regexp.MustCompile(`^EMP-S\d{6}$`), code)
}
