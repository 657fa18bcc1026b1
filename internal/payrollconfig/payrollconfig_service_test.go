package payrollconfig_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"paymaster/internal/payrollconfig"
	payrollconfigerrors "paymaster/internal/payrollconfig/errors"
)

type fakeConfigRepository struct {
	createFn           func(ctx context.Context, cfg *payrollconfig.PayrollConfiguration) error
	deactivateActiveFn func(ctx context.Context, companyID uuid.UUID) (int64, error)
	findActiveFn       func(ctx context.Context, companyID uuid.UUID) (*payrollconfig.PayrollConfiguration, error)
	findAllFn          func(ctx context.Context, companyID uuid.UUID) ([]payrollconfig.PayrollConfiguration, error)
}

func (f *fakeConfigRepository) WithTx(tx *gorm.DB) payrollconfig.Repository { return f }

func (f *fakeConfigRepository) Create(ctx context.Context, cfg *payrollconfig.PayrollConfiguration) error {
	if f.createFn != nil {
		return f.createFn(ctx, cfg)
	}
	return nil
}

func (f *fakeConfigRepository) DeactivateActive(ctx context.Context, companyID uuid.UUID) (int64, error) {
	if f.deactivateActiveFn != nil {
		return f.deactivateActiveFn(ctx, companyID)
	}
	return 0, nil
}

func (f *fakeConfigRepository) FindActiveByCompany(ctx context.Context, companyID uuid.UUID) (*payrollconfig.PayrollConfiguration, error) {
	if f.findActiveFn != nil {
		return f.findActiveFn(ctx, companyID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeConfigRepository) FindAllByCompany(ctx context.Context, companyID uuid.UUID) ([]payrollconfig.PayrollConfiguration, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, companyID)
	}
	return nil, nil
}

func nd(v string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(v), Valid: true}
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

func TestService_UpsertDeactivatesPriorAndActivatesOne(t *testing.T) {
	gdb, mock := newTestDB(t)
	companyID := uuid.New()

	var deactivateCalls int
	var created *payrollconfig.PayrollConfiguration

	repo := &fakeConfigRepository{
		deactivateActiveFn: func(ctx context.Context, cID uuid.UUID) (int64, error) {
			deactivateCalls++
			assert.Equal(t, companyID, cID)
			return 1, nil
		},
		createFn: func(ctx context.Context, cfg *payrollconfig.PayrollConfiguration) error {
			created = cfg
			return nil
		},
	}

	svc := payrollconfig.NewService(gdb, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Upsert(context.Background(), companyID.String(), payrollconfig.UpsertConfigRequest{
		HRAApplicable: true,
		HRAPercent:    nd("10"),
		PFApplicable:  true,
		Slab1Limit:    nd("250000"),
		Slab2Limit:    nd("500000"),
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, deactivateCalls)
	assert.NotNil(t, created)
	assert.True(t, created.IsActive)
	assert.True(t, resp.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_UpsertRejectsBadSlabOrder(t *testing.T) {
	gdb, _ := newTestDB(t)

	svc := payrollconfig.NewService(gdb, &fakeConfigRepository{})

	_, err := svc.Upsert(context.Background(), uuid.NewString(), payrollconfig.UpsertConfigRequest{
		Slab1Limit: nd("500000"),
		Slab2Limit: nd("250000"),
	})

	assert.ErrorIs(t, err, payrollconfigerrors.ErrInvalidSlabOrder)
}

func TestService_UpsertRollsBackWhenCreateFails(t *testing.T) {
	gdb, mock := newTestDB(t)

	repo := &fakeConfigRepository{
		createFn: func(ctx context.Context, cfg *payrollconfig.PayrollConfiguration) error {
			return gorm.ErrInvalidData
		},
	}

	svc := payrollconfig.NewService(gdb, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Upsert(context.Background(), uuid.NewString(), payrollconfig.UpsertConfigRequest{})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetActiveNotFound(t *testing.T) {
	gdb, _ := newTestDB(t)

	svc := payrollconfig.NewService(gdb, &fakeConfigRepository{})

	_, err := svc.GetActive(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, payrollconfigerrors.ErrActiveConfigNotFound)
}
