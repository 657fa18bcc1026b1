package company

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	companyerrors "paymaster/internal/company/errors"
	"paymaster/internal/employee"
	"paymaster/internal/shared/contextutil"
	"paymaster/internal/shared/mailer"
)

//go:generate mockgen -source=company_service.go -destination=mock/company_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterCompanyRequest) (RegisterCompanyResponse, error)
	GetByID(ctx context.Context, id string) (*CompanyResponse, error)
	GetAll(ctx context.Context) ([]CompanyResponse, error)
	Update(ctx context.Context, id string, req UpdateCompanyRequest) (*CompanyResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db           *gorm.DB
	repo         Repository
	employeeRepo employee.Repository
	mail         mailer.Sender
	logger       *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	employeeRepo employee.Repository,
	mail mailer.Sender,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		employeeRepo: employeeRepo,
		mail:         mail,
		logger:       l,
	}
}

// Register creates the company and its first ADMIN employee in one
// transaction, then emails the admin a set-password link.
func (s *service) Register(ctx context.Context, req RegisterCompanyRequest) (RegisterCompanyResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("register company requested",
		zap.String("request_id", rid),
		zap.String("name", req.Name),
		zap.String("email", req.Email),
	)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return RegisterCompanyResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	comp := &Company{
		ID:                 uuid.New(),
		Name:               req.Name,
		Email:              req.Email,
		ContactNumber:      req.ContactNumber,
		Address:            req.Address,
		RegistrationNumber: req.RegistrationNumber,
	}

	if err := qtx.Create(ctx, comp); err != nil {
		s.logger.Error("register company persist failed", zap.Error(err))
		return RegisterCompanyResponse{}, mapRepositoryError(err)
	}

	token := uuid.NewString()
	expiry := time.Now().Add(24 * time.Hour)

	admin := &employee.Employee{
		ID:            uuid.New(),
		CompanyID:     comp.ID,
		EmpCode:       employee.NewEmpCode(comp.Name),
		Name:          req.AdminName,
		Email:         req.AdminEmail,
		Gender:        req.AdminGender,
		Role:          employee.RoleAdmin,
		Status:        employee.StatusActive,
		PasswordToken: &token,
		TokenExpiry:   &expiry,
	}

	if err := s.employeeRepo.WithTx(tx).Create(ctx, admin); err != nil {
		s.logger.Error("register company admin persist failed", zap.Error(err))
		return RegisterCompanyResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("register company commit failed", zap.String("request_id", rid), zap.Error(err))
		return RegisterCompanyResponse{}, err
	}

	s.sendAdminWelcomeEmail(ctx, admin, comp.Name, token)

	s.logger.Info("company registered",
		zap.String("request_id", rid),
		zap.String("company_id", comp.ID.String()),
		zap.String("admin_id", admin.ID.String()),
	)

	return RegisterCompanyResponse{
		Company: *mapToResponse(comp),
		AdminID: admin.ID.String(),
	}, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*CompanyResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	comp, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToResponse(comp), nil
}

func (s *service) GetAll(ctx context.Context) ([]CompanyResponse, error) {
	companies, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	result := make([]CompanyResponse, 0, len(companies))
	for i := range companies {
		result = append(result, *mapToResponse(&companies[i]))
	}
	return result, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateCompanyRequest) (*CompanyResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	comp, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	if req.Name != "" {
		comp.Name = req.Name
	}
	if req.ContactNumber != "" {
		comp.ContactNumber = req.ContactNumber
	}
	if req.Address != "" {
		comp.Address = req.Address
	}
	if req.RegistrationNumber != "" {
		comp.RegistrationNumber = req.RegistrationNumber
	}

	if err := s.repo.Update(ctx, comp); err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToResponse(comp), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return companyerrors.ErrInvalidCompanyID
	}

	if _, err := s.repo.GetByID(ctx, uid); err != nil {
		return mapRepositoryError(err)
	}

	// The company and everything it owns go in one transaction, so a
	// half-deleted tenant can never keep authenticating.
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.DeleteDependents(ctx, uid); err != nil {
		s.logger.Error("cascade delete failed", zap.String("company_id", id), zap.Error(err))
		return err
	}
	if err := qtx.Delete(ctx, uid); err != nil {
		s.logger.Error("delete company failed", zap.String("company_id", id), zap.Error(err))
		return err
	}

	return tx.Commit().Error
}

func (s *service) sendAdminWelcomeEmail(ctx context.Context, admin *employee.Employee, companyName, token string) {
	if s.mail == nil {
		return
	}

	link := fmt.Sprintf("%s/set-password?token=%s", os.Getenv("APP_BASE_URL"), token)
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>%s has been registered and you are its administrator. "+
			"Set your password using the link below to start managing payroll.</p>"+
			"<p><a href=%q>Set your password</a></p>",
		admin.Name, companyName, link,
	)

	if err := s.mail.Send(ctx, mailer.Message{
		To:       admin.Email,
		Subject:  "Welcome to Paymaster",
		HTMLBody: body,
	}); err != nil {
		s.logger.Warn("admin welcome email failed",
			zap.String("admin_id", admin.ID.String()),
			zap.Error(err),
		)
	}
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return companyerrors.ErrCompanyNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return companyerrors.ErrCompanyAlreadyExists
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return companyerrors.ErrCompanyAlreadyExists
	}

	return err
}

func mapToResponse(c *Company) *CompanyResponse {
	return &CompanyResponse{
		ID:                 c.ID.String(),
		Name:               c.Name,
		Email:              c.Email,
		ContactNumber:      c.ContactNumber,
		Address:            c.Address,
		RegistrationNumber: c.RegistrationNumber,
	}
}
