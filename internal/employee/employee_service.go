package employee

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	autherrors "paymaster/internal/auth/errors"
	employeeerrors "paymaster/internal/employee/errors"
	"paymaster/internal/events"
	"paymaster/internal/messaging/kafka"
	"paymaster/internal/shared/contextutil"
	"paymaster/internal/shared/mailer"
)

const EmployeeOptionsKeyPrefix = "employees:options:"

const setPasswordTokenTTL = 24 * time.Hour

func GetEmployeeOptionsKey(companyID string) string {
	return EmployeeOptionsKeyPrefix + companyID
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, companyID string) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context, companyID string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	Deactivate(ctx context.Context, companyID, id string) (EmployeeResponse, error)
	SetPassword(ctx context.Context, req SetPasswordRequest) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	mail   mailer.Sender
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	mail mailer.Sender,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		mail:   mail,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("email", req.Email),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	birthdate, err := parseDate(req.Birthdate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidDateFormat
	}
	joiningDate, err := parseDate(req.JoiningDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidDateFormat
	}

	role := req.Role
	if role == "" {
		role = RoleEmployee
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(tx.Error))
		return EmployeeResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	companyName, err := qtx.GetCompanyName(ctx, companyUUID)
	if err != nil {
		s.logger.Error("create employee company lookup failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	token := uuid.NewString()
	expiry := time.Now().Add(setPasswordTokenTTL)

	empl := &Employee{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		EmpCode:       NewEmpCode(companyName),
		Name:          req.Name,
		Email:         req.Email,
		ContactNumber: req.ContactNumber,
		Department:    req.Department,
		Designation:   req.Designation,
		Birthdate:     birthdate,
		JoiningDate:   joiningDate,
		Gender:        req.Gender,
		Role:          role,
		Status:        StatusActive,
		PasswordToken: &token,
		TokenExpiry:   &expiry,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.EmployeeCreatedEvent{
			EventType:    "employee_created",
			RequestID:    rid,
			EmployeeID:   empl.ID.String(),
			CompanyID:    companyID,
			EmployeeCode: empl.EmpCode,
			OccurredAt:   time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return EmployeeResponse{}, err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.New(),
			RequestID:     rid,
			AggregateType: "employee",
			AggregateID:   empl.ID.String(),
			EventType:     event.EventType,
			Topic:         events.EmployeeCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx, companyID)
	s.sendSetPasswordEmail(ctx, empl, token)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("emp_code", empl.EmpCode),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]EmployeeResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}

	employees, err := s.repo.FindAllByCompany(ctx, companyUUID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(employees), nil
}

func (s *service) GetOptions(ctx context.Context, companyID string) ([]EmployeeResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}

	cacheKey := GetEmployeeOptionsKey(companyID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		emps, err := s.repo.FindOptionsByCompany(ctx, companyUUID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(emps)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error) {
	companyUUID, emplUUID, err := parseIDs(companyID, id)
	if err != nil {
		return EmployeeResponse{}, err
	}

	empl, err := s.repo.FindByIDAndCompany(ctx, companyUUID, emplUUID)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	companyUUID, emplUUID, err := parseIDs(companyID, id)
	if err != nil {
		return EmployeeResponse{}, err
	}

	empl, err := s.repo.FindByIDAndCompany(ctx, companyUUID, emplUUID)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if req.Name != "" {
		empl.Name = req.Name
	}
	if req.ContactNumber != "" {
		empl.ContactNumber = req.ContactNumber
	}
	if req.Department != "" {
		empl.Department = req.Department
	}
	if req.Designation != "" {
		empl.Designation = req.Designation
	}
	if req.Gender != "" {
		empl.Gender = req.Gender
	}
	if req.Birthdate != "" {
		birthdate, err := parseDate(req.Birthdate)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidDateFormat
		}
		empl.Birthdate = birthdate
	}
	if req.JoiningDate != "" {
		joiningDate, err := parseDate(req.JoiningDate)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidDateFormat
		}
		empl.JoiningDate = joiningDate
	}

	if err := s.repo.Update(ctx, empl); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptionsCache(ctx, companyID)

	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	companyUUID, emplUUID, err := parseIDs(companyID, id)
	if err != nil {
		return err
	}

	if _, err := s.repo.FindByIDAndCompany(ctx, companyUUID, emplUUID); err != nil {
		return mapRepositoryError(err)
	}

	if err := s.repo.Delete(ctx, companyUUID, emplUUID); err != nil {
		return mapRepositoryError(err)
	}

	s.invalidateOptionsCache(ctx, companyID)
	return nil
}

// Deactivate soft-disables the account. Deactivating an already inactive
// employee returns the unchanged record.
func (s *service) Deactivate(ctx context.Context, companyID, id string) (EmployeeResponse, error) {
	companyUUID, emplUUID, err := parseIDs(companyID, id)
	if err != nil {
		return EmployeeResponse{}, err
	}

	empl, err := s.repo.FindByIDAndCompany(ctx, companyUUID, emplUUID)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if empl.Status == StatusInactive {
		s.logger.Debug("deactivate requested for inactive employee",
			zap.String("employee_id", id),
		)
		return mapToResponse(*empl), nil
	}

	empl.Status = StatusInactive
	if err := s.repo.Update(ctx, empl); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptionsCache(ctx, companyID)

	s.logger.Info("employee deactivated",
		zap.String("company_id", companyID),
		zap.String("employee_id", id),
	)

	return mapToResponse(*empl), nil
}

// SetPassword consumes a single-use token delivered by email and stores a
// bcrypt hash of the new password.
func (s *service) SetPassword(ctx context.Context, req SetPasswordRequest) error {
	empl, err := s.repo.FindByToken(ctx, req.Token)
	if err != nil {
		return autherrors.ErrSetPasswordTokenInvalid
	}

	if empl.TokenExpiry == nil || time.Now().After(*empl.TokenExpiry) {
		return autherrors.ErrSetPasswordTokenExpired
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	empl.PasswordHash = string(hashed)
	empl.PasswordToken = nil
	empl.TokenExpiry = nil

	if err := s.repo.Update(ctx, empl); err != nil {
		return mapRepositoryError(err)
	}

	s.logger.Info("password set", zap.String("employee_id", empl.ID.String()))
	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetEmployeeOptionsKey(companyID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func (s *service) sendSetPasswordEmail(ctx context.Context, empl *Employee, token string) {
	if s.mail == nil {
		return
	}

	link := fmt.Sprintf("%s/set-password?token=%s", os.Getenv("APP_BASE_URL"), token)
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>Your employee account (%s) has been created. "+
			"Set your password using the link below. The link expires in 24 hours.</p>"+
			"<p><a href=%q>Set your password</a></p>",
		empl.Name, empl.EmpCode, link,
	)

	if err := s.mail.Send(ctx, mailer.Message{
		To:       empl.Email,
		Subject:  "Set your password",
		HTMLBody: body,
	}); err != nil {
		s.logger.Warn("set-password email failed",
			zap.String("employee_id", empl.ID.String()),
			zap.Error(err),
		)
	}
}

func parseIDs(companyID, id string) (uuid.UUID, uuid.UUID, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return uuid.Nil, uuid.Nil, employeeerrors.ErrInvalidEmployeeID
	}
	emplUUID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, uuid.Nil, employeeerrors.ErrInvalidEmployeeID
	}
	return companyUUID, emplUUID, nil
}

func parseDate(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:            empl.ID.String(),
		CompanyID:     empl.CompanyID.String(),
		EmpCode:       empl.EmpCode,
		Name:          empl.Name,
		Email:         empl.Email,
		ContactNumber: empl.ContactNumber,
		Department:    empl.Department,
		Designation:   empl.Designation,
		Gender:        empl.Gender,
		Role:          empl.Role,
		Status:        empl.Status,
	}
	if empl.Birthdate != nil {
		resp.Birthdate = empl.Birthdate.Format("2006-01-02")
	}
	if empl.JoiningDate != nil {
		resp.JoiningDate = empl.JoiningDate.Format("2006-01-02")
	}
	return resp
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	result := make([]EmployeeResponse, 0, len(employees))
	for _, empl := range employees {
		result = append(result, mapToResponse(empl))
	}
	return result
}
