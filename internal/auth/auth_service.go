package auth

import (
	"context"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	autherrors "paymaster/internal/auth/errors"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, logger: l}
}

// Login verifies credentials against the bcrypt hash. Unknown email and
// wrong password return the same error value.
func (s *service) Login(ctx context.Context, email, password string) (string, string, AuthResponse, error) {
	cred, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if cred.Status != "ACTIVE" {
		return "", "", AuthResponse{}, autherrors.ErrAccountInactive
	}

	accessToken, err := s.generateToken(cred, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, err
	}
	refreshToken, err := s.generateToken(cred, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	s.logger.Info("login success",
		zap.String("employee_id", cred.ID.String()),
		zap.String("company_id", cred.CompanyID.String()),
	)

	return accessToken, refreshToken, mapToAuthResponse(cred), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	cred, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	if cred.Status != "ACTIVE" {
		return "", "", AuthResponse{}, autherrors.ErrAccountInactive
	}

	newAccessToken, err := s.generateToken(cred, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, err
	}
	newRefreshToken, err := s.generateToken(cred, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	return newAccessToken, newRefreshToken, mapToAuthResponse(cred), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidToken
	}

	cred, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, autherrors.ErrInvalidCredentials
	}

	resp := mapToAuthResponse(cred)
	return &resp, nil
}

func (s *service) generateToken(cred *Credential, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":     cred.ID.String(),
		"employee_id": cred.ID.String(),
		"company_id":  cred.CompanyID.String(),
		"role":        cred.Role,
		"exp":         time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapToAuthResponse(cred *Credential) AuthResponse {
	return AuthResponse{
		ID:        cred.ID.String(),
		CompanyID: cred.CompanyID.String(),
		EmpCode:   cred.EmpCode,
		Email:     cred.Email,
		Name:      cred.Name,
		Role:      cred.Role,
	}
}
