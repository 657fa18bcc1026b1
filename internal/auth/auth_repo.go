package auth

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Credential is a read-only view over the employees table. Auth never
// imports the employee feature package, it only needs these columns.
type Credential struct {
	ID           uuid.UUID
	CompanyID    uuid.UUID
	EmpCode      string
	Name         string
	Email        string
	Role         string
	Status       string
	PasswordHash string
}

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*Credential, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Credential, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Credential, error) {
	var cred Credential
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("id", "company_id", "emp_code", "name", "email", "role", "status", "password_hash").
		Where("email = ?", email).
		Where("deleted_at IS NULL").
		Take(&cred).Error
	return &cred, err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Credential, error) {
	var cred Credential
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("id", "company_id", "emp_code", "name", "email", "role", "status", "password_hash").
		Where("id = ?", id).
		Where("deleted_at IS NULL").
		Take(&cred).Error
	return &cred, err
}
