package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"

	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"

	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

type Employee struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID     uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_employee_company_code"`
	EmpCode       string    `gorm:"type:varchar(32);not null;uniqueIndex:uq_employee_company_code"`
	Name          string    `gorm:"type:varchar(150);not null"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex:uq_employee_email;not null"`
	ContactNumber string    `gorm:"type:varchar(20)"`
	Department    string    `gorm:"type:varchar(100)"`
	Designation   string    `gorm:"type:varchar(100)"`
	Birthdate     *time.Time
	JoiningDate   *time.Time
	Gender        string `gorm:"type:varchar(10);not null"`
	Role          string `gorm:"type:varchar(20);not null;default:'EMPLOYEE'"`
	Status        string `gorm:"type:varchar(10);not null;default:'ACTIVE'"`
	PasswordHash  string `gorm:"type:varchar(255)"`
	PasswordToken *string `gorm:"type:varchar(64)"`
	TokenExpiry   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
