package company

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Company struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name               string    `gorm:"type:varchar(150);not null"`
	Email              string    `gorm:"type:varchar(255);uniqueIndex:uq_company_email;not null"`
	ContactNumber      string    `gorm:"type:varchar(20)"`
	Address            string    `gorm:"type:varchar(500)"`
	RegistrationNumber string    `gorm:"type:varchar(100)"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}

func (Company) TableName() string {
	return "companies"
}
