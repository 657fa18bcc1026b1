package tenant

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scope restricts a query to rows owned by one company. Every repository
// method that touches tenant-owned tables must apply it.
func Scope(companyID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}
