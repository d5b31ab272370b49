package dbmodels

import (
	"time"

	"template-approval-backend/models"
)

type AppUser struct {
	BaseModel
	UserName     string `gorm:"type:varchar(255);uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(255)"`
	Role         models.UserRole
	IsActive     bool `gorm:"default:true"`
	LastLogin    *time.Time
}
