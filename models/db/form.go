package dbmodels

import (
	"template-approval-backend/models"

	"github.com/pkg/errors"
)

type Form struct {
	BaseModel
	SerialNumber         int64  `gorm:"uniqueIndex"`
	From                 string `gorm:"type:varchar(255)"`
	Dept                 string `gorm:"type:varchar(255);index"`
	FromCardNo           string `gorm:"type:varchar(64)"`
	For                  string `gorm:"type:varchar(255)"`
	Purpose              string
	Unit                 string            `gorm:"type:varchar(255)"`
	ApprovalNeededFromID string            `gorm:"type:varchar(36)"`
	ApprovalNeededFrom   *Employee         `gorm:"foreignKey:ApprovalNeededFromID"`
	UploadedFile         string            `gorm:"type:varchar(512)"`
	Status               models.FormStatus `gorm:"type:varchar(20);default:'Pending';index"`
	Modification         string            `gorm:"default:''"`
}

func (f *Form) Validate() error {
	if f.From == "" {
		return errors.New("sender name is not specified")
	}
	if f.Dept == "" {
		return errors.New("department is not specified")
	}
	if f.FromCardNo == "" {
		return errors.New("sender card number is not specified")
	}
	if f.For == "" {
		return errors.New("request target is not specified")
	}
	if f.Purpose == "" {
		return errors.New("purpose is not specified")
	}
	if f.Unit == "" {
		return errors.New("unit is not specified")
	}
	if f.ApprovalNeededFromID == "" {
		return errors.New("approver is not specified")
	}
	if !f.Status.IsValid() {
		return errors.New("unknown form status")
	}
	return nil
}
