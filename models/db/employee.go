package dbmodels

import (
	"github.com/pkg/errors"
)

type Employee struct {
	BaseModel
	Name       string `gorm:"type:varchar(255)"`
	Department string `gorm:"type:varchar(255)"`
	Email      string `gorm:"type:varchar(255)"`
	Manager    bool   `gorm:"default:false"`
	CardNo     int64  `gorm:"uniqueIndex"`
}

func (e *Employee) Validate() error {
	if e.Name == "" {
		return errors.New("employee name is not specified")
	}
	if e.Department == "" {
		return errors.New("employee department is not specified")
	}
	if e.CardNo <= 0 {
		return errors.New("employee card number is not specified")
	}
	return nil
}
