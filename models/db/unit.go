package dbmodels

import (
	"github.com/pkg/errors"
)

type Unit struct {
	BaseModel
	Unit string `gorm:"type:varchar(255);uniqueIndex"`
}

func (u *Unit) Validate() error {
	if u.Unit == "" {
		return errors.New("unit name is not specified")
	}
	return nil
}
