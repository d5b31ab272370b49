package dbmodels

import (
	"github.com/pkg/errors"
)

type Department struct {
	BaseModel
	Name string `gorm:"type:varchar(255);uniqueIndex"`
}

func (d *Department) Validate() error {
	if d.Name == "" {
		return errors.New("department name is not specified")
	}
	return nil
}
