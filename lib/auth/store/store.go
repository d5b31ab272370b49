package authstore

import (
	dbmodels "template-approval-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	FindByUserName(userName string) (rec *dbmodels.AppUser, err error)
	Update(id string, updMap map[string]interface{}) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) FindByUserName(userName string) (*dbmodels.AppUser, error) {
	rec := dbmodels.AppUser{}
	err := i.db.
		Where("user_name = ?", userName).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	err := i.db.
		Model(&dbmodels.AppUser{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}
