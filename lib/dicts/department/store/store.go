package store

import (
	dbmodels "template-approval-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Department) (id string, err error)
	List() (list []dbmodels.Department, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Department) (id string, err error) {
	err = rec.Validate()
	if err != nil {
		return "", err
	}
	err = i.isUnique(rec.Name)
	if err != nil {
		return "", err
	}
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List() (list []dbmodels.Department, err error) {
	list = []dbmodels.Department{}
	err = i.db.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) isUnique(name string) error {
	var rowCount int64
	err := i.db.Model(dbmodels.Department{}).
		Where("name = ?", name).
		Count(&rowCount).
		Error
	if err != nil {
		return errors.Wrap(err, "failed to check department uniqueness")
	}
	if rowCount != 0 {
		return errors.New("department already exists")
	}
	return nil
}
