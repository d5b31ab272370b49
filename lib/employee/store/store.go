package employeestore

import (
	dbmodels "template-approval-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Employee) (id string, err error)
	GetByID(id string) (rec *dbmodels.Employee, err error)
	GetByCardNo(cardNo int64) (rec *dbmodels.Employee, err error)
	List() (list []dbmodels.Employee, err error)
	ListManagers() (list []dbmodels.Employee, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Employee) (id string, err error) {
	err = rec.Validate()
	if err != nil {
		return "", err
	}
	err = i.isUnique(rec.CardNo)
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

func (i impl) GetByID(id string) (*dbmodels.Employee, error) {
	rec := dbmodels.Employee{}
	err := i.db.
		Where("id = ?", id).
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

func (i impl) GetByCardNo(cardNo int64) (*dbmodels.Employee, error) {
	rec := dbmodels.Employee{}
	err := i.db.
		Where("card_no = ?", cardNo).
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

func (i impl) List() (list []dbmodels.Employee, err error) {
	list = []dbmodels.Employee{}
	err = i.db.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListManagers() (list []dbmodels.Employee, err error) {
	list = []dbmodels.Employee{}
	err = i.db.
		Where("manager = ?", true).
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) isUnique(cardNo int64) error {
	var rowCount int64
	err := i.db.Model(dbmodels.Employee{}).
		Where("card_no = ?", cardNo).
		Count(&rowCount).
		Error
	if err != nil {
		return errors.Wrap(err, "failed to check card number uniqueness")
	}
	if rowCount != 0 {
		return errors.New("employee with this card number already exists")
	}
	return nil
}
