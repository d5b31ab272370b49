package formstore

import (
	"strings"
	"time"

	notificationstore "template-approval-backend/lib/notification/store"
	sequencestore "template-approval-backend/lib/sequence/store"
	"template-approval-backend/models"
	dbmodels "template-approval-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Filter narrows Find results; zero values are not constraints. Both date
// bounds must be set for the range to apply, matching the search endpoint.
type Filter struct {
	SerialNumber int64
	Dept         string
	DateFrom     *time.Time
	DateTo       *time.Time
}

type Provider interface {
	// Create persists the form, assigning the next serial number when none
	// is supplied. Counter bump, insert and the optional outbox notice
	// commit in one transaction, so a failed insert never leaks a serial
	// and a committed form always has its notice row.
	Create(rec dbmodels.Form, notice *dbmodels.Notification) (id string, serialNumber int64, noticeID string, err error)
	GetByID(id string) (rec *dbmodels.Form, err error)
	Find(filter Filter) (list []dbmodels.Form, err error)
	// ListByStatus matches the stored status exactly, case included
	ListByStatus(status string) (list []dbmodels.Form, err error)
	// CountByStatus matches case-insensitively. The asymmetry with
	// ListByStatus is deliberate, the dashboards count "approved" and
	// "Approved" alike while the status listing does not.
	CountByStatus(status models.FormStatus) (count int64, err error)
	// Update applies updMap and commits the optional outbox notice in the
	// same transaction; a failed notice insert rolls the update back.
	Update(id string, updMap map[string]interface{}, notice *dbmodels.Notification) (noticeID string, err error)
	Delete(id string) (found bool, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i *impl) Create(rec dbmodels.Form, notice *dbmodels.Notification) (id string, serialNumber int64, noticeID string, err error) {
	if err = rec.Validate(); err != nil {
		return "", 0, "", err
	}
	err = i.db.Transaction(func(tx *gorm.DB) error {
		if rec.SerialNumber == 0 {
			seqStore := sequencestore.NewInstance(tx)
			next, err := seqStore.Next(dbmodels.FormSerialSequence)
			if err != nil {
				return err
			}
			rec.SerialNumber = next
		}
		err := tx.Omit(clause.Associations).
			Create(&rec).
			Error
		if err != nil {
			return err
		}
		if notice != nil {
			notice.FormID = rec.ID
			noticeID, err = notificationstore.NewInstance(tx).Create(*notice)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", 0, "", err
	}
	return rec.ID, rec.SerialNumber, noticeID, nil
}

func (i *impl) GetByID(id string) (*dbmodels.Form, error) {
	rec := dbmodels.Form{}
	err := i.db.
		Where("id = ?", id).
		Preload(clause.Associations).
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

func (i *impl) Find(filter Filter) (list []dbmodels.Form, err error) {
	list = []dbmodels.Form{}
	tx := i.db.Model(&dbmodels.Form{})
	if filter.SerialNumber != 0 {
		tx = tx.Where("serial_number = ?", filter.SerialNumber)
	}
	if filter.Dept != "" {
		tx = tx.Where("dept = ?", filter.Dept)
	}
	if filter.DateFrom != nil && filter.DateTo != nil {
		tx = tx.Where("created_at >= ?", *filter.DateFrom).
			Where("created_at <= ?", *filter.DateTo)
	}
	err = tx.Order("serial_number").Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i *impl) ListByStatus(status string) (list []dbmodels.Form, err error) {
	list = []dbmodels.Form{}
	err = i.db.
		Where("status = ?", status).
		Order("serial_number").
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

func (i *impl) CountByStatus(status models.FormStatus) (count int64, err error) {
	err = i.db.Model(&dbmodels.Form{}).
		Where("LOWER(status) = ?", strings.ToLower(string(status))).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i *impl) Update(id string, updMap map[string]interface{}, notice *dbmodels.Notification) (noticeID string, err error) {
	if len(updMap) == 0 {
		return "", nil
	}
	err = i.db.Transaction(func(tx *gorm.DB) error {
		res := tx.
			Model(&dbmodels.Form{}).
			Where("id = ?", id).
			Updates(updMap)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.New("record not found")
		}
		if notice != nil {
			noticeID, err = notificationstore.NewInstance(tx).Create(*notice)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return noticeID, nil
}

func (i *impl) Delete(id string) (found bool, err error) {
	tx := i.db.
		Where("id = ?", id).
		Delete(&dbmodels.Form{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected != 0, nil
}
