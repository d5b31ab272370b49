package notificationstore

import (
	"time"

	dbmodels "template-approval-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Notification) (id string, err error)
	GetByID(id string) (rec *dbmodels.Notification, err error)
	// ListUndelivered returns rows still worth a delivery attempt
	ListUndelivered(maxAttempts int) (list []dbmodels.Notification, err error)
	MarkSent(id string, attempts int) error
	MarkFailed(id string, attempts int, lastError string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Notification) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Notification, error) {
	rec := dbmodels.Notification{}
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

func (i impl) ListUndelivered(maxAttempts int) (list []dbmodels.Notification, err error) {
	list = []dbmodels.Notification{}
	err = i.db.
		Where("status <> ?", dbmodels.NotificationSent).
		Where("attempts < ?", maxAttempts).
		Order("created_at").
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

func (i impl) MarkSent(id string, attempts int) error {
	now := time.Now()
	return i.update(id, map[string]interface{}{
		"status":     dbmodels.NotificationSent,
		"attempts":   attempts,
		"last_error": "",
		"sent_at":    &now,
	})
}

func (i impl) MarkFailed(id string, attempts int, lastError string) error {
	return i.update(id, map[string]interface{}{
		"status":     dbmodels.NotificationFailed,
		"attempts":   attempts,
		"last_error": lastError,
	})
}

func (i impl) update(id string, updMap map[string]interface{}) error {
	tx := i.db.
		Model(&dbmodels.Notification{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("record not found")
	}
	return nil
}
