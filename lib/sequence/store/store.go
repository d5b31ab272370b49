package sequencestore

import (
	dbmodels "template-approval-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	// Next bumps the named counter and returns the new value. The bump is a
	// single UPDATE ... RETURNING, so two concurrent callers can never
	// observe the same value.
	Next(name string) (value int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Next(name string) (int64, error) {
	rec := dbmodels.FormSequence{}
	tx := i.db.
		Model(&rec).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "value"}}}).
		Where("name = ?", name).
		Update("value", gorm.Expr("value + 1"))
	if tx.Error != nil {
		return 0, errors.Wrap(tx.Error, "failed to advance the sequence")
	}
	if tx.RowsAffected == 0 {
		// first use, the counter row does not exist yet
		rec = dbmodels.FormSequence{Name: name, Value: 1}
		err := i.db.Create(&rec).Error
		if err != nil {
			return 0, errors.Wrap(err, "failed to create the sequence")
		}
	}
	return rec.Value, nil
}
