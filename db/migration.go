package db

import (
	dbmodels "template-approval-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("running migrations")
	if err := DB.AutoMigrate(&dbmodels.Department{}); err != nil {
		return errors.Wrap(err, "failed to migrate Department")
	}
	if err := DB.AutoMigrate(&dbmodels.Unit{}); err != nil {
		return errors.Wrap(err, "failed to migrate Unit")
	}
	if err := DB.AutoMigrate(&dbmodels.Employee{}); err != nil {
		return errors.Wrap(err, "failed to migrate Employee")
	}
	if err := DB.AutoMigrate(&dbmodels.Form{}); err != nil {
		return errors.Wrap(err, "failed to migrate Form")
	}
	if err := DB.AutoMigrate(&dbmodels.FormSequence{}); err != nil {
		return errors.Wrap(err, "failed to migrate FormSequence")
	}
	if err := DB.AutoMigrate(&dbmodels.Notification{}); err != nil {
		return errors.Wrap(err, "failed to migrate Notification")
	}
	if err := DB.AutoMigrate(&dbmodels.AppUser{}); err != nil {
		return errors.Wrap(err, "failed to migrate AppUser")
	}
	log.Info("migrations finished")
	return nil
}
