package db

import (
	"template-approval-backend/config"
	authstore "template-approval-backend/lib/auth/store"
	"template-approval-backend/models"
	dbmodels "template-approval-backend/models/db"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"
)

func InitPreload() {
	seedSerialSequence()
	seedAdminUser()
}

// seedSerialSequence makes sure the serial counter row exists and is not
// behind already stored forms.
func seedSerialSequence() {
	var maxSerial int64
	err := DB.Model(&dbmodels.Form{}).
		Select("COALESCE(MAX(serial_number), 0)").
		Scan(&maxSerial).
		Error
	if err != nil {
		log.WithError(err).Error("failed to read the highest assigned serial number")
		return
	}
	rec := dbmodels.FormSequence{
		Name:  dbmodels.FormSerialSequence,
		Value: maxSerial,
	}
	err = DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&rec).Error
	if err != nil {
		log.WithError(err).Error("failed to seed the serial number sequence")
		return
	}
	err = DB.Model(&dbmodels.FormSequence{}).
		Where("name = ?", dbmodels.FormSerialSequence).
		Where("value < ?", maxSerial).
		Update("value", maxSerial).
		Error
	if err != nil {
		log.WithError(err).Error("failed to advance the serial number sequence")
	}
}

func seedAdminUser() {
	if config.Conf.Auth.AdminUser == "" {
		log.Warn("admin user not seeded, AUTH_ADMIN_USER is not set")
		return
	}
	store := authstore.NewInstance(DB)
	existedRec, err := store.FindByUserName(config.Conf.Auth.AdminUser)
	if err != nil {
		log.WithError(err).Error("failed to seed the admin user")
		return
	}
	if existedRec != nil {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(config.Conf.Auth.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Error("failed to hash the admin password")
		return
	}
	rec := dbmodels.AppUser{
		UserName:     config.Conf.Auth.AdminUser,
		PasswordHash: string(hash),
		Role:         models.UserRoleAdmin,
		IsActive:     true,
	}
	if err = DB.Create(&rec).Error; err != nil {
		log.WithError(err).Error("failed to create the admin user")
		return
	}
	log.WithField("username", rec.UserName).Info("admin user seeded")
}
