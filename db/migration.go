package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "fin-tools-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("running migrations")
	if err := DB.AutoMigrate(&dbmodels.Organization{}); err != nil {
		return errors.Wrap(err, "migration of Organization failed")
	}
	if err := DB.AutoMigrate(&dbmodels.User{}); err != nil {
		return errors.Wrap(err, "migration of User failed")
	}
	if err := DB.AutoMigrate(&dbmodels.Product{}); err != nil {
		return errors.Wrap(err, "migration of Product failed")
	}
	if err := DB.AutoMigrate(&dbmodels.Application{}); err != nil {
		return errors.Wrap(err, "migration of Application failed")
	}
	if err := DB.AutoMigrate(&dbmodels.Contract{}); err != nil {
		return errors.Wrap(err, "migration of Contract failed")
	}
	if err := DB.AutoMigrate(&dbmodels.Invoice{}); err != nil {
		return errors.Wrap(err, "migration of Invoice failed")
	}
	if err := DB.AutoMigrate(&dbmodels.ReviewSection{}); err != nil {
		return errors.Wrap(err, "migration of ReviewSection failed")
	}
	if err := DB.AutoMigrate(&dbmodels.ReviewItem{}); err != nil {
		return errors.Wrap(err, "migration of ReviewItem failed")
	}
	if err := DB.AutoMigrate(&dbmodels.ReviewEvent{}); err != nil {
		return errors.Wrap(err, "migration of ReviewEvent failed")
	}
	if err := DB.AutoMigrate(&dbmodels.ReviewNote{}); err != nil {
		return errors.Wrap(err, "migration of ReviewNote failed")
	}
	if err := DB.AutoMigrate(&dbmodels.Notification{}); err != nil {
		return errors.Wrap(err, "migration of Notification failed")
	}
	log.Info("migrations finished")
	return nil
}
