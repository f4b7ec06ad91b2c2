package db

import (
	log "github.com/sirupsen/logrus"

	"fin-tools-backend/config"
	productstore "fin-tools-backend/lib/product/store"
	userstore "fin-tools-backend/lib/users/store"
	authutils "fin-tools-backend/lib/utils/auth-utils"
	"fin-tools-backend/models"
	dbmodels "fin-tools-backend/models/db"
)

func InitPreload() {
	addPlatformAdmin()
	addStarterProduct()
}

func addPlatformAdmin() {
	if config.Conf.Auth.AdminEmail == "" {
		log.Warn("platform admin not seeded, AUTH_ADMIN_EMAIL is not set")
		return
	}
	store := userstore.NewInstance(DB)
	existedRec, err := store.FindByEmail(config.Conf.Auth.AdminEmail)
	if err != nil {
		log.WithError(err).Error("platform admin seeding failed")
		return
	}
	if existedRec != nil {
		return
	}
	rec := dbmodels.User{
		Email:        config.Conf.Auth.AdminEmail,
		PasswordHash: authutils.GetMD5Hash(config.Conf.Auth.AdminPassword),
		Role:         models.UserRoleAdmin,
		Active:       true,
	}
	_, err = store.Create(rec)
	if err != nil {
		log.WithError(err).Error("platform admin seeding failed")
		return
	}
	log.Info("platform admin seeded")
}

// addStarterProduct seeds one product over the full nominal step list so a
// fresh deployment has something issuers can apply against.
func addStarterProduct() {
	store := productstore.NewInstance(DB)
	count, err := store.ListCount(false)
	if err != nil {
		log.WithError(err).Error("starter product seeding failed")
		return
	}
	if count > 0 {
		return
	}
	steps := make(dbmodels.StepDefinitions, 0, len(models.CanonicalStepKeys))
	for _, key := range models.CanonicalStepKeys {
		steps = append(steps, dbmodels.StepDefinition{
			Key:   key,
			Title: key.ToHuman(),
		})
	}
	rec := dbmodels.Product{
		Name:        "Invoice and contract financing",
		Description: "Working-capital financing against invoices or commercial contracts",
		Version:     1,
		Active:      true,
		Steps:       steps,
	}
	_, err = store.Create(rec)
	if err != nil {
		log.WithError(err).Error("starter product seeding failed")
		return
	}
	log.Info("starter product seeded")
}
