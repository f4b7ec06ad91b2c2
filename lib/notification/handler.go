package notificationhandler

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fin-tools-backend/db"
	notificationstore "fin-tools-backend/lib/notification/store"
	smtpclient "fin-tools-backend/lib/smtp"
	userstore "fin-tools-backend/lib/users/store"
	"fin-tools-backend/models"
	dbmodels "fin-tools-backend/models/db"
)

// Provider is fire-and-forget: review and workflow transitions must not fail
// because a notification could not be stored or mailed, so nothing here
// returns an error to the caller.
type Provider interface {
	ApplicationSubmitted(rec *dbmodels.Application, newStatus models.ApplicationStatus)
	AmendmentRequested(rec *dbmodels.Application, note string)
	ApplicationDecided(rec *dbmodels.Application, approved bool, note string)

	List(orgID string, unseenOnly bool) (list []dbmodels.Notification, err error)
	MarkSeen(orgID, id string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: notificationstore.NewInstance(db.DB),
		users: userstore.NewInstance(db.DB),
		smtp:  smtpclient.Instance,
	}
}

func NewHandlerWithTx(tx *gorm.DB, smtp smtpclient.Provider) Provider {
	return impl{
		store: notificationstore.NewInstance(tx),
		users: userstore.NewInstance(tx),
		smtp:  smtp,
	}
}

type impl struct {
	store notificationstore.Provider
	users userstore.Provider
	smtp  smtpclient.Provider
}

func (i impl) ApplicationSubmitted(rec *dbmodels.Application, newStatus models.ApplicationStatus) {
	title := "Application submitted"
	message := fmt.Sprintf("Application %v has been submitted for review", rec.ID)
	if newStatus == models.AppStatusResubmitted {
		title = "Application resubmitted"
		message = fmt.Sprintf("Application %v has been resubmitted after amendment", rec.ID)
	}
	i.emit(rec, title, message)
}

func (i impl) AmendmentRequested(rec *dbmodels.Application, note string) {
	i.emit(rec, "Amendment requested",
		fmt.Sprintf("Application %v was returned for amendment: %s", rec.ID, note))
}

func (i impl) ApplicationDecided(rec *dbmodels.Application, approved bool, note string) {
	if approved {
		i.emit(rec, "Application approved",
			fmt.Sprintf("Application %v has been approved", rec.ID))
		return
	}
	message := fmt.Sprintf("Application %v has been rejected", rec.ID)
	if note != "" {
		message = fmt.Sprintf("%s: %s", message, note)
	}
	i.emit(rec, "Application rejected", message)
}

func (i impl) List(orgID string, unseenOnly bool) (list []dbmodels.Notification, err error) {
	return i.store.List(orgID, unseenOnly)
}

func (i impl) MarkSeen(orgID, id string) error {
	return i.store.MarkSeen(orgID, id)
}

func (i impl) emit(rec *dbmodels.Application, title, message string) {
	logger := log.
		WithField("application_id", rec.ID).
		WithField("organization_id", rec.OrganizationID)
	notification := dbmodels.Notification{
		ApplicationID: rec.ID,
		Title:         title,
		Message:       message,
	}
	notification.OrganizationID = rec.OrganizationID
	_, err := i.store.Create(notification)
	if err != nil {
		logger.WithError(err).Error("failed to store notification")
	}
	users, err := i.users.ListByOrganization(rec.OrganizationID)
	if err != nil {
		logger.WithError(err).Error("failed to resolve notification recipients")
		return
	}
	for _, user := range users {
		if !user.Active {
			continue
		}
		err = i.smtp.SendEMail(user.Email, title, message)
		if err != nil {
			logger.WithError(err).WithField("recipient", user.Email).Error("failed to send notification email")
		}
	}
}
