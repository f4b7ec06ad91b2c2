package notificationstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "fin-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Notification) (id string, err error)
	List(orgID string, unseenOnly bool) (list []dbmodels.Notification, err error)
	MarkSeen(orgID, id string) error
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
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(orgID string, unseenOnly bool) (list []dbmodels.Notification, err error) {
	list = []dbmodels.Notification{}
	tx := i.db.
		Model(&dbmodels.Notification{}).
		Where("organization_id = ?", orgID)
	if unseenOnly {
		tx = tx.Where("seen = false")
	}
	err = tx.
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) MarkSeen(orgID, id string) error {
	tx := i.db.
		Model(&dbmodels.Notification{}).
		Where("organization_id = ?", orgID).
		Where("id = ?", id).
		Update("seen", true)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("notification not found")
	}
	return nil
}
