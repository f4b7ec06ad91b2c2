package invoicestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "fin-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Invoice) (id string, err error)
	GetByID(orgID, id string) (rec *dbmodels.Invoice, err error)
	Update(orgID, id string, updMap map[string]interface{}) error
	Delete(orgID, id string) error
	ListByApplication(orgID, applicationID string) (list []dbmodels.Invoice, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Invoice) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(orgID, id string) (*dbmodels.Invoice, error) {
	rec := dbmodels.Invoice{}
	err := i.db.
		Model(&dbmodels.Invoice{}).
		Where("id = ?", id).
		Where("organization_id = ?", orgID).
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

func (i impl) Update(orgID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Invoice{}).
		Where("id = ?", id).
		Where("organization_id = ?", orgID).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("invoice not found")
	}
	return nil
}

func (i impl) Delete(orgID, id string) error {
	rec := dbmodels.Invoice{
		BaseOrgModel: dbmodels.BaseOrgModel{
			BaseModel:      dbmodels.BaseModel{ID: id},
			OrganizationID: orgID,
		},
	}
	return i.db.
		Delete(&rec).
		Error
}

func (i impl) ListByApplication(orgID, applicationID string) (list []dbmodels.Invoice, err error) {
	list = []dbmodels.Invoice{}
	err = i.db.
		Model(&dbmodels.Invoice{}).
		Where("organization_id = ?", orgID).
		Where("application_id = ?", applicationID).
		Order("created_at asc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
