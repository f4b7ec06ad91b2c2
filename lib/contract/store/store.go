package contractstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "fin-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Contract) (id string, err error)
	GetByID(orgID, id string) (rec *dbmodels.Contract, err error)
	GetByApplication(orgID, applicationID string) (rec *dbmodels.Contract, err error)
	Update(orgID, id string, updMap map[string]interface{}) error
	ListApproved(orgID string) (list []dbmodels.Contract, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Contract) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(orgID, id string) (*dbmodels.Contract, error) {
	rec := dbmodels.Contract{}
	err := i.db.
		Model(&dbmodels.Contract{}).
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

func (i impl) GetByApplication(orgID, applicationID string) (*dbmodels.Contract, error) {
	rec := dbmodels.Contract{}
	err := i.db.
		Model(&dbmodels.Contract{}).
		Where("application_id = ?", applicationID).
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
		Model(&dbmodels.Contract{}).
		Where("id = ?", id).
		Where("organization_id = ?", orgID).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("contract not found")
	}
	return nil
}

func (i impl) ListApproved(orgID string) (list []dbmodels.Contract, err error) {
	list = []dbmodels.Contract{}
	err = i.db.
		Model(&dbmodels.Contract{}).
		Where("organization_id = ?", orgID).
		Where("approved = true").
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
