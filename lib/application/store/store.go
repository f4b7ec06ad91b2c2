package applicationstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	applicationapimodels "fin-tools-backend/models/api/application"
	dbmodels "fin-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Application) (id string, err error)
	GetByID(orgID, id string) (rec *dbmodels.Application, err error)
	Update(orgID, id string, updMap map[string]interface{}) error
	Archive(orgID, id string) error
	ListCount(orgID string, filter applicationapimodels.Filter) (count int64, err error)
	List(orgID string, filter applicationapimodels.Filter) (list []dbmodels.Application, err error)
	// Admin-side accessors, not scoped to an organization.
	AdminGetByID(id string) (rec *dbmodels.Application, err error)
	AdminUpdate(id string, updMap map[string]interface{}) error
	AdminListCount(filter applicationapimodels.Filter) (count int64, err error)
	AdminList(filter applicationapimodels.Filter) (list []dbmodels.Application, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Application) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(orgID, id string) (*dbmodels.Application, error) {
	rec := dbmodels.Application{}
	err := i.db.
		Model(&dbmodels.Application{}).
		Where("id = ?", id).
		Where("organization_id = ?", orgID).
		Preload("Contract").
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
		Model(&dbmodels.Application{}).
		Where("id = ?", id).
		Where("organization_id = ?", orgID).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("application not found")
	}
	return nil
}

func (i impl) Archive(orgID, id string) error {
	return i.Update(orgID, id, map[string]interface{}{"archived": true})
}

func (i impl) ListCount(orgID string, filter applicationapimodels.Filter) (count int64, err error) {
	var rowCount int64
	tx := i.db.
		Model(dbmodels.Application{}).
		Where("organization_id = ?", orgID).
		Where("archived = false")
	i.addFilter(tx, filter)
	err = tx.Count(&rowCount).Error
	if err != nil {
		return 0, errors.Wrap(err, "application row count failed")
	}
	return rowCount, nil
}

func (i impl) List(orgID string, filter applicationapimodels.Filter) (list []dbmodels.Application, err error) {
	list = []dbmodels.Application{}
	page, limit := filter.GetPage()
	tx := i.db.
		Model(&dbmodels.Application{}).
		Where("organization_id = ?", orgID).
		Where("archived = false")
	i.addFilter(tx, filter)
	err = tx.
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) AdminGetByID(id string) (*dbmodels.Application, error) {
	rec := dbmodels.Application{}
	err := i.db.
		Model(&dbmodels.Application{}).
		Where("id = ?", id).
		Preload("Contract").
		Preload("Organization").
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

func (i impl) AdminUpdate(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Application{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("application not found")
	}
	return nil
}

func (i impl) AdminListCount(filter applicationapimodels.Filter) (count int64, err error) {
	var rowCount int64
	tx := i.db.
		Model(dbmodels.Application{}).
		Where("archived = false")
	i.addFilter(tx, filter)
	err = tx.Count(&rowCount).Error
	if err != nil {
		return 0, errors.Wrap(err, "application row count failed")
	}
	return rowCount, nil
}

func (i impl) AdminList(filter applicationapimodels.Filter) (list []dbmodels.Application, err error) {
	list = []dbmodels.Application{}
	page, limit := filter.GetPage()
	tx := i.db.
		Model(&dbmodels.Application{}).
		Where("archived = false")
	i.addFilter(tx, filter)
	err = tx.
		Preload("Organization").
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) addFilter(tx *gorm.DB, filter applicationapimodels.Filter) {
	if len(filter.Statuses) > 0 {
		tx.Where("status IN ?", filter.Statuses)
	}
	if filter.Search != "" {
		tx.Where("id::text ILIKE ?", "%"+filter.Search+"%")
	}
}
