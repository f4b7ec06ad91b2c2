package productstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "fin-tools-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Product) (id string, err error)
	GetByID(id string) (rec *dbmodels.Product, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	ListCount(activeOnly bool) (count int64, err error)
	List(page, limit int, activeOnly bool) (list []dbmodels.Product, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Product) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Product, error) {
	rec := dbmodels.Product{}
	err := i.db.
		Model(&dbmodels.Product{}).
		Where("id = ?", id).
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

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Product{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("product not found")
	}
	return nil
}

func (i impl) Delete(id string) error {
	rec := dbmodels.Product{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	return i.db.
		Delete(&rec).
		Error
}

func (i impl) ListCount(activeOnly bool) (count int64, err error) {
	var rowCount int64
	tx := i.db.Model(dbmodels.Product{})
	if activeOnly {
		tx.Where("active = true")
	}
	err = tx.Count(&rowCount).Error
	if err != nil {
		return 0, errors.Wrap(err, "product row count failed")
	}
	return rowCount, nil
}

func (i impl) List(page, limit int, activeOnly bool) (list []dbmodels.Product, err error) {
	list = []dbmodels.Product{}
	tx := i.db.Model(&dbmodels.Product{})
	if activeOnly {
		tx.Where("active = true")
	}
	err = tx.
		Order("name asc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
