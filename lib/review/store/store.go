package reviewstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fin-tools-backend/models"
	dbmodels "fin-tools-backend/models/db"
)

type Provider interface {
	EnsureSections(applicationID string) error
	ListSections(applicationID string) (list []dbmodels.ReviewSection, err error)
	SetSectionStatus(applicationID string, section models.ReviewSectionKey, status models.ReviewStatus) error
	ResetSections(applicationID string, from, to models.ReviewStatus) error

	UpsertItemStatus(applicationID string, itemType models.ReviewItemType, itemKey string, status models.ReviewStatus) error
	ListItems(applicationID string) (list []dbmodels.ReviewItem, err error)

	AppendEvent(rec dbmodels.ReviewEvent) error
	ListEvents(applicationID string) (list []dbmodels.ReviewEvent, err error)

	AppendNote(rec dbmodels.ReviewNote) error
	ListNotes(applicationID string) (list []dbmodels.ReviewNote, err error)
	ResolveNotes(applicationID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) EnsureSections(applicationID string) error {
	for _, section := range models.ReviewSections {
		rec := dbmodels.ReviewSection{
			ApplicationID: applicationID,
			Section:       section,
			Status:        models.ReviewStatusPending,
		}
		err := i.db.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "application_id"}, {Name: "section"}},
				DoNothing: true,
			}).
			Create(&rec).
			Error
		if err != nil {
			return errors.Wrapf(err, "review section init failed, section=%v", section)
		}
	}
	return nil
}

func (i impl) ListSections(applicationID string) (list []dbmodels.ReviewSection, err error) {
	list = []dbmodels.ReviewSection{}
	err = i.db.
		Model(&dbmodels.ReviewSection{}).
		Where("application_id = ?", applicationID).
		Order("section asc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) SetSectionStatus(applicationID string, section models.ReviewSectionKey, status models.ReviewStatus) error {
	tx := i.db.
		Model(&dbmodels.ReviewSection{}).
		Where("application_id = ?", applicationID).
		Where("section = ?", section).
		Update("status", status)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("review section not found")
	}
	return nil
}

func (i impl) ResetSections(applicationID string, from, to models.ReviewStatus) error {
	return i.db.
		Model(&dbmodels.ReviewSection{}).
		Where("application_id = ?", applicationID).
		Where("status = ?", from).
		Update("status", to).
		Error
}

func (i impl) UpsertItemStatus(applicationID string, itemType models.ReviewItemType, itemKey string, status models.ReviewStatus) error {
	rec := dbmodels.ReviewItem{
		ApplicationID: applicationID,
		ItemType:      itemType,
		ItemKey:       itemKey,
		Status:        status,
	}
	return i.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "application_id"}, {Name: "item_type"}, {Name: "item_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).
		Create(&rec).
		Error
}

func (i impl) ListItems(applicationID string) (list []dbmodels.ReviewItem, err error) {
	list = []dbmodels.ReviewItem{}
	err = i.db.
		Model(&dbmodels.ReviewItem{}).
		Where("application_id = ?", applicationID).
		Order("created_at asc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) AppendEvent(rec dbmodels.ReviewEvent) error {
	return i.db.
		Create(&rec).
		Error
}

func (i impl) ListEvents(applicationID string) (list []dbmodels.ReviewEvent, err error) {
	list = []dbmodels.ReviewEvent{}
	err = i.db.
		Model(&dbmodels.ReviewEvent{}).
		Where("application_id = ?", applicationID).
		Order("created_at asc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) AppendNote(rec dbmodels.ReviewNote) error {
	return i.db.
		Create(&rec).
		Error
}

func (i impl) ListNotes(applicationID string) (list []dbmodels.ReviewNote, err error) {
	list = []dbmodels.ReviewNote{}
	err = i.db.
		Model(&dbmodels.ReviewNote{}).
		Where("application_id = ?", applicationID).
		Order("created_at asc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ResolveNotes(applicationID string) error {
	return i.db.
		Model(&dbmodels.ReviewNote{}).
		Where("application_id = ?", applicationID).
		Where("resolved = false").
		Update("resolved", true).
		Error
}
