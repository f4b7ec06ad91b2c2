package dbmodels

import (
	"fin-tools-backend/models"
)

// ReviewSection is the per-section approval state, one row per
// (application, section). All three sections must be APPROVED before the
// application itself may be approved.
type ReviewSection struct {
	BaseModel
	ApplicationID string                  `gorm:"type:varchar(36);index:idx_review_section,unique"`
	Section       models.ReviewSectionKey `gorm:"type:varchar(32);index:idx_review_section,unique"`
	Status        models.ReviewStatus     `gorm:"type:varchar(32)"`
}

// ReviewItem tracks approval of one invoice or one supporting document.
// ItemKey is a stable derived key, not a row id: documents live inside a
// jsonb blob, so their key is synthesized from category, index and name.
type ReviewItem struct {
	BaseModel
	ApplicationID string                `gorm:"type:varchar(36);index:idx_review_item,unique"`
	ItemType      models.ReviewItemType `gorm:"type:varchar(16);index:idx_review_item,unique"`
	ItemKey       string                `gorm:"type:varchar(255);index:idx_review_item,unique"`
	Status        models.ReviewStatus   `gorm:"type:varchar(32)"`
}

// ReviewEvent is an append-only audit record of every review transition.
// Rows are never mutated or deleted; the activity feed orders them by
// creation time.
type ReviewEvent struct {
	BaseModel
	ApplicationID string                 `gorm:"type:varchar(36);index"`
	EventType     models.ReviewEventType `gorm:"type:varchar(48)"`
	// ScopeKey is the section key or the derived item key the event applies
	// to; empty for application-level events.
	ScopeKey  string `gorm:"type:varchar(255)"`
	Note      string
	ActorID   string `gorm:"type:varchar(36)"`
	ActorName string
}

// ReviewNote is the issuer-facing copy of an amendment instruction. It is
// written together with the amendment event and consumed by the issuer
// portal when the application returns for rework.
type ReviewNote struct {
	BaseModel
	ApplicationID string `gorm:"type:varchar(36);index"`
	ScopeKey      string `gorm:"type:varchar(255)"`
	Note          string
	AuthorID      string `gorm:"type:varchar(36)"`
	AuthorName    string
	Resolved      bool
}
