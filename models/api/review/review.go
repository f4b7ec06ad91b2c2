package reviewapimodels

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"fin-tools-backend/models"
	dbmodels "fin-tools-backend/models/db"
)

// ActionRequest carries the optional remark of a review transition. Reject
// and request-amendment require a non-blank note; approve ignores it.
type ActionRequest struct {
	Note string `json:"note,omitempty"`
}

// ValidateNote enforces the remark requirement before any store call.
func (r ActionRequest) ValidateNote() error {
	if strings.TrimSpace(r.Note) == "" {
		return errors.New("a remark is required for this action")
	}
	return nil
}

// ItemActionRequest addresses one invoice or document by its derived review
// key; the server re-verifies the key against the application's own records.
type ItemActionRequest struct {
	ItemType models.ReviewItemType `json:"item_type"`
	ItemKey  string                `json:"item_key"`
	Note     string                `json:"note,omitempty"`
}

func (r ItemActionRequest) Validate() error {
	if !r.ItemType.IsValid() {
		return errors.New("unknown review item type")
	}
	if r.ItemKey == "" {
		return errors.New("review item key is not specified")
	}
	return nil
}

type SectionView struct {
	Section models.ReviewSectionKey `json:"section"`
	Status  models.ReviewStatus     `json:"status"`
}

type ItemView struct {
	ItemType models.ReviewItemType `json:"item_type"`
	ItemKey  string                `json:"item_key"`
	Status   models.ReviewStatus   `json:"status"`
}

type EventView struct {
	ID        string                 `json:"id"`
	EventType models.ReviewEventType `json:"event_type"`
	ScopeKey  string                 `json:"scope_key,omitempty"`
	Note      string                 `json:"note,omitempty"`
	ActorName string                 `json:"actor_name,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type NoteView struct {
	ID         string    `json:"id"`
	ScopeKey   string    `json:"scope_key,omitempty"`
	Note       string    `json:"note"`
	AuthorName string    `json:"author_name,omitempty"`
	Resolved   bool      `json:"resolved"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReviewView is the admin console's full picture of one application's
// review state, including whether final approval is currently offered.
type ReviewView struct {
	ApplicationID string        `json:"application_id"`
	Status        models.ApplicationStatus `json:"status"`
	Sections      []SectionView `json:"sections"`
	Items         []ItemView    `json:"items"`
	CanApprove    bool          `json:"can_approve"`
}

func ToSectionView(rec dbmodels.ReviewSection) SectionView {
	return SectionView{
		Section: rec.Section,
		Status:  rec.Status,
	}
}

func ToItemView(rec dbmodels.ReviewItem) ItemView {
	return ItemView{
		ItemType: rec.ItemType,
		ItemKey:  rec.ItemKey,
		Status:   rec.Status,
	}
}

func ToEventView(rec dbmodels.ReviewEvent) EventView {
	return EventView{
		ID:        rec.ID,
		EventType: rec.EventType,
		ScopeKey:  rec.ScopeKey,
		Note:      rec.Note,
		ActorName: rec.ActorName,
		CreatedAt: rec.CreatedAt,
	}
}

func ToNoteView(rec dbmodels.ReviewNote) NoteView {
	return NoteView{
		ID:         rec.ID,
		ScopeKey:   rec.ScopeKey,
		Note:       rec.Note,
		AuthorName: rec.AuthorName,
		Resolved:   rec.Resolved,
		CreatedAt:  rec.CreatedAt,
	}
}
