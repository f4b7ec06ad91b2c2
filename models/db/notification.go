package dbmodels

// Notification is a fire-and-forget message surface for the issuer portal:
// rows are written by review transitions, read (and marked seen) by the
// portal, never required for correctness of the workflow itself.
type Notification struct {
	BaseOrgModel
	ApplicationID string `gorm:"type:varchar(36);index"`
	Title         string
	Message       string
	Seen          bool `gorm:"index"`
}
