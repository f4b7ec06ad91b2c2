package dbmodels

import (
	"time"

	"fin-tools-backend/models"
)

// Contract is a child of an Application, created lazily the first time the
// issuer resolves the financing structure to new_contract.
type Contract struct {
	BaseOrgModel
	ApplicationID string `gorm:"type:varchar(36);index"`

	CounterpartyName string
	CounterpartyReg  string
	ContractValue    float64
	Currency         string `gorm:"type:varchar(8)"`
	StartDate        *time.Time
	EndDate          *time.Time
	Description      string

	// Approved marks a contract usable as an existing-contract reference by
	// later applications of the same organization.
	Approved bool `gorm:"index"`
}

// Invoice is a child of an Application. Under the existing_contract
// structure it references a previously approved contract instead of the
// application's own one.
type Invoice struct {
	BaseOrgModel
	ApplicationID string `gorm:"type:varchar(36);index"`
	ContractID    string `gorm:"type:varchar(36)"`
	Contract      *Contract

	InvoiceNumber string
	Amount        float64
	Currency      string `gorm:"type:varchar(8)"`
	IssueDate     *time.Time
	DueDate       *time.Time
	DebtorName    string

	ReviewStatus models.ReviewStatus `gorm:"type:varchar(32);default:PENDING"`
}
