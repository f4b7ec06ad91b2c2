package dbmodels

import (
	"fin-tools-backend/models"
)

// Application is the central aggregate of the issuer portal. Each step of
// the wizard owns one payload column; the host writes them independently,
// one step per save, so partial progress is never rolled back.
type Application struct {
	BaseOrgModel
	ProductID string `gorm:"type:varchar(36);index"`
	// ProductVersion is snapshotted at creation and compared against the
	// live product on every load to detect drift.
	ProductVersion int
	// WorkflowSnapshot is the product's step list at creation time; step
	// positions are resolved against it by key, so later product edits
	// cannot reshuffle an in-flight application.
	WorkflowSnapshot StepDefinitions `gorm:"type:jsonb"`

	Status models.ApplicationStatus `gorm:"type:varchar(32);index"`
	// LastCompletedStep is the watermark gating forward navigation: the
	// issuer may view steps [2, LastCompletedStep+1] in the edit flow.
	LastCompletedStep int
	Archived          bool `gorm:"index"`

	FinancingType      models.FinancingType      `gorm:"type:varchar(32)"`
	FinancingStructure models.FinancingStructure `gorm:"type:varchar(32)"`

	ContractID string    `gorm:"type:varchar(36)"`
	Contract   *Contract `gorm:"foreignKey:ContractID"`

	FinancingTypeData       StepPayload `gorm:"type:jsonb"`
	FinancingStructureData  StepPayload `gorm:"type:jsonb"`
	// InvoiceDetailsData is a derived summary of the invoice child records
	// (ids, count, total), recomputed on every save of the step.
	InvoiceDetailsData      StepPayload `gorm:"type:jsonb"`
	CompanyDetailsData      StepPayload `gorm:"type:jsonb"`
	BusinessDetailsData     StepPayload `gorm:"type:jsonb"`
	SupportingDocumentsData StepPayload `gorm:"type:jsonb"`
	DeclarationsData        StepPayload `gorm:"type:jsonb"`
}

// PayloadColumn maps a step key to the gorm column holding its payload.
// Steps without a payload column (contract details live on the child
// record, review_submit has no data of its own) return "".
func PayloadColumn(key models.StepKey) string {
	switch key {
	case models.StepFinancingType:
		return "financing_type_data"
	case models.StepFinancingStructure:
		return "financing_structure_data"
	case models.StepInvoiceDetails:
		return "invoice_details_data"
	case models.StepCompanyDetails:
		return "company_details_data"
	case models.StepBusinessDetails:
		return "business_details_data"
	case models.StepSupportingDocuments:
		return "supporting_documents_data"
	case models.StepDeclarations:
		return "declarations_data"
	}
	return ""
}

// StepData returns the persisted payload for a step key, nil when the step
// has no payload column or nothing was saved yet.
func (a Application) StepData(key models.StepKey) StepPayload {
	switch key {
	case models.StepFinancingType:
		return a.FinancingTypeData
	case models.StepFinancingStructure:
		return a.FinancingStructureData
	case models.StepInvoiceDetails:
		return a.InvoiceDetailsData
	case models.StepCompanyDetails:
		return a.CompanyDetailsData
	case models.StepBusinessDetails:
		return a.BusinessDetailsData
	case models.StepSupportingDocuments:
		return a.SupportingDocumentsData
	case models.StepDeclarations:
		return a.DeclarationsData
	}
	return nil
}
