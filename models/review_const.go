package models

import "fmt"

// ReviewSectionKey identifies one of the independent review units an admin
// signs off before the application itself can be approved.
type ReviewSectionKey string

const (
	ReviewSectionFinancial     ReviewSectionKey = "FINANCIAL"
	ReviewSectionJustification ReviewSectionKey = "JUSTIFICATION"
	ReviewSectionDocuments     ReviewSectionKey = "DOCUMENTS"
)

var ReviewSections = []ReviewSectionKey{
	ReviewSectionFinancial,
	ReviewSectionJustification,
	ReviewSectionDocuments,
}

func (k ReviewSectionKey) IsValid() bool {
	for _, known := range ReviewSections {
		if k == known {
			return true
		}
	}
	return false
}

type ReviewStatus string

const (
	ReviewStatusPending            ReviewStatus = "PENDING"
	ReviewStatusApproved           ReviewStatus = "APPROVED"
	ReviewStatusRejected           ReviewStatus = "REJECTED"
	ReviewStatusAmendmentRequested ReviewStatus = "AMENDMENT_REQUESTED"
)

type ReviewItemType string

const (
	ReviewItemInvoice  ReviewItemType = "invoice"
	ReviewItemDocument ReviewItemType = "document"
)

func (t ReviewItemType) IsValid() bool {
	return t == ReviewItemInvoice || t == ReviewItemDocument
}

// DocumentItemKey derives the stable review key of a supporting document.
// Documents live inside the step payload blob rather than as rows, so the
// key is synthesized from category, position and declared name and must be
// computed the same way on every lookup.
func DocumentItemKey(category string, index int, name string) string {
	return fmt.Sprintf("doc:%s:%d:%s", category, index, name)
}

// InvoiceItemKey derives the review key of an invoice child record.
func InvoiceItemKey(invoiceID string) string {
	return fmt.Sprintf("invoice:%s", invoiceID)
}

type ReviewEventType string

const (
	EventSectionApproved     ReviewEventType = "SECTION_APPROVED"
	EventSectionRejected     ReviewEventType = "SECTION_REJECTED"
	EventSectionAmendment    ReviewEventType = "SECTION_AMENDMENT_REQUESTED"
	EventItemApproved        ReviewEventType = "ITEM_APPROVED"
	EventItemRejected        ReviewEventType = "ITEM_REJECTED"
	EventItemAmendment       ReviewEventType = "ITEM_AMENDMENT_REQUESTED"
	EventApplicationApproved ReviewEventType = "APPLICATION_APPROVED"
	EventApplicationRejected ReviewEventType = "APPLICATION_REJECTED"
)
