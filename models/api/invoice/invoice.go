package invoiceapimodels

import (
	"time"

	"github.com/pkg/errors"

	dbmodels "fin-tools-backend/models/db"
)

type InvoiceData struct {
	InvoiceNumber string     `json:"invoice_number"`
	Amount        float64    `json:"amount"`
	Currency      string     `json:"currency"`
	IssueDate     *time.Time `json:"issue_date,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	DebtorName    string     `json:"debtor_name"`
	// ContractID references a previously approved contract; only allowed
	// under the existing_contract financing structure.
	ContractID string `json:"contract_id,omitempty"`
}

func (r InvoiceData) Validate() error {
	if r.InvoiceNumber == "" {
		return errors.New("invoice number is not specified")
	}
	if r.Amount <= 0 {
		return errors.New("invoice amount must be positive")
	}
	if r.DebtorName == "" {
		return errors.New("debtor name is not specified")
	}
	return nil
}

type InvoiceView struct {
	ID            string     `json:"id"`
	ApplicationID string     `json:"application_id"`
	ContractID    string     `json:"contract_id,omitempty"`
	InvoiceNumber string     `json:"invoice_number"`
	Amount        float64    `json:"amount"`
	Currency      string     `json:"currency"`
	IssueDate     *time.Time `json:"issue_date,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	DebtorName    string     `json:"debtor_name"`
	ReviewStatus  string     `json:"review_status"`
}

func ToInvoiceView(rec dbmodels.Invoice) InvoiceView {
	return InvoiceView{
		ID:            rec.ID,
		ApplicationID: rec.ApplicationID,
		ContractID:    rec.ContractID,
		InvoiceNumber: rec.InvoiceNumber,
		Amount:        rec.Amount,
		Currency:      rec.Currency,
		IssueDate:     rec.IssueDate,
		DueDate:       rec.DueDate,
		DebtorName:    rec.DebtorName,
		ReviewStatus:  string(rec.ReviewStatus),
	}
}
