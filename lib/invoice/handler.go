package invoicehandler

import (
	"gorm.io/gorm"

	"fin-tools-backend/db"
	applicationstore "fin-tools-backend/lib/application/store"
	contractstore "fin-tools-backend/lib/contract/store"
	invoicestore "fin-tools-backend/lib/invoice/store"
	"fin-tools-backend/models"
	invoiceapimodels "fin-tools-backend/models/api/invoice"
	dbmodels "fin-tools-backend/models/db"
)

type Provider interface {
	Create(orgID, applicationID string, data invoiceapimodels.InvoiceData) (id string, hMsg string, err error)
	Update(orgID, id string, data invoiceapimodels.InvoiceData) (hMsg string, err error)
	Delete(orgID, id string) (hMsg string, err error)
	ListByApplication(orgID, applicationID string) (list []invoiceapimodels.InvoiceView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:         invoicestore.NewInstance(db.DB),
		contractStore: contractstore.NewInstance(db.DB),
		appStore:      applicationstore.NewInstance(db.DB),
	}
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	return impl{
		store:         invoicestore.NewInstance(tx),
		contractStore: contractstore.NewInstance(tx),
		appStore:      applicationstore.NewInstance(tx),
	}
}

type impl struct {
	store         invoicestore.Provider
	contractStore contractstore.Provider
	appStore      applicationstore.Provider
}

// checkEditable loads the owning application and refuses the mutation once
// the application left the issuer's hands. Invoices an admin is reviewing
// must stay exactly as they were submitted.
func (i impl) checkEditable(orgID, applicationID string) (hMsg string, err error) {
	rec, err := i.appStore.GetByID(orgID, applicationID)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "application not found", nil
	}
	if !rec.Status.IsEditable() {
		return "the application can no longer be edited", nil
	}
	return "", nil
}

// checkContractRef validates an existing-contract reference: the contract
// must belong to the same organization and be approved.
func (i impl) checkContractRef(orgID, contractID string) (hMsg string, err error) {
	if contractID == "" {
		return "", nil
	}
	contractRec, err := i.contractStore.GetByID(orgID, contractID)
	if err != nil {
		return "", err
	}
	if contractRec == nil {
		return "the referenced contract was not found", nil
	}
	if !contractRec.Approved {
		return "only an approved contract can back an invoice", nil
	}
	return "", nil
}

func (i impl) Create(orgID, applicationID string, data invoiceapimodels.InvoiceData) (id string, hMsg string, err error) {
	hMsg, err = i.checkEditable(orgID, applicationID)
	if err != nil || hMsg != "" {
		return "", hMsg, err
	}
	hMsg, err = i.checkContractRef(orgID, data.ContractID)
	if err != nil || hMsg != "" {
		return "", hMsg, err
	}
	rec := dbmodels.Invoice{
		BaseOrgModel: dbmodels.BaseOrgModel{
			OrganizationID: orgID,
		},
		ApplicationID: applicationID,
		ContractID:    data.ContractID,
		InvoiceNumber: data.InvoiceNumber,
		Amount:        data.Amount,
		Currency:      data.Currency,
		IssueDate:     data.IssueDate,
		DueDate:       data.DueDate,
		DebtorName:    data.DebtorName,
		ReviewStatus:  models.ReviewStatusPending,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", "", err
	}
	return id, "", nil
}

func (i impl) Update(orgID, id string, data invoiceapimodels.InvoiceData) (hMsg string, err error) {
	rec, err := i.store.GetByID(orgID, id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "invoice not found", nil
	}
	hMsg, err = i.checkEditable(orgID, rec.ApplicationID)
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	hMsg, err = i.checkContractRef(orgID, data.ContractID)
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	updMap := map[string]interface{}{
		"invoice_number": data.InvoiceNumber,
		"amount":         data.Amount,
		"currency":       data.Currency,
		"issue_date":     data.IssueDate,
		"due_date":       data.DueDate,
		"debtor_name":    data.DebtorName,
		"contract_id":    data.ContractID,
	}
	return "", i.store.Update(orgID, id, updMap)
}

func (i impl) Delete(orgID, id string) (hMsg string, err error) {
	rec, err := i.store.GetByID(orgID, id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "invoice not found", nil
	}
	hMsg, err = i.checkEditable(orgID, rec.ApplicationID)
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	return "", i.store.Delete(orgID, id)
}

func (i impl) ListByApplication(orgID, applicationID string) (list []invoiceapimodels.InvoiceView, err error) {
	recs, err := i.store.ListByApplication(orgID, applicationID)
	if err != nil {
		return nil, err
	}
	list = make([]invoiceapimodels.InvoiceView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, invoiceapimodels.ToInvoiceView(rec))
	}
	return list, nil
}
