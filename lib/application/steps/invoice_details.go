package steps

import (
	"context"

	invoicehandler "fin-tools-backend/lib/invoice"
	"fin-tools-backend/models"
	dbmodels "fin-tools-backend/models/db"
)

type invoiceDetailsStep struct {
	invoices invoicehandler.Provider
}

func (s invoiceDetailsStep) Key() models.StepKey {
	return models.StepInvoiceDetails
}

// The persisted payload is derived from the invoice child records, so a
// commit replaces whatever the portal submitted.
func (s invoiceDetailsStep) MergePolicy() models.MergePolicy {
	return models.MergePolicyReplace
}

func (s invoiceDetailsStep) Validate(ctx context.Context, sc *StepContext) (hMsg string, err error) {
	list, err := s.invoices.ListByApplication(sc.OrgID, sc.App.ID)
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return "add at least one invoice to continue", nil
	}
	if sc.Structure == models.StructureExistingContract {
		for _, invoice := range list {
			if invoice.ContractID == "" {
				return "every invoice must reference the selected contract", nil
			}
		}
	}
	return "", nil
}

func (s invoiceDetailsStep) Commit(ctx context.Context, sc *StepContext) (dbmodels.StepPayload, error) {
	list, err := s.invoices.ListByApplication(sc.OrgID, sc.App.ID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(list))
	total := 0.0
	for _, invoice := range list {
		ids = append(ids, invoice.ID)
		total += invoice.Amount
	}
	return dbmodels.StepPayload{
		"invoice_ids":   ids,
		"invoice_count": len(ids),
		"total_amount":  total,
	}, nil
}
