package steps

import (
	contracthandler "fin-tools-backend/lib/contract"
	filestorage "fin-tools-backend/lib/file-storage"
	invoicehandler "fin-tools-backend/lib/invoice"
	"fin-tools-backend/models"
)

type Registry struct {
	handlers map[models.StepKey]Handler
}

func NewRegistry(
	contractProvider contracthandler.Provider,
	invoiceProvider invoicehandler.Provider,
	storageProvider filestorage.Provider,
) *Registry {
	r := &Registry{handlers: map[models.StepKey]Handler{}}
	r.register(financingTypeStep{})
	r.register(financingStructureStep{contracts: contractProvider})
	r.register(contractDetailsStep{contracts: contractProvider})
	r.register(invoiceDetailsStep{invoices: invoiceProvider})
	r.register(companyDetailsStep{})
	r.register(businessDetailsStep{})
	r.register(supportingDocumentsStep{storage: storageProvider})
	r.register(declarationsStep{})
	r.register(reviewSubmitStep{})
	return r
}

func (r *Registry) register(h Handler) {
	r.handlers[h.Key()] = h
}

// Resolve returns the handler for a step key; unmapped keys render as a
// placeholder with all transitions disabled, so ok=false is not an error.
func (r *Registry) Resolve(key models.StepKey) (Handler, bool) {
	h, ok := r.handlers[key]
	return h, ok
}
