package models

type FinancingType string

const (
	FinancingTypeInvoice  FinancingType = "invoice_financing"
	FinancingTypeContract FinancingType = "contract_financing"
)

func (t FinancingType) IsValid() bool {
	return t == FinancingTypeInvoice || t == FinancingTypeContract
}

// FinancingStructure is the issuer's choice on the financing-structure step.
// The empty value means the choice has not been made yet; the full nominal
// step list is shown until then.
type FinancingStructure string

const (
	StructureUnresolved       FinancingStructure = ""
	StructureNewContract      FinancingStructure = "new_contract"
	StructureExistingContract FinancingStructure = "existing_contract"
	StructureInvoiceOnly      FinancingStructure = "invoice_only"
)

func (s FinancingStructure) IsResolved() bool {
	return s != StructureUnresolved
}

func (s FinancingStructure) IsValid() bool {
	switch s {
	case StructureNewContract, StructureExistingContract, StructureInvoiceOnly:
		return true
	}
	return false
}

// SkipsContractDetails reports whether the contract_details step is omitted
// from the effective workflow for this structure.
func (s FinancingStructure) SkipsContractDetails() bool {
	return s == StructureExistingContract || s == StructureInvoiceOnly
}

var structureHumanName = map[FinancingStructure]string{
	StructureNewContract:      "New contract",
	StructureExistingContract: "Existing approved contract",
	StructureInvoiceOnly:      "Invoices only",
}

func (s FinancingStructure) ToHuman() string {
	if human, exist := structureHumanName[s]; exist {
		return human
	}
	return string(s)
}
