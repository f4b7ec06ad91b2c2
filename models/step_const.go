package models

// StepKey is the stable identifier of a workflow step's semantic purpose,
// independent of the step's position in any particular product.
type StepKey string

const (
	StepFinancingType       StepKey = "financing_type"
	StepFinancingStructure  StepKey = "financing_structure"
	StepContractDetails     StepKey = "contract_details"
	StepInvoiceDetails      StepKey = "invoice_details"
	StepCompanyDetails      StepKey = "company_details"
	StepBusinessDetails     StepKey = "business_details"
	StepSupportingDocuments StepKey = "supporting_documents"
	StepDeclarations        StepKey = "declarations"
	StepReviewSubmit        StepKey = "review_submit"
)

// CanonicalStepKeys is the full nominal sequence a product may draw its
// workflow from. Products reference steps by key, never by position.
var CanonicalStepKeys = []StepKey{
	StepFinancingType,
	StepFinancingStructure,
	StepContractDetails,
	StepInvoiceDetails,
	StepCompanyDetails,
	StepBusinessDetails,
	StepSupportingDocuments,
	StepDeclarations,
	StepReviewSubmit,
}

func (k StepKey) IsValid() bool {
	for _, known := range CanonicalStepKeys {
		if k == known {
			return true
		}
	}
	return false
}

var stepHumanName = map[StepKey]string{
	StepFinancingType:       "Financing type",
	StepFinancingStructure:  "Financing structure",
	StepContractDetails:     "Contract details",
	StepInvoiceDetails:      "Invoice details",
	StepCompanyDetails:      "Company details",
	StepBusinessDetails:     "Business details",
	StepSupportingDocuments: "Supporting documents",
	StepDeclarations:        "Declarations",
	StepReviewSubmit:        "Review and submit",
}

func (k StepKey) ToHuman() string {
	if human, exist := stepHumanName[k]; exist {
		return human
	}
	return string(k)
}

// MergePolicy declares how a step's committed output relates to the payload
// the issuer submitted: derived outputs replace the payload wholesale,
// additive outputs are merged into it. The policy is a declared property of
// each step handler, never inferred from the payload shape.
type MergePolicy string

const (
	MergePolicyMerge   MergePolicy = "merge"
	MergePolicyReplace MergePolicy = "replace"
)
