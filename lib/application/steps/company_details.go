package steps

import (
	"context"

	"fin-tools-backend/models"
	dbmodels "fin-tools-backend/models/db"
)

type companyDetailsStep struct{}

func (s companyDetailsStep) Key() models.StepKey {
	return models.StepCompanyDetails
}

func (s companyDetailsStep) MergePolicy() models.MergePolicy {
	return models.MergePolicyMerge
}

func (s companyDetailsStep) Validate(ctx context.Context, sc *StepContext) (hMsg string, err error) {
	required := map[string]string{
		"company_name":    "company name",
		"registration_no": "registration number",
		"bank_name":       "bank name",
		"bank_account":    "bank account number",
	}
	for field, label := range required {
		if stringField(sc.Data, field) == "" {
			return "fill in the " + label + " to continue", nil
		}
	}
	return "", nil
}

func (s companyDetailsStep) Commit(ctx context.Context, sc *StepContext) (dbmodels.StepPayload, error) {
	return nil, nil
}

type businessDetailsStep struct{}

func (s businessDetailsStep) Key() models.StepKey {
	return models.StepBusinessDetails
}

func (s businessDetailsStep) MergePolicy() models.MergePolicy {
	return models.MergePolicyMerge
}

func (s businessDetailsStep) Validate(ctx context.Context, sc *StepContext) (hMsg string, err error) {
	if stringField(sc.Data, "industry") == "" {
		return "select the company's industry to continue", nil
	}
	if stringField(sc.Data, "financing_purpose") == "" {
		return "describe the purpose of the financing to continue", nil
	}
	return "", nil
}

func (s businessDetailsStep) Commit(ctx context.Context, sc *StepContext) (dbmodels.StepPayload, error) {
	return nil, nil
}
