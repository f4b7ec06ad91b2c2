package steps

import (
	"context"

	"fin-tools-backend/models"
	dbmodels "fin-tools-backend/models/db"
)

type financingTypeStep struct{}

func (s financingTypeStep) Key() models.StepKey {
	return models.StepFinancingType
}

func (s financingTypeStep) MergePolicy() models.MergePolicy {
	return models.MergePolicyMerge
}

func (s financingTypeStep) Validate(ctx context.Context, sc *StepContext) (hMsg string, err error) {
	finType := models.FinancingType(stringField(sc.Data, "financing_type"))
	if !finType.IsValid() {
		return "select a financing type to continue", nil
	}
	return "", nil
}

func (s financingTypeStep) Commit(ctx context.Context, sc *StepContext) (dbmodels.StepPayload, error) {
	return nil, nil
}
