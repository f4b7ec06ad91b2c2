package steps

import (
	"context"

	"fin-tools-backend/models"
	dbmodels "fin-tools-backend/models/db"
)

type declarationsStep struct{}

func (s declarationsStep) Key() models.StepKey {
	return models.StepDeclarations
}

func (s declarationsStep) MergePolicy() models.MergePolicy {
	return models.MergePolicyMerge
}

func (s declarationsStep) Validate(ctx context.Context, sc *StepContext) (hMsg string, err error) {
	declarations := configStrings(sc.StepDef.Config, "declarations")
	accepted := mapEntry(sc.Data["accepted"])
	if len(declarations) == 0 {
		// products without configured declaration texts still require the
		// single blanket confirmation
		if !boolField(sc.Data, "confirmed") {
			return "confirm the declaration to continue", nil
		}
		return "", nil
	}
	for _, declaration := range declarations {
		if accepted == nil || !boolField(accepted, declaration) {
			return "all declarations must be checked to continue", nil
		}
	}
	return "", nil
}

func (s declarationsStep) Commit(ctx context.Context, sc *StepContext) (dbmodels.StepPayload, error) {
	return nil, nil
}

type reviewSubmitStep struct{}

func (s reviewSubmitStep) Key() models.StepKey {
	return models.StepReviewSubmit
}

func (s reviewSubmitStep) MergePolicy() models.MergePolicy {
	return models.MergePolicyMerge
}

// The terminal step has no payload of its own; the host performs the
// submission transition.
func (s reviewSubmitStep) Validate(ctx context.Context, sc *StepContext) (hMsg string, err error) {
	return "", nil
}

func (s reviewSubmitStep) Commit(ctx context.Context, sc *StepContext) (dbmodels.StepPayload, error) {
	return nil, nil
}
