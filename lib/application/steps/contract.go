package steps

import (
	"context"

	"fin-tools-backend/models"
	dbmodels "fin-tools-backend/models/db"
)

// StepContext carries everything a handler may use during validate/commit.
// The host never inspects step payloads beyond handing them over here.
type StepContext struct {
	OrgID     string
	App       *dbmodels.Application
	StepDef   dbmodels.StepDefinition
	Data      dbmodels.StepPayload
	Structure models.FinancingStructure
}

// Handler is the runtime contract every workflow step satisfies. The host
// drives a step strictly through this interface:
//
//   - Validate reports a user-correctable message when the step's data is
//     incomplete; a non-empty message is a hard stop, nothing is written;
//   - Commit runs the step's side effects (contract writes, upload
//     verification) and returns the payload to persist; nil keeps the
//     submitted payload. A Commit error aborts the save with no record
//     write, no watermark advance and no success response;
//   - MergePolicy declares whether the committed payload replaces the
//     submitted one or is merged into it.
type Handler interface {
	Key() models.StepKey
	MergePolicy() models.MergePolicy
	Validate(ctx context.Context, sc *StepContext) (hMsg string, err error)
	Commit(ctx context.Context, sc *StepContext) (dbmodels.StepPayload, error)
}

// MergePayload applies a handler's merge policy. Merge keeps submitted
// fields not present in the committed payload; replace discards them.
func MergePayload(policy models.MergePolicy, submitted, committed dbmodels.StepPayload) dbmodels.StepPayload {
	if committed == nil {
		return submitted
	}
	if policy == models.MergePolicyReplace {
		return committed
	}
	out := dbmodels.StepPayload{}
	for k, v := range submitted {
		out[k] = v
	}
	for k, v := range committed {
		out[k] = v
	}
	return out
}
