package workflow

import (
	"fin-tools-backend/models"
	dbmodels "fin-tools-backend/models/db"
)

// EffectiveStructure resolves the financing structure used for step
// filtering: a not-yet-persisted override from the current request wins over
// the persisted value, so the conditional skip applies before the save
// round-trip completes.
func EffectiveStructure(persisted, override models.FinancingStructure) models.FinancingStructure {
	if override.IsResolved() {
		return override
	}
	return persisted
}

// EffectiveWorkflow derives the effective step sequence for a structure
// choice. While the structure is unresolved the full nominal list is
// returned, so the issuer sees every step before making the choice. The
// function is pure and idempotent; it is recomputed on every step load.
func EffectiveWorkflow(steps dbmodels.StepDefinitions, structure models.FinancingStructure) dbmodels.StepDefinitions {
	out := make(dbmodels.StepDefinitions, 0, len(steps))
	for _, step := range steps {
		if step.Key == models.StepContractDetails && structure.SkipsContractDetails() {
			continue
		}
		out = append(out, step)
	}
	return out
}

// StepAt resolves the step definition at a 1-based position of the
// effective workflow.
func StepAt(steps dbmodels.StepDefinitions, position int) (dbmodels.StepDefinition, bool) {
	if position < 1 || position > len(steps) {
		return dbmodels.StepDefinition{}, false
	}
	return steps[position-1], true
}

// PositionOf returns the 1-based position of a step key inside the
// effective workflow, 0 when the key is filtered out or unknown.
func PositionOf(steps dbmodels.StepDefinitions, key models.StepKey) int {
	for idx, step := range steps {
		if step.Key == key {
			return idx + 1
		}
	}
	return 0
}
