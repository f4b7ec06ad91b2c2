package workflow

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fin-tools-backend/models"
	dbmodels "fin-tools-backend/models/db"
)

func nominalSteps() dbmodels.StepDefinitions {
	steps := dbmodels.StepDefinitions{}
	for _, key := range models.CanonicalStepKeys {
		steps = append(steps, dbmodels.StepDefinition{Key: key, Title: key.ToHuman()})
	}
	return steps
}

func TestEffectiveWorkflow(t *testing.T) {
	steps := nominalSteps()

	t.Run(`unresolved structure keeps the full list`, func(t *testing.T) {
		eff := EffectiveWorkflow(steps, models.StructureUnresolved)
		require.Len(t, eff, len(steps))
	})

	t.Run(`new contract keeps the contract details step`, func(t *testing.T) {
		eff := EffectiveWorkflow(steps, models.StructureNewContract)
		require.Len(t, eff, len(steps))
		require.NotZero(t, PositionOf(eff, models.StepContractDetails))
	})

	t.Run(`existing contract drops the contract details step`, func(t *testing.T) {
		eff := EffectiveWorkflow(steps, models.StructureExistingContract)
		require.Len(t, eff, len(steps)-1)
		require.Zero(t, PositionOf(eff, models.StepContractDetails))
	})

	t.Run(`invoice only drops the contract details step`, func(t *testing.T) {
		eff := EffectiveWorkflow(steps, models.StructureInvoiceOnly)
		require.Zero(t, PositionOf(eff, models.StepContractDetails))
	})

	t.Run(`filtering preserves the relative order of the remaining steps`, func(t *testing.T) {
		eff := EffectiveWorkflow(steps, models.StructureInvoiceOnly)
		require.Equal(t, models.StepFinancingStructure, eff[1].Key)
		require.Equal(t, models.StepInvoiceDetails, eff[2].Key)
	})

	t.Run(`the filter is idempotent`, func(t *testing.T) {
		once := EffectiveWorkflow(steps, models.StructureInvoiceOnly)
		twice := EffectiveWorkflow(once, models.StructureInvoiceOnly)
		require.Equal(t, once, twice)
	})
}

func TestEffectiveStructure(t *testing.T) {
	t.Run(`override wins over the persisted value`, func(t *testing.T) {
		got := EffectiveStructure(models.StructureNewContract, models.StructureInvoiceOnly)
		require.Equal(t, models.StructureInvoiceOnly, got)
	})

	t.Run(`empty override falls back to the persisted value`, func(t *testing.T) {
		got := EffectiveStructure(models.StructureNewContract, models.StructureUnresolved)
		require.Equal(t, models.StructureNewContract, got)
	})
}

func TestStepAt(t *testing.T) {
	steps := nominalSteps()

	t.Run(`positions are 1-based`, func(t *testing.T) {
		step, ok := StepAt(steps, 1)
		require.True(t, ok)
		require.Equal(t, models.StepFinancingType, step.Key)
	})

	t.Run(`out of range positions are rejected`, func(t *testing.T) {
		_, ok := StepAt(steps, 0)
		require.False(t, ok)
		_, ok = StepAt(steps, len(steps)+1)
		require.False(t, ok)
	})
}
