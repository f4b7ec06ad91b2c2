package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplicationStatus(t *testing.T) {
	t.Run(`only draft and amendment-requested are editable`, func(t *testing.T) {
		require.True(t, AppStatusDraft.IsEditable())
		require.True(t, AppStatusAmendmentRequested.IsEditable())
		require.False(t, AppStatusSubmitted.IsEditable())
		require.False(t, AppStatusUnderReview.IsEditable())
		require.False(t, AppStatusApproved.IsEditable())
		require.False(t, AppStatusRejected.IsEditable())
	})

	t.Run(`submitted states are reviewable, decided states are not`, func(t *testing.T) {
		require.True(t, AppStatusSubmitted.IsReviewable())
		require.True(t, AppStatusUnderReview.IsReviewable())
		require.True(t, AppStatusResubmitted.IsReviewable())
		require.False(t, AppStatusDraft.IsReviewable())
		require.False(t, AppStatusAmendmentRequested.IsReviewable())
		require.False(t, AppStatusApproved.IsReviewable())
	})

	t.Run(`approved and rejected are terminal`, func(t *testing.T) {
		require.True(t, AppStatusApproved.IsTerminal())
		require.True(t, AppStatusRejected.IsTerminal())
		require.False(t, AppStatusAmendmentRequested.IsTerminal())
	})

	t.Run(`no status is both editable and reviewable`, func(t *testing.T) {
		for status := range appStatusHumanName {
			require.False(t, status.IsEditable() && status.IsReviewable(), string(status))
		}
	})
}

func TestFinancingStructure(t *testing.T) {
	t.Run(`contract details is skipped unless a new contract is drafted`, func(t *testing.T) {
		require.False(t, StructureNewContract.SkipsContractDetails())
		require.True(t, StructureExistingContract.SkipsContractDetails())
		require.True(t, StructureInvoiceOnly.SkipsContractDetails())
		require.False(t, StructureUnresolved.SkipsContractDetails())
	})

	t.Run(`the unresolved structure is not a valid choice`, func(t *testing.T) {
		require.False(t, StructureUnresolved.IsValid())
		require.False(t, StructureUnresolved.IsResolved())
		require.True(t, StructureNewContract.IsValid())
	})
}

func TestStepKeys(t *testing.T) {
	t.Run(`every canonical key is valid and has a title`, func(t *testing.T) {
		for _, key := range CanonicalStepKeys {
			require.True(t, key.IsValid())
			require.NotEqual(t, string(key), key.ToHuman())
		}
	})

	t.Run(`an unknown key is rejected`, func(t *testing.T) {
		require.False(t, StepKey("payout_details").IsValid())
	})
}

func TestReviewItemKeys(t *testing.T) {
	t.Run(`document keys are stable across category, index and name`, func(t *testing.T) {
		require.Equal(t, "doc:financial:0:balance.pdf", DocumentItemKey("financial", 0, "balance.pdf"))
		require.NotEqual(t,
			DocumentItemKey("financial", 0, "balance.pdf"),
			DocumentItemKey("financial", 1, "balance.pdf"))
	})

	t.Run(`invoice keys carry the row id`, func(t *testing.T) {
		require.Equal(t, "invoice:inv-1", InvoiceItemKey("inv-1"))
	})
}
