package steps

import (
	"context"

	contracthandler "fin-tools-backend/lib/contract"
	"fin-tools-backend/models"
	dbmodels "fin-tools-backend/models/db"
)

type financingStructureStep struct {
	contracts contracthandler.Provider
}

func (s financingStructureStep) Key() models.StepKey {
	return models.StepFinancingStructure
}

func (s financingStructureStep) MergePolicy() models.MergePolicy {
	return models.MergePolicyMerge
}

// ChosenStructure extracts the structure choice out of the step payload;
// the host needs it for the no-op reselect and rewind special cases.
func ChosenStructure(data dbmodels.StepPayload) models.FinancingStructure {
	return models.FinancingStructure(stringField(data, "structure"))
}

func (s financingStructureStep) Validate(ctx context.Context, sc *StepContext) (hMsg string, err error) {
	structure := ChosenStructure(sc.Data)
	if !structure.IsValid() {
		return "select a financing structure to continue", nil
	}
	if structure == models.StructureExistingContract {
		contractID := stringField(sc.Data, "existing_contract_id")
		if contractID == "" {
			return "select the existing contract to finance against", nil
		}
		rec, err := s.contracts.GetRecord(sc.OrgID, contractID)
		if err != nil {
			return "", err
		}
		if rec == nil {
			return "the selected contract was not found", nil
		}
		if !rec.Approved {
			return "only a previously approved contract can be selected", nil
		}
	}
	return "", nil
}

// Commit lazily creates the application's own contract record the first
// time the issuer resolves to new_contract.
func (s financingStructureStep) Commit(ctx context.Context, sc *StepContext) (dbmodels.StepPayload, error) {
	structure := ChosenStructure(sc.Data)
	if structure != models.StructureNewContract || sc.App.ContractID != "" {
		return nil, nil
	}
	contractID, err := s.contracts.EnsureForApplication(sc.OrgID, sc.App.ID)
	if err != nil {
		return nil, err
	}
	return dbmodels.StepPayload{"contract_id": contractID}, nil
}
