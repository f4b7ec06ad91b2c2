package steps

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	contracthandler "fin-tools-backend/lib/contract"
	"fin-tools-backend/models"
	contractapimodels "fin-tools-backend/models/api/contract"
	dbmodels "fin-tools-backend/models/db"
)

type contractDetailsStep struct {
	contracts contracthandler.Provider
}

func (s contractDetailsStep) Key() models.StepKey {
	return models.StepContractDetails
}

func (s contractDetailsStep) MergePolicy() models.MergePolicy {
	return models.MergePolicyMerge
}

func (s contractDetailsStep) parse(data dbmodels.StepPayload) (contractapimodels.ContractData, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return contractapimodels.ContractData{}, err
	}
	parsed := contractapimodels.ContractData{}
	if err = json.Unmarshal(raw, &parsed); err != nil {
		return contractapimodels.ContractData{}, err
	}
	return parsed, nil
}

func (s contractDetailsStep) Validate(ctx context.Context, sc *StepContext) (hMsg string, err error) {
	if sc.App.ContractID == "" {
		return "the contract record is not initialized, return to the financing structure step", nil
	}
	parsed, err := s.parse(sc.Data)
	if err != nil {
		return "", errors.Wrap(err, "contract details payload is not readable")
	}
	if err = parsed.Validate(); err != nil {
		return err.Error(), nil
	}
	return "", nil
}

// Commit writes the details onto the application's contract record; the
// step payload keeps only the linkage.
func (s contractDetailsStep) Commit(ctx context.Context, sc *StepContext) (dbmodels.StepPayload, error) {
	parsed, err := s.parse(sc.Data)
	if err != nil {
		return nil, errors.Wrap(err, "contract details payload is not readable")
	}
	hMsg, err := s.contracts.Update(sc.OrgID, sc.App.ContractID, parsed)
	if err != nil {
		return nil, err
	}
	if hMsg != "" {
		return nil, errors.New(hMsg)
	}
	return dbmodels.StepPayload{"contract_id": sc.App.ContractID}, nil
}
