package contractapimodels

import (
	"time"

	"github.com/pkg/errors"

	dbmodels "fin-tools-backend/models/db"
)

type ContractData struct {
	CounterpartyName string     `json:"counterparty_name"`
	CounterpartyReg  string     `json:"counterparty_reg"`
	ContractValue    float64    `json:"contract_value"`
	Currency         string     `json:"currency"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	EndDate          *time.Time `json:"end_date,omitempty"`
	Description      string     `json:"description"`
}

func (r ContractData) Validate() error {
	if r.CounterpartyName == "" {
		return errors.New("counterparty name is not specified")
	}
	if r.ContractValue <= 0 {
		return errors.New("contract value must be positive")
	}
	if r.StartDate != nil && r.EndDate != nil && r.EndDate.Before(*r.StartDate) {
		return errors.New("contract end date is before its start date")
	}
	return nil
}

type ContractView struct {
	ID               string     `json:"id"`
	ApplicationID    string     `json:"application_id"`
	CounterpartyName string     `json:"counterparty_name"`
	CounterpartyReg  string     `json:"counterparty_reg"`
	ContractValue    float64    `json:"contract_value"`
	Currency         string     `json:"currency"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	EndDate          *time.Time `json:"end_date,omitempty"`
	Description      string     `json:"description"`
	Approved         bool       `json:"approved"`
}

func ToContractView(rec dbmodels.Contract) ContractView {
	return ContractView{
		ID:               rec.ID,
		ApplicationID:    rec.ApplicationID,
		CounterpartyName: rec.CounterpartyName,
		CounterpartyReg:  rec.CounterpartyReg,
		ContractValue:    rec.ContractValue,
		Currency:         rec.Currency,
		StartDate:        rec.StartDate,
		EndDate:          rec.EndDate,
		Description:      rec.Description,
		Approved:         rec.Approved,
	}
}
