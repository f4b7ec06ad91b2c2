package contracthandler

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"fin-tools-backend/db"
	contractstore "fin-tools-backend/lib/contract/store"
	contractapimodels "fin-tools-backend/models/api/contract"
	dbmodels "fin-tools-backend/models/db"
)

type Provider interface {
	// EnsureForApplication lazily creates the application's own contract
	// record and returns its id; an existing record is returned as-is.
	EnsureForApplication(orgID, applicationID string) (id string, err error)
	GetByID(orgID, id string) (item contractapimodels.ContractView, err error)
	Update(orgID, id string, data contractapimodels.ContractData) (hMsg string, err error)
	ListApproved(orgID string) (list []contractapimodels.ContractView, err error)
	GetRecord(orgID, id string) (*dbmodels.Contract, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: contractstore.NewInstance(db.DB),
	}
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	return impl{
		store: contractstore.NewInstance(tx),
	}
}

type impl struct {
	store contractstore.Provider
}

func (i impl) EnsureForApplication(orgID, applicationID string) (id string, err error) {
	// a structure flip away and back must relink the same record, never
	// leave an orphan duplicate behind
	existing, err := i.store.GetByApplication(orgID, applicationID)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return existing.ID, nil
	}
	rec := dbmodels.Contract{
		BaseOrgModel: dbmodels.BaseOrgModel{
			OrganizationID: orgID,
		},
		ApplicationID: applicationID,
	}
	return i.store.Create(rec)
}

func (i impl) GetByID(orgID, id string) (item contractapimodels.ContractView, err error) {
	rec, err := i.store.GetByID(orgID, id)
	if err != nil {
		return contractapimodels.ContractView{}, err
	}
	if rec == nil {
		return contractapimodels.ContractView{}, errors.New("contract not found")
	}
	return contractapimodels.ToContractView(*rec), nil
}

func (i impl) GetRecord(orgID, id string) (*dbmodels.Contract, error) {
	return i.store.GetByID(orgID, id)
}

func (i impl) Update(orgID, id string, data contractapimodels.ContractData) (hMsg string, err error) {
	rec, err := i.store.GetByID(orgID, id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "contract not found", nil
	}
	if rec.Approved {
		return "an approved contract can not be edited", nil
	}
	updMap := map[string]interface{}{
		"counterparty_name": data.CounterpartyName,
		"counterparty_reg":  data.CounterpartyReg,
		"contract_value":    data.ContractValue,
		"currency":          data.Currency,
		"start_date":        data.StartDate,
		"end_date":          data.EndDate,
		"description":       data.Description,
	}
	return "", i.store.Update(orgID, id, updMap)
}

func (i impl) ListApproved(orgID string) (list []contractapimodels.ContractView, err error) {
	recs, err := i.store.ListApproved(orgID)
	if err != nil {
		return nil, err
	}
	list = make([]contractapimodels.ContractView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, contractapimodels.ToContractView(rec))
	}
	return list, nil
}
