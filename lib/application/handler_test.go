package applicationhandler

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"fin-tools-backend/lib/application/steps"
	"fin-tools-backend/models"
	applicationapimodels "fin-tools-backend/models/api/application"
	contractapimodels "fin-tools-backend/models/api/contract"
	filesapimodels "fin-tools-backend/models/api/files"
	invoiceapimodels "fin-tools-backend/models/api/invoice"
	productapimodels "fin-tools-backend/models/api/product"
	dbmodels "fin-tools-backend/models/db"
)

const testOrg = "org-1"

func nominalSteps() dbmodels.StepDefinitions {
	out := dbmodels.StepDefinitions{}
	for _, key := range models.CanonicalStepKeys {
		out = append(out, dbmodels.StepDefinition{Key: key, Title: key.ToHuman()})
	}
	return out
}

type fakeAppStore struct {
	recs     map[string]*dbmodels.Application
	updates  []map[string]interface{}
	archived []string
	nextID   int
}

func newFakeAppStore() *fakeAppStore {
	return &fakeAppStore{recs: map[string]*dbmodels.Application{}}
}

func (f *fakeAppStore) put(rec *dbmodels.Application) {
	f.recs[rec.ID] = rec
}

func (f *fakeAppStore) Create(rec dbmodels.Application) (string, error) {
	f.nextID++
	rec.ID = fmt.Sprintf("app-%d", f.nextID)
	f.recs[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeAppStore) GetByID(orgID, id string) (*dbmodels.Application, error) {
	rec, ok := f.recs[id]
	if !ok || rec.OrganizationID != orgID || rec.Archived {
		return nil, nil
	}
	clone := *rec
	return &clone, nil
}

func (f *fakeAppStore) Update(orgID, id string, updMap map[string]interface{}) error {
	rec, ok := f.recs[id]
	if !ok || rec.OrganizationID != orgID {
		return fmt.Errorf("application not found")
	}
	f.updates = append(f.updates, updMap)
	applyUpdate(rec, updMap)
	return nil
}

func applyUpdate(rec *dbmodels.Application, updMap map[string]interface{}) {
	for key, value := range updMap {
		switch key {
		case "status":
			rec.Status = value.(models.ApplicationStatus)
		case "last_completed_step":
			rec.LastCompletedStep = value.(int)
		case "financing_type":
			rec.FinancingType = value.(models.FinancingType)
		case "financing_structure":
			rec.FinancingStructure = value.(models.FinancingStructure)
		case "contract_id":
			if id, ok := value.(string); ok {
				rec.ContractID = id
			} else {
				rec.ContractID = ""
			}
		case "financing_type_data":
			rec.FinancingTypeData = value.(dbmodels.StepPayload)
		case "financing_structure_data":
			rec.FinancingStructureData = value.(dbmodels.StepPayload)
		case "invoice_details_data":
			rec.InvoiceDetailsData = value.(dbmodels.StepPayload)
		case "company_details_data":
			rec.CompanyDetailsData = value.(dbmodels.StepPayload)
		case "business_details_data":
			rec.BusinessDetailsData = value.(dbmodels.StepPayload)
		case "supporting_documents_data":
			rec.SupportingDocumentsData = value.(dbmodels.StepPayload)
		case "declarations_data":
			rec.DeclarationsData = value.(dbmodels.StepPayload)
		}
	}
}

func (f *fakeAppStore) Archive(orgID, id string) error {
	rec, ok := f.recs[id]
	if !ok || rec.OrganizationID != orgID {
		return fmt.Errorf("application not found")
	}
	rec.Archived = true
	f.archived = append(f.archived, id)
	return nil
}

func (f *fakeAppStore) ListCount(orgID string, filter applicationapimodels.Filter) (int64, error) {
	return int64(len(f.recs)), nil
}

func (f *fakeAppStore) List(orgID string, filter applicationapimodels.Filter) ([]dbmodels.Application, error) {
	out := []dbmodels.Application{}
	for _, rec := range f.recs {
		if rec.OrganizationID == orgID && !rec.Archived {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f *fakeAppStore) AdminGetByID(id string) (*dbmodels.Application, error) {
	rec, ok := f.recs[id]
	if !ok {
		return nil, nil
	}
	clone := *rec
	return &clone, nil
}

func (f *fakeAppStore) AdminUpdate(id string, updMap map[string]interface{}) error {
	rec, ok := f.recs[id]
	if !ok {
		return fmt.Errorf("application not found")
	}
	f.updates = append(f.updates, updMap)
	applyUpdate(rec, updMap)
	return nil
}

func (f *fakeAppStore) AdminListCount(filter applicationapimodels.Filter) (int64, error) {
	return int64(len(f.recs)), nil
}

func (f *fakeAppStore) AdminList(filter applicationapimodels.Filter) ([]dbmodels.Application, error) {
	return nil, nil
}

type fakeProducts struct {
	rec   *dbmodels.Product
	block models.BlockReason
}

func (f *fakeProducts) Create(data productapimodels.ProductData) (string, error) { return "", nil }
func (f *fakeProducts) Update(ctx context.Context, id string, data productapimodels.ProductData) error {
	return nil
}
func (f *fakeProducts) Delete(ctx context.Context, id string) error { return nil }
func (f *fakeProducts) GetByID(ctx context.Context, id string) (productapimodels.ProductView, error) {
	return productapimodels.ProductView{}, nil
}
func (f *fakeProducts) List(page, limit int, activeOnly bool) ([]productapimodels.ProductView, int64, error) {
	return nil, 0, nil
}
func (f *fakeProducts) CheckDrift(ctx context.Context, productID string, snapshotVersion int) (models.BlockReason, error) {
	return f.block, nil
}
func (f *fakeProducts) GetRecord(ctx context.Context, id string) (*dbmodels.Product, error) {
	if f.rec == nil || f.rec.ID != id {
		return nil, nil
	}
	clone := *f.rec
	return &clone, nil
}

type fakeContracts struct {
	recs    map[string]*dbmodels.Contract
	ensured int
}

func (f *fakeContracts) EnsureForApplication(orgID, applicationID string) (string, error) {
	f.ensured++
	id := "contract-1"
	if f.recs == nil {
		f.recs = map[string]*dbmodels.Contract{}
	}
	if _, ok := f.recs[id]; !ok {
		rec := &dbmodels.Contract{ApplicationID: applicationID}
		rec.ID = id
		rec.OrganizationID = orgID
		f.recs[id] = rec
	}
	return id, nil
}

func (f *fakeContracts) GetByID(orgID, id string) (contractapimodels.ContractView, error) {
	return contractapimodels.ContractView{}, nil
}

func (f *fakeContracts) Update(orgID, id string, data contractapimodels.ContractData) (string, error) {
	return "", nil
}

func (f *fakeContracts) ListApproved(orgID string) ([]contractapimodels.ContractView, error) {
	return nil, nil
}

func (f *fakeContracts) GetRecord(orgID, id string) (*dbmodels.Contract, error) {
	rec, ok := f.recs[id]
	if !ok || rec.OrganizationID != orgID {
		return nil, nil
	}
	clone := *rec
	return &clone, nil
}

type fakeInvoices struct {
	views []invoiceapimodels.InvoiceView
}

func (f *fakeInvoices) Create(orgID, applicationID string, data invoiceapimodels.InvoiceData) (string, string, error) {
	return "", "", nil
}
func (f *fakeInvoices) Update(orgID, id string, data invoiceapimodels.InvoiceData) (string, error) {
	return "", nil
}
func (f *fakeInvoices) Delete(orgID, id string) (string, error) { return "", nil }
func (f *fakeInvoices) ListByApplication(orgID, applicationID string) ([]invoiceapimodels.InvoiceView, error) {
	return f.views, nil
}

type fakeReviews struct {
	ensured  []string
	resets   []string
	resolved []string
}

func (f *fakeReviews) EnsureSections(applicationID string) error {
	f.ensured = append(f.ensured, applicationID)
	return nil
}
func (f *fakeReviews) ListSections(applicationID string) ([]dbmodels.ReviewSection, error) {
	return nil, nil
}
func (f *fakeReviews) SetSectionStatus(applicationID string, section models.ReviewSectionKey, status models.ReviewStatus) error {
	return nil
}
func (f *fakeReviews) ResetSections(applicationID string, from, to models.ReviewStatus) error {
	f.resets = append(f.resets, applicationID)
	return nil
}
func (f *fakeReviews) UpsertItemStatus(applicationID string, itemType models.ReviewItemType, itemKey string, status models.ReviewStatus) error {
	return nil
}
func (f *fakeReviews) ListItems(applicationID string) ([]dbmodels.ReviewItem, error) {
	return nil, nil
}
func (f *fakeReviews) AppendEvent(rec dbmodels.ReviewEvent) error { return nil }
func (f *fakeReviews) ListEvents(applicationID string) ([]dbmodels.ReviewEvent, error) {
	return nil, nil
}
func (f *fakeReviews) AppendNote(rec dbmodels.ReviewNote) error { return nil }
func (f *fakeReviews) ListNotes(applicationID string) ([]dbmodels.ReviewNote, error) {
	return nil, nil
}
func (f *fakeReviews) ResolveNotes(applicationID string) error {
	f.resolved = append(f.resolved, applicationID)
	return nil
}

type fakeNotify struct {
	submissions []models.ApplicationStatus
}

func (f *fakeNotify) ApplicationSubmitted(rec *dbmodels.Application, newStatus models.ApplicationStatus) {
	f.submissions = append(f.submissions, newStatus)
}
func (f *fakeNotify) AmendmentRequested(rec *dbmodels.Application, note string)               {}
func (f *fakeNotify) ApplicationDecided(rec *dbmodels.Application, approved bool, note string) {}
func (f *fakeNotify) List(orgID string, unseenOnly bool) ([]dbmodels.Notification, error) {
	return nil, nil
}
func (f *fakeNotify) MarkSeen(orgID, id string) error { return nil }

type hostStorage struct{}

func (hostStorage) RequestUploadURL(ctx context.Context, orgID string, req filesapimodels.UploadURLRequest) (filesapimodels.UploadURLResponse, error) {
	return filesapimodels.UploadURLResponse{}, nil
}
func (hostStorage) ObjectExists(ctx context.Context, orgID, key string) (bool, error) {
	return true, nil
}
func (hostStorage) DeleteObject(ctx context.Context, orgID, key string) {}

// emptyStorage has no objects, so any claimed upload fails the step commit.
type emptyStorage struct {
	hostStorage
}

func (emptyStorage) ObjectExists(ctx context.Context, orgID, key string) (bool, error) {
	return false, nil
}

type fixture struct {
	handler  impl
	store    *fakeAppStore
	products *fakeProducts
	reviews  *fakeReviews
	notify   *fakeNotify
}

func newFixture() *fixture {
	product := &dbmodels.Product{
		Name:    "Invoice financing",
		Version: 3,
		Active:  true,
		Steps:   nominalSteps(),
	}
	product.ID = "product-1"
	store := newFakeAppStore()
	products := &fakeProducts{rec: product}
	contracts := &fakeContracts{recs: map[string]*dbmodels.Contract{}}
	invoices := &fakeInvoices{}
	reviews := &fakeReviews{}
	notify := &fakeNotify{}
	return &fixture{
		handler: impl{
			store:     store,
			products:  products,
			contracts: contracts,
			invoices:  invoices,
			reviews:   reviews,
			notify:    notify,
			registry:  steps.NewRegistry(contracts, invoices, hostStorage{}),
		},
		store:    store,
		products: products,
		reviews:  reviews,
		notify:   notify,
	}
}

func (f *fixture) draft(structure models.FinancingStructure, lastCompleted int) *dbmodels.Application {
	rec := &dbmodels.Application{
		ProductID:          "product-1",
		ProductVersion:     3,
		WorkflowSnapshot:   nominalSteps(),
		Status:             models.AppStatusDraft,
		FinancingType:      models.FinancingTypeInvoice,
		FinancingStructure: structure,
		LastCompletedStep:  lastCompleted,
	}
	rec.ID = "app-0"
	rec.OrganizationID = testOrg
	if structure == models.StructureNewContract {
		rec.ContractID = "contract-1"
		contract := &dbmodels.Contract{ApplicationID: rec.ID}
		contract.ID = "contract-1"
		contract.OrganizationID = testOrg
		f.handler.contracts.(*fakeContracts).recs["contract-1"] = contract
	}
	f.store.put(rec)
	return rec
}

func TestCreate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	t.Run(`create snapshots the product version and workflow`, func(t *testing.T) {
		id, hMsg, err := f.handler.Create(ctx, testOrg, applicationapimodels.CreateRequest{
			ProductID:     "product-1",
			FinancingType: models.FinancingTypeInvoice,
		})
		require.NoError(t, err)
		require.Empty(t, hMsg)
		rec := f.store.recs[id]
		require.Equal(t, 3, rec.ProductVersion)
		require.Len(t, rec.WorkflowSnapshot, 9)
		require.Equal(t, models.AppStatusDraft, rec.Status)
		require.Equal(t, 1, rec.LastCompletedStep)
	})

	t.Run(`create rejects an unknown product`, func(t *testing.T) {
		_, hMsg, err := f.handler.Create(ctx, testOrg, applicationapimodels.CreateRequest{
			ProductID:     "missing",
			FinancingType: models.FinancingTypeInvoice,
		})
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
	})

	t.Run(`create rejects an inactive product`, func(t *testing.T) {
		f.products.rec.Active = false
		defer func() { f.products.rec.Active = true }()
		_, hMsg, err := f.handler.Create(ctx, testOrg, applicationapimodels.CreateRequest{
			ProductID:     "product-1",
			FinancingType: models.FinancingTypeInvoice,
		})
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
	})
}

func TestSaveStep(t *testing.T) {
	ctx := context.Background()

	t.Run(`a valid save persists the payload and advances the watermark`, func(t *testing.T) {
		f := newFixture()
		f.draft(models.StructureNewContract, 4)
		result, hMsg, err := f.handler.SaveStep(ctx, testOrg, "app-0", applicationapimodels.StepSaveRequest{
			Step: 5,
			Data: dbmodels.StepPayload{
				"company_name":    "Acme Ltd",
				"registration_no": "12345",
				"bank_name":       "First Bank",
				"bank_account":    "000111",
			},
		})
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, 6, result.NextStep)
		require.Equal(t, 5, result.LastCompletedStep)
		require.Len(t, f.store.updates, 1)
		rec := f.store.recs["app-0"]
		require.Equal(t, "Acme Ltd", rec.CompanyDetailsData["company_name"])
		require.Equal(t, 5, rec.LastCompletedStep)
	})

	t.Run(`a failed validation writes nothing`, func(t *testing.T) {
		f := newFixture()
		f.draft(models.StructureNewContract, 4)
		_, hMsg, err := f.handler.SaveStep(ctx, testOrg, "app-0", applicationapimodels.StepSaveRequest{
			Step: 5,
			Data: dbmodels.StepPayload{"company_name": "Acme Ltd"},
		})
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
		require.Empty(t, f.store.updates)
	})

	t.Run(`a failed commit writes nothing`, func(t *testing.T) {
		f := newFixture()
		f.draft(models.StructureNewContract, 6)
		f.handler.registry = steps.NewRegistry(f.handler.contracts, f.handler.invoices, emptyStorage{})
		_, _, err := f.handler.SaveStep(ctx, testOrg, "app-0", applicationapimodels.StepSaveRequest{
			Step: 7,
			Data: dbmodels.StepPayload{
				"documents": []interface{}{
					map[string]interface{}{"category": "financial", "name": "balance.pdf", "key": "k1"},
				},
			},
		})
		require.Error(t, err)
		require.Empty(t, f.store.updates)
		require.Equal(t, 6, f.store.recs["app-0"].LastCompletedStep)
	})

	t.Run(`saving the invoice step persists the derived summary`, func(t *testing.T) {
		f := newFixture()
		f.draft(models.StructureNewContract, 3)
		f.handler.invoices.(*fakeInvoices).views = []invoiceapimodels.InvoiceView{
			{ID: "inv-1", Amount: 1200},
			{ID: "inv-2", Amount: 800},
		}
		result, hMsg, err := f.handler.SaveStep(ctx, testOrg, "app-0", applicationapimodels.StepSaveRequest{
			Step: 4,
			Data: dbmodels.StepPayload{},
		})
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, 5, result.NextStep)
		rec := f.store.recs["app-0"]
		require.Equal(t, 2, rec.InvoiceDetailsData["invoice_count"])
		require.Equal(t, 2000.0, rec.InvoiceDetailsData["total_amount"])
		require.ElementsMatch(t, []string{"inv-1", "inv-2"}, rec.InvoiceDetailsData["invoice_ids"])
	})

	t.Run(`saving past the watermark is refused`, func(t *testing.T) {
		f := newFixture()
		f.draft(models.StructureNewContract, 4)
		_, hMsg, err := f.handler.SaveStep(ctx, testOrg, "app-0", applicationapimodels.StepSaveRequest{
			Step: 7,
			Data: dbmodels.StepPayload{},
		})
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
		require.Empty(t, f.store.updates)
	})

	t.Run(`a drifted application refuses every save`, func(t *testing.T) {
		f := newFixture()
		f.draft(models.StructureNewContract, 4)
		f.products.block = models.BlockProductVersionChange
		_, hMsg, err := f.handler.SaveStep(ctx, testOrg, "app-0", applicationapimodels.StepSaveRequest{
			Step: 5,
			Data: dbmodels.StepPayload{"company_name": "Acme Ltd"},
		})
		require.NoError(t, err)
		require.Equal(t, models.BlockProductVersionChange.ToHuman(), hMsg)
		require.Empty(t, f.store.updates)
	})

	t.Run(`a submitted application can no longer be edited`, func(t *testing.T) {
		f := newFixture()
		rec := f.draft(models.StructureNewContract, 8)
		rec.Status = models.AppStatusSubmitted
		_, hMsg, err := f.handler.SaveStep(ctx, testOrg, "app-0", applicationapimodels.StepSaveRequest{
			Step: 5,
			Data: dbmodels.StepPayload{},
		})
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
		require.Empty(t, f.store.updates)
	})

	t.Run(`resolving to new contract links the lazily created record`, func(t *testing.T) {
		f := newFixture()
		f.draft(models.StructureUnresolved, 1)
		result, hMsg, err := f.handler.SaveStep(ctx, testOrg, "app-0", applicationapimodels.StepSaveRequest{
			Step: 2,
			Data: dbmodels.StepPayload{"structure": "new_contract"},
		})
		require.NoError(t, err)
		require.Empty(t, hMsg)
		rec := f.store.recs["app-0"]
		require.Equal(t, models.StructureNewContract, rec.FinancingStructure)
		require.Equal(t, "contract-1", rec.ContractID)
		require.Equal(t, 2, rec.LastCompletedStep)
		require.Equal(t, 3, result.NextStep)
		require.Len(t, result.Workflow, 9)
	})

	t.Run(`a structure change rewinds the watermark and reshapes the workflow`, func(t *testing.T) {
		f := newFixture()
		f.draft(models.StructureNewContract, 6)
		result, hMsg, err := f.handler.SaveStep(ctx, testOrg, "app-0", applicationapimodels.StepSaveRequest{
			Step: 2,
			Data: dbmodels.StepPayload{"structure": "invoice_only"},
		})
		require.NoError(t, err)
		require.Empty(t, hMsg)
		rec := f.store.recs["app-0"]
		require.Equal(t, models.StructureInvoiceOnly, rec.FinancingStructure)
		require.Empty(t, rec.ContractID)
		require.Equal(t, 2, rec.LastCompletedStep)
		require.Equal(t, models.StructureInvoiceOnly, result.Structure)
		require.Len(t, result.Workflow, 8)
		require.Equal(t, 3, result.NextStep)
	})

	t.Run(`reselecting the same structure writes nothing and advances`, func(t *testing.T) {
		f := newFixture()
		f.draft(models.StructureNewContract, 6)
		result, hMsg, err := f.handler.SaveStep(ctx, testOrg, "app-0", applicationapimodels.StepSaveRequest{
			Step: 2,
			Data: dbmodels.StepPayload{"structure": "new_contract"},
		})
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Empty(t, f.store.updates)
		require.Equal(t, 3, result.NextStep)
		require.Equal(t, 6, result.LastCompletedStep)
	})
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run(`the final step submits the application and opens the review`, func(t *testing.T) {
		f := newFixture()
		f.draft(models.StructureNewContract, 8)
		result, hMsg, err := f.handler.SaveStep(ctx, testOrg, "app-0", applicationapimodels.StepSaveRequest{
			Step: 9,
			Data: dbmodels.StepPayload{},
		})
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.True(t, result.Submitted)
		rec := f.store.recs["app-0"]
		require.Equal(t, models.AppStatusSubmitted, rec.Status)
		require.Equal(t, []string{"app-0"}, f.reviews.ensured)
		require.Equal(t, []models.ApplicationStatus{models.AppStatusSubmitted}, f.notify.submissions)
	})

	t.Run(`an amended application resubmits and resets amended sections`, func(t *testing.T) {
		f := newFixture()
		rec := f.draft(models.StructureNewContract, 8)
		rec.Status = models.AppStatusAmendmentRequested
		result, hMsg, err := f.handler.SaveStep(ctx, testOrg, "app-0", applicationapimodels.StepSaveRequest{
			Step: 9,
			Data: dbmodels.StepPayload{},
		})
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.True(t, result.Submitted)
		require.Equal(t, models.AppStatusResubmitted, f.store.recs["app-0"].Status)
		require.Equal(t, []string{"app-0"}, f.reviews.resets)
		require.Equal(t, []string{"app-0"}, f.reviews.resolved)
	})
}

func TestLoadStep(t *testing.T) {
	ctx := context.Background()

	t.Run(`the resume position is the step after the watermark`, func(t *testing.T) {
		f := newFixture()
		f.draft(models.StructureNewContract, 4)
		view, hMsg, err := f.handler.LoadStep(ctx, testOrg, "app-0", 0, models.StructureUnresolved)
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.True(t, view.Navigation.Redirected)
		require.Equal(t, 5, view.Navigation.Position)
		require.Equal(t, models.StepCompanyDetails, view.Key)
	})

	t.Run(`step one redirects with a notice`, func(t *testing.T) {
		f := newFixture()
		f.draft(models.StructureNewContract, 4)
		view, hMsg, err := f.handler.LoadStep(ctx, testOrg, "app-0", 1, models.StructureUnresolved)
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.True(t, view.Navigation.Redirected)
		require.Equal(t, 2, view.Navigation.Position)
		require.NotEmpty(t, view.Navigation.Notice)
	})

	t.Run(`a structure override reshapes the workflow before any save`, func(t *testing.T) {
		f := newFixture()
		f.draft(models.StructureUnresolved, 1)
		view, hMsg, err := f.handler.LoadStep(ctx, testOrg, "app-0", 2, models.StructureInvoiceOnly)
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Len(t, view.Workflow, 8)
		require.Equal(t, models.StructureInvoiceOnly, view.Structure)
	})

	t.Run(`a drifted application reports its block reason`, func(t *testing.T) {
		f := newFixture()
		f.draft(models.StructureNewContract, 4)
		f.products.block = models.BlockProductDeleted
		view, hMsg, err := f.handler.LoadStep(ctx, testOrg, "app-0", 3, models.StructureUnresolved)
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, models.BlockProductDeleted, view.BlockReason)
		require.NotEmpty(t, view.BlockNotice)
	})
}

func TestRestart(t *testing.T) {
	ctx := context.Background()

	t.Run(`restart archives the old application and opens a fresh draft`, func(t *testing.T) {
		f := newFixture()
		rec := f.draft(models.StructureNewContract, 6)
		rec.ProductVersion = 2 // created against an older product version
		newID, hMsg, err := f.handler.Restart(ctx, testOrg, "app-0")
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.NotEqual(t, "app-0", newID)
		require.True(t, f.store.recs["app-0"].Archived)
		fresh := f.store.recs[newID]
		require.Equal(t, 3, fresh.ProductVersion)
		require.Equal(t, models.FinancingTypeInvoice, fresh.FinancingType)
		require.Equal(t, 1, fresh.LastCompletedStep)
	})

	t.Run(`a decided application can not be restarted`, func(t *testing.T) {
		f := newFixture()
		rec := f.draft(models.StructureNewContract, 6)
		rec.Status = models.AppStatusApproved
		_, hMsg, err := f.handler.Restart(ctx, testOrg, "app-0")
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
	})
}
