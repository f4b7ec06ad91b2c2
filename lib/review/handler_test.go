package reviewhandler

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"fin-tools-backend/models"
	applicationapimodels "fin-tools-backend/models/api/application"
	dbmodels "fin-tools-backend/models/db"
)

const testOrg = "org-1"

type fakeAppStore struct {
	recs    map[string]*dbmodels.Application
	updates []map[string]interface{}
}

func (f *fakeAppStore) Create(rec dbmodels.Application) (string, error) { return "", nil }

func (f *fakeAppStore) GetByID(orgID, id string) (*dbmodels.Application, error) {
	rec, ok := f.recs[id]
	if !ok || rec.OrganizationID != orgID {
		return nil, nil
	}
	clone := *rec
	return &clone, nil
}

func (f *fakeAppStore) Update(orgID, id string, updMap map[string]interface{}) error {
	return f.AdminUpdate(id, updMap)
}

func (f *fakeAppStore) Archive(orgID, id string) error { return nil }

func (f *fakeAppStore) ListCount(orgID string, filter applicationapimodels.Filter) (int64, error) {
	return 0, nil
}

func (f *fakeAppStore) List(orgID string, filter applicationapimodels.Filter) ([]dbmodels.Application, error) {
	return nil, nil
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
	if status, ok := updMap["status"]; ok {
		rec.Status = status.(models.ApplicationStatus)
	}
	return nil
}

func (f *fakeAppStore) AdminListCount(filter applicationapimodels.Filter) (int64, error) {
	return 0, nil
}

func (f *fakeAppStore) AdminList(filter applicationapimodels.Filter) ([]dbmodels.Application, error) {
	return nil, nil
}

type fakeReviewStore struct {
	sections map[models.ReviewSectionKey]models.ReviewStatus
	items    map[string]models.ReviewStatus
	events   []dbmodels.ReviewEvent
	notes    []dbmodels.ReviewNote
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{
		sections: map[models.ReviewSectionKey]models.ReviewStatus{},
		items:    map[string]models.ReviewStatus{},
	}
}

func (f *fakeReviewStore) EnsureSections(applicationID string) error {
	for _, section := range models.ReviewSections {
		if _, ok := f.sections[section]; !ok {
			f.sections[section] = models.ReviewStatusPending
		}
	}
	return nil
}

func (f *fakeReviewStore) ListSections(applicationID string) ([]dbmodels.ReviewSection, error) {
	out := []dbmodels.ReviewSection{}
	for _, section := range models.ReviewSections {
		status, ok := f.sections[section]
		if !ok {
			continue
		}
		out = append(out, dbmodels.ReviewSection{ApplicationID: applicationID, Section: section, Status: status})
	}
	return out, nil
}

func (f *fakeReviewStore) SetSectionStatus(applicationID string, section models.ReviewSectionKey, status models.ReviewStatus) error {
	f.sections[section] = status
	return nil
}

func (f *fakeReviewStore) ResetSections(applicationID string, from, to models.ReviewStatus) error {
	for section, status := range f.sections {
		if status == from {
			f.sections[section] = to
		}
	}
	return nil
}

func (f *fakeReviewStore) UpsertItemStatus(applicationID string, itemType models.ReviewItemType, itemKey string, status models.ReviewStatus) error {
	f.items[itemKey] = status
	return nil
}

func (f *fakeReviewStore) ListItems(applicationID string) ([]dbmodels.ReviewItem, error) {
	return nil, nil
}

func (f *fakeReviewStore) AppendEvent(rec dbmodels.ReviewEvent) error {
	f.events = append(f.events, rec)
	return nil
}

func (f *fakeReviewStore) ListEvents(applicationID string) ([]dbmodels.ReviewEvent, error) {
	return f.events, nil
}

func (f *fakeReviewStore) AppendNote(rec dbmodels.ReviewNote) error {
	f.notes = append(f.notes, rec)
	return nil
}

func (f *fakeReviewStore) ListNotes(applicationID string) ([]dbmodels.ReviewNote, error) {
	return f.notes, nil
}

func (f *fakeReviewStore) ResolveNotes(applicationID string) error { return nil }

type fakeInvoiceStore struct {
	recs map[string]*dbmodels.Invoice
}

func (f *fakeInvoiceStore) Create(rec dbmodels.Invoice) (string, error) { return "", nil }

func (f *fakeInvoiceStore) GetByID(orgID, id string) (*dbmodels.Invoice, error) {
	rec, ok := f.recs[id]
	if !ok || rec.OrganizationID != orgID {
		return nil, nil
	}
	clone := *rec
	return &clone, nil
}

func (f *fakeInvoiceStore) Update(orgID, id string, updMap map[string]interface{}) error {
	rec, ok := f.recs[id]
	if !ok || rec.OrganizationID != orgID {
		return fmt.Errorf("invoice not found")
	}
	if status, ok := updMap["review_status"]; ok {
		rec.ReviewStatus = status.(models.ReviewStatus)
	}
	return nil
}

func (f *fakeInvoiceStore) Delete(orgID, id string) error { return nil }

func (f *fakeInvoiceStore) ListByApplication(orgID, applicationID string) ([]dbmodels.Invoice, error) {
	return nil, nil
}

type fakeContractStore struct {
	approved map[string]bool
}

func (f *fakeContractStore) Create(rec dbmodels.Contract) (string, error) { return "", nil }

func (f *fakeContractStore) GetByID(orgID, id string) (*dbmodels.Contract, error) {
	return nil, nil
}

func (f *fakeContractStore) GetByApplication(orgID, applicationID string) (*dbmodels.Contract, error) {
	return nil, nil
}

func (f *fakeContractStore) Update(orgID, id string, updMap map[string]interface{}) error {
	if approved, ok := updMap["approved"].(bool); ok {
		f.approved[id] = approved
	}
	return nil
}

func (f *fakeContractStore) ListApproved(orgID string) ([]dbmodels.Contract, error) {
	return nil, nil
}

type fakeNotify struct {
	amendments []string
	decisions  []bool
}

func (f *fakeNotify) ApplicationSubmitted(rec *dbmodels.Application, newStatus models.ApplicationStatus) {
}
func (f *fakeNotify) AmendmentRequested(rec *dbmodels.Application, note string) {
	f.amendments = append(f.amendments, note)
}
func (f *fakeNotify) ApplicationDecided(rec *dbmodels.Application, approved bool, note string) {
	f.decisions = append(f.decisions, approved)
}
func (f *fakeNotify) List(orgID string, unseenOnly bool) ([]dbmodels.Notification, error) {
	return nil, nil
}
func (f *fakeNotify) MarkSeen(orgID, id string) error { return nil }

type fixture struct {
	handler   impl
	apps      *fakeAppStore
	reviews   *fakeReviewStore
	invoices  *fakeInvoiceStore
	contracts *fakeContractStore
	notify    *fakeNotify
}

var admin = Actor{ID: "admin-1", Name: "Jane Admin"}

func newFixture(status models.ApplicationStatus) *fixture {
	rec := &dbmodels.Application{
		ProductID:          "product-1",
		Status:             status,
		FinancingType:      models.FinancingTypeInvoice,
		FinancingStructure: models.StructureNewContract,
		ContractID:         "contract-1",
		SupportingDocumentsData: dbmodels.StepPayload{
			"documents": []interface{}{
				map[string]interface{}{"category": "financial", "name": "balance.pdf", "key": "k1"},
			},
		},
	}
	rec.ID = "app-1"
	rec.OrganizationID = testOrg

	invoice := &dbmodels.Invoice{ApplicationID: "app-1"}
	invoice.ID = "inv-1"
	invoice.OrganizationID = testOrg

	apps := &fakeAppStore{recs: map[string]*dbmodels.Application{"app-1": rec}}
	reviews := newFakeReviewStore()
	invoices := &fakeInvoiceStore{recs: map[string]*dbmodels.Invoice{"inv-1": invoice}}
	contracts := &fakeContractStore{approved: map[string]bool{}}
	notify := &fakeNotify{}
	return &fixture{
		handler: impl{
			apps:      apps,
			reviews:   reviews,
			invoices:  invoices,
			contracts: contracts,
			notify:    notify,
		},
		apps:      apps,
		reviews:   reviews,
		invoices:  invoices,
		contracts: contracts,
		notify:    notify,
	}
}

func TestSectionActions(t *testing.T) {
	t.Run(`the first admin touch moves the application under review`, func(t *testing.T) {
		f := newFixture(models.AppStatusSubmitted)
		hMsg, err := f.handler.ApproveSection("app-1", models.ReviewSectionFinancial, admin)
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, models.AppStatusUnderReview, f.apps.recs["app-1"].Status)
		require.Equal(t, models.ReviewStatusApproved, f.reviews.sections[models.ReviewSectionFinancial])
		require.Len(t, f.reviews.events, 1)
		require.Equal(t, models.EventSectionApproved, f.reviews.events[0].EventType)
		require.Equal(t, admin.ID, f.reviews.events[0].ActorID)
	})

	t.Run(`a rejection without a remark is refused`, func(t *testing.T) {
		f := newFixture(models.AppStatusSubmitted)
		hMsg, err := f.handler.RejectSection("app-1", models.ReviewSectionFinancial, "   ", admin)
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
		require.Empty(t, f.reviews.events)
	})

	t.Run(`an amendment request sends the application back with a note`, func(t *testing.T) {
		f := newFixture(models.AppStatusUnderReview)
		hMsg, err := f.handler.RequestSectionAmendment("app-1", models.ReviewSectionDocuments, "attach the audited statement", admin)
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, models.AppStatusAmendmentRequested, f.apps.recs["app-1"].Status)
		require.Len(t, f.reviews.notes, 1)
		require.Equal(t, "attach the audited statement", f.reviews.notes[0].Note)
		require.Equal(t, string(models.ReviewSectionDocuments), f.reviews.notes[0].ScopeKey)
		require.Equal(t, []string{"attach the audited statement"}, f.notify.amendments)
	})

	t.Run(`a draft application can not be reviewed`, func(t *testing.T) {
		f := newFixture(models.AppStatusDraft)
		hMsg, err := f.handler.ApproveSection("app-1", models.ReviewSectionFinancial, admin)
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
	})

	t.Run(`an unknown section is refused`, func(t *testing.T) {
		f := newFixture(models.AppStatusUnderReview)
		hMsg, err := f.handler.ApproveSection("app-1", models.ReviewSectionKey("BOGUS"), admin)
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
	})
}

func TestItemActions(t *testing.T) {
	t.Run(`an invoice approval stamps the invoice row`, func(t *testing.T) {
		f := newFixture(models.AppStatusUnderReview)
		hMsg, err := f.handler.ApproveItem("app-1", models.ReviewItemInvoice, "invoice:inv-1", admin)
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, models.ReviewStatusApproved, f.reviews.items["invoice:inv-1"])
		require.Equal(t, models.ReviewStatusApproved, f.invoices.recs["inv-1"].ReviewStatus)
	})

	t.Run(`an invoice of another application is refused`, func(t *testing.T) {
		f := newFixture(models.AppStatusUnderReview)
		foreign := &dbmodels.Invoice{ApplicationID: "app-other"}
		foreign.ID = "inv-2"
		foreign.OrganizationID = testOrg
		f.invoices.recs["inv-2"] = foreign
		hMsg, err := f.handler.ApproveItem("app-1", models.ReviewItemInvoice, "invoice:inv-2", admin)
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
		require.Empty(t, f.reviews.items)
	})

	t.Run(`a malformed invoice key is refused`, func(t *testing.T) {
		f := newFixture(models.AppStatusUnderReview)
		hMsg, err := f.handler.ApproveItem("app-1", models.ReviewItemInvoice, "inv-1", admin)
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
	})

	t.Run(`a known document key is accepted`, func(t *testing.T) {
		f := newFixture(models.AppStatusUnderReview)
		key := models.DocumentItemKey("financial", 0, "balance.pdf")
		hMsg, err := f.handler.ApproveItem("app-1", models.ReviewItemDocument, key, admin)
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, models.ReviewStatusApproved, f.reviews.items[key])
	})

	t.Run(`a fabricated document key is refused`, func(t *testing.T) {
		f := newFixture(models.AppStatusUnderReview)
		hMsg, err := f.handler.ApproveItem("app-1", models.ReviewItemDocument, "doc:financial:9:made-up.pdf", admin)
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
		require.Empty(t, f.reviews.items)
	})

	t.Run(`an item amendment requires a remark`, func(t *testing.T) {
		f := newFixture(models.AppStatusUnderReview)
		hMsg, err := f.handler.RequestItemAmendment("app-1", models.ReviewItemInvoice, "invoice:inv-1", "", admin)
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
	})
}

func TestApproveApplication(t *testing.T) {
	t.Run(`approval is gated on every section being approved`, func(t *testing.T) {
		f := newFixture(models.AppStatusUnderReview)
		require.NoError(t, f.reviews.EnsureSections("app-1"))
		f.reviews.sections[models.ReviewSectionFinancial] = models.ReviewStatusApproved
		hMsg, err := f.handler.ApproveApplication("app-1", admin)
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
		require.Equal(t, models.AppStatusUnderReview, f.apps.recs["app-1"].Status)
	})

	t.Run(`with all sections approved the application is approved`, func(t *testing.T) {
		f := newFixture(models.AppStatusUnderReview)
		require.NoError(t, f.reviews.EnsureSections("app-1"))
		for _, section := range models.ReviewSections {
			f.reviews.sections[section] = models.ReviewStatusApproved
		}
		hMsg, err := f.handler.ApproveApplication("app-1", admin)
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, models.AppStatusApproved, f.apps.recs["app-1"].Status)
		require.True(t, f.contracts.approved["contract-1"])
		require.Equal(t, []bool{true}, f.notify.decisions)
		last := f.reviews.events[len(f.reviews.events)-1]
		require.Equal(t, models.EventApplicationApproved, last.EventType)
	})

	t.Run(`missing sections block the approval`, func(t *testing.T) {
		f := newFixture(models.AppStatusUnderReview)
		hMsg, err := f.handler.ApproveApplication("app-1", admin)
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
	})
}

func TestRejectApplication(t *testing.T) {
	t.Run(`a rejection records the note and notifies the issuer`, func(t *testing.T) {
		f := newFixture(models.AppStatusUnderReview)
		hMsg, err := f.handler.RejectApplication("app-1", "insufficient collateral", admin)
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, models.AppStatusRejected, f.apps.recs["app-1"].Status)
		require.Equal(t, []bool{false}, f.notify.decisions)
		last := f.reviews.events[len(f.reviews.events)-1]
		require.Equal(t, models.EventApplicationRejected, last.EventType)
		require.Equal(t, "insufficient collateral", last.Note)
	})

	t.Run(`a rejection without a remark is refused`, func(t *testing.T) {
		f := newFixture(models.AppStatusUnderReview)
		hMsg, err := f.handler.RejectApplication("app-1", "", admin)
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
	})
}

func TestGet(t *testing.T) {
	t.Run(`the review view reports approvability`, func(t *testing.T) {
		f := newFixture(models.AppStatusUnderReview)
		require.NoError(t, f.reviews.EnsureSections("app-1"))
		view, hMsg, err := f.handler.Get("app-1")
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.False(t, view.CanApprove)
		require.Len(t, view.Sections, 3)

		for _, section := range models.ReviewSections {
			f.reviews.sections[section] = models.ReviewStatusApproved
		}
		view, hMsg, err = f.handler.Get("app-1")
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.True(t, view.CanApprove)
	})
}
