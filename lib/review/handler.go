package reviewhandler

import (
	"bytes"
	"strings"

	"gorm.io/gorm"

	"fin-tools-backend/db"
	applicationstore "fin-tools-backend/lib/application/store"
	contractstore "fin-tools-backend/lib/contract/store"
	pdfexport "fin-tools-backend/lib/export/pdf"
	xlsexport "fin-tools-backend/lib/export/xls"
	invoicestore "fin-tools-backend/lib/invoice/store"
	notificationhandler "fin-tools-backend/lib/notification"
	reviewstore "fin-tools-backend/lib/review/store"
	"fin-tools-backend/models"
	applicationapimodels "fin-tools-backend/models/api/application"
	reviewapimodels "fin-tools-backend/models/api/review"
	dbmodels "fin-tools-backend/models/db"
)

// Actor identifies the admin performing a review transition; it is stamped
// onto every audit event.
type Actor struct {
	ID   string
	Name string
}

type Provider interface {
	Get(applicationID string) (view reviewapimodels.ReviewView, hMsg string, err error)
	Feed(applicationID string) (list []reviewapimodels.EventView, hMsg string, err error)

	ApproveSection(applicationID string, section models.ReviewSectionKey, actor Actor) (hMsg string, err error)
	RejectSection(applicationID string, section models.ReviewSectionKey, note string, actor Actor) (hMsg string, err error)
	RequestSectionAmendment(applicationID string, section models.ReviewSectionKey, note string, actor Actor) (hMsg string, err error)

	ApproveItem(applicationID string, itemType models.ReviewItemType, itemKey string, actor Actor) (hMsg string, err error)
	RejectItem(applicationID string, itemType models.ReviewItemType, itemKey, note string, actor Actor) (hMsg string, err error)
	RequestItemAmendment(applicationID string, itemType models.ReviewItemType, itemKey, note string, actor Actor) (hMsg string, err error)

	// ApproveApplication re-checks every section against the store in the
	// same call; a stale console that missed a rejection can not slip an
	// approval through.
	ApproveApplication(applicationID string, actor Actor) (hMsg string, err error)
	RejectApplication(applicationID, note string, actor Actor) (hMsg string, err error)

	// IssuerNotes lists amendment instructions for the issuer portal, scoped
	// to the owning organization.
	IssuerNotes(orgID, applicationID string) (list []reviewapimodels.NoteView, hMsg string, err error)

	GetApplication(applicationID string) (view applicationapimodels.ApplicationView, hMsg string, err error)
	ListApplications(filter applicationapimodels.Filter) (list []applicationapimodels.ApplicationView, rowCount int64, err error)
	ExportApplicationsXLSX(filter applicationapimodels.Filter) (*bytes.Buffer, error)
	ExportApplicationPDF(applicationID string) (pdfFile []byte, hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		apps:      applicationstore.NewInstance(db.DB),
		reviews:   reviewstore.NewInstance(db.DB),
		invoices:  invoicestore.NewInstance(db.DB),
		contracts: contractstore.NewInstance(db.DB),
		notify:    notificationhandler.Instance,
	}
}

func NewHandlerWithTx(tx *gorm.DB, notify notificationhandler.Provider) Provider {
	return impl{
		apps:      applicationstore.NewInstance(tx),
		reviews:   reviewstore.NewInstance(tx),
		invoices:  invoicestore.NewInstance(tx),
		contracts: contractstore.NewInstance(tx),
		notify:    notify,
	}
}

type impl struct {
	apps      applicationstore.Provider
	reviews   reviewstore.Provider
	invoices  invoicestore.Provider
	contracts contractstore.Provider
	notify    notificationhandler.Provider
}

func (i impl) Get(applicationID string) (view reviewapimodels.ReviewView, hMsg string, err error) {
	rec, err := i.apps.AdminGetByID(applicationID)
	if err != nil {
		return view, "", err
	}
	if rec == nil {
		return view, "application not found", nil
	}
	sections, err := i.reviews.ListSections(applicationID)
	if err != nil {
		return view, "", err
	}
	items, err := i.reviews.ListItems(applicationID)
	if err != nil {
		return view, "", err
	}
	view = reviewapimodels.ReviewView{
		ApplicationID: applicationID,
		Status:        rec.Status,
		Sections:      make([]reviewapimodels.SectionView, 0, len(sections)),
		Items:         make([]reviewapimodels.ItemView, 0, len(items)),
		CanApprove:    rec.Status.IsReviewable() && allSectionsApproved(sections),
	}
	for _, section := range sections {
		view.Sections = append(view.Sections, reviewapimodels.ToSectionView(section))
	}
	for _, item := range items {
		view.Items = append(view.Items, reviewapimodels.ToItemView(item))
	}
	return view, "", nil
}

func (i impl) Feed(applicationID string) (list []reviewapimodels.EventView, hMsg string, err error) {
	rec, err := i.apps.AdminGetByID(applicationID)
	if err != nil {
		return nil, "", err
	}
	if rec == nil {
		return nil, "application not found", nil
	}
	events, err := i.reviews.ListEvents(applicationID)
	if err != nil {
		return nil, "", err
	}
	list = make([]reviewapimodels.EventView, 0, len(events))
	for _, event := range events {
		list = append(list, reviewapimodels.ToEventView(event))
	}
	return list, "", nil
}

func (i impl) ApproveSection(applicationID string, section models.ReviewSectionKey, actor Actor) (hMsg string, err error) {
	return i.sectionAction(applicationID, section, models.ReviewStatusApproved, models.EventSectionApproved, "", actor)
}

func (i impl) RejectSection(applicationID string, section models.ReviewSectionKey, note string, actor Actor) (hMsg string, err error) {
	if strings.TrimSpace(note) == "" {
		return "a remark is required for this action", nil
	}
	return i.sectionAction(applicationID, section, models.ReviewStatusRejected, models.EventSectionRejected, note, actor)
}

func (i impl) RequestSectionAmendment(applicationID string, section models.ReviewSectionKey, note string, actor Actor) (hMsg string, err error) {
	if strings.TrimSpace(note) == "" {
		return "a remark is required for this action", nil
	}
	return i.sectionAction(applicationID, section, models.ReviewStatusAmendmentRequested, models.EventSectionAmendment, note, actor)
}

func (i impl) ApproveItem(applicationID string, itemType models.ReviewItemType, itemKey string, actor Actor) (hMsg string, err error) {
	return i.itemAction(applicationID, itemType, itemKey, models.ReviewStatusApproved, models.EventItemApproved, "", actor)
}

func (i impl) RejectItem(applicationID string, itemType models.ReviewItemType, itemKey, note string, actor Actor) (hMsg string, err error) {
	if strings.TrimSpace(note) == "" {
		return "a remark is required for this action", nil
	}
	return i.itemAction(applicationID, itemType, itemKey, models.ReviewStatusRejected, models.EventItemRejected, note, actor)
}

func (i impl) RequestItemAmendment(applicationID string, itemType models.ReviewItemType, itemKey, note string, actor Actor) (hMsg string, err error) {
	if strings.TrimSpace(note) == "" {
		return "a remark is required for this action", nil
	}
	return i.itemAction(applicationID, itemType, itemKey, models.ReviewStatusAmendmentRequested, models.EventItemAmendment, note, actor)
}

func (i impl) ApproveApplication(applicationID string, actor Actor) (hMsg string, err error) {
	rec, hMsg, err := i.reviewableApplication(applicationID)
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	sections, err := i.reviews.ListSections(applicationID)
	if err != nil {
		return "", err
	}
	if len(sections) < len(models.ReviewSections) || !allSectionsApproved(sections) {
		return "every review section must be approved first", nil
	}
	err = i.apps.AdminUpdate(applicationID, map[string]interface{}{"status": models.AppStatusApproved})
	if err != nil {
		return "", err
	}
	if rec.FinancingStructure == models.StructureNewContract && rec.ContractID != "" {
		// the application's own contract becomes selectable as an existing
		// contract by the organization's next applications
		err = i.contracts.Update(rec.OrganizationID, rec.ContractID, map[string]interface{}{"approved": true})
		if err != nil {
			return "", err
		}
	}
	err = i.appendEvent(applicationID, models.EventApplicationApproved, "", "", actor)
	if err != nil {
		return "", err
	}
	i.notify.ApplicationDecided(rec, true, "")
	return "", nil
}

func (i impl) RejectApplication(applicationID, note string, actor Actor) (hMsg string, err error) {
	if strings.TrimSpace(note) == "" {
		return "a remark is required for this action", nil
	}
	rec, hMsg, err := i.reviewableApplication(applicationID)
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	err = i.apps.AdminUpdate(applicationID, map[string]interface{}{"status": models.AppStatusRejected})
	if err != nil {
		return "", err
	}
	err = i.appendEvent(applicationID, models.EventApplicationRejected, "", note, actor)
	if err != nil {
		return "", err
	}
	i.notify.ApplicationDecided(rec, false, note)
	return "", nil
}

func (i impl) IssuerNotes(orgID, applicationID string) (list []reviewapimodels.NoteView, hMsg string, err error) {
	rec, err := i.apps.GetByID(orgID, applicationID)
	if err != nil {
		return nil, "", err
	}
	if rec == nil {
		return nil, "application not found", nil
	}
	notes, err := i.reviews.ListNotes(applicationID)
	if err != nil {
		return nil, "", err
	}
	list = make([]reviewapimodels.NoteView, 0, len(notes))
	for _, note := range notes {
		list = append(list, reviewapimodels.ToNoteView(note))
	}
	return list, "", nil
}

func (i impl) GetApplication(applicationID string) (view applicationapimodels.ApplicationView, hMsg string, err error) {
	rec, err := i.apps.AdminGetByID(applicationID)
	if err != nil {
		return view, "", err
	}
	if rec == nil {
		return view, "application not found", nil
	}
	return applicationapimodels.ToApplicationView(*rec, "", models.BlockReasonNone), "", nil
}

func (i impl) ListApplications(filter applicationapimodels.Filter) (list []applicationapimodels.ApplicationView, rowCount int64, err error) {
	rowCount, err = i.apps.AdminListCount(filter)
	if err != nil {
		return nil, 0, err
	}
	recs, err := i.apps.AdminList(filter)
	if err != nil {
		return nil, 0, err
	}
	list = make([]applicationapimodels.ApplicationView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, applicationapimodels.ToApplicationView(rec, "", models.BlockReasonNone))
	}
	return list, rowCount, nil
}

func (i impl) ExportApplicationsXLSX(filter applicationapimodels.Filter) (*bytes.Buffer, error) {
	recs, err := i.apps.AdminList(filter)
	if err != nil {
		return nil, err
	}
	return xlsexport.Instance.ExportApplicationList(recs)
}

func (i impl) ExportApplicationPDF(applicationID string) (pdfFile []byte, hMsg string, err error) {
	rec, err := i.apps.AdminGetByID(applicationID)
	if err != nil {
		return nil, "", err
	}
	if rec == nil {
		return nil, "application not found", nil
	}
	invoices, err := i.invoices.ListByApplication(rec.OrganizationID, applicationID)
	if err != nil {
		return nil, "", err
	}
	pdfFile, err = pdfexport.GenerateApplicationSummary(*rec, rec.Contract, invoices)
	if err != nil {
		return nil, "", err
	}
	return pdfFile, "", nil
}

func (i impl) sectionAction(applicationID string, section models.ReviewSectionKey, status models.ReviewStatus, eventType models.ReviewEventType, note string, actor Actor) (hMsg string, err error) {
	if !section.IsValid() {
		return "unknown review section", nil
	}
	rec, hMsg, err := i.reviewableApplication(applicationID)
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	err = i.reviews.EnsureSections(applicationID)
	if err != nil {
		return "", err
	}
	err = i.reviews.SetSectionStatus(applicationID, section, status)
	if err != nil {
		return "", err
	}
	err = i.appendEvent(applicationID, eventType, string(section), note, actor)
	if err != nil {
		return "", err
	}
	if status == models.ReviewStatusAmendmentRequested {
		err = i.sendBackForAmendment(rec, string(section), note, actor)
		if err != nil {
			return "", err
		}
	}
	return "", nil
}

func (i impl) itemAction(applicationID string, itemType models.ReviewItemType, itemKey string, status models.ReviewStatus, eventType models.ReviewEventType, note string, actor Actor) (hMsg string, err error) {
	if !itemType.IsValid() {
		return "unknown review item type", nil
	}
	rec, hMsg, err := i.reviewableApplication(applicationID)
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	hMsg, err = i.checkItemKey(rec, itemType, itemKey)
	if err != nil || hMsg != "" {
		return hMsg, err
	}
	err = i.reviews.UpsertItemStatus(applicationID, itemType, itemKey, status)
	if err != nil {
		return "", err
	}
	if itemType == models.ReviewItemInvoice {
		// the invoice row carries its own review status for the issuer list
		invoiceID := strings.TrimPrefix(itemKey, "invoice:")
		err = i.invoices.Update(rec.OrganizationID, invoiceID, map[string]interface{}{"review_status": status})
		if err != nil {
			return "", err
		}
	}
	err = i.appendEvent(applicationID, eventType, itemKey, note, actor)
	if err != nil {
		return "", err
	}
	if status == models.ReviewStatusAmendmentRequested {
		err = i.sendBackForAmendment(rec, itemKey, note, actor)
		if err != nil {
			return "", err
		}
	}
	return "", nil
}

// reviewableApplication loads the application and moves it to UNDER_REVIEW
// on the first admin touch after submission.
func (i impl) reviewableApplication(applicationID string) (rec *dbmodels.Application, hMsg string, err error) {
	rec, err = i.apps.AdminGetByID(applicationID)
	if err != nil {
		return nil, "", err
	}
	if rec == nil {
		return nil, "application not found", nil
	}
	if !rec.Status.IsReviewable() {
		return nil, "the application is not under review", nil
	}
	if rec.Status != models.AppStatusUnderReview {
		err = i.apps.AdminUpdate(applicationID, map[string]interface{}{"status": models.AppStatusUnderReview})
		if err != nil {
			return nil, "", err
		}
		rec.Status = models.AppStatusUnderReview
	}
	return rec, "", nil
}

// checkItemKey verifies the key addresses a real invoice or document of this
// application; derived keys coming from the console are never trusted as-is.
func (i impl) checkItemKey(rec *dbmodels.Application, itemType models.ReviewItemType, itemKey string) (hMsg string, err error) {
	switch itemType {
	case models.ReviewItemInvoice:
		invoiceID := strings.TrimPrefix(itemKey, "invoice:")
		if invoiceID == itemKey || invoiceID == "" {
			return "malformed invoice review key", nil
		}
		invoice, err := i.invoices.GetByID(rec.OrganizationID, invoiceID)
		if err != nil {
			return "", err
		}
		if invoice == nil || invoice.ApplicationID != rec.ID {
			return "the invoice does not belong to this application", nil
		}
	case models.ReviewItemDocument:
		for _, known := range documentKeys(rec) {
			if known == itemKey {
				return "", nil
			}
		}
		return "the document does not belong to this application", nil
	}
	return "", nil
}

// documentKeys recomputes the stable review keys of the supporting
// documents stored in the step payload.
func documentKeys(rec *dbmodels.Application) []string {
	raw, ok := rec.SupportingDocumentsData["documents"].([]interface{})
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(raw))
	for idx, entry := range raw {
		doc, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		category, _ := doc["category"].(string)
		name, _ := doc["name"].(string)
		keys = append(keys, models.DocumentItemKey(category, idx, name))
	}
	return keys
}

func (i impl) sendBackForAmendment(rec *dbmodels.Application, scopeKey, note string, actor Actor) error {
	err := i.apps.AdminUpdate(rec.ID, map[string]interface{}{"status": models.AppStatusAmendmentRequested})
	if err != nil {
		return err
	}
	err = i.reviews.AppendNote(dbmodels.ReviewNote{
		ApplicationID: rec.ID,
		ScopeKey:      scopeKey,
		Note:          note,
		AuthorID:      actor.ID,
		AuthorName:    actor.Name,
	})
	if err != nil {
		return err
	}
	i.notify.AmendmentRequested(rec, note)
	return nil
}

func (i impl) appendEvent(applicationID string, eventType models.ReviewEventType, scopeKey, note string, actor Actor) error {
	return i.reviews.AppendEvent(dbmodels.ReviewEvent{
		ApplicationID: applicationID,
		EventType:     eventType,
		ScopeKey:      scopeKey,
		Note:          note,
		ActorID:       actor.ID,
		ActorName:     actor.Name,
	})
}

func allSectionsApproved(sections []dbmodels.ReviewSection) bool {
	if len(sections) == 0 {
		return false
	}
	for _, section := range sections {
		if section.Status != models.ReviewStatusApproved {
			return false
		}
	}
	return true
}
