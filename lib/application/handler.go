package applicationhandler

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"fin-tools-backend/db"
	applicationstore "fin-tools-backend/lib/application/store"
	"fin-tools-backend/lib/application/steps"
	contracthandler "fin-tools-backend/lib/contract"
	filestorage "fin-tools-backend/lib/file-storage"
	invoicehandler "fin-tools-backend/lib/invoice"
	notificationhandler "fin-tools-backend/lib/notification"
	producthandler "fin-tools-backend/lib/product"
	reviewstore "fin-tools-backend/lib/review/store"
	"fin-tools-backend/lib/workflow"
	"fin-tools-backend/models"
	applicationapimodels "fin-tools-backend/models/api/application"
	contractapimodels "fin-tools-backend/models/api/contract"
	dbmodels "fin-tools-backend/models/db"
)

type Provider interface {
	Create(ctx context.Context, orgID string, req applicationapimodels.CreateRequest) (id string, hMsg string, err error)
	GetByID(ctx context.Context, orgID, id string) (view applicationapimodels.ApplicationView, hMsg string, err error)
	List(ctx context.Context, orgID string, filter applicationapimodels.Filter) (list []applicationapimodels.ApplicationView, rowCount int64, err error)
	// LoadStep renders one wizard step: guard verdict, effective workflow and
	// persisted payload. requested = 0 resumes at the highest reachable step.
	LoadStep(ctx context.Context, orgID, id string, requested int, override models.FinancingStructure) (view applicationapimodels.StepView, hMsg string, err error)
	// SaveStep runs the save-and-continue transaction: validate, commit,
	// persist, advance. A non-empty hMsg means nothing was written.
	SaveStep(ctx context.Context, orgID, id string, req applicationapimodels.StepSaveRequest) (result applicationapimodels.SaveResult, hMsg string, err error)
	// Restart archives a drift-frozen application and opens a fresh one
	// against the product's current version.
	Restart(ctx context.Context, orgID, id string) (newID string, hMsg string, err error)
	Archive(orgID, id string) error
}

var Instance Provider

func NewHandler() {
	store := applicationstore.NewInstance(db.DB)
	Instance = impl{
		store:     store,
		products:  producthandler.Instance,
		contracts: contracthandler.Instance,
		invoices:  invoicehandler.Instance,
		reviews:   reviewstore.NewInstance(db.DB),
		notify:    notificationhandler.Instance,
		registry:  steps.NewRegistry(contracthandler.Instance, invoicehandler.Instance, filestorage.Instance),
	}
}

func NewHandlerWithTx(tx *gorm.DB, products producthandler.Provider, contracts contracthandler.Provider, invoices invoicehandler.Provider, notify notificationhandler.Provider) Provider {
	return impl{
		store:     applicationstore.NewInstance(tx),
		products:  products,
		contracts: contracts,
		invoices:  invoices,
		reviews:   reviewstore.NewInstance(tx),
		notify:    notify,
		registry:  steps.NewRegistry(contracts, invoices, filestorage.Instance),
	}
}

type impl struct {
	store     applicationstore.Provider
	products  producthandler.Provider
	contracts contracthandler.Provider
	invoices  invoicehandler.Provider
	reviews   reviewstore.Provider
	notify    notificationhandler.Provider
	registry  *steps.Registry
}

func (i impl) Create(ctx context.Context, orgID string, req applicationapimodels.CreateRequest) (id string, hMsg string, err error) {
	if err = req.Validate(); err != nil {
		return "", err.Error(), nil
	}
	product, err := i.products.GetRecord(ctx, req.ProductID)
	if err != nil {
		return "", "", err
	}
	if product == nil {
		return "", "product not found", nil
	}
	if !product.Active {
		return "", "the product does not accept new applications", nil
	}
	if len(product.Steps) == 0 {
		return "", "", errors.Errorf("product %v has no workflow steps", product.ID)
	}
	rec := dbmodels.Application{
		ProductID:      product.ID,
		ProductVersion: product.Version,
		// the step list is snapshotted here; later product edits freeze the
		// application instead of reshaping it
		WorkflowSnapshot: product.Steps,
		Status:           models.AppStatusDraft,
		FinancingType:    req.FinancingType,
		FinancingTypeData: dbmodels.StepPayload{
			"financing_type": string(req.FinancingType),
		},
		// the financing type is chosen at creation, which completes step 1
		LastCompletedStep: 1,
	}
	rec.OrganizationID = orgID
	id, err = i.store.Create(rec)
	if err != nil {
		return "", "", err
	}
	return id, "", nil
}

func (i impl) GetByID(ctx context.Context, orgID, id string) (view applicationapimodels.ApplicationView, hMsg string, err error) {
	rec, err := i.store.GetByID(orgID, id)
	if err != nil {
		return view, "", err
	}
	if rec == nil {
		return view, "application not found", nil
	}
	blockReason, productName, err := i.driftAndName(ctx, rec)
	if err != nil {
		return view, "", err
	}
	return applicationapimodels.ToApplicationView(*rec, productName, blockReason), "", nil
}

func (i impl) List(ctx context.Context, orgID string, filter applicationapimodels.Filter) (list []applicationapimodels.ApplicationView, rowCount int64, err error) {
	rowCount, err = i.store.ListCount(orgID, filter)
	if err != nil {
		return nil, 0, err
	}
	recs, err := i.store.List(orgID, filter)
	if err != nil {
		return nil, 0, err
	}
	list = make([]applicationapimodels.ApplicationView, 0, len(recs))
	for _, rec := range recs {
		blockReason, productName, err := i.driftAndName(ctx, &rec)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, applicationapimodels.ToApplicationView(rec, productName, blockReason))
	}
	return list, rowCount, nil
}

func (i impl) LoadStep(ctx context.Context, orgID, id string, requested int, override models.FinancingStructure) (view applicationapimodels.StepView, hMsg string, err error) {
	rec, err := i.store.GetByID(orgID, id)
	if err != nil {
		return view, "", err
	}
	if rec == nil {
		return view, "application not found", nil
	}
	blockReason, err := i.products.CheckDrift(ctx, rec.ProductID, rec.ProductVersion)
	if err != nil {
		return view, "", err
	}

	structure := workflow.EffectiveStructure(rec.FinancingStructure, override)
	eff := workflow.EffectiveWorkflow(rec.WorkflowSnapshot, structure)
	nav := workflow.Guard(requested, rec.LastCompletedStep, len(eff))

	stepDef, ok := workflow.StepAt(eff, nav.Position)
	if !ok {
		// the watermark points past the current workflow after a shrink;
		// land on the last remaining step
		nav = workflow.Navigation{Position: len(eff), Redirected: true}
		stepDef, ok = workflow.StepAt(eff, nav.Position)
		if !ok {
			return view, "", errors.Errorf("application %v has an empty workflow", rec.ID)
		}
	}

	data, err := i.stepViewData(ctx, orgID, rec, stepDef.Key)
	if err != nil {
		return view, "", err
	}

	return applicationapimodels.StepView{
		Navigation: applicationapimodels.StepNavigation{
			Position:   nav.Position,
			Redirected: nav.Redirected,
			Notice:     nav.Notice,
		},
		Key:               stepDef.Key,
		Title:             stepDef.Title,
		Data:              data,
		LastCompletedStep: rec.LastCompletedStep,
		Workflow:          workflowViews(eff, rec.LastCompletedStep),
		Structure:         structure,
		BlockReason:       blockReason,
		BlockNotice:       blockReason.ToHuman(),
	}, "", nil
}

func (i impl) SaveStep(ctx context.Context, orgID, id string, req applicationapimodels.StepSaveRequest) (result applicationapimodels.SaveResult, hMsg string, err error) {
	if err = req.Validate(); err != nil {
		return result, err.Error(), nil
	}
	rec, err := i.store.GetByID(orgID, id)
	if err != nil {
		return result, "", err
	}
	if rec == nil {
		return result, "application not found", nil
	}
	if !rec.Status.IsEditable() {
		return result, "the application can no longer be edited", nil
	}
	blockReason, err := i.products.CheckDrift(ctx, rec.ProductID, rec.ProductVersion)
	if err != nil {
		return result, "", err
	}
	if blockReason != models.BlockReasonNone {
		return result, blockReason.ToHuman(), nil
	}

	structure := workflow.EffectiveStructure(rec.FinancingStructure, req.StructureOverride)
	eff := workflow.EffectiveWorkflow(rec.WorkflowSnapshot, structure)
	nav := workflow.Guard(req.Step, rec.LastCompletedStep, len(eff))
	if nav.Redirected {
		return result, noticeOr(nav, "the requested step is not reachable yet"), nil
	}
	stepDef, ok := workflow.StepAt(eff, nav.Position)
	if !ok {
		return result, "the requested step is not part of the workflow", nil
	}
	handler, ok := i.registry.Resolve(stepDef.Key)
	if !ok {
		return result, "this step can not be saved", nil
	}

	sc := &steps.StepContext{
		OrgID:     orgID,
		App:       rec,
		StepDef:   stepDef,
		Data:      req.Data,
		Structure: structure,
	}
	hMsg, err = handler.Validate(ctx, sc)
	if err != nil {
		return result, "", err
	}
	if hMsg != "" {
		return result, hMsg, nil
	}

	// reselecting the already persisted structure is a pure navigation: no
	// record write, no contract churn, the issuer just moves on
	if stepDef.Key == models.StepFinancingStructure &&
		rec.FinancingStructure.IsResolved() &&
		steps.ChosenStructure(req.Data) == rec.FinancingStructure {
		return applicationapimodels.SaveResult{
			NextStep:          minInt(nav.Position+1, len(eff)),
			LastCompletedStep: rec.LastCompletedStep,
			Workflow:          workflowViews(eff, rec.LastCompletedStep),
			Structure:         rec.FinancingStructure,
		}, "", nil
	}

	committed, err := handler.Commit(ctx, sc)
	if err != nil {
		return result, "", err
	}
	payload := steps.MergePayload(handler.MergePolicy(), req.Data, committed)

	updMap := map[string]interface{}{}
	if col := dbmodels.PayloadColumn(stepDef.Key); col != "" {
		updMap[col] = payload
	}

	newStructure := rec.FinancingStructure
	newWatermark := maxInt(rec.LastCompletedStep, nav.Position)

	switch stepDef.Key {
	case models.StepFinancingType:
		if ft, ok := payload["financing_type"].(string); ok {
			updMap["financing_type"] = models.FinancingType(ft)
		}
	case models.StepFinancingStructure:
		newStructure = steps.ChosenStructure(payload)
		updMap["financing_structure"] = newStructure
		switch newStructure {
		case models.StructureNewContract:
			if contractID, ok := payload["contract_id"].(string); ok && contractID != "" {
				updMap["contract_id"] = contractID
			}
		case models.StructureExistingContract:
			updMap["contract_id"] = payload["existing_contract_id"]
		default:
			updMap["contract_id"] = ""
		}
		// changing the structure invalidates everything saved after this
		// step; the watermark rewinds so downstream steps are revisited
		newWatermark = nav.Position
	}
	updMap["last_completed_step"] = newWatermark

	err = i.store.Update(orgID, id, updMap)
	if err != nil {
		return result, "", err
	}

	submitted := false
	if stepDef.Key == models.StepReviewSubmit {
		newStatus := models.AppStatusSubmitted
		if rec.Status == models.AppStatusAmendmentRequested {
			newStatus = models.AppStatusResubmitted
		}
		err = i.store.Update(orgID, id, map[string]interface{}{"status": newStatus})
		if err != nil {
			return result, "", err
		}
		err = i.reviews.EnsureSections(rec.ID)
		if err != nil {
			return result, "", err
		}
		if newStatus == models.AppStatusResubmitted {
			// sections sent back for amendment get a fresh look; approvals
			// and rejections from the previous round stand
			err = i.reviews.ResetSections(rec.ID, models.ReviewStatusAmendmentRequested, models.ReviewStatusPending)
			if err != nil {
				return result, "", err
			}
			err = i.reviews.ResolveNotes(rec.ID)
			if err != nil {
				return result, "", err
			}
		}
		i.notify.ApplicationSubmitted(rec, newStatus)
		submitted = true
	}

	// the workflow may have reshaped on a structure change; the next step
	// comes from the new effective list, never the stale one
	newEff := workflow.EffectiveWorkflow(rec.WorkflowSnapshot, newStructure)
	pos := workflow.PositionOf(newEff, stepDef.Key)
	if pos == 0 {
		pos = minInt(nav.Position, len(newEff))
	}
	return applicationapimodels.SaveResult{
		NextStep:          minInt(pos+1, len(newEff)),
		LastCompletedStep: newWatermark,
		Workflow:          workflowViews(newEff, newWatermark),
		Structure:         newStructure,
		Submitted:         submitted,
	}, "", nil
}

func (i impl) Restart(ctx context.Context, orgID, id string) (newID string, hMsg string, err error) {
	rec, err := i.store.GetByID(orgID, id)
	if err != nil {
		return "", "", err
	}
	if rec == nil {
		return "", "application not found", nil
	}
	if rec.Status.IsTerminal() {
		return "", "a decided application can not be restarted", nil
	}
	product, err := i.products.GetRecord(ctx, rec.ProductID)
	if err != nil {
		return "", "", err
	}
	if product == nil {
		return "", "the product is no longer available, the application can not be restarted", nil
	}
	newID, hMsg, err = i.Create(ctx, orgID, applicationapimodels.CreateRequest{
		ProductID:     rec.ProductID,
		FinancingType: rec.FinancingType,
	})
	if err != nil || hMsg != "" {
		return "", hMsg, err
	}
	err = i.store.Archive(orgID, id)
	if err != nil {
		return "", "", err
	}
	return newID, "", nil
}

func (i impl) Archive(orgID, id string) error {
	return i.store.Archive(orgID, id)
}

// stepViewData resolves what the portal renders into the step form. Most
// steps read their own payload column; contract and invoice details live on
// child records and are projected back into payload shape.
func (i impl) stepViewData(ctx context.Context, orgID string, rec *dbmodels.Application, key models.StepKey) (dbmodels.StepPayload, error) {
	switch key {
	case models.StepContractDetails:
		if rec.ContractID == "" {
			return nil, nil
		}
		contract, err := i.contracts.GetRecord(orgID, rec.ContractID)
		if err != nil {
			return nil, err
		}
		if contract == nil {
			return nil, nil
		}
		return toPayload(contractapimodels.ToContractView(*contract))
	case models.StepInvoiceDetails:
		invoices, err := i.invoices.ListByApplication(orgID, rec.ID)
		if err != nil {
			return nil, err
		}
		return dbmodels.StepPayload{"invoices": invoices}, nil
	}
	return rec.StepData(key), nil
}

func (i impl) driftAndName(ctx context.Context, rec *dbmodels.Application) (models.BlockReason, string, error) {
	blockReason, err := i.products.CheckDrift(ctx, rec.ProductID, rec.ProductVersion)
	if err != nil {
		return models.BlockReasonNone, "", err
	}
	productName := ""
	if blockReason != models.BlockProductDeleted {
		product, err := i.products.GetRecord(ctx, rec.ProductID)
		if err != nil {
			return models.BlockReasonNone, "", err
		}
		if product != nil {
			productName = product.Name
		}
	}
	return blockReason, productName, nil
}

func workflowViews(eff dbmodels.StepDefinitions, lastCompleted int) []applicationapimodels.WorkflowStepView {
	out := make([]applicationapimodels.WorkflowStepView, 0, len(eff))
	for idx, step := range eff {
		out = append(out, applicationapimodels.WorkflowStepView{
			Position:  idx + 1,
			Key:       step.Key,
			Title:     step.Title,
			Completed: idx+1 <= lastCompleted,
			Config:    step.Config,
		})
	}
	return out
}

func toPayload(v interface{}) (dbmodels.StepPayload, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := dbmodels.StepPayload{}
	if err = json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func noticeOr(nav workflow.Navigation, fallback string) string {
	if nav.Notice != "" {
		return nav.Notice
	}
	return fallback
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
