package applicationapimodels

import (
	"time"

	"github.com/pkg/errors"

	"fin-tools-backend/models"
	apimodels "fin-tools-backend/models/api"
	dbmodels "fin-tools-backend/models/db"
)

type CreateRequest struct {
	ProductID     string               `json:"product_id"`
	FinancingType models.FinancingType `json:"financing_type"`
}

func (r CreateRequest) Validate() error {
	if r.ProductID == "" {
		return errors.New("product is not specified")
	}
	if !r.FinancingType.IsValid() {
		return errors.New("unknown financing type")
	}
	return nil
}

// StepSaveRequest is the save-and-continue body. Data is opaque to the host;
// the step handler resolved for Step owns its shape. StructureOverride is
// the not-yet-persisted financing-structure choice threaded explicitly, so
// the conditional step skip applies before the save lands.
type StepSaveRequest struct {
	Step              int                       `json:"step"`
	Data              dbmodels.StepPayload      `json:"data"`
	StructureOverride models.FinancingStructure `json:"structure_override,omitempty"`
}

func (r StepSaveRequest) Validate() error {
	if r.Step < 1 {
		return errors.New("step position is not specified")
	}
	if r.StructureOverride != models.StructureUnresolved && !r.StructureOverride.IsValid() {
		return errors.New("unknown financing structure")
	}
	return nil
}

// StepNavigation is the guard's verdict for a requested step position. When
// Redirected is set the portal must replace its location with Position and
// surface Notice, if any.
type StepNavigation struct {
	Position   int    `json:"position"`
	Redirected bool   `json:"redirected"`
	Notice     string `json:"notice,omitempty"`
}

type WorkflowStepView struct {
	Position  int                    `json:"position"`
	Key       models.StepKey         `json:"key"`
	Title     string                 `json:"title"`
	Completed bool                   `json:"completed"`
	Config    map[string]interface{} `json:"config,omitempty"`
}

// StepView is everything the portal needs to render one wizard step: the
// guard verdict, the effective workflow and the persisted payload.
type StepView struct {
	Navigation        StepNavigation       `json:"navigation"`
	Key               models.StepKey       `json:"key"`
	Title             string               `json:"title"`
	Data              dbmodels.StepPayload `json:"data,omitempty"`
	LastCompletedStep int                  `json:"last_completed_step"`
	Workflow          []WorkflowStepView   `json:"workflow"`
	Structure         models.FinancingStructure `json:"structure,omitempty"`
	BlockReason       models.BlockReason   `json:"block_reason,omitempty"`
	BlockNotice       string               `json:"block_notice,omitempty"`
}

// SaveResult is the authoritative post-save state returned by the
// save-and-continue transaction in the same round trip, so the portal never
// navigates against a stale watermark.
type SaveResult struct {
	NextStep          int                `json:"next_step"`
	LastCompletedStep int                `json:"last_completed_step"`
	Workflow          []WorkflowStepView `json:"workflow"`
	Structure         models.FinancingStructure `json:"structure,omitempty"`
	Submitted         bool               `json:"submitted"`
}

type ApplicationView struct {
	ID                 string                    `json:"id"`
	ProductID          string                    `json:"product_id"`
	ProductName        string                    `json:"product_name,omitempty"`
	OrganizationName   string                    `json:"organization_name,omitempty"`
	ProductVersion     int                       `json:"product_version"`
	Status             models.ApplicationStatus  `json:"status"`
	StatusName         string                    `json:"status_name"`
	FinancingType      models.FinancingType      `json:"financing_type,omitempty"`
	FinancingStructure models.FinancingStructure `json:"financing_structure,omitempty"`
	LastCompletedStep  int                       `json:"last_completed_step"`
	BlockReason        models.BlockReason        `json:"block_reason,omitempty"`
	CreatedAt          time.Time                 `json:"created_at"`
	UpdatedAt          time.Time                 `json:"updated_at"`
}

type Filter struct {
	Statuses []models.ApplicationStatus `json:"statuses,omitempty"`
	Search   string                     `json:"search,omitempty"`
	apimodels.Pagination
}

func (r Filter) Validate() error {
	for _, status := range r.Statuses {
		if !status.IsValid() {
			return errors.Errorf("unknown application status: %v", status)
		}
	}
	return nil
}

func ToApplicationView(rec dbmodels.Application, productName string, blockReason models.BlockReason) ApplicationView {
	orgName := ""
	if rec.Organization != nil {
		orgName = rec.Organization.Name
	}
	return ApplicationView{
		ID:                 rec.ID,
		ProductID:          rec.ProductID,
		ProductName:        productName,
		OrganizationName:   orgName,
		ProductVersion:     rec.ProductVersion,
		Status:             rec.Status,
		StatusName:         rec.Status.ToHuman(),
		FinancingType:      rec.FinancingType,
		FinancingStructure: rec.FinancingStructure,
		LastCompletedStep:  rec.LastCompletedStep,
		BlockReason:        blockReason,
		CreatedAt:          rec.CreatedAt,
		UpdatedAt:          rec.UpdatedAt,
	}
}
