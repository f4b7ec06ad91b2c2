package productapimodels

import (
	"time"

	"github.com/pkg/errors"

	"fin-tools-backend/models"
	dbmodels "fin-tools-backend/models/db"
)

type ProductData struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Active      *bool                    `json:"active,omitempty"`
	Steps       dbmodels.StepDefinitions `json:"steps"`
}

func (r ProductData) Validate() error {
	if r.Name == "" {
		return errors.New("product name is not specified")
	}
	if len(r.Steps) == 0 {
		return errors.New("product has no workflow steps")
	}
	seen := map[models.StepKey]bool{}
	for _, step := range r.Steps {
		if !step.Key.IsValid() {
			return errors.Errorf("unknown step key: %v", step.Key)
		}
		if seen[step.Key] {
			return errors.Errorf("duplicate step key: %v", step.Key)
		}
		seen[step.Key] = true
	}
	if r.Steps[0].Key != models.StepFinancingType {
		return errors.New("workflow must begin with the financing type step")
	}
	return nil
}

type ProductView struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Version     int                      `json:"version"`
	Active      bool                     `json:"active"`
	Steps       dbmodels.StepDefinitions `json:"steps"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

func ToProductView(rec dbmodels.Product) ProductView {
	return ProductView{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		Version:     rec.Version,
		Active:      rec.Active,
		Steps:       rec.Steps,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}
