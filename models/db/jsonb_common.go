package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"fin-tools-backend/models"
)

// StepPayload is a step-defined semi-structured blob. The host persists it
// opaquely; only step handlers know its shape.
type StepPayload map[string]interface{}

func (j StepPayload) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *StepPayload) Scan(value any) error {
	if value == nil {
		*j = nil
		return nil
	}
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

// StepDefinition describes one workflow step of a product: a stable key,
// display title and a step-defined config blob (declaration texts, required
// document categories and the like).
type StepDefinition struct {
	Key    models.StepKey         `json:"key"`
	Title  string                 `json:"title"`
	Config map[string]interface{} `json:"config,omitempty"`
}

type StepDefinitions []StepDefinition

func (j StepDefinitions) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *StepDefinitions) Scan(value any) error {
	if value == nil {
		*j = nil
		return nil
	}
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

func (j StepDefinitions) Keys() []models.StepKey {
	keys := make([]models.StepKey, 0, len(j))
	for _, def := range j {
		keys = append(keys, def.Key)
	}
	return keys
}

// ByKey resolves a step definition by its stable key.
func (j StepDefinitions) ByKey(key models.StepKey) (StepDefinition, bool) {
	for _, def := range j {
		if def.Key == key {
			return def, true
		}
	}
	return StepDefinition{}, false
}
