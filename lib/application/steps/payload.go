package steps

import (
	dbmodels "fin-tools-backend/models/db"
)

func stringField(data dbmodels.StepPayload, key string) string {
	if data == nil {
		return ""
	}
	if value, ok := data[key].(string); ok {
		return value
	}
	return ""
}

func boolField(data dbmodels.StepPayload, key string) bool {
	if data == nil {
		return false
	}
	if value, ok := data[key].(bool); ok {
		return value
	}
	return false
}

func sliceField(data dbmodels.StepPayload, key string) []interface{} {
	if data == nil {
		return nil
	}
	if value, ok := data[key].([]interface{}); ok {
		return value
	}
	return nil
}

func mapEntry(value interface{}) dbmodels.StepPayload {
	if entry, ok := value.(map[string]interface{}); ok {
		return dbmodels.StepPayload(entry)
	}
	return nil
}

// configStrings reads a []string out of a step definition config blob,
// tolerating the []interface{} shape jsonb decoding produces.
func configStrings(config map[string]interface{}, key string) []string {
	if config == nil {
		return nil
	}
	switch value := config[key].(type) {
	case []string:
		return value
	case []interface{}:
		out := make([]string, 0, len(value))
		for _, item := range value {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
