package steps

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	filestorage "fin-tools-backend/lib/file-storage"
	"fin-tools-backend/models"
	dbmodels "fin-tools-backend/models/db"
)

type supportingDocumentsStep struct {
	storage filestorage.Provider
}

func (s supportingDocumentsStep) Key() models.StepKey {
	return models.StepSupportingDocuments
}

// The committed payload is normalized from the uploads (document list plus
// the derived category index), so it replaces the submitted one.
func (s supportingDocumentsStep) MergePolicy() models.MergePolicy {
	return models.MergePolicyReplace
}

type documentEntry struct {
	Category    string
	Name        string
	Key         string
	Size        float64
	ContentType string
}

func parseDocuments(data dbmodels.StepPayload) []documentEntry {
	raw := sliceField(data, "documents")
	out := make([]documentEntry, 0, len(raw))
	for _, item := range raw {
		entry := mapEntry(item)
		if entry == nil {
			continue
		}
		size, _ := entry["size"].(float64)
		out = append(out, documentEntry{
			Category:    stringField(entry, "category"),
			Name:        stringField(entry, "name"),
			Key:         stringField(entry, "key"),
			Size:        size,
			ContentType: stringField(entry, "content_type"),
		})
	}
	return out
}

func (s supportingDocumentsStep) Validate(ctx context.Context, sc *StepContext) (hMsg string, err error) {
	docs := parseDocuments(sc.Data)
	for _, doc := range docs {
		if doc.Name == "" || doc.Category == "" {
			return "every document needs a name and a category", nil
		}
		if doc.Key == "" {
			return "not all files have been uploaded yet", nil
		}
	}
	byCategory := map[string]int{}
	for _, doc := range docs {
		byCategory[doc.Category]++
	}
	for _, category := range configStrings(sc.StepDef.Config, "categories") {
		if byCategory[category] == 0 {
			return fmt.Sprintf("attach at least one document in the %q category", category), nil
		}
	}
	return "", nil
}

// Commit verifies every referenced object actually exists in storage, then
// rebuilds the payload in its normalized shape.
func (s supportingDocumentsStep) Commit(ctx context.Context, sc *StepContext) (dbmodels.StepPayload, error) {
	docs := parseDocuments(sc.Data)
	outDocs := make([]interface{}, 0, len(docs))
	categories := make([]string, 0)
	seenCategory := map[string]bool{}
	for _, doc := range docs {
		exists, err := s.storage.ObjectExists(ctx, sc.OrgID, doc.Key)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, errors.Errorf("uploaded file %q is missing from storage", doc.Name)
		}
		outDocs = append(outDocs, map[string]interface{}{
			"category":     doc.Category,
			"name":         doc.Name,
			"key":          doc.Key,
			"size":         doc.Size,
			"content_type": doc.ContentType,
		})
		if !seenCategory[doc.Category] {
			seenCategory[doc.Category] = true
			categories = append(categories, doc.Category)
		}
	}
	return dbmodels.StepPayload{
		"documents":  outDocs,
		"categories": categories,
	}, nil
}
