package steps

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	filesapimodels "fin-tools-backend/models/api/files"
	dbmodels "fin-tools-backend/models/db"
)

type fakeStorage struct {
	objects map[string]bool
}

func (f fakeStorage) RequestUploadURL(ctx context.Context, orgID string, req filesapimodels.UploadURLRequest) (filesapimodels.UploadURLResponse, error) {
	return filesapimodels.UploadURLResponse{}, nil
}

func (f fakeStorage) ObjectExists(ctx context.Context, orgID, key string) (bool, error) {
	return f.objects[key], nil
}

func (f fakeStorage) DeleteObject(ctx context.Context, orgID, key string) {}

func documentsPayload(docs ...map[string]interface{}) dbmodels.StepPayload {
	raw := make([]interface{}, 0, len(docs))
	for _, doc := range docs {
		raw = append(raw, doc)
	}
	return dbmodels.StepPayload{"documents": raw}
}

func TestSupportingDocumentsValidate(t *testing.T) {
	step := supportingDocumentsStep{}
	ctx := context.Background()

	t.Run(`documents without an upload key are rejected`, func(t *testing.T) {
		sc := &StepContext{
			StepDef: dbmodels.StepDefinition{Key: step.Key()},
			Data: documentsPayload(
				map[string]interface{}{"category": "financial", "name": "report.pdf", "key": ""},
			),
		}
		hMsg, err := step.Validate(ctx, sc)
		require.NoError(t, err)
		require.Equal(t, "not all files have been uploaded yet", hMsg)
	})

	t.Run(`name and category are required`, func(t *testing.T) {
		sc := &StepContext{
			StepDef: dbmodels.StepDefinition{Key: step.Key()},
			Data: documentsPayload(
				map[string]interface{}{"category": "", "name": "report.pdf", "key": "org/abc.pdf"},
			),
		}
		hMsg, err := step.Validate(ctx, sc)
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
	})

	t.Run(`configured categories must be covered`, func(t *testing.T) {
		sc := &StepContext{
			StepDef: dbmodels.StepDefinition{
				Key:    step.Key(),
				Config: map[string]interface{}{"categories": []interface{}{"financial", "legal"}},
			},
			Data: documentsPayload(
				map[string]interface{}{"category": "financial", "name": "report.pdf", "key": "org/abc.pdf"},
			),
		}
		hMsg, err := step.Validate(ctx, sc)
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
	})

	t.Run(`complete upload set passes`, func(t *testing.T) {
		sc := &StepContext{
			StepDef: dbmodels.StepDefinition{
				Key:    step.Key(),
				Config: map[string]interface{}{"categories": []interface{}{"financial"}},
			},
			Data: documentsPayload(
				map[string]interface{}{"category": "financial", "name": "report.pdf", "key": "org/abc.pdf"},
			),
		}
		hMsg, err := step.Validate(ctx, sc)
		require.NoError(t, err)
		require.Empty(t, hMsg)
	})
}

func TestSupportingDocumentsCommit(t *testing.T) {
	ctx := context.Background()

	t.Run(`commit fails when an object is missing from storage`, func(t *testing.T) {
		step := supportingDocumentsStep{storage: fakeStorage{objects: map[string]bool{}}}
		sc := &StepContext{
			OrgID:   "org",
			StepDef: dbmodels.StepDefinition{Key: step.Key()},
			Data: documentsPayload(
				map[string]interface{}{"category": "financial", "name": "report.pdf", "key": "org/abc.pdf"},
			),
		}
		_, err := step.Commit(ctx, sc)
		require.Error(t, err)
	})

	t.Run(`commit normalizes the payload`, func(t *testing.T) {
		step := supportingDocumentsStep{storage: fakeStorage{objects: map[string]bool{"org/abc.pdf": true, "org/def.pdf": true}}}
		sc := &StepContext{
			OrgID:   "org",
			StepDef: dbmodels.StepDefinition{Key: step.Key()},
			Data: documentsPayload(
				map[string]interface{}{"category": "financial", "name": "report.pdf", "key": "org/abc.pdf"},
				map[string]interface{}{"category": "financial", "name": "accounts.pdf", "key": "org/def.pdf"},
			),
		}
		payload, err := step.Commit(ctx, sc)
		require.NoError(t, err)
		require.Len(t, payload["documents"], 2)
		require.Equal(t, []string{"financial"}, payload["categories"])
	})
}

func TestMergePayload(t *testing.T) {
	submitted := dbmodels.StepPayload{"a": 1, "b": 2}
	committed := dbmodels.StepPayload{"b": 3, "c": 4}

	t.Run(`merge keeps submitted fields absent from the committed payload`, func(t *testing.T) {
		out := MergePayload("merge", submitted, committed)
		require.Equal(t, 1, out["a"])
		require.Equal(t, 3, out["b"])
		require.Equal(t, 4, out["c"])
	})

	t.Run(`replace discards the submitted payload`, func(t *testing.T) {
		out := MergePayload("replace", submitted, committed)
		_, exist := out["a"]
		require.False(t, exist)
		require.Equal(t, 3, out["b"])
	})

	t.Run(`nil committed payload keeps the submitted one`, func(t *testing.T) {
		out := MergePayload("replace", submitted, nil)
		require.Equal(t, submitted, out)
	})
}
