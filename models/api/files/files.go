package filesapimodels

import (
	"github.com/pkg/errors"
)

const maxUploadSize = 50 * 1024 * 1024

type UploadURLRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	FileSize    int64  `json:"file_size"`
	// ExistingKey, when set, marks the object being replaced; it is deleted
	// best-effort after the new upload is requested.
	ExistingKey string `json:"existing_key,omitempty"`
}

func (r UploadURLRequest) Validate() error {
	if r.FileName == "" {
		return errors.New("file name is not specified")
	}
	if r.FileSize <= 0 {
		return errors.New("file size is not specified")
	}
	if r.FileSize > maxUploadSize {
		return errors.New("file is too large")
	}
	return nil
}

type UploadURLResponse struct {
	UploadURL string `json:"upload_url"`
	Key       string `json:"key"`
}
