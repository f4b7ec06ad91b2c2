package filestorage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"fin-tools-backend/config"
	s3client "fin-tools-backend/s3"
	filesapimodels "fin-tools-backend/models/api/files"
)

type Provider interface {
	// RequestUploadURL issues a presigned PUT URL the portal uploads file
	// bytes to directly. When the request names an existing key being
	// replaced, the old object is deleted best-effort; a failed delete
	// never fails the request.
	RequestUploadURL(ctx context.Context, orgID string, req filesapimodels.UploadURLRequest) (filesapimodels.UploadURLResponse, error)
	ObjectExists(ctx context.Context, orgID, key string) (bool, error)
	DeleteObject(ctx context.Context, orgID, key string)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		client: s3client.Client,
	}
}

func NewInstance(client s3client.Provider) Provider {
	return impl{
		client: client,
	}
}

type impl struct {
	client s3client.Provider
}

// objectKey namespaces every object under its organization; ownership
// checks reduce to a prefix check.
func objectKey(orgID, fileName string) string {
	return fmt.Sprintf("%s/%s%s", orgID, uuid.NewString(), filepath.Ext(fileName))
}

func ownsKey(orgID, key string) bool {
	return strings.HasPrefix(key, orgID+"/")
}

func (i impl) RequestUploadURL(ctx context.Context, orgID string, req filesapimodels.UploadURLRequest) (filesapimodels.UploadURLResponse, error) {
	key := objectKey(orgID, req.FileName)
	ttl := time.Duration(config.Conf.S3.UploadURLTTLSec) * time.Second
	uploadURL, err := i.client.PresignedPutURL(ctx, key, ttl)
	if err != nil {
		return filesapimodels.UploadURLResponse{}, err
	}
	if req.ExistingKey != "" {
		i.DeleteObject(ctx, orgID, req.ExistingKey)
	}
	return filesapimodels.UploadURLResponse{
		UploadURL: uploadURL.String(),
		Key:       key,
	}, nil
}

func (i impl) ObjectExists(ctx context.Context, orgID, key string) (bool, error) {
	if !ownsKey(orgID, key) {
		return false, nil
	}
	return i.client.ObjectExists(ctx, key)
}

func (i impl) DeleteObject(ctx context.Context, orgID, key string) {
	if !ownsKey(orgID, key) {
		return
	}
	if err := i.client.RemoveObject(ctx, key); err != nil {
		log.WithError(err).WithField("key", key).Warn("stale object delete failed")
	}
}
