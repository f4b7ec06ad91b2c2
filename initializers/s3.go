package initializers

import (
	"context"

	log "github.com/sirupsen/logrus"

	s3client "fin-tools-backend/s3"
)

func InitS3() {
	client, err := s3client.NewClient()
	if err != nil {
		log.WithError(err).Error("failed to initialize the S3 client")
		return
	}
	s3client.Client = client
	if err = client.MakeBucket(context.Background()); err != nil {
		log.WithError(err).Error("failed to prepare the document bucket")
		return
	}
	log.Info("S3 client initialized")
}
