package s3client

import (
	"context"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"fin-tools-backend/config"
)

var Client Provider

type Provider interface {
	MakeBucket(ctx context.Context) error
	PresignedPutURL(ctx context.Context, objectKey string, ttl time.Duration) (*url.URL, error)
	ObjectExists(ctx context.Context, objectKey string) (bool, error)
	RemoveObject(ctx context.Context, objectKey string) error
}

type s3client struct {
	minioClient *minio.Client
}

func NewClient() (Provider, error) {
	minioClient, err := minio.New(config.Conf.S3.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.Conf.S3.AccessKeyID, config.Conf.S3.SecretAccessKey, ""),
		Secure: *config.Conf.S3.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	return &s3client{minioClient: minioClient}, nil
}

func (s s3client) MakeBucket(ctx context.Context) error {
	bucketName := config.Conf.S3.BucketName
	location := "us-east-1"
	exists, err := s.minioClient.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	err = s.minioClient.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location})
	if err != nil {
		return err
	}
	return nil
}

func (s s3client) PresignedPutURL(ctx context.Context, objectKey string, ttl time.Duration) (*url.URL, error) {
	return s.minioClient.PresignedPutObject(ctx, config.Conf.S3.BucketName, objectKey, ttl)
}

func (s s3client) ObjectExists(ctx context.Context, objectKey string) (bool, error) {
	_, err := s.minioClient.StatObject(ctx, config.Conf.S3.BucketName, objectKey, minio.StatObjectOptions{})
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s s3client) RemoveObject(ctx context.Context, objectKey string) error {
	return s.minioClient.RemoveObject(ctx, config.Conf.S3.BucketName, objectKey, minio.RemoveObjectOptions{})
}
