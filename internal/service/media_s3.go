package service

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/thoughtcloud/thoughtcloud/internal/config"
)

// S3BlobStore keeps media files in an S3-compatible bucket (AWS S3 or
// Cloudflare R2) under an uploads/ prefix, so the same PUBLIC_BASE_URL
// scheme works for both drivers.
type S3BlobStore struct {
	client *s3.Client
	bucket string
}

func NewS3BlobStore(ctx context.Context, cfg config.MediaConfig) (*S3BlobStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
		awsconfig.WithRegion(cfg.S3Region),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
	})

	return &S3BlobStore{client: client, bucket: cfg.S3Bucket}, nil
}

func (s *S3BlobStore) Put(ctx context.Context, name, contentType string, data io.Reader) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String("uploads/" + name),
		Body:        data,
		ContentType: aws.String(contentType),
	})
	return err
}

func (s *S3BlobStore) Remove(ctx context.Context, name string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String("uploads/" + name),
	})
	return err
}
