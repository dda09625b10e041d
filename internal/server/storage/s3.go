package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/gpai/case-portal/internal/logging"
)

// S3Config carries the settings needed to reach an S3-compatible backend
// (AWS or MinIO).
type S3Config struct {
	AccessKey    string
	SecretKey    string
	Bucket       string
	Region       string
	BaseEndpoint string
}

// S3ObjectStore implements ObjectStore over aws-sdk-go-v2.
type S3ObjectStore struct {
	client     *s3.Client
	bucketName string
	endpoint   string

	logger logging.Logger
}

// NewS3ObjectStore builds an S3 client from static credentials with an
// optional BaseEndpoint override and path-style addressing, as used by
// MinIO-compatible deployments.
func NewS3ObjectStore(ctx context.Context, cfg S3Config, l logging.Logger) (*S3ObjectStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
		}
		o.UsePathStyle = true
	})

	return &S3ObjectStore{
		client:     client,
		bucketName: cfg.Bucket,
		endpoint:   strings.TrimSuffix(cfg.BaseEndpoint, "/"),
		logger:     l,
	}, nil
}

// NewS3ObjectStoreFromClient wraps an existing client; used by tests.
func NewS3ObjectStoreFromClient(client *s3.Client, bucketName string, endpoint string, l logging.Logger) *S3ObjectStore {
	return &S3ObjectStore{
		client:     client,
		bucketName: bucketName,
		endpoint:   strings.TrimSuffix(endpoint, "/"),
		logger:     l,
	}
}

func (s *S3ObjectStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	s.logger.Debug(ctx, "putting object", "key", key, "size", size)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucketName),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		s.logger.Error(ctx, "failed to put object", "key", key, "error", err)
		return fmt.Errorf("failed to put object: %w", err)
	}

	s.logger.Info(ctx, "stored object", "key", key, "size", size)
	return nil
}

func (s *S3ObjectStore) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	var objects []types.ObjectIdentifier
	for _, k := range keys {
		objects = append(objects, types.ObjectIdentifier{
			Key: aws.String(k),
		})
	}

	s.logger.Debug(ctx, "deleting objects", "count", len(objects))

	out, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(s.bucketName),
		Delete: &types.Delete{
			Objects: objects,
			Quiet:   aws.Bool(true),
		},
	})
	if err != nil {
		s.logger.Error(ctx, "failed to delete objects", "keys", keys, "error", err)
		return fmt.Errorf("failed to delete objects: %w", err)
	}
	if len(out.Errors) > 0 {
		first := out.Errors[0]
		s.logger.Error(ctx, "object deletion rejected", "key", aws.ToString(first.Key), "code", aws.ToString(first.Code))
		return fmt.Errorf("failed to delete object %s: %s", aws.ToString(first.Key), aws.ToString(first.Message))
	}

	s.logger.Info(ctx, "deleted objects", "count", len(objects))
	return nil
}

// PublicURL returns the path-style public address of a stored object.
func (s *S3ObjectStore) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucketName, key)
}
