package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	internalConfig "github.com/feastfinder/feastfinder-backend/internal/config"
	"github.com/feastfinder/feastfinder-backend/pkg/utils"
)

// S3Storage serves image uploads from an S3-compatible bucket (R2,
// MinIO, plain S3). The object key doubles as the storage id.
type S3Storage struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewS3Storage(cfg *internalConfig.Config) (*S3Storage, error) {
	endpointResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: cfg.S3.Endpoint,
		}, nil
	})

	awsCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithEndpointResolverWithOptions(endpointResolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3.AccessKeyID,
			cfg.S3.SecretAccessKey,
			"",
		)),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3Storage{
		client:    s3.NewFromConfig(awsCfg),
		bucket:    cfg.S3.Bucket,
		publicURL: strings.TrimRight(cfg.S3.PublicURL, "/"),
	}, nil
}

func (s *S3Storage) Upload(ctx context.Context, reader io.Reader, filename string) (*Image, error) {
	buf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}
	if len(buf) == 0 {
		return nil, fmt.Errorf("empty file, size is 0 bytes")
	}

	ext := filepath.Ext(filename)
	key := fmt.Sprintf("event_images/%s%s", utils.GenerateRandomString(16), ext)

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(buf),
		ContentLength: aws.Int64(int64(len(buf))),
	}
	if contentType := mime.TypeByExtension(ext); contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to upload to bucket: %w", err)
	}

	return &Image{
		URL:       fmt.Sprintf("%s/%s", s.publicURL, key),
		StorageID: key,
	}, nil
}

func (s *S3Storage) Delete(ctx context.Context, storageID string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storageID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", storageID, err)
	}
	return nil
}
