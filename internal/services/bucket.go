package services

import (
	"context"
	"fmt"
	"io"
	"os"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/vitalink-health/vitalink-backend/internal/logger"
)

type BucketService interface {
	UploadFile(ctx context.Context, key string, r io.Reader, contentType string) error
	DeleteFile(ctx context.Context, key string) error
	GetPublicURL(key string) string
}

type bucketService struct {
	log        *logger.Logger
	client     *storage.Client
	bucketName string
}

func NewBucketService(ctx context.Context, log *logger.Logger) (BucketService, error) {
	serviceLog := log.With("service", "BucketService")
	bucketName := os.Getenv("GCS_BUCKET_NAME")
	if bucketName == "" {
		return nil, fmt.Errorf("missing GCS_BUCKET_NAME environment variable")
	}

	var opts []option.ClientOption
	if credsPath := os.Getenv("GCS_CREDENTIALS_FILE"); credsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credsPath))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &bucketService{
		log:        serviceLog,
		client:     client,
		bucketName: bucketName,
	}, nil
}

func (bs *bucketService) UploadFile(ctx context.Context, key string, r io.Reader, contentType string) error {
	w := bs.client.Bucket(bs.bucketName).Object(key).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		bs.log.Error("Failed to write object to bucket", "error", err, "key", key)
		return err
	}
	if err := w.Close(); err != nil {
		bs.log.Error("Failed to finalize object upload", "error", err, "key", key)
		return err
	}
	bs.log.Info("Uploaded object to bucket", "key", key)
	return nil
}

func (bs *bucketService) DeleteFile(ctx context.Context, key string) error {
	if err := bs.client.Bucket(bs.bucketName).Object(key).Delete(ctx); err != nil {
		bs.log.Warn("Failed to delete object from bucket", "error", err, "key", key)
		return err
	}
	return nil
}

func (bs *bucketService) GetPublicURL(key string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bs.bucketName, key)
}
