package filestorage

import (
	"context"
	"fmt"
	"time"

	"github.com/SeakMengs/FacultyCert/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const bucketCheckTimeout = 10 * time.Second

// NewMinioClient connects to the object store and makes sure the
// certificate bucket exists before any upload is attempted.
func NewMinioClient(cfg *config.MinioConfig) (*minio.Client, error) {
	client, err := minio.New(cfg.ENDPOINT, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.ACCESS_KEY, cfg.SECRET_KEY, ""),
		Secure: cfg.USE_SSL,
		Region: cfg.REGION,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), bucketCheckTimeout)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.BUCKET)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %q: %w", cfg.BUCKET, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BUCKET, minio.MakeBucketOptions{Region: cfg.REGION}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %q: %w", cfg.BUCKET, err)
		}
	}

	return client, nil
}
