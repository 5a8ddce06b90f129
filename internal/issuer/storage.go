package issuer

import (
	"context"
	"io"

	"github.com/SeakMengs/FacultyCert/internal/model"
	"github.com/SeakMengs/FacultyCert/internal/util"
	"github.com/minio/minio-go/v7"
)

// MinioStorage stores objects in one MinIO bucket.
type MinioStorage struct {
	s3     *minio.Client
	bucket string
}

func NewMinioStorage(s3 *minio.Client, bucket string) *MinioStorage {
	return &MinioStorage{s3: s3, bucket: bucket}
}

func (ms *MinioStorage) Put(ctx context.Context, directory, fileName string, data []byte, contentType string) (*model.File, error) {
	info, err := util.UploadBytesToS3(ctx, fileName, data, contentType, &util.FileUploadOptions{
		DirectoryPath: directory,
		Bucket:        ms.bucket,
		S3:            ms.s3,
	})
	if err != nil {
		return nil, err
	}

	return &model.File{
		FileName:       fileName,
		UniqueFileName: info.Key,
		BucketName:     info.Bucket,
		Size:           info.Size,
		ContentType:    contentType,
	}, nil
}

func (ms *MinioStorage) Open(ctx context.Context, file model.File) (io.ReadCloser, error) {
	return file.Open(ctx, ms.s3)
}

func (ms *MinioStorage) Remove(ctx context.Context, file model.File) error {
	return file.Delete(ctx, ms.s3)
}
