package util

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"path/filepath"

	"github.com/SeakMengs/FacultyCert/internal/constant"
	"github.com/minio/minio-go/v7"
)

// e.g. certificates/123456789
func GetCertificateDirectoryPath(professorId string) string {
	return path.Join(constant.CERTIFICATE_DIRECTORY, professorId)
}


func GetTemplateDirectoryPath(templateId string) string {
	return path.Join(constant.TEMPLATE_DIRECTORY, templateId)
}

func createBucketIfNotExists(ctx context.Context, s3 *minio.Client, bucketName string) error {
	exists, err := s3.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}

	if !exists {
		err = s3.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return err
		}
	}

	return nil
}

type FileUploadOptions struct {
	// Add a prefix to the file name
	// For example, if the file name is "logo.png" and the prefix is "templates/123",
	// the resulting name will be "templates/123/logo.png"
	DirectoryPath string
	UniquePrefix  bool
	Bucket        string
	S3            *minio.Client
}

func UploadFileToS3ByFileHeader(ctx context.Context, fileHeader *multipart.FileHeader, fuo *FileUploadOptions) (minio.UploadInfo, error) {
	if err := createBucketIfNotExists(ctx, fuo.S3, fuo.Bucket); err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to create bucket: %w", err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	fileName := prepareFileName(fileHeader.Filename, fuo)

	info, err := fuo.S3.PutObject(
		ctx,
		fuo.Bucket,
		fileName,
		file,
		fileHeader.Size,
		minio.PutObjectOptions{
			ContentType: fileHeader.Header.Get("Content-Type"),
		},
	)
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return info, nil
}

// uploads an in-memory document, e.g. a freshly rendered certificate
func UploadBytesToS3(ctx context.Context, fileName string, data []byte, contentType string, fuo *FileUploadOptions) (minio.UploadInfo, error) {
	if err := createBucketIfNotExists(ctx, fuo.S3, fuo.Bucket); err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to create bucket: %w", err)
	}

	info, err := fuo.S3.PutObject(
		ctx,
		fuo.Bucket,
		prepareFileName(fileName, fuo),
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{
			ContentType: contentType,
		},
	)
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return info, nil
}

// Generates the final object name with uniqueness and prefix
func prepareFileName(originalName string, fuo *FileUploadOptions) string {
	fileName := filepath.Base(originalName)

	if fuo != nil {
		if fuo.UniquePrefix {
			fileName = AddUniquePrefixToFileName(fileName)
		}

		if fuo.DirectoryPath != "" {
			fileName = path.Join(fuo.DirectoryPath, fileName)
		}
	}

	return fileName
}
