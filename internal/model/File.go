package model

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
)

// File is an object stored in MinIO.
type File struct {
	BaseModel
	FileName       string `gorm:"type:text;not null" json:"fileName" form:"fileName" binding:"required"`
	UniqueFileName string `gorm:"type:text;not null;uniqueIndex" json:"uniqueFileName" form:"uniqueFileName" binding:"required"`
	BucketName     string `gorm:"type:text;not null" json:"bucketName" form:"bucketName" binding:"required"`
	Size           int64  `gorm:"type:bigint;not null" json:"size" form:"size" binding:"required"`
	ContentType    string `gorm:"type:varchar(100);not null;default:'application/octet-stream'" json:"contentType" form:"contentType"`
}

func (f File) TableName() string {
	return "files"
}

func (f File) validate() error {
	if f.BucketName == "" || f.UniqueFileName == "" {
		return errors.New("bucket name and unique file name cannot be empty")
	}
	return nil
}

// ToPresignedUrl returns a download link valid for one hour.
func (f File) ToPresignedUrl(ctx context.Context, s3 *minio.Client) (string, error) {
	if err := f.validate(); err != nil {
		return "", err
	}

	presignedURL, err := s3.PresignedGetObject(ctx, f.BucketName, f.UniqueFileName, time.Hour, nil)
	if err != nil {
		return "", err
	}
	return presignedURL.String(), nil
}

// Open streams the object. The caller closes the reader.
func (f File) Open(ctx context.Context, s3 *minio.Client) (io.ReadCloser, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}

	return s3.GetObject(ctx, f.BucketName, f.UniqueFileName, minio.GetObjectOptions{})
}

func (f File) ReadAll(ctx context.Context, s3 *minio.Client) ([]byte, error) {
	obj, err := f.Open(ctx, s3)
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	return io.ReadAll(obj)
}

func (f File) Delete(ctx context.Context, s3 *minio.Client) error {
	if err := f.validate(); err != nil {
		return err
	}

	return s3.RemoveObject(ctx, f.BucketName, f.UniqueFileName, minio.RemoveObjectOptions{})
}

func (f File) ToBaseFilename() string {
	return filepath.Base(f.FileName)
}
