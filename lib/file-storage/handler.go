package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"template-approval-backend/config"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

type Provider interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) error
	Get(ctx context.Context, key string) (body []byte, contentType string, err error)
	EnsureBucket(ctx context.Context) error
	// RetrievalURL is the fully-qualified link a client downloads the file by
	RetrievalURL(key string) string
}

var Instance Provider

func NewHandler(s3client *minio.Client) {
	Instance = &impl{
		s3client: s3client,
	}
}

type impl struct {
	s3client *minio.Client
}

func (i impl) Upload(ctx context.Context, key string, body []byte, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := i.s3client.PutObject(ctx, config.Conf.S3.BucketName, key,
		bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return errors.Wrap(err, "failed to store attachment")
	}
	return nil
}

func (i impl) Get(ctx context.Context, key string) ([]byte, string, error) {
	obj, err := i.s3client.GetObject(ctx, config.Conf.S3.BucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to fetch attachment")
	}
	defer obj.Close()
	body, err := io.ReadAll(obj)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to read attachment")
	}
	stat, err := obj.Stat()
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to read attachment info")
	}
	return body, stat.ContentType, nil
}

func (i impl) EnsureBucket(ctx context.Context) error {
	bucketName := config.Conf.S3.BucketName
	exists, err := i.s3client.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return i.s3client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{})
}

func (i impl) RetrievalURL(key string) string {
	return fmt.Sprintf("%s/api/v1/uploads/%s", config.Conf.App.PublicURL, key)
}
