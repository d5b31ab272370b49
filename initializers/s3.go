package initializers

import (
	"context"

	"template-approval-backend/config"
	filestorage "template-approval-backend/lib/file-storage"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
)

func InitS3() {
	minioClient, err := minio.New(config.Conf.S3.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV2(config.Conf.S3.AccessKeyID, config.Conf.S3.SecretAccessKey, ""),
		Secure: *config.Conf.S3.UseSSL,
	})
	if err != nil {
		log.WithError(err).Error("failed to initialize the S3 client")
		return
	}

	filestorage.NewHandler(minioClient)

	err = filestorage.Instance.EnsureBucket(context.Background())
	if err != nil {
		log.WithError(err).Error("failed to ensure the attachment bucket exists")
		return
	}
	log.Info("S3 client initialized")
}
