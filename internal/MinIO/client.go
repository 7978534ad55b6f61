package MinIO

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Config struct {
	MinioEndpoint  string `env:"MINIO_ENDPOINT" env-default:"minio:9000"`
	BucketName     string `env:"MINIO_BUCKET_NAME" env-default:"dataroom"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL" env-default:"false"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY" env-default:"admin"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY" env-default:"admin"`
}

// UploadResult — типизированный результат загрузки: ключ и фактический размер.
// Потребители не разбирают сырые события хранилища.
type UploadResult struct {
	Key  string
	Size int64
}

type MinIOClient struct {
	Client *minio.Client
	Bucket string
}

func New(ctx context.Context, cfg Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	err = client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{})
	if err != nil {
		exists, errBucketExists := client.BucketExists(ctx, cfg.BucketName)
		if !(errBucketExists == nil && exists) {
			return nil, fmt.Errorf("failed to create bucket %q: %w", cfg.BucketName, err)
		}
	}

	return &MinIOClient{
		Client: client,
		Bucket: cfg.BucketName,
	}, nil
}

func (m *MinIOClient) UploadFile(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (UploadResult, error) {
	info, err := m.Client.PutObject(ctx, m.Bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return UploadResult{}, err
	}
	return UploadResult{Key: info.Key, Size: info.Size}, nil
}

// DeleteFile идемпотентен: отсутствующий объект считается уже удалённым.
func (m *MinIOClient) DeleteFile(ctx context.Context, key string) error {
	err := m.Client.RemoveObject(ctx, m.Bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
			return nil
		}
	}
	return err
}
