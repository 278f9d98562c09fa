package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/plastinin/docsimplifier/internal/config"
)

// Префиксы ключей в бакете
const (
	uploadPrefix = "uploads"
	outputPrefix = "outputs"
)

// S3Storage реализация файлового хранилища на базе S3/MinIO.
// Загруженные PDF и готовые аудиофайлы лежат в одном бакете
// под разными префиксами
type S3Storage struct {
	client *minio.Client
	bucket string
}

// NewS3Storage создаёт новый экземпляр S3Storage
func NewS3Storage(ctx context.Context, cfg config.S3Config) (*S3Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	// Проверяем/создаём bucket
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &S3Storage{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// Upload загружает исходный документ и возвращает ключ
func (s *S3Storage) Upload(ctx context.Context, fileName string, contentType string, reader io.Reader, size int64) (string, error) {
	// Генерируем уникальный ключ: uploads/year/month/day/uuid/filename
	now := time.Now()
	fileKey := path.Join(
		uploadPrefix,
		now.Format("2006"),
		now.Format("01"),
		now.Format("02"),
		uuid.New().String(),
		fileName,
	)

	_, err := s.client.PutObject(ctx, s.bucket, fileKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return fileKey, nil
}

// Download скачивает исходный документ по ключу
func (s *S3Storage) Download(ctx context.Context, fileKey string) (io.ReadCloser, error) {
	return s.open(ctx, fileKey)
}

// SaveOutput сохраняет готовый артефакт (mp3) под фиксированным именем
func (s *S3Storage) SaveOutput(ctx context.Context, name string, contentType string, reader io.Reader, size int64) error {
	_, err := s.client.PutObject(ctx, s.bucket, path.Join(outputPrefix, name), reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to store output: %w", err)
	}
	return nil
}

// OpenOutput открывает готовый артефакт на чтение
func (s *S3Storage) OpenOutput(ctx context.Context, name string) (io.ReadCloser, error) {
	return s.open(ctx, path.Join(outputPrefix, name))
}

func (s *S3Storage) open(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}

	// Проверяем, что объект существует
	_, err = obj.Stat()
	if err != nil {
		obj.Close()
		return nil, fmt.Errorf("failed to stat object: %w", err)
	}

	return obj, nil
}
