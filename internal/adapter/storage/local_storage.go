package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/plastinin/docsimplifier/internal/config"
)

// LocalStorage файловое хранилище на локальном диске:
// каталог загрузок для PDF и каталог артефактов для mp3
type LocalStorage struct {
	uploadDir string
	outputDir string
}

// NewLocalStorage создаёт каталоги хранилища, если их нет
func NewLocalStorage(cfg config.StorageConfig) (*LocalStorage, error) {
	for _, dir := range []string{cfg.UploadDir, cfg.OutputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
		}
	}

	return &LocalStorage{
		uploadDir: cfg.UploadDir,
		outputDir: cfg.OutputDir,
	}, nil
}

// Upload сохраняет исходный документ и возвращает ключ
func (s *LocalStorage) Upload(_ context.Context, fileName string, _ string, reader io.Reader, _ int64) (string, error) {
	// Ключ с uuid-префиксом, чтобы одноимённые загрузки не затирали друг друга
	fileKey := uuid.New().String() + "_" + sanitizeName(fileName)

	file, err := os.Create(filepath.Join(s.uploadDir, fileKey))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return fileKey, nil
}

// Download открывает исходный документ по ключу
func (s *LocalStorage) Download(_ context.Context, fileKey string) (io.ReadCloser, error) {
	file, err := os.Open(filepath.Join(s.uploadDir, sanitizeName(fileKey)))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// SaveOutput сохраняет готовый артефакт (mp3) под фиксированным именем
func (s *LocalStorage) SaveOutput(_ context.Context, name string, _ string, reader io.Reader, _ int64) error {
	file, err := os.Create(filepath.Join(s.outputDir, sanitizeName(name)))
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return nil
}

// OpenOutput открывает готовый артефакт на чтение
func (s *LocalStorage) OpenOutput(_ context.Context, name string) (io.ReadCloser, error) {
	file, err := os.Open(filepath.Join(s.outputDir, sanitizeName(name)))
	if err != nil {
		return nil, fmt.Errorf("failed to open output file: %w", err)
	}
	return file, nil
}

// sanitizeName отбрасывает пути, оставляя только имя файла
func sanitizeName(name string) string {
	name = filepath.Base(name)
	return strings.TrimLeft(name, ".")
}
