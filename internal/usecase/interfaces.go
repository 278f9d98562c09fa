package usecase

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/plastinin/docsimplifier/internal/domain"
)

// TaskRegistry интерфейс реестра задач. Все мутации задач идут
// через реестр, чтобы конкурентные читатели видели согласованный снимок
type TaskRegistry interface {
	Add(task *domain.Task)
	GetByID(id uuid.UUID) (*domain.Task, error)
	AdvanceStage(id uuid.UUID, status domain.TaskStatus, progress int) error
	SetProgress(id uuid.UUID, progress int) error
	Complete(id uuid.UUID, result domain.TaskResult) error
	Fail(id uuid.UUID, result domain.TaskResult) error
	List(filter domain.TaskFilter, pagination domain.Pagination) *domain.TaskListResult
}

// FileStorage интерфейс файлового хранилища (локальный диск или S3)
type FileStorage interface {
	Upload(ctx context.Context, fileName string, contentType string, reader io.Reader, size int64) (fileKey string, err error)
	Download(ctx context.Context, fileKey string) (io.ReadCloser, error)
	OpenOutput(ctx context.Context, name string) (io.ReadCloser, error)
}

// TextExtractor интерфейс распознавания текста документа (OCR)
type TextExtractor interface {
	ExtractText(ctx context.Context, pdfData []byte, progress func(pagesDone, totalPages int)) (string, error)
}

// TextGenerator интерфейс генеративной текстовой модели (LLM)
type TextGenerator interface {
	Configured() bool
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// SpeechSynthesizer интерфейс синтеза речи.
// Пустое имя файла без ошибки означает, что аудио не создавалось
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, outputName, languageCode string) (string, error)
}

// WorkerPool интерфейс пула фоновых воркеров; ему удовлетворяет ants.Pool
type WorkerPool interface {
	Submit(task func()) error
}
