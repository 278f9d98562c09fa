package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/plastinin/docsimplifier/internal/domain"
	"go.uber.org/zap"
)

// TaskUseCase бизнес-логика приёма документов и опроса статуса
type TaskUseCase struct {
	registry    TaskRegistry
	fileStorage FileStorage
	pipeline    *PipelineUseCase
	pool        WorkerPool
	logger      *zap.Logger
}

// NewTaskUseCase создаёт новый экземпляр TaskUseCase
func NewTaskUseCase(
	registry TaskRegistry,
	fileStorage FileStorage,
	pipeline *PipelineUseCase,
	pool WorkerPool,
	logger *zap.Logger,
) *TaskUseCase {
	return &TaskUseCase{
		registry:    registry,
		fileStorage: fileStorage,
		pipeline:    pipeline,
		pool:        pool,
		logger:      logger,
	}
}

// Create принимает документ и запускает его фоновую обработку
func (uc *TaskUseCase) Create(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	// Валидируем тип файла
	if err := domain.ValidateContentType(input.ContentType); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	// Сохраняем файл в хранилище
	fileKey, err := uc.fileStorage.Upload(ctx, input.FileName, input.ContentType, input.FileReader, input.FileSize)
	if err != nil {
		uc.logger.Error("Failed to upload file to storage",
			zap.String("file_name", input.FileName),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	// Создаём задачу и регистрируем её до запуска конвейера,
	// чтобы опрос статуса по выданному id сразу находил запись
	task, err := domain.NewTask(fileKey, input.FileName, input.Language)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	uc.registry.Add(task)

	// Отправляем конвейер в пул фоновых воркеров
	taskID := task.ID
	if err := uc.pool.Submit(func() {
		uc.pipeline.Run(taskID)
	}); err != nil {
		uc.logger.Error("Failed to submit pipeline to worker pool",
			zap.String("task_id", taskID.String()),
			zap.Error(err),
		)
		// Задача уже видна наблюдателям — завершаем её терминально
		diag := fmt.Sprintf("An unexpected error occurred: %v", err)
		_ = uc.registry.Fail(taskID, domain.TaskResult{
			OriginalText:   diag,
			SimplifiedText: diag,
		})
	}

	uc.logger.Info("Task created",
		zap.String("task_id", task.ID.String()),
		zap.String("file_name", input.FileName),
		zap.String("language", task.Language),
	)

	return task, nil
}

// GetByID возвращает снимок задачи по ID
func (uc *TaskUseCase) GetByID(_ context.Context, id uuid.UUID) (*domain.Task, error) {
	return uc.registry.GetByID(id)
}

// List возвращает страницу задач
func (uc *TaskUseCase) List(_ context.Context, filter domain.TaskFilter, pagination domain.Pagination) *domain.TaskListResult {
	return uc.registry.List(filter, pagination)
}

// OpenAudio открывает готовый аудиофайл на чтение
func (uc *TaskUseCase) OpenAudio(ctx context.Context, name string) (io.ReadCloser, error) {
	return uc.fileStorage.OpenOutput(ctx, name)
}
