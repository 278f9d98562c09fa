package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/plastinin/docsimplifier/internal/domain"
	"go.uber.org/zap"
)

// Контрольные точки прогресса на шкале 0..100.
// Извлечению текста отведён диапазон 15..55
const (
	progressExtractBase  = 15
	progressExtractSpan  = 40
	progressSimplifying  = 60
	progressSimplified   = 85
	progressSynthesizing = 90
)

// Тексты диагностики терминальной ошибки извлечения
const (
	errExtractionFailed = "An error occurred during text extraction: %v"
	errNoExtractedText  = "Could not extract readable text from the PDF."
)

// PipelineUseCase оркестратор конвейера обработки документа:
// Extracting -> Simplifying -> Synthesizing -> {Complete | Error}.
// Каждый переход записывается в реестр до начала следующей стадии
type PipelineUseCase struct {
	registry    TaskRegistry
	fileStorage FileStorage
	extractor   TextExtractor
	simplifier  *Simplifier
	synthesizer SpeechSynthesizer
	logger      *zap.Logger
}

// NewPipelineUseCase создаёт новый экземпляр PipelineUseCase
func NewPipelineUseCase(
	registry TaskRegistry,
	fileStorage FileStorage,
	extractor TextExtractor,
	simplifier *Simplifier,
	synthesizer SpeechSynthesizer,
	logger *zap.Logger,
) *PipelineUseCase {
	return &PipelineUseCase{
		registry:    registry,
		fileStorage: fileStorage,
		extractor:   extractor,
		simplifier:  simplifier,
		synthesizer: synthesizer,
		logger:      logger,
	}
}

// Run прогоняет задачу через все стадии до терминального статуса.
// Выполняется в фоновом воркере; отмена вызывающей стороной не
// поддерживается, поэтому контекст фоновый.
// Любая паника конвертируется в терминальный статус "Error",
// чтобы задача не застряла в промежуточном состоянии
func (uc *PipelineUseCase) Run(taskID uuid.UUID) {
	defer func() {
		if r := recover(); r != nil {
			uc.logger.Error("Pipeline panicked",
				zap.String("task_id", taskID.String()),
				zap.Any("panic", r),
			)
			diag := fmt.Sprintf("An unexpected error occurred: %v", r)
			uc.failTask(taskID, domain.TaskResult{
				OriginalText:   diag,
				SimplifiedText: diag,
			})
		}
	}()

	ctx := context.Background()

	task, err := uc.registry.GetByID(taskID)
	if err != nil {
		uc.logger.Error("Task not found in registry",
			zap.String("task_id", taskID.String()),
			zap.Error(err),
		)
		return
	}

	uc.logger.Info("Pipeline started",
		zap.String("task_id", taskID.String()),
		zap.String("file_name", task.FileName),
		zap.String("language", task.Language),
	)

	// Стадия 1: распознавание текста
	if err := uc.registry.AdvanceStage(taskID, domain.TaskStatusExtracting, progressExtractBase); err != nil {
		uc.logger.Error("Failed to advance task stage",
			zap.String("task_id", taskID.String()),
			zap.Error(err),
		)
		return
	}

	originalText, err := uc.extractText(ctx, taskID, task.FileKey)
	if err != nil {
		uc.logger.Error("Text extraction failed",
			zap.String("task_id", taskID.String()),
			zap.Error(err),
		)
		uc.failTask(taskID, domain.TaskResult{
			OriginalText:   fmt.Sprintf(errExtractionFailed, err),
			SimplifiedText: errNoExtractedText,
		})
		return
	}

	if strings.TrimSpace(originalText) == "" {
		uc.logger.Warn("Document yielded no readable text",
			zap.String("task_id", taskID.String()),
		)
		uc.failTask(taskID, domain.TaskResult{
			OriginalText:   originalText,
			SimplifiedText: errNoExtractedText,
		})
		return
	}

	// Стадия 2: упрощение текста. Ошибка сервиса не прерывает
	// конвейер — вместо текста остаётся предупреждение
	if err := uc.registry.AdvanceStage(taskID, domain.TaskStatusSimplifying, progressSimplifying); err != nil {
		uc.logger.Error("Failed to advance task stage",
			zap.String("task_id", taskID.String()),
			zap.Error(err),
		)
		return
	}

	simplifiedText := uc.simplifier.Simplify(ctx, originalText, task.Language, func(progress int) {
		_ = uc.registry.SetProgress(taskID, progress)
	})

	// Стадия 3: озвучивание. Отсутствие аудио не фатально
	if err := uc.registry.AdvanceStage(taskID, domain.TaskStatusSynthesizing, progressSynthesizing); err != nil {
		uc.logger.Error("Failed to advance task stage",
			zap.String("task_id", taskID.String()),
			zap.Error(err),
		)
		return
	}

	speechCode := domain.SpeechCode(task.Language)
	audioName := domain.AudioFileName(task.FileName, speechCode)

	audioFile, err := uc.synthesizer.Synthesize(ctx, simplifiedText, audioName, speechCode)
	if err != nil {
		uc.logger.Warn("Speech synthesis failed, task completes without audio",
			zap.String("task_id", taskID.String()),
			zap.Error(err),
		)
		audioFile = ""
	}

	if err := uc.registry.Complete(taskID, domain.TaskResult{
		OriginalText:   originalText,
		SimplifiedText: simplifiedText,
		AudioFile:      audioFile,
	}); err != nil {
		uc.logger.Error("Failed to complete task",
			zap.String("task_id", taskID.String()),
			zap.Error(err),
		)
		return
	}

	uc.logger.Info("Pipeline completed",
		zap.String("task_id", taskID.String()),
		zap.Bool("has_audio", audioFile != ""),
	)
}

// extractText скачивает документ и распознаёт его текст,
// транслируя постраничный прогресс в реестр
func (uc *PipelineUseCase) extractText(ctx context.Context, taskID uuid.UUID, fileKey string) (string, error) {
	fileReader, err := uc.fileStorage.Download(ctx, fileKey)
	if err != nil {
		return "", fmt.Errorf("failed to download document: %w", err)
	}
	defer fileReader.Close()

	pdfData, err := io.ReadAll(fileReader)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}

	return uc.extractor.ExtractText(ctx, pdfData, func(pagesDone, totalPages int) {
		progress := progressExtractBase + progressExtractSpan*pagesDone/totalPages
		_ = uc.registry.SetProgress(taskID, progress)
	})
}

// failTask переводит задачу в терминальный статус "Error"
func (uc *PipelineUseCase) failTask(taskID uuid.UUID, result domain.TaskResult) {
	if err := uc.registry.Fail(taskID, result); err != nil {
		uc.logger.Error("Failed to mark task as failed",
			zap.String("task_id", taskID.String()),
			zap.Error(err),
		)
	}
}
