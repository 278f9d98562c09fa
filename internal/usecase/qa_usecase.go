package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/plastinin/docsimplifier/internal/domain"
	"go.uber.org/zap"
)

// Фиксированные ответы Q&A при недоступности модели
const (
	answerModelUnavailable = "The AI model is not available."
	answerGenerationFailed = "Sorry, I encountered an error while trying to find the answer."
)

const qaPromptTemplate = `
You are a helpful assistant. Your job is to answer the user's question based ONLY on the provided document text.
If the answer is not in the text, say "I couldn't find an answer to that in the document." Do not use any external knowledge.

--- DOCUMENT TEXT ---
%s
--- END DOCUMENT TEXT ---

User's Question: %s
`

// QAUseCase отвечает на вопросы по документу, опираясь только
// на его распознанный (до упрощения) текст
type QAUseCase struct {
	registry  TaskRegistry
	generator TextGenerator
	logger    *zap.Logger
}

// NewQAUseCase создаёт новый экземпляр QAUseCase
func NewQAUseCase(registry TaskRegistry, generator TextGenerator, logger *zap.Logger) *QAUseCase {
	return &QAUseCase{
		registry:  registry,
		generator: generator,
		logger:    logger,
	}
}

// Answer отвечает на вопрос по завершённой задаче.
// Возвращает ErrTaskNotFound / ErrTaskNotReady / ErrNoDocumentText,
// если контекст документа недоступен; сбой генерации не
// пробрасывается — вместо ответа приходит фиксированное извинение
func (uc *QAUseCase) Answer(ctx context.Context, taskID uuid.UUID, question string) (string, error) {
	task, err := uc.registry.GetByID(taskID)
	if err != nil {
		return "", err
	}

	if task.Status != domain.TaskStatusComplete {
		return "", domain.ErrTaskNotReady
	}

	if task.Result == nil || strings.TrimSpace(task.Result.OriginalText) == "" {
		return "", domain.ErrNoDocumentText
	}

	if !uc.generator.Configured() {
		uc.logger.Warn("Text generator is not configured, cannot answer question",
			zap.String("task_id", taskID.String()),
		)
		return answerModelUnavailable, nil
	}

	prompt := buildQAPrompt(task.Result.OriginalText, question)

	answer, err := uc.generator.GenerateText(ctx, prompt)
	if err != nil {
		uc.logger.Error("Question answering failed",
			zap.String("task_id", taskID.String()),
			zap.Error(err),
		)
		return answerGenerationFailed, nil
	}

	return answer, nil
}

// buildQAPrompt формирует промпт с заземлением на текст документа
func buildQAPrompt(documentText, question string) string {
	return fmt.Sprintf(qaPromptTemplate, documentText, question)
}
