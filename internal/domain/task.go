package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Ошибки домена
var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskNotReady      = errors.New("task is not complete")
	ErrNoDocumentText    = errors.New("document text is not available")
	ErrInvalidTransition = errors.New("invalid task status transition")
	ErrEmptyFileKey      = errors.New("file key cannot be empty")
)

// TaskResult итог обработки документа. Публикуется ровно один раз,
// в момент перехода задачи в терминальный статус
type TaskResult struct {
	OriginalText   string `json:"original_text"`
	SimplifiedText string `json:"simplified_text"`
	AudioFile      string `json:"audio_file,omitempty"` // Пусто, если аудио не создано
}

// Task представляет задачу обработки документа: OCR -> упрощение -> озвучивание
type Task struct {
	ID          uuid.UUID   `json:"id"`
	Status      TaskStatus  `json:"status"`
	Progress    int         `json:"progress"` // 0..100, не убывает
	FileKey     string      `json:"file_key"` // Ключ загруженного PDF в хранилище
	FileName    string      `json:"file_name"`
	Language    string      `json:"language"` // Целевой язык упрощения
	Result      *TaskResult `json:"result,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
}

// NewTask создаёт новую задачу
func NewTask(fileKey, fileName, language string) (*Task, error) {
	if fileKey == "" {
		return nil, ErrEmptyFileKey
	}
	if language == "" {
		language = DefaultLanguage
	}

	now := time.Now()

	return &Task{
		ID:        uuid.New(),
		Status:    TaskStatusQueued,
		Progress:  0,
		FileKey:   fileKey,
		FileName:  fileName,
		Language:  language,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// AdvanceStage переводит задачу на следующую нетерминальную стадию
func (t *Task) AdvanceStage(status TaskStatus, progress int) error {
	if status.IsFinal() {
		return ErrInvalidTransition
	}
	if !t.Status.CanTransitionTo(status) {
		return ErrInvalidTransition
	}
	t.Status = status
	t.SetProgress(progress)
	t.UpdatedAt = time.Now()
	return nil
}

// SetProgress обновляет прогресс; убывание игнорируется
func (t *Task) SetProgress(progress int) {
	if progress > 100 {
		progress = 100
	}
	if progress <= t.Progress {
		return
	}
	t.Progress = progress
	t.UpdatedAt = time.Now()
}

// MarkComplete переводит задачу в статус "завершена" и публикует результат
func (t *Task) MarkComplete(result TaskResult) error {
	if !t.Status.CanTransitionTo(TaskStatusComplete) {
		return ErrInvalidTransition
	}
	now := time.Now()
	t.Status = TaskStatusComplete
	t.Progress = 100
	t.Result = &result
	t.UpdatedAt = now
	t.CompletedAt = &now
	return nil
}

// MarkError переводит задачу в статус "ошибка" с диагностическим результатом
func (t *Task) MarkError(result TaskResult) error {
	if !t.Status.CanTransitionTo(TaskStatusError) {
		return ErrInvalidTransition
	}
	now := time.Now()
	t.Status = TaskStatusError
	t.Result = &result
	t.UpdatedAt = now
	t.CompletedAt = &now
	return nil
}

// Clone возвращает копию задачи для конкурентных читателей
func (t *Task) Clone() *Task {
	clone := *t
	if t.Result != nil {
		result := *t.Result
		clone.Result = &result
	}
	if t.CompletedAt != nil {
		completedAt := *t.CompletedAt
		clone.CompletedAt = &completedAt
	}
	return &clone
}
