package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	task, err := NewTask("file-key", "lecture.pdf", "Hindi")
	require.NoError(t, err)

	assert.NotEqual(t, "", task.ID.String())
	assert.Equal(t, TaskStatusQueued, task.Status)
	assert.Equal(t, 0, task.Progress)
	assert.Equal(t, "Hindi", task.Language)
	assert.Nil(t, task.Result)
	assert.Nil(t, task.CompletedAt)
}

func TestNewTask_Defaults(t *testing.T) {
	task, err := NewTask("file-key", "lecture.pdf", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultLanguage, task.Language)

	_, err = NewTask("", "lecture.pdf", "English")
	assert.ErrorIs(t, err, ErrEmptyFileKey)
}

func TestNewTask_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		task, err := NewTask("file-key", "lecture.pdf", "English")
		require.NoError(t, err)
		assert.False(t, seen[task.ID.String()], "task id reused")
		seen[task.ID.String()] = true
	}
}

func TestTask_StageSequence(t *testing.T) {
	task, err := NewTask("file-key", "lecture.pdf", "English")
	require.NoError(t, err)

	require.NoError(t, task.AdvanceStage(TaskStatusExtracting, 15))
	assert.Equal(t, 15, task.Progress)

	require.NoError(t, task.AdvanceStage(TaskStatusSimplifying, 60))
	require.NoError(t, task.AdvanceStage(TaskStatusSynthesizing, 90))

	require.NoError(t, task.MarkComplete(TaskResult{OriginalText: "text", SimplifiedText: "simple"}))
	assert.Equal(t, TaskStatusComplete, task.Status)
	assert.Equal(t, 100, task.Progress)
	require.NotNil(t, task.Result)
	require.NotNil(t, task.CompletedAt)
}

func TestTask_NoBackwardTransitions(t *testing.T) {
	task, err := NewTask("file-key", "lecture.pdf", "English")
	require.NoError(t, err)

	require.NoError(t, task.AdvanceStage(TaskStatusSimplifying, 60))

	assert.ErrorIs(t, task.AdvanceStage(TaskStatusExtracting, 15), ErrInvalidTransition)
	assert.ErrorIs(t, task.AdvanceStage(TaskStatusSimplifying, 60), ErrInvalidTransition)
	assert.Equal(t, TaskStatusSimplifying, task.Status)
}

func TestTask_TerminalIsFinal(t *testing.T) {
	task, err := NewTask("file-key", "lecture.pdf", "English")
	require.NoError(t, err)

	require.NoError(t, task.MarkError(TaskResult{OriginalText: "boom", SimplifiedText: "boom"}))
	firstResult := task.Result

	// Из терминального статуса переходов нет, результат публикуется один раз
	assert.ErrorIs(t, task.MarkComplete(TaskResult{OriginalText: "late"}), ErrInvalidTransition)
	assert.ErrorIs(t, task.MarkError(TaskResult{OriginalText: "late"}), ErrInvalidTransition)
	assert.ErrorIs(t, task.AdvanceStage(TaskStatusExtracting, 15), ErrInvalidTransition)
	assert.Same(t, firstResult, task.Result)
	assert.Equal(t, TaskStatusError, task.Status)
}

func TestTask_ProgressMonotonic(t *testing.T) {
	task, err := NewTask("file-key", "lecture.pdf", "English")
	require.NoError(t, err)

	task.SetProgress(40)
	assert.Equal(t, 40, task.Progress)

	// Убывание игнорируется
	task.SetProgress(20)
	assert.Equal(t, 40, task.Progress)

	// Больше 100 не бывает
	task.SetProgress(150)
	assert.Equal(t, 100, task.Progress)
}

func TestTask_Clone(t *testing.T) {
	task, err := NewTask("file-key", "lecture.pdf", "English")
	require.NoError(t, err)
	require.NoError(t, task.MarkError(TaskResult{OriginalText: "diag", SimplifiedText: "diag"}))

	clone := task.Clone()
	clone.Status = TaskStatusQueued
	clone.Result.OriginalText = "mutated"

	assert.Equal(t, TaskStatusError, task.Status)
	assert.Equal(t, "diag", task.Result.OriginalText)
}

func TestTaskStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from TaskStatus
		to   TaskStatus
		want bool
	}{
		{"queued to extracting", TaskStatusQueued, TaskStatusExtracting, true},
		{"extracting to simplifying", TaskStatusExtracting, TaskStatusSimplifying, true},
		{"queued straight to error", TaskStatusQueued, TaskStatusError, true},
		{"extracting skips to complete", TaskStatusExtracting, TaskStatusComplete, true},
		{"simplifying back to extracting", TaskStatusSimplifying, TaskStatusExtracting, false},
		{"complete to anything", TaskStatusComplete, TaskStatusExtracting, false},
		{"error to complete", TaskStatusError, TaskStatusComplete, false},
		{"to unknown status", TaskStatusQueued, TaskStatus("Unknown"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestSpeechCode(t *testing.T) {
	assert.Equal(t, "en", SpeechCode("English"))
	assert.Equal(t, "hi", SpeechCode("Hindi"))
	assert.Equal(t, "kn", SpeechCode("Kannada"))
	// Неизвестный язык откатывается на английский
	assert.Equal(t, "en", SpeechCode("Klingon"))
	assert.Equal(t, "en", SpeechCode(""))
}

func TestAudioFileName(t *testing.T) {
	assert.Equal(t, "lecture_en.mp3", AudioFileName("lecture.pdf", "en"))
	assert.Equal(t, "notes.v2_hi.mp3", AudioFileName("notes.v2.pdf", "hi"))
	assert.Equal(t, "plain_kn.mp3", AudioFileName("plain", "kn"))
}

func TestValidateContentType(t *testing.T) {
	assert.NoError(t, ValidateContentType("application/pdf"))
	assert.NoError(t, ValidateContentType("Application/PDF; charset=binary"))
	assert.ErrorIs(t, ValidateContentType("image/png"), ErrUnsupportedFileType)
	assert.ErrorIs(t, ValidateContentType(""), ErrUnsupportedFileType)
}

func TestContentTypeFromFileName(t *testing.T) {
	ct, err := ContentTypeFromFileName("scan.PDF")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", ct)

	_, err = ContentTypeFromFileName("scan.docx")
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}
