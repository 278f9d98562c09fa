package dto

import (
	"time"

	"github.com/plastinin/docsimplifier/internal/domain"
)

// CreateTaskResponse ответ на загрузку документа
type CreateTaskResponse struct {
	TaskID string `json:"task_id"`
}

// TaskResultResponse результат обработки документа
type TaskResultResponse struct {
	OriginalText   string `json:"original_text"`
	SimplifiedText string `json:"simplified_text"`
	AudioFile      string `json:"audio_file,omitempty"`
}

// TaskResponse ответ с информацией о задаче
type TaskResponse struct {
	ID          string              `json:"id"`
	Status      string              `json:"status"`
	Progress    int                 `json:"progress"`
	FileName    string              `json:"file_name"`
	Language    string              `json:"language"`
	Result      *TaskResultResponse `json:"result,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	CompletedAt *time.Time          `json:"completed_at,omitempty"`
}

// TaskFromDomain конвертирует доменную модель в DTO
func TaskFromDomain(task *domain.Task) *TaskResponse {
	resp := &TaskResponse{
		ID:          task.ID.String(),
		Status:      task.Status.String(),
		Progress:    task.Progress,
		FileName:    task.FileName,
		Language:    task.Language,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		CompletedAt: task.CompletedAt,
	}

	if task.Result != nil {
		resp.Result = &TaskResultResponse{
			OriginalText:   task.Result.OriginalText,
			SimplifiedText: task.Result.SimplifiedText,
			AudioFile:      task.Result.AudioFile,
		}
	}

	return resp
}

// AskRequest вопрос по документу
type AskRequest struct {
	Question string `json:"question"`
}

// AnswerResponse ответ на вопрос по документу
type AnswerResponse struct {
	Answer string `json:"answer"`
}

// TaskListResponse ответ со списком задач
type TaskListResponse struct {
	Tasks      []*TaskResponse `json:"tasks"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

// TaskListFromDomain конвертирует результат списка в DTO
func TaskListFromDomain(result *domain.TaskListResult) *TaskListResponse {
	tasks := make([]*TaskResponse, len(result.Tasks))
	for i, task := range result.Tasks {
		tasks[i] = TaskFromDomain(task)
	}

	totalPages := result.Total / result.Pagination.PageSize
	if result.Total%result.Pagination.PageSize > 0 {
		totalPages++
	}

	return &TaskListResponse{
		Tasks:      tasks,
		Total:      result.Total,
		Page:       result.Pagination.Page,
		PageSize:   result.Pagination.PageSize,
		TotalPages: totalPages,
	}
}
