package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/plastinin/docsimplifier/internal/adapter/http/dto"
	"github.com/plastinin/docsimplifier/internal/domain"
	"github.com/plastinin/docsimplifier/internal/usecase"
	"go.uber.org/zap"
)

const (
	maxUploadSize = 32 << 20 // 32 MB
)

// TaskHandler обработчик HTTP запросов для задач
type TaskHandler struct {
	taskUC *usecase.TaskUseCase
	qaUC   *usecase.QAUseCase
	logger *zap.Logger
}

// NewTaskHandler создаёт новый TaskHandler
func NewTaskHandler(taskUC *usecase.TaskUseCase, qaUC *usecase.QAUseCase, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		taskUC: taskUC,
		qaUC:   qaUC,
		logger: logger,
	}
}

// Create принимает документ на обработку
// POST /api/v1/documents
// Content-Type: multipart/form-data
// - file: PDF документ
// - language: целевой язык упрощения (опционально)
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	// Ограничиваем размер загрузки
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	// Парсим multipart форму
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.logger.Warn("Failed to parse multipart form", zap.Error(err))
		h.respondError(w, http.StatusBadRequest, "invalid_request", "Failed to parse form data")
		return
	}

	// Получаем файл
	file, header, err := r.FormFile("file")
	if err != nil {
		h.logger.Warn("Failed to get file from form", zap.Error(err))
		h.respondError(w, http.StatusBadRequest, "file_required", "File is required")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		h.respondError(w, http.StatusBadRequest, "file_required", "File name is empty")
		return
	}

	// Определяем content type
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		// Пытаемся определить по расширению
		ct, err := domain.ContentTypeFromFileName(header.Filename)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "invalid_file_type", "Invalid file type. Please upload a PDF.")
			return
		}
		contentType = ct
	}

	// Валидируем тип файла
	if err := domain.ValidateContentType(contentType); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_file_type", "Invalid file type. Please upload a PDF.")
		return
	}

	language := r.FormValue("language")

	// Создаём задачу
	input := usecase.CreateTaskInput{
		FileName:    header.Filename,
		ContentType: contentType,
		FileSize:    header.Size,
		FileReader:  file,
		Language:    language,
	}

	task, err := h.taskUC.Create(r.Context(), input)
	if err != nil {
		h.logger.Error("Failed to create task", zap.Error(err))

		if errors.Is(err, domain.ErrUnsupportedFileType) {
			h.respondError(w, http.StatusBadRequest, "invalid_file_type", err.Error())
			return
		}

		h.respondError(w, http.StatusInternalServerError, "internal_error", "Failed to create task")
		return
	}

	h.respondJSON(w, http.StatusCreated, dto.CreateTaskResponse{TaskID: task.ID.String()})
}

// GetByID возвращает статус и результат задачи
// GET /api/v1/documents/{id}
func (h *TaskHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_id", "Invalid task ID format")
		return
	}

	task, err := h.taskUC.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			h.respondError(w, http.StatusNotFound, "not_found", "Task not found")
			return
		}
		h.logger.Error("Failed to get task", zap.String("task_id", idStr), zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "internal_error", "Failed to get task")
		return
	}

	h.respondJSON(w, http.StatusOK, dto.TaskFromDomain(task))
}

// List возвращает список задач
// GET /api/v1/documents?page=1&page_size=20&status=Complete
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	// Парсим параметры пагинации
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	pagination := domain.NewPagination(page, pageSize)

	// Парсим фильтры
	filter := domain.TaskFilter{}
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		status := domain.TaskStatus(statusStr)
		if status.IsValid() {
			filter.Status = &status
		}
	}

	result := h.taskUC.List(r.Context(), filter, pagination)

	h.respondJSON(w, http.StatusOK, dto.TaskListFromDomain(result))
}

// Ask отвечает на вопрос по обработанному документу
// POST /api/v1/documents/{id}/questions
func (h *TaskHandler) Ask(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_id", "Invalid task ID format")
		return
	}

	var req dto.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		h.respondError(w, http.StatusBadRequest, "question_required", "Question is required")
		return
	}

	answer, err := h.qaUC.Answer(r.Context(), id, req.Question)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTaskNotFound), errors.Is(err, domain.ErrTaskNotReady):
			h.respondError(w, http.StatusNotFound, "not_found", "Sorry, the document context is not available or still processing.")
		case errors.Is(err, domain.ErrNoDocumentText):
			h.respondError(w, http.StatusNotFound, "not_found", "Could not find the text for this document.")
		default:
			h.logger.Error("Failed to answer question", zap.String("task_id", idStr), zap.Error(err))
			h.respondError(w, http.StatusInternalServerError, "internal_error", "Failed to answer question")
		}
		return
	}

	h.respondJSON(w, http.StatusOK, dto.AnswerResponse{Answer: answer})
}

// DownloadAudio отдаёт готовый аудиофайл
// GET /outputs/{filename}
func (h *TaskHandler) DownloadAudio(w http.ResponseWriter, r *http.Request) {
	fileName := chi.URLParam(r, "filename")
	if fileName == "" {
		h.respondError(w, http.StatusBadRequest, "invalid_request", "File name is required")
		return
	}

	audio, err := h.taskUC.OpenAudio(r.Context(), fileName)
	if err != nil {
		h.respondError(w, http.StatusNotFound, "not_found", "Audio file not found")
		return
	}
	defer audio.Close()

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, audio); err != nil {
		h.logger.Error("Failed to stream audio file",
			zap.String("file_name", fileName),
			zap.Error(err),
		)
	}
}

// respondJSON отправляет JSON ответ
func (h *TaskHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// respondError отправляет ответ с ошибкой
func (h *TaskHandler) respondError(w http.ResponseWriter, status int, errCode string, message string) {
	h.respondJSON(w, status, dto.NewErrorResponse(errCode, message))
}
